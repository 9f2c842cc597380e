package engine

import (
	"fmt"
	"strings"

	"github.com/demyanov-realty/review-bot/internal/entity"
)

const agencyName = "Demyanov realty"

const promptTemplate = `Сгенерируй искренний отзыв о риелторских услугах компании "%s".

Информация:
- Пол: %s
- Услуга: %s
- Понравилось: %s
- Рекомендует: %s
- Комментарий: %s

Требования:
- Естественный тон, как настоящий клиент
- 3-5 предложений
- Упоминание %s
- Учет выбранных преимуществ
- Позитивный настрой
- Без эмодзи и маркдауна
- Грамматически правильный русский

Только текст отзыва.`

// BuildPrompt renders the accumulated answers into the generation
// prompt. Pure and deterministic: the same answers always produce the
// same prompt text.
func BuildPrompt(gender entity.Gender, service string, likes []string, recommends bool, comment string) string {
	genderText := "мужчина"
	if strings.Contains(strings.ToLower(string(gender)), "женск") {
		genderText = "женщина"
	}

	recommendationText := "не рекомендует"
	if recommends {
		recommendationText = "рекомендует"
	}

	likesText := "особых моментов не выделил(а)"
	if len(likes) > 0 {
		likesText = strings.Join(likes, ", ")
	}

	commentText := "нет"
	if comment != "" {
		commentText = comment
	}

	return fmt.Sprintf(promptTemplate,
		agencyName, genderText, service, likesText, recommendationText, commentText, agencyName)
}

// FallbackReview assembles the deterministic templated review used when
// generation fails. It never fails.
func FallbackReview(service string, likes []string, recommends bool) string {
	closing := "Спасибо за работу!"
	if recommends {
		closing = "Обязательно порекомендую ваше агентство!"
	}

	return fmt.Sprintf("Хочу поблагодарить %s за %s! Особенно понравилось: %s. %s",
		agencyName, strings.ToLower(service), strings.Join(likes, ", "), closing)
}
