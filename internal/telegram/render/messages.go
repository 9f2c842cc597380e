package render

import (
	"fmt"
	"strings"

	"github.com/demyanov-realty/review-bot/internal/entity"
)

const (
	// Welcome / survey questions
	MsgWelcome = `*Добро пожаловать в сервис отзывов! 💖*

Спасибо, что нашли время оставить отзыв о нашей работе. Это займет всего 2 минуты.

Если захотите прервать опрос, просто напишите /cancel`

	MsgAskGender = `👥 Какого вы пола?`

	MsgAskService = `🏢 Какую услугу вы получили?`

	MsgAskLikes = `⭐ Что вам понравилось в работе с нашим агентством?

Можно выбрать несколько вариантов. Нажмите '✅ Завершить выбор' когда закончите.`

	MsgAskComment = `💬 Хотите добавить комментарий или уточнение к отзыву?

Напишите ваш комментарий или нажмите 'Пропустить'`

	MsgAskRecommend = `🤝 Посоветуете своим знакомым наше агентство?`

	// Generation / completion
	MsgGenerating = `✨ Генерируем ваш отзыв с помощью AI...

Это займет 10-15 секунд.`

	MsgAskAgain = `Хотите оставить еще один отзыв? Напишите /start`

	MsgRestart = `Хорошо, давайте начнем заново.

Напишите /start`

	MsgCancelled = `❌ Опрос прерван. Если у вас есть время оставить отзыв позже, просто напишите /start`

	// Re-prompts on invalid input
	ErrChooseGender    = `Пожалуйста, выберите пол с помощью кнопок 👇`
	ErrChooseService   = `Пожалуйста, выберите услугу с помощью кнопок 👇`
	ErrChooseButtons   = `Пожалуйста, используйте кнопки для выбора 👇`
	ErrChooseAnswer    = `Пожалуйста, используйте кнопки для ответа 👇`
	ErrEmptySelection  = `Пожалуйста, выберите хотя бы один вариант перед завершением 👇`
	ErrNoActiveSession = `Нет активного опроса. Напишите /start чтобы начать.`

	// Failures
	ErrGeneric = `⚠️ Произошла ошибка. Давайте начнем заново. Напишите /start`
	ErrStorage = `⚠️ Не удалось сохранить отзыв. Попробуйте ещё раз позже — напишите /start`
)

const MsgHelp = `🤖 Команды бота:

/start - Начать опрос
/help - Показать эту справку
/cancel - Прервать опрос

Как это работает:
1. Ответь на несколько коротких вопросов кнопками
2. AI соберёт из ответов готовый текст отзыва
3. Опубликуй отзыв на удобной площадке по ссылке`

// RenderSelection formats the full running tag selection after a toggle.
// The selection is always re-rendered in full, never incrementally.
func RenderSelection(tag string, selected bool, likes []string) string {
	action := "добавлено"
	if !selected {
		action = "убрано"
	}

	current := "пока ничего не выбрано"
	if len(likes) > 0 {
		current = strings.Join(likes, ", ")
	}

	return fmt.Sprintf("%s %s ✅\n\nВыбрано: %s\n\nПродолжайте выбирать или нажмите '%s'",
		tag, action, current, entity.LikesDone)
}

// RenderSummary formats the answer summary shown before confirmation.
func RenderSummary(s *entity.Session) string {
	var sb strings.Builder
	sb.WriteString("📋 Проверьте ваши ответы:\n\n")
	sb.WriteString(fmt.Sprintf("👥 Пол: %s\n", s.Gender))
	sb.WriteString(fmt.Sprintf("🏢 Услуга: %s\n", s.Service))
	sb.WriteString(fmt.Sprintf("⭐ Понравилось: %s\n", strings.Join(s.Likes, ", ")))
	if s.Comment != "" {
		sb.WriteString(fmt.Sprintf("💬 Комментарий: %s\n", s.Comment))
	}
	recommendation := entity.RecommendNo
	if s.Recommends {
		recommendation = entity.RecommendYes
	}
	sb.WriteString(fmt.Sprintf("🤝 Рекомендация: %s\n\n", recommendation))
	sb.WriteString("Всё верно?")

	return sb.String()
}

// RenderCompletion formats the final message with the review text and
// publish instructions. The review is wrapped in backticks so a tap on
// it copies the text.
func RenderCompletion(reviewText string) string {
	return fmt.Sprintf(`🎉 Готово! Вот ваш отзыв:

`+"`%s`"+`

💖 Большое спасибо! Ваше мнение очень важно для нас.

*🚀 А теперь отзыв нужно непременно опубликовать!* 😊

📋 Как это сделать:

1. 🏢 Выберите площадку, на которой состоялась сделка
2. 🔍 Найдите на странице кнопку "Написать отзыв"
3. 🔐 Войдите в аккаунт, если требуется
4. 📋 Скопируйте получившийся текст (просто нажмите на него в этом сообщении), вставьте в соответствующее окошко и опубликуйте отзыв

*⭐️ Ещё раз благодарим вас!* 🙏`, reviewText)
}
