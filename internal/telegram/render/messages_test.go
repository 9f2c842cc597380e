package render

import (
	"testing"

	"github.com/demyanov-realty/review-bot/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestRenderSelection(t *testing.T) {
	got := RenderSelection("Скорость", true, []string{"Цена", "Скорость"})
	assert.Contains(t, got, "Скорость добавлено")
	assert.Contains(t, got, "Выбрано: Цена, Скорость")

	got = RenderSelection("Цена", false, []string{"Скорость"})
	assert.Contains(t, got, "Цена убрано")
	assert.Contains(t, got, "Выбрано: Скорость")

	got = RenderSelection("Цена", false, nil)
	assert.Contains(t, got, "пока ничего не выбрано")
}

func TestRenderSummary(t *testing.T) {
	s := &entity.Session{
		Gender:     entity.GenderFemale,
		Service:    "Покупка квартиры",
		Likes:      []string{"Скорость", "Цена"},
		Comment:    "Все отлично",
		Recommends: true,
	}

	got := RenderSummary(s)
	assert.Contains(t, got, "Пол: Женский")
	assert.Contains(t, got, "Услуга: Покупка квартиры")
	assert.Contains(t, got, "Понравилось: Скорость, Цена")
	assert.Contains(t, got, "Комментарий: Все отлично")
	assert.Contains(t, got, "Рекомендация: "+entity.RecommendYes)
	assert.Contains(t, got, "Всё верно?")
}

func TestRenderSummarySkipsEmptyComment(t *testing.T) {
	s := &entity.Session{
		Gender:  entity.GenderMale,
		Service: "Флиппинг",
		Likes:   []string{"Цена"},
	}

	got := RenderSummary(s)
	assert.NotContains(t, got, "Комментарий")
	assert.Contains(t, got, "Рекомендация: "+entity.RecommendNo)
}

func TestRenderCompletionWrapsReview(t *testing.T) {
	got := RenderCompletion("Отличный сервис!")
	assert.Contains(t, got, "`Отличный сервис!`")
	assert.Contains(t, got, "опубликовать")
}
