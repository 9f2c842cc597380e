package keyboard

import (
	"unicode/utf8"

	"github.com/demyanov-realty/review-bot/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Labels longer than this get a row of their own so they don't wrap.
const maxPairedLabelLen = 18

// Builder creates keyboards for the survey
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Reply renders a choice set as a reply keyboard. Short labels are
// paired two per row, long ones get a full row.
func (b *Builder) Reply(choices []string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	var pending []tgbotapi.KeyboardButton

	flush := func() {
		if len(pending) > 0 {
			rows = append(rows, pending)
			pending = nil
		}
	}

	for _, choice := range choices {
		if utf8.RuneCountInString(choice) > maxPairedLabelLen {
			flush()
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(choice)))
			continue
		}

		pending = append(pending, tgbotapi.NewKeyboardButton(choice))
		if len(pending) == 2 {
			flush()
		}
	}
	flush()

	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}

// Platforms renders the publish-review links as inline URL buttons,
// two per row.
func (b *Builder) Platforms(links []entity.PlatformLink) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var pending []tgbotapi.InlineKeyboardButton

	for _, link := range links {
		pending = append(pending, tgbotapi.NewInlineKeyboardButtonURL(link.Name, link.URL))
		if len(pending) == 2 {
			rows = append(rows, pending)
			pending = nil
		}
	}
	if len(pending) > 0 {
		rows = append(rows, pending)
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Remove hides any visible reply keyboard.
func (b *Builder) Remove() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(false)
}
