package entity

// Fixed answer catalogs of the survey. Button labels double as the wire
// values: the transport renders them as reply-keyboard buttons and the
// engine validates the raw message text against the same sets.

// Control triggers and sentinel tokens.
const (
	TriggerStart  = "/start"
	TriggerCancel = "/cancel"

	LikesDone   = "✅ Завершить выбор"
	CommentSkip = "Пропустить"

	RecommendYes = "✅ Да"
	RecommendNo  = "❌ Нет"

	ConfirmYes = "✅ Да, все верно"
	ConfirmNo  = "❌ Нет, исправить"
)

// GenderChoices are the button labels offered in the GENDER state.
var GenderChoices = []string{"👩 Женский", "👨 Мужской"}

// Two accepted phrasings per gender: the emoji button label and the
// plain word.
var genderByAnswer = map[string]Gender{
	"👩 Женский": GenderFemale,
	"Женский":    GenderFemale,
	"👨 Мужской": GenderMale,
	"Мужской":    GenderMale,
}

// ParseGender maps an accepted gender phrasing to its canonical value.
func ParseGender(answer string) (Gender, bool) {
	g, ok := genderByAnswer[answer]
	return g, ok
}

// ServiceChoices is the fixed catalog of agency services.
var ServiceChoices = []string{
	"Сдача квартиры в аренду",
	"Съём квартиры",
	"Покупка квартиры",
	"Покупка дома",
	"Продажа квартиры",
	"Продажа дома",
	"Флиппинг",
	"Хоумстейджинг",
	"Финансовые услуги",
}

// LikeChoices is the fixed catalog of multi-select tags. The finish
// sentinel is appended by LikesKeyboardChoices, not stored here.
var LikeChoices = []string{
	"Скорость",
	"Вежливость менеджера",
	"Прозрачность договора",
	"Цена",
	"Стиль работы",
}

// RecommendChoices and ConfirmChoices are the yes/no button sets.
var (
	RecommendChoices = []string{RecommendYes, RecommendNo}
	ConfirmChoices   = []string{ConfirmYes, ConfirmNo}
	CommentChoices   = []string{CommentSkip}
)

// LikesKeyboardChoices returns the like tags plus the finish sentinel.
func LikesKeyboardChoices() []string {
	return append(append([]string{}, LikeChoices...), LikesDone)
}

// IsService reports whether the answer is a catalog service label.
func IsService(answer string) bool {
	for _, s := range ServiceChoices {
		if s == answer {
			return true
		}
	}
	return false
}

// IsLikeTag reports whether the answer is a like tag (sentinel excluded).
func IsLikeTag(answer string) bool {
	for _, l := range LikeChoices {
		if l == answer {
			return true
		}
	}
	return false
}
