package entity

import "time"

// State is the current step of the survey dialogue.
type State string

const (
	StateGender    State = "GENDER"
	StateService   State = "SERVICE"
	StateLikes     State = "LIKES"
	StateComment   State = "COMMENT"
	StateRecommend State = "RECOMMEND"
	StateConfirm   State = "CONFIRM"
)

// Gender is the canonical stored form of the gender answer.
type Gender string

const (
	GenderFemale Gender = "Женский"
	GenderMale   Gender = "Мужской"
)

// UserRef identifies the author of an inbound message.
type UserRef struct {
	ID   int64
	Name string
}

// Session holds the in-progress answers of one user.
// A session is owned by the conversation engine and is never shared
// between users; access for a single user is serialized by the dispatcher.
type Session struct {
	State      State
	Gender     Gender
	Service    string
	Likes      []string // insertion order preserved for display
	Comment    string   // empty string means the comment was skipped
	Recommends bool
	StartedAt  time.Time
}

// ToggleLike adds the tag to the selection, or removes it when already
// selected. Reports whether the tag is selected after the toggle.
func (s *Session) ToggleLike(tag string) bool {
	for i, l := range s.Likes {
		if l == tag {
			s.Likes = append(s.Likes[:i], s.Likes[i+1:]...)
			return false
		}
	}
	s.Likes = append(s.Likes, tag)
	return true
}

// ReviewStatus is kept for forward compatibility; every review written
// today is finalized immediately.
type ReviewStatus string

const (
	ReviewStatusDraft     ReviewStatus = "draft"
	ReviewStatusFinalized ReviewStatus = "finalized"
)

// Review is the persisted result of a completed survey.
// Immutable once written.
type Review struct {
	ID         int64
	UserID     int64
	UserName   string
	Gender     Gender
	Service    string
	Likes      []string
	Recommends bool
	Comment    string
	Text       string // generated or fallback review prose
	Status     ReviewStatus
	CreatedAt  time.Time
}

// PlatformLink is a static "publish your review here" link shown after
// a review is completed.
type PlatformLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
