package engine

import (
	"context"
	"strings"
	"time"

	"github.com/demyanov-realty/review-bot/internal/entity"
	"github.com/demyanov-realty/review-bot/internal/pkg/logger"
	"github.com/demyanov-realty/review-bot/internal/session"
	"github.com/demyanov-realty/review-bot/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ActionKind classifies the outcome of one handled message.
type ActionKind int

const (
	ActionPrompt ActionKind = iota
	ActionCompletion
	ActionCancelled
	ActionError
)

// Message is one outbound chat message. Choices, when non-empty, are
// rendered by the transport as reply buttons.
type Message struct {
	Text           string
	Choices        []string
	ShowLinks      bool
	Markdown       bool
	RemoveKeyboard bool
}

// Action is what the transport should send back after handling one
// inbound message.
type Action struct {
	Kind     ActionKind
	Messages []Message
	Review   *entity.Review // set on ActionCompletion
}

// TextGenerator produces review prose from a prompt. An error means
// the generation pipeline is exhausted; the engine falls back to the
// templated review and never surfaces the failure to the user.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ReviewStore is an append-only sink for completed reviews.
type ReviewStore interface {
	Append(ctx context.Context, review *entity.Review) error
}

// Announcer lets the engine push an interim notice (e.g. "generating,
// hold on") before a long-running step. Optional.
type Announcer func(ctx context.Context, user entity.UserRef, msg Message)

// Engine drives the survey dialogue: it pairs each inbound message
// with the user's session state, validates the answer, mutates the
// session and decides the next prompt. Calls for a single user must be
// serialized by the dispatcher; calls for different users may run in
// parallel.
type Engine struct {
	sessions  *session.Store
	generator TextGenerator
	store     ReviewStore
	announce  Announcer
	logger    *zap.Logger
}

type Option func(*Engine)

// WithAnnouncer installs the interim-notice hook.
func WithAnnouncer(fn Announcer) Option {
	return func(e *Engine) {
		e.announce = fn
	}
}

func New(sessions *session.Store, generator TextGenerator, store ReviewStore, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		sessions:  sessions,
		generator: generator,
		store:     store,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Handle processes one inbound message for the user and returns the
// outbound action. Any panic below is treated as fatal to this session:
// the session is force-cleared and the user is told to restart, so no
// partially-applied state survives.
func (e *Engine) Handle(ctx context.Context, user entity.UserRef, text string) (action Action) {
	defer func() {
		if r := recover(); r != nil {
			ctxzap.Error(ctx, "unexpected error while handling message",
				zap.Any("panic", r),
				zap.Int64("user_id", user.ID),
			)
			e.sessions.Delete(user.ID)
			action = Action{
				Kind:     ActionError,
				Messages: []Message{{Text: render.ErrGeneric, RemoveKeyboard: true}},
			}
		}
	}()

	switch text {
	case entity.TriggerStart:
		return e.start(ctx, user)
	case entity.TriggerCancel:
		return e.cancel(ctx, user)
	}

	s := e.sessions.Get(user.ID)
	if s == nil {
		return prompt(Message{Text: render.ErrNoActiveSession, RemoveKeyboard: true})
	}

	switch s.State {
	case entity.StateGender:
		return e.handleGender(user, s, text)
	case entity.StateService:
		return e.handleService(user, s, text)
	case entity.StateLikes:
		return e.handleLikes(user, s, text)
	case entity.StateComment:
		return e.handleComment(user, s, text)
	case entity.StateRecommend:
		return e.handleRecommend(user, s, text)
	case entity.StateConfirm:
		return e.handleConfirm(ctx, user, s, text)
	default:
		ctxzap.Warn(ctx, "session in unknown state, clearing",
			zap.String("state", string(s.State)),
			zap.Int64("user_id", user.ID),
		)
		e.sessions.Delete(user.ID)
		return prompt(Message{Text: render.ErrGeneric, RemoveKeyboard: true})
	}
}

// start discards any previous progress and begins a fresh survey.
func (e *Engine) start(ctx context.Context, user entity.UserRef) Action {
	ctxzap.Info(ctx, "survey started", zap.Int64("user_id", user.ID))

	e.sessions.Put(user.ID, &entity.Session{
		State:     entity.StateGender,
		StartedAt: time.Now(),
	})

	return prompt(
		Message{Text: render.MsgWelcome, Markdown: true, RemoveKeyboard: true},
		Message{Text: render.MsgAskGender, Choices: entity.GenderChoices},
	)
}

func (e *Engine) cancel(ctx context.Context, user entity.UserRef) Action {
	ctxzap.Info(ctx, "survey cancelled", zap.Int64("user_id", user.ID))

	e.sessions.Delete(user.ID)

	return Action{
		Kind:     ActionCancelled,
		Messages: []Message{{Text: render.MsgCancelled, RemoveKeyboard: true}},
	}
}

func (e *Engine) handleGender(user entity.UserRef, s *entity.Session, text string) Action {
	gender, ok := entity.ParseGender(text)
	if !ok {
		return prompt(Message{Text: render.ErrChooseGender, Choices: entity.GenderChoices})
	}

	s.Gender = gender
	s.State = entity.StateService
	e.sessions.Put(user.ID, s)

	return prompt(Message{Text: render.MsgAskService, Choices: entity.ServiceChoices})
}

func (e *Engine) handleService(user entity.UserRef, s *entity.Session, text string) Action {
	if !entity.IsService(text) {
		return prompt(Message{Text: render.ErrChooseService, Choices: entity.ServiceChoices})
	}

	s.Service = text
	s.Likes = []string{}
	s.State = entity.StateLikes
	e.sessions.Put(user.ID, s)

	return prompt(Message{Text: render.MsgAskLikes, Choices: entity.LikesKeyboardChoices()})
}

func (e *Engine) handleLikes(user entity.UserRef, s *entity.Session, text string) Action {
	if text == entity.LikesDone {
		if len(s.Likes) == 0 {
			return prompt(Message{Text: render.ErrEmptySelection, Choices: entity.LikesKeyboardChoices()})
		}

		s.State = entity.StateComment
		e.sessions.Put(user.ID, s)

		return prompt(Message{Text: render.MsgAskComment, Choices: entity.CommentChoices})
	}

	if !entity.IsLikeTag(text) {
		return prompt(Message{Text: render.ErrChooseButtons, Choices: entity.LikesKeyboardChoices()})
	}

	selected := s.ToggleLike(text)
	e.sessions.Put(user.ID, s)

	return prompt(Message{
		Text:    render.RenderSelection(text, selected, s.Likes),
		Choices: entity.LikesKeyboardChoices(),
	})
}

// handleComment accepts any text; commenting is optional and the skip
// sentinel stores an empty comment.
func (e *Engine) handleComment(user entity.UserRef, s *entity.Session, text string) Action {
	if text == entity.CommentSkip {
		s.Comment = ""
	} else {
		s.Comment = text
	}

	s.State = entity.StateRecommend
	e.sessions.Put(user.ID, s)

	return prompt(Message{Text: render.MsgAskRecommend, Choices: entity.RecommendChoices})
}

func (e *Engine) handleRecommend(user entity.UserRef, s *entity.Session, text string) Action {
	switch text {
	case entity.RecommendYes:
		s.Recommends = true
	case entity.RecommendNo:
		s.Recommends = false
	default:
		return prompt(Message{Text: render.ErrChooseAnswer, Choices: entity.RecommendChoices})
	}

	s.State = entity.StateConfirm
	e.sessions.Put(user.ID, s)

	return prompt(Message{Text: render.RenderSummary(s), Choices: entity.ConfirmChoices})
}

func (e *Engine) handleConfirm(ctx context.Context, user entity.UserRef, s *entity.Session, text string) Action {
	switch text {
	case entity.ConfirmYes:
		return e.finalize(ctx, user, s)
	case entity.ConfirmNo:
		e.sessions.Delete(user.ID)
		return prompt(Message{Text: render.MsgRestart, RemoveKeyboard: true})
	default:
		return prompt(Message{Text: render.ErrChooseAnswer, Choices: entity.ConfirmChoices})
	}
}

// finalize runs the generation pipeline: build the prompt, call the
// generator, fall back to the templated review on failure, persist
// exactly one review. The session is cleared whatever the outcome.
func (e *Engine) finalize(ctx context.Context, user entity.UserRef, s *entity.Session) Action {
	ctx = logger.WithAction(ctx, "finalize_review")
	defer e.sessions.Delete(user.ID)

	if e.announce != nil {
		e.announce(ctx, user, Message{Text: render.MsgGenerating, RemoveKeyboard: true})
	}

	text, err := e.generator.Generate(ctx, BuildPrompt(s.Gender, s.Service, s.Likes, s.Recommends, s.Comment))
	if err != nil || strings.TrimSpace(text) == "" {
		ctxzap.Warn(ctx, "generation failed, using fallback template",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		text = FallbackReview(s.Service, s.Likes, s.Recommends)
	}

	review := &entity.Review{
		UserID:     user.ID,
		UserName:   user.Name,
		Gender:     s.Gender,
		Service:    s.Service,
		Likes:      s.Likes,
		Recommends: s.Recommends,
		Comment:    s.Comment,
		Text:       text,
		Status:     entity.ReviewStatusFinalized,
		CreatedAt:  time.Now(),
	}

	if err := e.store.Append(ctx, review); err != nil {
		ctxzap.Error(ctx, "failed to persist review",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		return Action{
			Kind:     ActionError,
			Messages: []Message{{Text: render.ErrStorage, RemoveKeyboard: true}},
		}
	}

	ctxzap.Info(ctx, "review persisted",
		zap.Int64("user_id", user.ID),
		zap.Int64("review_id", review.ID),
	)

	return Action{
		Kind:   ActionCompletion,
		Review: review,
		Messages: []Message{
			{Text: render.RenderCompletion(text), Markdown: true, ShowLinks: true},
			{Text: render.MsgAskAgain},
		},
	}
}

func prompt(messages ...Message) Action {
	return Action{Kind: ActionPrompt, Messages: messages}
}
