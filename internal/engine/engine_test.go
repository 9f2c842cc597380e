package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/demyanov-realty/review-bot/internal/entity"
	"github.com/demyanov-realty/review-bot/internal/session"
	"github.com/demyanov-realty/review-bot/internal/telegram/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.text, g.err
}

type stubStore struct {
	appended []*entity.Review
	err      error
}

func (s *stubStore) Append(_ context.Context, review *entity.Review) error {
	s.appended = append(s.appended, review)
	if s.err != nil {
		return s.err
	}
	review.ID = int64(len(s.appended))
	return nil
}

type fixture struct {
	engine    *Engine
	sessions  *session.Store
	generator *stubGenerator
	store     *stubStore
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		sessions:  session.NewStore(time.Minute),
		generator: &stubGenerator{text: "Отличное агентство, всем советую."},
		store:     &stubStore{},
	}
	f.engine = New(f.sessions, f.generator, f.store, zap.NewNop(), opts...)
	return f
}

var testUser = entity.UserRef{ID: 42, Name: "Анна"}

// advance drives the survey up to the CONFIRM summary.
func advance(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()

	steps := []string{
		entity.TriggerStart,
		"👩 Женский",
		"Покупка квартиры",
		"Скорость",
		entity.LikesDone,
		entity.CommentSkip,
		entity.RecommendYes,
	}
	for _, text := range steps {
		action := f.engine.Handle(ctx, testUser, text)
		require.Equal(t, ActionPrompt, action.Kind, "step %q", text)
	}

	s := f.sessions.Get(testUser.ID)
	require.NotNil(t, s)
	require.Equal(t, entity.StateConfirm, s.State)
}

func TestHandleStart(t *testing.T) {
	f := newFixture()

	action := f.engine.Handle(context.Background(), testUser, entity.TriggerStart)

	require.Equal(t, ActionPrompt, action.Kind)
	require.Len(t, action.Messages, 2)
	assert.Equal(t, render.MsgWelcome, action.Messages[0].Text)
	assert.Equal(t, render.MsgAskGender, action.Messages[1].Text)
	assert.Equal(t, entity.GenderChoices, action.Messages[1].Choices)

	s := f.sessions.Get(testUser.ID)
	require.NotNil(t, s)
	assert.Equal(t, entity.StateGender, s.State)
}

func TestHandleStartDiscardsProgress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.Handle(ctx, testUser, entity.TriggerStart)
	f.engine.Handle(ctx, testUser, "👨 Мужской")

	f.engine.Handle(ctx, testUser, entity.TriggerStart)

	s := f.sessions.Get(testUser.ID)
	require.NotNil(t, s)
	assert.Equal(t, entity.StateGender, s.State)
	assert.Empty(t, s.Gender)
}

func TestHandleWithoutSession(t *testing.T) {
	f := newFixture()

	action := f.engine.Handle(context.Background(), testUser, "привет")

	require.Equal(t, ActionPrompt, action.Kind)
	require.Len(t, action.Messages, 1)
	assert.Equal(t, render.ErrNoActiveSession, action.Messages[0].Text)
	assert.Nil(t, f.sessions.Get(testUser.ID))
}

func TestInvalidAnswerLeavesStateUnchanged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.Handle(ctx, testUser, entity.TriggerStart)

	// The same garbage twice yields the same re-prompt and no mutation.
	for i := 0; i < 2; i++ {
		action := f.engine.Handle(ctx, testUser, "не скажу")
		require.Equal(t, ActionPrompt, action.Kind)
		require.Len(t, action.Messages, 1)
		assert.Equal(t, render.ErrChooseGender, action.Messages[0].Text)
		assert.Equal(t, entity.GenderChoices, action.Messages[0].Choices)
	}

	s := f.sessions.Get(testUser.ID)
	require.NotNil(t, s)
	assert.Equal(t, entity.StateGender, s.State)
	assert.Empty(t, s.Gender)
}

func TestGenderAcceptsPlainPhrasing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.Handle(ctx, testUser, entity.TriggerStart)
	action := f.engine.Handle(ctx, testUser, "Мужской")

	require.Equal(t, ActionPrompt, action.Kind)
	assert.Equal(t, render.MsgAskService, action.Messages[0].Text)

	s := f.sessions.Get(testUser.ID)
	assert.Equal(t, entity.GenderMale, s.Gender)
	assert.Equal(t, entity.StateService, s.State)
}

func TestLikesToggle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.Handle(ctx, testUser, entity.TriggerStart)
	f.engine.Handle(ctx, testUser, "👩 Женский")
	f.engine.Handle(ctx, testUser, "Покупка квартиры")

	f.engine.Handle(ctx, testUser, "Скорость")
	f.engine.Handle(ctx, testUser, "Цена")
	assert.Equal(t, []string{"Скорость", "Цена"}, f.sessions.Get(testUser.ID).Likes)

	// Re-sending a selected tag deselects it.
	action := f.engine.Handle(ctx, testUser, "Скорость")
	require.Equal(t, ActionPrompt, action.Kind)
	assert.Contains(t, action.Messages[0].Text, "убрано")
	assert.Equal(t, []string{"Цена"}, f.sessions.Get(testUser.ID).Likes)
}

func TestLikesDoneRequiresSelection(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.Handle(ctx, testUser, entity.TriggerStart)
	f.engine.Handle(ctx, testUser, "👩 Женский")
	f.engine.Handle(ctx, testUser, "Покупка квартиры")

	action := f.engine.Handle(ctx, testUser, entity.LikesDone)

	require.Equal(t, ActionPrompt, action.Kind)
	assert.Equal(t, render.ErrEmptySelection, action.Messages[0].Text)
	assert.Equal(t, entity.StateLikes, f.sessions.Get(testUser.ID).State)

	f.engine.Handle(ctx, testUser, "Цена")
	action = f.engine.Handle(ctx, testUser, entity.LikesDone)
	assert.Equal(t, render.MsgAskComment, action.Messages[0].Text)
	assert.Equal(t, entity.StateComment, f.sessions.Get(testUser.ID).State)
}

func TestCommentStored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.Handle(ctx, testUser, entity.TriggerStart)
	f.engine.Handle(ctx, testUser, "👩 Женский")
	f.engine.Handle(ctx, testUser, "Покупка квартиры")
	f.engine.Handle(ctx, testUser, "Цена")
	f.engine.Handle(ctx, testUser, entity.LikesDone)

	action := f.engine.Handle(ctx, testUser, "Очень быстро все оформили")

	require.Equal(t, ActionPrompt, action.Kind)
	assert.Equal(t, render.MsgAskRecommend, action.Messages[0].Text)
	assert.Equal(t, "Очень быстро все оформили", f.sessions.Get(testUser.ID).Comment)
}

func TestCancelClearsSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.Handle(ctx, testUser, entity.TriggerStart)
	f.engine.Handle(ctx, testUser, "👩 Женский")

	action := f.engine.Handle(ctx, testUser, entity.TriggerCancel)

	require.Equal(t, ActionCancelled, action.Kind)
	assert.Equal(t, render.MsgCancelled, action.Messages[0].Text)
	assert.Nil(t, f.sessions.Get(testUser.ID))
}

func TestConfirmNoRestarts(t *testing.T) {
	f := newFixture()
	advance(t, f)

	action := f.engine.Handle(context.Background(), testUser, entity.ConfirmNo)

	require.Equal(t, ActionPrompt, action.Kind)
	assert.Equal(t, render.MsgRestart, action.Messages[0].Text)
	assert.Nil(t, f.sessions.Get(testUser.ID))
	assert.Empty(t, f.store.appended)
}

func TestConfirmYesPersistsReview(t *testing.T) {
	f := newFixture()
	advance(t, f)

	action := f.engine.Handle(context.Background(), testUser, entity.ConfirmYes)

	require.Equal(t, ActionCompletion, action.Kind)
	require.NotNil(t, action.Review)
	require.Len(t, f.store.appended, 1)

	review := f.store.appended[0]
	assert.Equal(t, testUser.ID, review.UserID)
	assert.Equal(t, "Анна", review.UserName)
	assert.Equal(t, entity.GenderFemale, review.Gender)
	assert.Equal(t, "Покупка квартиры", review.Service)
	assert.Equal(t, []string{"Скорость"}, review.Likes)
	assert.True(t, review.Recommends)
	assert.Empty(t, review.Comment)
	assert.Equal(t, f.generator.text, review.Text)
	assert.Equal(t, entity.ReviewStatusFinalized, review.Status)

	require.Len(t, action.Messages, 2)
	assert.Contains(t, action.Messages[0].Text, f.generator.text)
	assert.True(t, action.Messages[0].ShowLinks)
	assert.Equal(t, render.MsgAskAgain, action.Messages[1].Text)

	assert.Nil(t, f.sessions.Get(testUser.ID), "session cleared after completion")
	assert.Equal(t, 1, f.generator.calls)
}

func TestGeneratorFailureFallsBack(t *testing.T) {
	f := newFixture()
	f.generator.err = errors.New("service unavailable")
	advance(t, f)

	action := f.engine.Handle(context.Background(), testUser, entity.ConfirmYes)

	require.Equal(t, ActionCompletion, action.Kind, "generation failure is never surfaced")
	require.Len(t, f.store.appended, 1)
	assert.Equal(t,
		"Хочу поблагодарить Demyanov realty за покупка квартиры! Особенно понравилось: Скорость. Обязательно порекомендую ваше агентство!",
		f.store.appended[0].Text)
}

func TestGeneratorBlankResultFallsBack(t *testing.T) {
	f := newFixture()
	f.generator.text = "   \n"
	advance(t, f)

	action := f.engine.Handle(context.Background(), testUser, entity.ConfirmYes)

	require.Equal(t, ActionCompletion, action.Kind)
	require.Len(t, f.store.appended, 1)
	assert.Contains(t, f.store.appended[0].Text, "Хочу поблагодарить Demyanov realty")
}

func TestStoreFailure(t *testing.T) {
	f := newFixture()
	f.store.err = errors.New("connection refused")
	advance(t, f)

	action := f.engine.Handle(context.Background(), testUser, entity.ConfirmYes)

	require.Equal(t, ActionError, action.Kind)
	assert.Equal(t, render.ErrStorage, action.Messages[0].Text)
	assert.Len(t, f.store.appended, 1, "exactly one append attempt")
	assert.Nil(t, f.sessions.Get(testUser.ID), "session cleared even when persistence fails")
}

func TestAnnouncerCalledBeforeGeneration(t *testing.T) {
	var announced []Message
	f := newFixture(WithAnnouncer(func(_ context.Context, user entity.UserRef, msg Message) {
		assert.Equal(t, testUser.ID, user.ID)
		announced = append(announced, msg)
	}))
	advance(t, f)

	f.engine.Handle(context.Background(), testUser, entity.ConfirmYes)

	require.Len(t, announced, 1)
	assert.Equal(t, render.MsgGenerating, announced[0].Text)
}

func TestHandlePanicClearsSession(t *testing.T) {
	sessions := session.NewStore(time.Minute)
	panicking := &panickingStore{}
	e := New(sessions, &stubGenerator{text: "ок"}, panicking, zap.NewNop())
	ctx := context.Background()

	e.Handle(ctx, testUser, entity.TriggerStart)
	e.Handle(ctx, testUser, "👩 Женский")
	e.Handle(ctx, testUser, "Покупка квартиры")
	e.Handle(ctx, testUser, "Цена")
	e.Handle(ctx, testUser, entity.LikesDone)
	e.Handle(ctx, testUser, entity.CommentSkip)
	e.Handle(ctx, testUser, entity.RecommendYes)

	action := e.Handle(ctx, testUser, entity.ConfirmYes)

	require.Equal(t, ActionError, action.Kind)
	assert.Equal(t, render.ErrGeneric, action.Messages[0].Text)
	assert.Nil(t, sessions.Get(testUser.ID))
}

type panickingStore struct{}

func (p *panickingStore) Append(_ context.Context, _ *entity.Review) error {
	panic("boom")
}
