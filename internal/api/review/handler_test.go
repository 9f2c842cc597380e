package review

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/demyanov-realty/review-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	reviews   []*entity.Review
	err       error
	gotLimit  int
	appendErr error
}

func (f *fakeRepository) Append(_ context.Context, review *entity.Review) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeRepository) ListRecent(_ context.Context, limit int) ([]*entity.Review, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit > len(f.reviews) {
		limit = len(f.reviews)
	}
	return f.reviews[:limit], nil
}

func sampleReview(id int64) *entity.Review {
	return &entity.Review{
		ID:         id,
		UserID:     100 + id,
		UserName:   "Анна",
		Gender:     entity.GenderFemale,
		Service:    "Покупка квартиры",
		Likes:      []string{"Скорость"},
		Recommends: true,
		Text:       "Отличное агентство!",
		Status:     entity.ReviewStatusFinalized,
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestListDefaults(t *testing.T) {
	repo := &fakeRepository{reviews: []*entity.Review{sampleReview(1), sampleReview(2)}}
	h := NewHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, repo.gotLimit)

	var dtos []ReviewDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 2)
	assert.Equal(t, int64(1), dtos[0].ID)
	assert.Equal(t, "Женский", dtos[0].Gender)
	assert.Equal(t, "finalized", dtos[0].Status)
}

func TestListLimitParam(t *testing.T) {
	repo := &fakeRepository{reviews: []*entity.Review{sampleReview(1), sampleReview(2)}}
	h := NewHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews?limit=1", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, repo.gotLimit)
}

func TestListLimitClamped(t *testing.T) {
	repo := &fakeRepository{}
	h := NewHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews?limit=1000", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, repo.gotLimit)
}

func TestListInvalidLimit(t *testing.T) {
	h := NewHandler(&fakeRepository{})

	for _, raw := range []string{"abc", "0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews?limit="+raw, nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
	}
}

func TestListRepositoryError(t *testing.T) {
	h := NewHandler(&fakeRepository{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to list reviews", resp["error"])
}

func TestListEmpty(t *testing.T) {
	h := NewHandler(&fakeRepository{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "empty list, not null")
}
