package review

import (
	"net/http"
	"strconv"
	"time"

	"github.com/demyanov-realty/review-bot/internal/entity"
	"github.com/demyanov-realty/review-bot/internal/pkg/response"
	"github.com/demyanov-realty/review-bot/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Handler serves the ops review listing
type Handler struct {
	reviews repository.ReviewRepository
}

func NewHandler(reviews repository.ReviewRepository) *Handler {
	return &Handler{reviews: reviews}
}

// ReviewDTO is the API representation of a stored review
type ReviewDTO struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name"`
	Gender     string    `json:"gender"`
	Service    string    `json:"service"`
	Likes      []string  `json:"likes"`
	Recommends bool      `json:"recommends"`
	Comment    string    `json:"comment,omitempty"`
	Text       string    `json:"text"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// List handles GET /api/v1/reviews
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	reviews, err := h.reviews.ListRecent(r.Context(), limit)
	if err != nil {
		ctxzap.Error(r.Context(), "failed to list reviews", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	dtos := make([]ReviewDTO, 0, len(reviews))
	for _, rev := range reviews {
		dtos = append(dtos, toDTO(rev))
	}

	response.Success(w, dtos)
}

func toDTO(r *entity.Review) ReviewDTO {
	return ReviewDTO{
		ID:         r.ID,
		UserID:     r.UserID,
		UserName:   r.UserName,
		Gender:     string(r.Gender),
		Service:    r.Service,
		Likes:      r.Likes,
		Recommends: r.Recommends,
		Comment:    r.Comment,
		Text:       r.Text,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}
