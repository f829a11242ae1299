package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
)

// ReviewDTO is the transport shape for a complex review.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	ComplexID uuid.UUID `json:"complex_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReviewInput is the payload for posting a review.
type CreateReviewInput struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

// FromModel maps the persisted review into a DTO.
func FromModel(m *models.Review) *ReviewDTO {
	if m == nil {
		return nil
	}
	return &ReviewDTO{
		ID:        m.ID,
		ComplexID: m.ComplexID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}
