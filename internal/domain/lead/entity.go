package lead

import (
	"time"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/intake"
)

// Lead is the permanent record a draft converts into. Write-once:
// only the conversion service creates it, and only the account linker
// touches the tracking-token columns afterwards.
type Lead struct {
	ID          string `json:"id"`
	DraftID     string `json:"-"`
	ReferenceID string `json:"reference_id"`

	// TrackingToken is the single-use bearer token handed to the
	// visitor for the create-account step. Spent at most once.
	TrackingToken string `json:"-"`
	TokenSpent    bool   `json:"-"`
	UserID        *int64 `json:"user_id,omitempty"`

	Contact  intake.Contact            `json:"contact"`
	Services []intake.ServiceSelection `json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
