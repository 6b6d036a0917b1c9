package lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/intake"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/token"
)

const (
	referencePrefix     = "CI"
	referenceLength     = 6
	referenceMaxRetries = 5
	trackingTokenBytes  = 32
)

// Repository handles lead data access.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Migrate creates the leads table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&leadModel{})
}

type leadModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	DraftID        string    `gorm:"column:draft_id;uniqueIndex"`
	ReferenceID    string    `gorm:"column:reference_id;uniqueIndex"`
	TrackingToken  string    `gorm:"column:tracking_token;uniqueIndex"`
	TokenSpent     bool      `gorm:"column:token_spent"`
	UserID         *int64    `gorm:"column:user_id"`
	ContactName    string    `gorm:"column:contact_name"`
	ContactEmail   string    `gorm:"column:contact_email;index"`
	ContactPhone   string    `gorm:"column:contact_phone"`
	Location       *string   `gorm:"column:location"`
	Urgency        *string   `gorm:"column:urgency"`
	ExistingClient bool      `gorm:"column:existing_client"`
	ServicesJSON   string    `gorm:"column:services;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (leadModel) TableName() string { return "leads" }

// CreateFromDraft inserts the permanent record for a draft, allocating
// a unique reference code and a fresh tracking token. Reference codes
// are short, so a collision is checked for and regenerated.
func (r *Repository) CreateFromDraft(ctx context.Context, d *intake.DraftSession, contact intake.Contact) (*Lead, error) {
	trackingToken, err := token.NewOpaque(trackingTokenBytes)
	if err != nil {
		return nil, err
	}

	referenceID, err := r.freeReferenceID(ctx)
	if err != nil {
		return nil, err
	}

	servicesJSON, err := json.Marshal(d.Cart)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m := leadModel{
		ID:             token.NewID(),
		DraftID:        d.ID,
		ReferenceID:    referenceID,
		TrackingToken:  trackingToken,
		ContactName:    contact.FullName,
		ContactEmail:   contact.Email,
		ContactPhone:   contact.Phone,
		Location:       nullable(contact.Location),
		Urgency:        nullable(contact.Urgency),
		ExistingClient: contact.ExistingClient,
		ServicesJSON:   string(servicesJSON),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return toDomainLead(&m)
}

// GetByDraftID retrieves the lead created for a draft, nil when none
// exists yet.
func (r *Repository) GetByDraftID(ctx context.Context, draftID string) (*Lead, error) {
	var m leadModel
	err := r.db.WithContext(ctx).First(&m, "draft_id = ?", draftID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainLead(&m)
}

// GetByTrackingToken retrieves the lead a tracking token is bound to,
// nil when the token is unknown.
func (r *Repository) GetByTrackingToken(ctx context.Context, trackingToken string) (*Lead, error) {
	var m leadModel
	err := r.db.WithContext(ctx).First(&m, "tracking_token = ?", trackingToken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainLead(&m)
}

// BindAccount spends the tracking token and binds the account in one
// conditional update. Returns false when the token was already spent,
// so a racing second call cannot bind twice.
func (r *Repository) BindAccount(ctx context.Context, leadID string, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&leadModel{}).
		Where("id = ? AND token_spent = ?", leadID, false).
		Updates(map[string]any{
			"token_spent": true,
			"user_id":     userID,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) freeReferenceID(ctx context.Context) (string, error) {
	for i := 0; i < referenceMaxRetries; i++ {
		candidate, err := token.NewReferenceCode(referencePrefix, referenceLength)
		if err != nil {
			return "", err
		}
		var count int64
		if err := r.db.WithContext(ctx).Model(&leadModel{}).
			Where("reference_id = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not allocate a free reference id after %d attempts", referenceMaxRetries)
}

func toDomainLead(m *leadModel) (*Lead, error) {
	l := &Lead{
		ID:            m.ID,
		DraftID:       m.DraftID,
		ReferenceID:   m.ReferenceID,
		TrackingToken: m.TrackingToken,
		TokenSpent:    m.TokenSpent,
		UserID:        m.UserID,
		Contact: intake.Contact{
			FullName:       m.ContactName,
			Email:          m.ContactEmail,
			Phone:          m.ContactPhone,
			ExistingClient: m.ExistingClient,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Location != nil {
		l.Contact.Location = *m.Location
	}
	if m.Urgency != nil {
		l.Contact.Urgency = *m.Urgency
	}

	l.Services = []intake.ServiceSelection{}
	if m.ServicesJSON != "" {
		if err := json.Unmarshal([]byte(m.ServicesJSON), &l.Services); err != nil {
			return nil, fmt.Errorf("lead %s: decode services: %w", m.ID, err)
		}
	}
	return l, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
