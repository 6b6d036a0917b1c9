package lead

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/intake"
)

// AccountChecker reports whether an account already exists for an
// email. Advisory only: the result informs the client UI, it never
// gates the conversion.
type AccountChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Notifier receives the conversion event, fire-and-forget. Delivery
// failure must never roll back a conversion.
type Notifier interface {
	LeadConverted(ev ConvertedEvent)
}

// ConvertedEvent is handed to the external notifier on success.
type ConvertedEvent struct {
	ReferenceID string                    `json:"reference_id"`
	Contact     intake.Contact            `json:"contact"`
	Services    []intake.ServiceSelection `json:"services"`
}

// Receipt is what the visitor gets back from a successful submission.
type Receipt struct {
	ReferenceID   string `json:"reference_id"`
	TrackingToken string `json:"tracking_token"`
	AccountExists bool   `json:"account_exists"`
}

// ContactOverride lets the final step refine fields captured at step 1.
// Non-empty values win.
type ContactOverride struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Service finalizes drafts into permanent leads. Creating the lead and
// marking the draft submitted happen in one transaction: external
// observers see both or neither.
type Service struct {
	db       *gorm.DB
	drafts   *intake.Store
	repo     *Repository
	accounts AccountChecker
	notifier Notifier
}

func NewService(db *gorm.DB, drafts *intake.Store, repo *Repository, accounts AccountChecker, notifier Notifier) *Service {
	return &Service{
		db:       db,
		drafts:   drafts,
		repo:     repo,
		accounts: accounts,
		notifier: notifier,
	}
}

// Submit converts the draft behind resumeToken into a Lead. Submitting
// an already-converted draft is an idempotent no-op that replays the
// original receipt, so a browser retrying a slow request cannot create
// a second lead. A version conflict (the draft changed under the user)
// is retried once against the refreshed draft before surfacing.
func (s *Service) Submit(ctx context.Context, resumeToken string, final ContactOverride) (*Receipt, error) {
	d, err := s.drafts.GetByToken(ctx, resumeToken)
	if err != nil {
		return nil, err
	}
	if d.IsSubmitted() {
		return s.replay(ctx, d)
	}

	receipt, err := s.convert(ctx, d, final)
	if errors.Is(err, intake.ErrVersionConflict) {
		if d, err = s.drafts.GetByToken(ctx, resumeToken); err != nil {
			return nil, err
		}
		if d.IsSubmitted() {
			return s.replay(ctx, d)
		}
		receipt, err = s.convert(ctx, d, final)
	}
	if errors.Is(err, intake.ErrAlreadySubmitted) {
		return s.replay(ctx, d)
	}
	return receipt, err
}

func (s *Service) convert(ctx context.Context, d *intake.DraftSession, final ContactOverride) (*Receipt, error) {
	if len(d.Cart) == 0 {
		return nil, ErrEmptyCart
	}
	if d.Contact == nil {
		return nil, ErrContactMissing
	}

	contact := mergeContact(*d.Contact, final)

	accountExists, err := s.accounts.EmailExists(ctx, contact.Email)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Claim the draft before inserting: a racing Submit loses on the
	// version check with a mapped sentinel, never on the leads.draft_id
	// unique index.
	if err := s.drafts.WithTx(tx).MarkSubmitted(ctx, d.ID, d.Version); err != nil {
		tx.Rollback()
		return nil, err
	}

	l, err := s.repo.WithTx(tx).CreateFromDraft(ctx, d, contact)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.LeadConverted(ConvertedEvent{
			ReferenceID: l.ReferenceID,
			Contact:     l.Contact,
			Services:    l.Services,
		})
	}

	return &Receipt{
		ReferenceID:   l.ReferenceID,
		TrackingToken: l.TrackingToken,
		AccountExists: accountExists,
	}, nil
}

// replay returns the receipt issued when this draft was first
// converted. accountExists is recomputed: it is advisory state, not
// part of the original receipt.
func (s *Service) replay(ctx context.Context, d *intake.DraftSession) (*Receipt, error) {
	l, err := s.repo.GetByDraftID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		log.Printf("lead: draft %s submitted but no lead on record", d.ID)
		return nil, ErrLeadNotFound
	}

	accountExists, err := s.accounts.EmailExists(ctx, l.Contact.Email)
	if err != nil {
		return nil, err
	}

	return &Receipt{
		ReferenceID:   l.ReferenceID,
		TrackingToken: l.TrackingToken,
		AccountExists: accountExists,
	}, nil
}

func mergeContact(base intake.Contact, final ContactOverride) intake.Contact {
	if v := strings.TrimSpace(final.FullName); v != "" {
		base.FullName = v
	}
	if v := strings.TrimSpace(final.Email); v != "" {
		base.Email = v
	}
	if v := strings.TrimSpace(final.Phone); v != "" {
		base.Phone = v
	}
	return base
}
