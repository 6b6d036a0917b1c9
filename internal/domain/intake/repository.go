package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/token"
)

const resumeTokenBytes = 32

// Store is the draft session store. All wizard mutations go through
// CompareAndSwap so two tabs editing the same draft cannot clobber
// each other; the loser gets ErrVersionConflict and must re-fetch.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// WithTx returns a store bound to an open transaction. Used by the
// conversion service to mark the draft submitted atomically with the
// lead insert.
func (s *Store) WithTx(tx *gorm.DB) *Store {
	return &Store{db: tx, ttl: s.ttl}
}

// Migrate creates the drafts table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&draftModel{})
}

type draftModel struct {
	ID                string     `gorm:"column:id;primaryKey"`
	ResumeToken       string     `gorm:"column:resume_token;uniqueIndex"`
	Step              int        `gorm:"column:step"`
	Status            string     `gorm:"column:status;index"`
	ContactJSON       *string    `gorm:"column:contact;type:text"`
	CartJSON          string     `gorm:"column:cart;type:text"`
	PendingJSON       *string    `gorm:"column:pending;type:text"`
	PreselectCategory *string    `gorm:"column:preselect_category"`
	PreselectSlug     *string    `gorm:"column:preselect_slug"`
	PreselectSkip     bool       `gorm:"column:preselect_skip"`
	ReminderSentAt    *time.Time `gorm:"column:reminder_sent_at"`
	Version           int64      `gorm:"column:version"`
	CreatedAt         time.Time  `gorm:"column:created_at;index"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (draftModel) TableName() string { return "intake_drafts" }

// Create allocates a draft with a fresh id and resume token at the
// Contact step. The referral-context preselection, when present, is
// captured once here and never re-evaluated on resume.
func (s *Store) Create(ctx context.Context, preselect *ServiceRef) (*DraftSession, error) {
	resumeToken, err := token.NewOpaque(resumeTokenBytes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m := draftModel{
		ID:          token.NewID(),
		ResumeToken: resumeToken,
		Step:        int(StepContact),
		Status:      string(StatusOpen),
		CartJSON:    "[]",
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if preselect != nil {
		cat, slug := preselect.Category, preselect.Slug
		m.PreselectCategory = &cat
		m.PreselectSlug = &slug
		m.PreselectSkip = true
	}

	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return toDomainDraft(&m)
}

// GetByToken resolves a resume token. Unknown tokens fail ErrNotFound;
// open drafts older than the configured TTL fail ErrExpired even when
// the row exists, so abandoned drafts can only be restarted. Submitted
// drafts never expire: receipt replay must keep working.
func (s *Store) GetByToken(ctx context.Context, resumeToken string) (*DraftSession, error) {
	var m draftModel
	err := s.db.WithContext(ctx).First(&m, "resume_token = ?", resumeToken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 && m.Status == string(StatusOpen) && time.Since(m.CreatedAt) > s.ttl {
		return nil, ErrExpired
	}
	return toDomainDraft(&m)
}

// GetByID is the internal lookup used by the conversion service.
func (s *Store) GetByID(ctx context.Context, id string) (*DraftSession, error) {
	var m draftModel
	err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainDraft(&m)
}

// CompareAndSwap applies mutate to the draft only if the stored version
// still matches expectedVersion. mutate may change contact, cart,
// pending selection and step; status and version are owned by the
// store. A concurrent writer in the window between read and write
// surfaces as ErrVersionConflict.
func (s *Store) CompareAndSwap(ctx context.Context, id string, expectedVersion int64, mutate func(*DraftSession) error) (*DraftSession, error) {
	var m draftModel
	err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if m.Status == string(StatusSubmitted) {
		return nil, ErrAlreadySubmitted
	}
	if m.Version != expectedVersion {
		return nil, ErrVersionConflict
	}

	d, err := toDomainDraft(&m)
	if err != nil {
		return nil, err
	}
	if err := mutate(d); err != nil {
		return nil, err
	}

	now := time.Now()
	updates, err := mutationColumns(d, now)
	if err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(&draftModel{}).
		Where("id = ? AND version = ? AND status = ?", id, expectedVersion, StatusOpen).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, s.classifyLostWrite(ctx, id)
	}

	d.Version = expectedVersion + 1
	d.UpdatedAt = now
	return d, nil
}

// MarkSubmitted transitions the draft to its terminal status. Further
// mutation attempts fail ErrAlreadySubmitted.
func (s *Store) MarkSubmitted(ctx context.Context, id string, expectedVersion int64) error {
	res := s.db.WithContext(ctx).Model(&draftModel{}).
		Where("id = ? AND version = ? AND status = ?", id, expectedVersion, StatusOpen).
		Updates(map[string]any{
			"status":     string(StatusSubmitted),
			"version":    expectedVersion + 1,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.classifyLostWrite(ctx, id)
	}
	return nil
}

// ListOpenOlderThan feeds the abandoned-draft reminder job: open,
// unreminded drafts created more than age ago but still within the
// resume TTL.
func (s *Store) ListOpenOlderThan(ctx context.Context, age time.Duration, limit int) ([]*DraftSession, error) {
	cutoff := time.Now().Add(-age)
	notExpiredAfter := time.Now().Add(-s.ttl)

	var rows []draftModel
	err := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ? AND created_at > ? AND reminder_sent_at IS NULL",
			string(StatusOpen), cutoff, notExpiredAfter).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*DraftSession, 0, len(rows))
	for i := range rows {
		d, err := toDomainDraft(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// MarkReminderSent stamps the draft so the reminder job never mails the
// same draft twice. Job bookkeeping, not a wizard mutation: the version
// is left alone.
func (s *Store) MarkReminderSent(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Model(&draftModel{}).
		Where("id = ?", id).
		Update("reminder_sent_at", time.Now()).Error
}

func (s *Store) classifyLostWrite(ctx context.Context, id string) error {
	var cur draftModel
	err := s.db.WithContext(ctx).First(&cur, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if cur.Status == string(StatusSubmitted) {
		return ErrAlreadySubmitted
	}
	return ErrVersionConflict
}

func mutationColumns(d *DraftSession, now time.Time) (map[string]any, error) {
	contactJSON, err := marshalNullable(d.Contact)
	if err != nil {
		return nil, err
	}
	pendingJSON, err := marshalNullable(d.Pending)
	if err != nil {
		return nil, err
	}
	cartJSON, err := json.Marshal(d.Cart)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"step":       int(d.Step),
		"contact":    contactJSON,
		"pending":    pendingJSON,
		"cart":       string(cartJSON),
		"version":    d.Version + 1,
		"updated_at": now,
	}, nil
}

func marshalNullable(v any) (*string, error) {
	switch t := v.(type) {
	case *Contact:
		if t == nil {
			return nil, nil
		}
	case *ServiceSelection:
		if t == nil {
			return nil, nil
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

func toDomainDraft(m *draftModel) (*DraftSession, error) {
	d := &DraftSession{
		ID:             m.ID,
		ResumeToken:    m.ResumeToken,
		Step:           Step(m.Step),
		Status:         Status(m.Status),
		PreselectSkip:  m.PreselectSkip,
		ReminderSentAt: m.ReminderSentAt,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.PreselectCategory != nil && m.PreselectSlug != nil {
		d.Preselected = &ServiceRef{Category: *m.PreselectCategory, Slug: *m.PreselectSlug}
	}

	if m.ContactJSON != nil {
		var c Contact
		if err := json.Unmarshal([]byte(*m.ContactJSON), &c); err != nil {
			return nil, fmt.Errorf("draft %s: decode contact: %w", m.ID, err)
		}
		d.Contact = &c
	}

	if m.PendingJSON != nil {
		var p ServiceSelection
		if err := json.Unmarshal([]byte(*m.PendingJSON), &p); err != nil {
			return nil, fmt.Errorf("draft %s: decode pending selection: %w", m.ID, err)
		}
		d.Pending = &p
	}

	d.Cart = []ServiceSelection{}
	if m.CartJSON != "" {
		if err := json.Unmarshal([]byte(m.CartJSON), &d.Cart); err != nil {
			return nil, fmt.Errorf("draft %s: decode cart: %w", m.ID, err)
		}
	}

	return d, nil
}
