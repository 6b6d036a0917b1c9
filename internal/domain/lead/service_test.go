package lead

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/database"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/intake"
)

type fakeAccounts struct {
	exists bool
}

func (f fakeAccounts) EmailExists(context.Context, string) (bool, error) {
	return f.exists, nil
}

type captureNotifier struct {
	events []ConvertedEvent
}

func (n *captureNotifier) LeadConverted(ev ConvertedEvent) {
	n.events = append(n.events, ev)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, intake.Migrate(db))
	require.NoError(t, Migrate(db))
	return db
}

// readyDraft creates a draft that has reached Review with one carted
// service.
func readyDraft(t *testing.T, store *intake.Store) *intake.DraftSession {
	t.Helper()
	ctx := context.Background()

	d, err := store.Create(ctx, nil)
	require.NoError(t, err)

	d, err = store.CompareAndSwap(ctx, d.ID, d.Version, func(d *intake.DraftSession) error {
		d.Contact = &intake.Contact{
			FullName: "Thandi Mokoena",
			Email:    "thandi@example.com",
			Phone:    "+27 84 555 0000",
		}
		d.Cart = []intake.ServiceSelection{{
			Category: "branding",
			Slug:     "logo-design",
			Details:  map[string]string{"business_name": "Mokoena Catering"},
		}}
		d.Step = intake.StepReview
		return nil
	})
	require.NoError(t, err)
	return d
}

func TestSubmit_ConvertsDraft(t *testing.T) {
	db := testDB(t)
	store := intake.NewStore(db, 30*24*time.Hour)
	repo := NewRepository(db)
	notifier := &captureNotifier{}
	svc := NewService(db, store, repo, fakeAccounts{exists: true}, notifier)
	d := readyDraft(t, store)
	ctx := context.Background()

	receipt, err := svc.Submit(ctx, d.ResumeToken, ContactOverride{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.ReferenceID, "CI-"))
	assert.NotEmpty(t, receipt.TrackingToken)
	assert.True(t, receipt.AccountExists)

	got, err := store.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, intake.StatusSubmitted, got.Status)

	l, err := repo.GetByDraftID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, receipt.ReferenceID, l.ReferenceID)
	require.Len(t, l.Services, 1)
	assert.Equal(t, "logo-design", l.Services[0].Slug)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, receipt.ReferenceID, notifier.events[0].ReferenceID)
	assert.Equal(t, "thandi@example.com", notifier.events[0].Contact.Email)
}

func TestSubmit_IdempotentReplay(t *testing.T) {
	db := testDB(t)
	store := intake.NewStore(db, 30*24*time.Hour)
	repo := NewRepository(db)
	notifier := &captureNotifier{}
	svc := NewService(db, store, repo, fakeAccounts{}, notifier)
	d := readyDraft(t, store)
	ctx := context.Background()

	first, err := svc.Submit(ctx, d.ResumeToken, ContactOverride{})
	require.NoError(t, err)

	second, err := svc.Submit(ctx, d.ResumeToken, ContactOverride{})
	require.NoError(t, err)

	// Same receipt, one lead, one notification.
	assert.Equal(t, first.ReferenceID, second.ReferenceID)
	assert.Equal(t, first.TrackingToken, second.TrackingToken)

	var count int64
	require.NoError(t, db.Model(&leadModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Len(t, notifier.events, 1)
}

func TestSubmit_RacingSubmitGetsReceiptNotError(t *testing.T) {
	db := testDB(t)
	store := intake.NewStore(db, 30*24*time.Hour)
	repo := NewRepository(db)
	svc := NewService(db, store, repo, fakeAccounts{}, nil)
	d := readyDraft(t, store)
	ctx := context.Background()

	// A second request resolves the draft while it is still open, then
	// stalls while the first request finishes its conversion.
	stale, err := store.GetByToken(ctx, d.ResumeToken)
	require.NoError(t, err)

	first, err := svc.Submit(ctx, d.ResumeToken, ContactOverride{})
	require.NoError(t, err)

	// The stale writer must lose on the draft claim with a mapped
	// sentinel, not on the leads.draft_id unique index.
	_, err = svc.convert(ctx, stale, ContactOverride{})
	assert.ErrorIs(t, err, intake.ErrAlreadySubmitted)

	// Which Submit resolves into the original receipt.
	second, err := svc.Submit(ctx, d.ResumeToken, ContactOverride{})
	require.NoError(t, err)
	assert.Equal(t, first.ReferenceID, second.ReferenceID)
	assert.Equal(t, first.TrackingToken, second.TrackingToken)

	var count int64
	require.NoError(t, db.Model(&leadModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmit_ReplayOutlivesDraftTTL(t *testing.T) {
	db := testDB(t)
	store := intake.NewStore(db, 30*24*time.Hour)
	repo := NewRepository(db)
	svc := NewService(db, store, repo, fakeAccounts{}, nil)
	d := readyDraft(t, store)
	ctx := context.Background()

	first, err := svc.Submit(ctx, d.ResumeToken, ContactOverride{})
	require.NoError(t, err)

	// Age the converted draft far past the resume TTL.
	err = db.Exec("UPDATE intake_drafts SET created_at = ? WHERE id = ?",
		time.Now().Add(-40*24*time.Hour), d.ID).Error
	require.NoError(t, err)

	second, err := svc.Submit(ctx, d.ResumeToken, ContactOverride{})
	require.NoError(t, err)
	assert.Equal(t, first.ReferenceID, second.ReferenceID)
	assert.Equal(t, first.TrackingToken, second.TrackingToken)
}

func TestSubmit_EmptyCart(t *testing.T) {
	db := testDB(t)
	store := intake.NewStore(db, 30*24*time.Hour)
	repo := NewRepository(db)
	svc := NewService(db, store, repo, fakeAccounts{}, nil)
	ctx := context.Background()

	d, err := store.Create(ctx, nil)
	require.NoError(t, err)
	d, err = store.CompareAndSwap(ctx, d.ID, d.Version, func(d *intake.DraftSession) error {
		d.Contact = &intake.Contact{FullName: "T", Email: "t@example.com", Phone: "1"}
		d.Step = intake.StepReview
		return nil
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, d.ResumeToken, ContactOverride{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Nothing converted, nothing inserted.
	got, err := store.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, intake.StatusOpen, got.Status)

	var count int64
	require.NoError(t, db.Model(&leadModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmit_ContactMissing(t *testing.T) {
	db := testDB(t)
	store := intake.NewStore(db, 30*24*time.Hour)
	svc := NewService(db, store, NewRepository(db), fakeAccounts{}, nil)
	ctx := context.Background()

	d, err := store.Create(ctx, nil)
	require.NoError(t, err)
	d, err = store.CompareAndSwap(ctx, d.ID, d.Version, func(d *intake.DraftSession) error {
		d.Cart = []intake.ServiceSelection{{Category: "planning", Slug: "business-plan"}}
		return nil
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, d.ResumeToken, ContactOverride{})
	assert.ErrorIs(t, err, ErrContactMissing)
}

func TestSubmit_ContactOverrideWins(t *testing.T) {
	db := testDB(t)
	store := intake.NewStore(db, 30*24*time.Hour)
	repo := NewRepository(db)
	svc := NewService(db, store, repo, fakeAccounts{}, nil)
	d := readyDraft(t, store)
	ctx := context.Background()

	_, err := svc.Submit(ctx, d.ResumeToken, ContactOverride{
		Email: "final@example.com",
		Phone: "   ", // whitespace-only keeps the draft value
	})
	require.NoError(t, err)

	l, err := repo.GetByDraftID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "final@example.com", l.Contact.Email)
	assert.Equal(t, "Thandi Mokoena", l.Contact.FullName)
	assert.Equal(t, "+27 84 555 0000", l.Contact.Phone)
}

func TestSubmit_UnknownToken(t *testing.T) {
	db := testDB(t)
	store := intake.NewStore(db, 30*24*time.Hour)
	svc := NewService(db, store, NewRepository(db), fakeAccounts{}, nil)

	_, err := svc.Submit(context.Background(), "missing", ContactOverride{})
	assert.ErrorIs(t, err, intake.ErrNotFound)
}
