package account

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
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/intake"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/lead"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, intake.Migrate(db))
	require.NoError(t, lead.Migrate(db))
	require.NoError(t, Migrate(db))
	return db
}

// convertedLead runs a draft through conversion and returns the issued
// tracking token plus the lead's contact email.
func convertedLead(t *testing.T, db *gorm.DB) (trackingToken, email string) {
	t.Helper()
	ctx := context.Background()

	store := intake.NewStore(db, 30*24*time.Hour)
	d, err := store.Create(ctx, nil)
	require.NoError(t, err)
	d, err = store.CompareAndSwap(ctx, d.ID, d.Version, func(d *intake.DraftSession) error {
		d.Contact = &intake.Contact{
			FullName: "Lerato Molefe",
			Email:    "lerato@example.com",
			Phone:    "+27 82 777 1111",
		}
		d.Cart = []intake.ServiceSelection{{
			Category: "compliance",
			Slug:     "tax-clearance",
			Details:  map[string]string{"tax_reference_number": "9001234567"},
		}}
		d.Step = intake.StepReview
		return nil
	})
	require.NoError(t, err)

	conv := lead.NewService(db, store, lead.NewRepository(db), NewRepository(db), nil)
	receipt, err := conv.Submit(ctx, d.ResumeToken, lead.ContactOverride{})
	require.NoError(t, err)
	return receipt.TrackingToken, "lerato@example.com"
}

func TestCreateFromToken_LinksAccount(t *testing.T) {
	db := testDB(t)
	trackingToken, email := convertedLead(t, db)
	svc := NewService(db, NewRepository(db), lead.NewRepository(db))
	ctx := context.Background()

	u, err := svc.CreateFromToken(ctx, trackingToken, "hunter2hunter2")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, email, u.Email)
	assert.Equal(t, domain.RoleClient, u.Role)
	assert.True(t, u.EmailVerified)
	assert.Empty(t, u.PasswordHash)

	// The lead is now bound to the account and the token is spent.
	l, err := lead.NewRepository(db).GetByTrackingToken(ctx, trackingToken)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.True(t, l.TokenSpent)
	require.NotNil(t, l.UserID)
	assert.Equal(t, u.ID, *l.UserID)
}

func TestCreateFromToken_SingleUse(t *testing.T) {
	db := testDB(t)
	trackingToken, _ := convertedLead(t, db)
	svc := NewService(db, NewRepository(db), lead.NewRepository(db))
	ctx := context.Background()

	_, err := svc.CreateFromToken(ctx, trackingToken, "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.CreateFromToken(ctx, trackingToken, "hunter2hunter2")
	assert.ErrorIs(t, err, ErrAlreadyLinked)

	var count int64
	require.NoError(t, db.Model(&userModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateFromToken_ExistingEmail(t *testing.T) {
	db := testDB(t)
	trackingToken, email := convertedLead(t, db)
	users := NewRepository(db)
	svc := NewService(db, users, lead.NewRepository(db))
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: "x",
		Role:         domain.RoleClient,
		Name:         "Existing",
	}))

	_, err := svc.CreateFromToken(ctx, trackingToken, "hunter2hunter2")
	assert.ErrorIs(t, err, ErrAccountExists)

	// The token survives for support to resolve manually.
	l, err := lead.NewRepository(db).GetByTrackingToken(ctx, trackingToken)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.False(t, l.TokenSpent)
}

func TestCreateFromToken_InvalidToken(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, NewRepository(db), lead.NewRepository(db))
	ctx := context.Background()

	_, err := svc.CreateFromToken(ctx, "", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.CreateFromToken(ctx, "never-issued", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
