package account

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/domain/lead"
)

// Service creates accounts from single-use tracking tokens. The token
// spend and the user insert share one transaction; the spend is a
// conditional update on the token's spent flag, so two racing calls
// with the same token create exactly one account.
type Service struct {
	db    *gorm.DB
	users *Repository
	leads *lead.Repository
}

func NewService(db *gorm.DB, users *Repository, leads *lead.Repository) *Service {
	return &Service{db: db, users: users, leads: leads}
}

// CreateFromToken consumes a tracking token and creates the account it
// authorizes. The email is taken from the lead, never from the caller,
// and arrives pre-verified: the token itself was delivered by email.
func (s *Service) CreateFromToken(ctx context.Context, trackingToken, password string) (*domain.User, error) {
	if trackingToken == "" {
		return nil, ErrInvalidToken
	}

	l, err := s.leads.GetByTrackingToken(ctx, trackingToken)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrInvalidToken
	}
	if l.TokenSpent {
		return nil, ErrAlreadyLinked
	}

	existing, err := s.users.GetByEmail(ctx, l.Contact.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Direct the user to log in; never attach the token to an
		// account the lead does not belong to.
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:         l.Contact.Email,
		PasswordHash:  string(hash),
		Role:          domain.RoleClient,
		Name:          l.Contact.FullName,
		Phone:         l.Contact.Phone,
		EmailVerified: true,
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

	if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
		tx.Rollback()
		// A concurrent registration may have taken the email between
		// the check above and the insert.
		if exists, checkErr := s.users.EmailExists(ctx, l.Contact.Email); checkErr == nil && exists {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	spent, err := s.leads.WithTx(tx).BindAccount(ctx, l.ID, user.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !spent {
		tx.Rollback()
		return nil, ErrAlreadyLinked
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}
