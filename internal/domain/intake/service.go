package intake

import (
	"context"
	"errors"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/catalog"
)

// DraftStore is the persistence boundary the wizard engine drives.
type DraftStore interface {
	Create(ctx context.Context, preselect *ServiceRef) (*DraftSession, error)
	GetByToken(ctx context.Context, resumeToken string) (*DraftSession, error)
	CompareAndSwap(ctx context.Context, id string, expectedVersion int64, mutate func(*DraftSession) error) (*DraftSession, error)
}

// Service is the wizard state machine. Every mutation resolves the
// resume token first (session validity before business rules), then
// runs exactly one compare-and-swap against the store; a version
// conflict is retried once against the refreshed draft before it
// surfaces to the caller.
type Service struct {
	store DraftStore
}

func NewService(store DraftStore) *Service {
	return &Service{store: store}
}

// SubmitContact validates the step-1 contact payload and advances the
// wizard. With an empty resumeToken a new draft is created, capturing
// the referral-context preselection once and for all. Skip rule A: a
// preselected service advances straight to Details, skipping
// ServiceSelect. A resumed draft accepts contact edits only while the
// cursor is on Contact; later steps GoBack first.
func (s *Service) SubmitContact(ctx context.Context, resumeToken string, preselect *ServiceRef, contact Contact) (*DraftSession, error) {
	if problems := catalog.ValidateContact(contact.Fields()); problems != nil {
		return nil, newValidationError(problems)
	}
	if preselect != nil {
		if _, ok := catalog.FieldsFor(preselect.Category, preselect.Slug); !ok {
			return nil, ErrInvalidService
		}
	}

	apply := func(d *DraftSession) error {
		if d.Step != StepContact {
			return ErrWrongStep
		}
		c := contact
		d.Contact = &c
		if d.Pending == nil && d.Preselected != nil && len(d.Cart) == 0 {
			d.Pending = &ServiceSelection{Category: d.Preselected.Category, Slug: d.Preselected.Slug}
		}
		if d.Pending != nil {
			d.Step = StepDetails
		} else {
			d.Step = StepServiceSelect
		}
		return nil
	}

	if resumeToken == "" {
		d, err := s.store.Create(ctx, preselect)
		if err != nil {
			return nil, err
		}
		return s.store.CompareAndSwap(ctx, d.ID, d.Version, apply)
	}
	return s.mutate(ctx, resumeToken, apply)
}

// SelectService validates the slug against the catalog and stores it
// as the pending selection.
func (s *Service) SelectService(ctx context.Context, resumeToken, category, slug string) (*DraftSession, error) {
	if _, ok := catalog.FieldsFor(category, slug); !ok {
		return nil, ErrInvalidService
	}

	return s.mutate(ctx, resumeToken, func(d *DraftSession) error {
		if d.Contact == nil || d.Step < StepServiceSelect || d.Step > StepDocs {
			return ErrWrongStep
		}
		d.Pending = &ServiceSelection{Category: category, Slug: slug}
		d.Step = StepDetails
		return nil
	})
}

// SubmitDetails validates the pending service's detail fields. Skip
// rule B: a service with no required documents is merged into the cart
// immediately and the wizard jumps to Review; otherwise the details
// are parked on the pending selection and the Docs step follows.
func (s *Service) SubmitDetails(ctx context.Context, resumeToken string, values map[string]string) (*DraftSession, error) {
	return s.mutate(ctx, resumeToken, func(d *DraftSession) error {
		if d.Contact == nil {
			return ErrWrongStep
		}
		if d.Pending == nil {
			if d.Preselected != nil && len(d.Cart) == 0 {
				d.Pending = &ServiceSelection{Category: d.Preselected.Category, Slug: d.Preselected.Slug}
			} else {
				return ErrNoPendingService
			}
		}

		spec, ok := catalog.FieldsFor(d.Pending.Category, d.Pending.Slug)
		if !ok {
			return ErrInvalidService
		}
		if problems := spec.ValidateDetails(values); problems != nil {
			return newValidationError(problems)
		}

		d.Pending.Details = copyValues(values)
		if len(spec.RequiredDocuments) == 0 {
			d.Cart = append(d.Cart, *d.Pending)
			d.Pending = nil
			d.Step = StepReview
		} else {
			d.Step = StepDocs
		}
		return nil
	})
}

// AcknowledgeDocs merges the pending selection into the cart once the
// visitor has confirmed they hold every required document. The server
// trusts the acknowledgment flag; document content never reaches this
// service.
func (s *Service) AcknowledgeDocs(ctx context.Context, resumeToken string, acknowledged bool) (*DraftSession, error) {
	return s.mutate(ctx, resumeToken, func(d *DraftSession) error {
		if d.Step != StepDocs || d.Pending == nil || d.Pending.Details == nil {
			return ErrWrongStep
		}
		if !acknowledged {
			return newValidationError(map[string]string{"documents_acknowledged": "required"})
		}
		d.Cart = append(d.Cart, *d.Pending)
		d.Pending = nil
		d.Step = StepReview
		return nil
	})
}

// RequestAnotherService rewinds from Review to ServiceSelect, keeping
// the cart intact. This is how the cart grows past one entry.
func (s *Service) RequestAnotherService(ctx context.Context, resumeToken string) (*DraftSession, error) {
	return s.mutate(ctx, resumeToken, func(d *DraftSession) error {
		if d.Step != StepReview {
			return ErrWrongStep
		}
		d.Pending = nil
		d.Step = StepServiceSelect
		return nil
	})
}

// GoBack moves the cursor one step back. From Details it returns to
// Contact when skip rule A applied and nothing has been carted yet:
// ServiceSelect was never shown on that pass.
func (s *Service) GoBack(ctx context.Context, resumeToken string) (*DraftSession, error) {
	return s.mutate(ctx, resumeToken, func(d *DraftSession) error {
		switch d.Step {
		case StepContact, StepSuccess:
			return ErrWrongStep
		case StepDetails:
			if d.PreselectSkip && len(d.Cart) == 0 {
				d.Step = StepContact
			} else {
				d.Step = StepServiceSelect
			}
		default:
			d.Step--
		}
		return nil
	})
}

// Resume returns the draft for a resume token without mutating it.
func (s *Service) Resume(ctx context.Context, resumeToken string) (*DraftSession, error) {
	return s.resolve(ctx, resumeToken)
}

func (s *Service) resolve(ctx context.Context, resumeToken string) (*DraftSession, error) {
	d, err := s.store.GetByToken(ctx, resumeToken)
	if err != nil {
		return nil, err
	}
	if d.IsSubmitted() {
		return nil, ErrAlreadySubmitted
	}
	return d, nil
}

func (s *Service) mutate(ctx context.Context, resumeToken string, fn func(*DraftSession) error) (*DraftSession, error) {
	d, err := s.resolve(ctx, resumeToken)
	if err != nil {
		return nil, err
	}

	out, err := s.store.CompareAndSwap(ctx, d.ID, d.Version, fn)
	if errors.Is(err, ErrVersionConflict) {
		if d, err = s.resolve(ctx, resumeToken); err != nil {
			return nil, err
		}
		out, err = s.store.CompareAndSwap(ctx, d.ID, d.Version, fn)
	}
	return out, err
}

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
