package intake

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/catalog"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/response"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/validator"
)

// StaleLister feeds the ops view of abandoned drafts.
type StaleLister interface {
	ListOpenOlderThan(ctx context.Context, age time.Duration, limit int) ([]*DraftSession, error)
}

// Handler exposes the intake wizard over HTTP.
type Handler struct {
	service *Service
	stale   StaleLister
}

func NewHandler(service *Service, stale StaleLister) *Handler {
	return &Handler{service: service, stale: stale}
}

// GetCatalog handles GET /intake/catalog. The client renders its forms
// from this; the engine re-validates everything server-side.
func (h *Handler) GetCatalog(c *gin.Context) {
	type serviceView struct {
		Slug              string          `json:"slug"`
		Name              string          `json:"name"`
		Fields            []catalog.Field `json:"fields"`
		RequiredDocuments []string        `json:"required_documents"`
	}
	out := make(map[string][]serviceView)
	for _, cat := range catalog.Categories() {
		for _, spec := range catalog.ServicesIn(cat) {
			out[cat] = append(out[cat], serviceView{
				Slug:              spec.Slug,
				Name:              spec.Name,
				Fields:            spec.RequiredDetails,
				RequiredDocuments: spec.RequiredDocuments,
			})
		}
	}
	response.Success(c, http.StatusOK, gin.H{
		"contact_fields": catalog.RequiredContactFields,
		"categories":     out,
	})
}

// SubmitContact handles POST /intake/contact. Contact required-ness is
// the engine's call (server-authoritative against the catalog), so the
// handler only checks JSON shape here.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	draft, err := h.service.SubmitContact(c.Request.Context(), req.ResumeToken, req.Context, req.contact())
	if err != nil {
		respondWizardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewDraftView(draft))
}

// Resume handles GET /intake/:token.
func (h *Handler) Resume(c *gin.Context) {
	draft, err := h.service.Resume(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewDraftView(draft))
}

// SelectService handles POST /intake/:token/service.
func (h *Handler) SelectService(c *gin.Context) {
	var req SelectServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	draft, err := h.service.SelectService(c.Request.Context(), c.Param("token"), req.Category, req.Slug)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewDraftView(draft))
}

// SubmitDetails handles POST /intake/:token/details.
func (h *Handler) SubmitDetails(c *gin.Context) {
	var req SubmitDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	draft, err := h.service.SubmitDetails(c.Request.Context(), c.Param("token"), req.Details)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewDraftView(draft))
}

// AcknowledgeDocs handles POST /intake/:token/documents.
func (h *Handler) AcknowledgeDocs(c *gin.Context) {
	var req AcknowledgeDocsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	draft, err := h.service.AcknowledgeDocs(c.Request.Context(), c.Param("token"), req.Acknowledged)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewDraftView(draft))
}

// RequestAnotherService handles POST /intake/:token/another.
func (h *Handler) RequestAnotherService(c *gin.Context) {
	draft, err := h.service.RequestAnotherService(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewDraftView(draft))
}

// GoBack handles POST /intake/:token/back.
func (h *Handler) GoBack(c *gin.Context) {
	draft, err := h.service.GoBack(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewDraftView(draft))
}

// ListStale handles GET /admin/intake/stale (staff). Resume tokens are
// bearer credentials, so the listing exposes draft metadata only.
func (h *Handler) ListStale(c *gin.Context) {
	age := 72 * time.Hour
	if raw := c.Query("age"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_AGE", "age must be a positive duration such as 72h")
			return
		}
		age = parsed
	}

	drafts, err := h.stale.ListOpenOlderThan(c.Request.Context(), age, 200)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}

	type staleView struct {
		ID             string     `json:"id"`
		Step           string     `json:"step"`
		Email          string     `json:"email,omitempty"`
		CartSize       int        `json:"cart_size"`
		ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
	}
	out := make([]staleView, 0, len(drafts))
	for _, d := range drafts {
		v := staleView{
			ID:             d.ID,
			Step:           d.Step.String(),
			CartSize:       len(d.Cart),
			ReminderSentAt: d.ReminderSentAt,
			CreatedAt:      d.CreatedAt,
		}
		if d.Contact != nil {
			v.Email = d.Contact.Email
		}
		out = append(out, v)
	}
	response.Success(c, http.StatusOK, gin.H{"drafts": out, "total": len(out)})
}

func respondWizardError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", ve.Fields)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found")
	case errors.Is(err, ErrExpired):
		response.Error(c, http.StatusGone, "DRAFT_EXPIRED", "Draft has expired; please start again")
	case errors.Is(err, ErrAlreadySubmitted):
		response.Error(c, http.StatusConflict, "ALREADY_SUBMITTED", "Draft has already been submitted")
	case errors.Is(err, ErrVersionConflict):
		response.Error(c, http.StatusConflict, "VERSION_CONFLICT", "Draft was changed elsewhere; reload and try again")
	case errors.Is(err, ErrInvalidService):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_SERVICE", "Unknown service for this category")
	case errors.Is(err, ErrNoPendingService):
		response.Error(c, http.StatusConflict, "NO_PENDING_SERVICE", "No service selection in progress")
	case errors.Is(err, ErrWrongStep):
		response.Error(c, http.StatusConflict, "WRONG_STEP", "Operation not allowed at the current step")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
