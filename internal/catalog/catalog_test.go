package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFor_KnownService(t *testing.T) {
	spec, ok := FieldsFor("registrations", "company-registration")
	require.True(t, ok)
	assert.Equal(t, "Company Registration (Pty Ltd)", spec.Name)
	assert.NotEmpty(t, spec.RequiredDocuments)
}

func TestFieldsFor_UnknownSlug(t *testing.T) {
	_, ok := FieldsFor("registrations", "does-not-exist")
	assert.False(t, ok)

	// Slug exists, but under another category
	_, ok = FieldsFor("branding", "company-registration")
	assert.False(t, ok)
}

func TestCatalog_HasZeroDocumentService(t *testing.T) {
	// The wizard's Docs-step skip depends on at least one service
	// carrying no required documents.
	spec, ok := FieldsFor("branding", "logo-design")
	require.True(t, ok)
	assert.Empty(t, spec.RequiredDocuments)
}

func TestValidateContact(t *testing.T) {
	problems := ValidateContact(map[string]string{
		"full_name": "Naledi Dlamini",
		"email":     "naledi@example.com",
		"phone":     "+27 82 000 0000",
	})
	assert.Nil(t, problems)

	problems = ValidateContact(map[string]string{
		"full_name": "  ",
		"email":     "not-an-email",
	})
	require.NotNil(t, problems)
	assert.Equal(t, "required", problems["full_name"])
	assert.Equal(t, "invalid", problems["email"])
	assert.Equal(t, "required", problems["phone"])
}

func TestValidateDetails(t *testing.T) {
	spec, ok := FieldsFor("planning", "business-plan")
	require.True(t, ok)

	problems := spec.ValidateDetails(map[string]string{
		"industry":       "construction",
		"funding_target": "R500000",
		"plan_purpose":   "bank funding",
	})
	assert.Nil(t, problems)

	problems = spec.ValidateDetails(map[string]string{
		"industry": "construction",
		"surprise": "x",
	})
	require.NotNil(t, problems)
	assert.Equal(t, "required", problems["funding_target"])
	assert.Equal(t, "required", problems["plan_purpose"])
	assert.Equal(t, "unknown_field", problems["surprise"])
}

func TestCategoriesAndServicesIn(t *testing.T) {
	cats := Categories()
	assert.Equal(t, []string{"registrations", "compliance", "branding", "planning"}, cats)

	branding := ServicesIn("branding")
	require.Len(t, branding, 3)
	assert.Equal(t, "logo-design", branding[0].Slug)
}
