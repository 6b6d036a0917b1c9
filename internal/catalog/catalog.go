// Package catalog is the static field catalog for the intake wizard:
// which contact fields every draft needs, and which detail fields and
// supporting documents each requestable service needs. The data is
// compile-time constant; both the client and the server validate
// against it, the server being authoritative.
package catalog

import "strings"

// Field describes one detail field a service asks the visitor for.
type Field struct {
	Key      string
	Label    string
	Required bool
}

// Spec is everything the wizard needs to know about one service.
type Spec struct {
	Category          string
	Slug              string
	Name              string
	RequiredDetails   []Field
	RequiredDocuments []string
}

// RequiredContactFields are the globally required step-1 fields.
var RequiredContactFields = []string{"full_name", "email", "phone"}

// FieldsFor looks up the spec for a category/slug pair.
func FieldsFor(category, slug string) (Spec, bool) {
	for _, s := range services {
		if s.Category == category && s.Slug == slug {
			return s, true
		}
	}
	return Spec{}, false
}

// Categories returns the distinct category keys in catalog order.
func Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range services {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}

// ServicesIn returns all services of a category in catalog order.
func ServicesIn(category string) []Spec {
	var out []Spec
	for _, s := range services {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// ValidateContact checks the globally required contact fields and
// returns a field->problem map, nil when the payload is valid.
func ValidateContact(fields map[string]string) map[string]string {
	problems := make(map[string]string)
	for _, key := range RequiredContactFields {
		if strings.TrimSpace(fields[key]) == "" {
			problems[key] = "required"
		}
	}
	if email := strings.TrimSpace(fields["email"]); email != "" {
		if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
			problems["email"] = "invalid"
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// ValidateDetails checks a detail payload against the service spec.
func (s Spec) ValidateDetails(values map[string]string) map[string]string {
	problems := make(map[string]string)
	known := make(map[string]bool, len(s.RequiredDetails))
	for _, f := range s.RequiredDetails {
		known[f.Key] = true
		if f.Required && strings.TrimSpace(values[f.Key]) == "" {
			problems[f.Key] = "required"
		}
	}
	for key := range values {
		if !known[key] {
			problems[key] = "unknown_field"
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}
