package tin

import (
	"sort"
	"strings"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
	"github.com/simaogato/payoutcompliance-backend/internal/metrics"
)

// JurisdictionValidator validates a cleaned TIN (uppercase, [0-9A-Z] only) for one jurisdiction
type JurisdictionValidator func(cleanTin string) domain.TinValidationResult

// Validator dispatches TIN validation to per-jurisdiction strategies.
// It never returns an error: failures are reported through TinValidationResult.Error.
type Validator struct {
	validators map[domain.Jurisdiction]JurisdictionValidator
	metrics    *metrics.Metrics
}

// NewValidator creates a Validator with the US, CA, UK, AU and EU strategies registered
func NewValidator(m *metrics.Metrics) *Validator {
	v := &Validator{
		validators: make(map[domain.Jurisdiction]JurisdictionValidator),
		metrics:    m,
	}

	v.Register(domain.JurisdictionUS, ValidateUS)
	v.Register(domain.JurisdictionCA, ValidateCA)
	v.Register(domain.JurisdictionUK, ValidateUK)
	v.Register(domain.JurisdictionAU, ValidateAU)
	v.Register(domain.JurisdictionEU, ValidateEU)

	return v
}

// Register adds or replaces the strategy for a jurisdiction
func (v *Validator) Register(j domain.Jurisdiction, fn JurisdictionValidator) {
	v.validators[j] = fn
}

// Jurisdictions returns the registered jurisdictions in sorted order
func (v *Validator) Jurisdictions() []domain.Jurisdiction {
	out := make([]domain.Jurisdiction, 0, len(v.validators))
	for j := range v.validators {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i] < out[k] })
	return out
}

// ValidateTIN validates tin against the rules of jurisdiction
func (v *Validator) ValidateTIN(tin string, jurisdiction domain.Jurisdiction) domain.TinValidationResult {
	result := v.validate(tin, jurisdiction)

	label := "unsupported"
	if _, ok := v.validators[jurisdiction]; ok {
		label = string(jurisdiction)
	}
	v.metrics.IncTin(label, result.IsValid)

	return result
}

func (v *Validator) validate(tin string, jurisdiction domain.Jurisdiction) domain.TinValidationResult {
	if tin == "" {
		return domain.InvalidTin("TIN is required")
	}

	fn, ok := v.validators[jurisdiction]
	if !ok {
		return domain.InvalidTin("Unsupported jurisdiction: " + string(jurisdiction))
	}

	return fn(Clean(tin))
}

// Clean uppercases tin and drops every character outside [0-9A-Z]
func Clean(tin string) string {
	upper := strings.ToUpper(tin)

	var b strings.Builder
	b.Grow(len(upper))
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		if (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isDigits reports whether s is non-empty and all ASCII digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isUpperLetters reports whether s is non-empty and all ASCII uppercase letters
func isUpperLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
