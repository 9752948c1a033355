package validation

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/payoutcompliance-backend/internal/clock"
	"github.com/simaogato/payoutcompliance-backend/internal/domain"
	"github.com/simaogato/payoutcompliance-backend/internal/logger"
	"github.com/simaogato/payoutcompliance-backend/internal/metrics"
)

// Rule labels reported on ValidationError.Rule
const (
	RuleRequired   = "required"
	RuleAmount     = "amount"
	RuleNetAmount  = "net_amount"
	RuleNetExceeds = "net_exceeds_gross"
	RuleCurrency   = "currency"
	RuleTaxYear    = "tax_year"
	RulePayoutDate = "payout_date"
)

const (
	minCalendarYear = 1
	maxCalendarYear = 9999
)

// ValidationService enforces the invariants a payout must satisfy before it is treated as a tax event
type ValidationService struct {
	Clock   clock.Clock
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewValidationService creates a new ValidationService instance
func NewValidationService(clk clock.Clock, log *zap.Logger, m *metrics.Metrics) *ValidationService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &ValidationService{
		Clock:   clk,
		logger:  logger.OrNop(log),
		metrics: m,
	}
}

// ValidatePayoutEvent returns a *domain.ValidationError for the first violated invariant, or nil.
// Checks, in order:
//  1. Required fields are present
//  2. Amount >= 0
//  3. NetAmount >= 0
//  4. NetAmount <= Amount
//  5. Currency is whitelisted
//  6. 2020 <= TaxYear <= current year + 1
//  7. PayoutDate is a representable calendar date
//
// A payout date outside the tax year is only logged: late-year payouts may be booked into the next year.
func (s *ValidationService) ValidatePayoutEvent(ctx context.Context, event domain.PayoutEvent) error {
	if err := s.validate(event); err != nil {
		s.metrics.IncValidation(err.Rule)
		return err
	}

	// 8. Soft check
	if event.PayoutDate.Year() != event.TaxYear {
		s.logger.Warn("payout date year does not match tax year",
			zap.String("payout_id", event.PayoutID),
			zap.Int("payout_year", event.PayoutDate.Year()),
			zap.Int("tax_year", event.TaxYear),
		)
	}

	s.metrics.IncValidation("ok")
	s.logger.Debug("payout event validated",
		zap.String("id", event.ID),
		zap.String("payout_id", event.PayoutID),
		zap.String("currency", string(event.Currency)),
	)
	return nil
}

func (s *ValidationService) validate(event domain.PayoutEvent) *domain.ValidationError {
	// 1. Required fields
	if field := missingField(event); field != "" {
		return domain.NewValidationError(RuleRequired, field, "Missing required field: %s", field)
	}

	// 2. Gross amount
	if event.Amount.Decimal.IsNegative() {
		return domain.NewValidationError(RuleAmount, "amount", "Amount must be a positive number")
	}

	// 3. Net amount
	if event.NetAmount.Decimal.IsNegative() {
		return domain.NewValidationError(RuleNetAmount, "netAmount", "Net amount must be a positive number")
	}

	// 4. Fees cannot be negative
	if event.NetAmount.Decimal.GreaterThan(event.Amount.Decimal) {
		return domain.NewValidationError(RuleNetExceeds, "netAmount", "Net amount cannot exceed gross amount")
	}

	// 5. Currency whitelist
	if !event.Currency.IsPayoutCurrency() {
		return domain.NewValidationError(RuleCurrency, "currency", "Invalid currency: %s", event.Currency)
	}

	// 6. Tax year bounds
	maxYear := s.Clock.Now().Year() + 1
	if event.TaxYear < domain.MinTaxYear || event.TaxYear > maxYear {
		return domain.NewValidationError(RuleTaxYear, "taxYear", "Invalid tax year: %d", event.TaxYear)
	}

	// 7. Payout date
	if year := event.PayoutDate.Year(); year < minCalendarYear || year > maxCalendarYear {
		return domain.NewValidationError(RulePayoutDate, "payoutDate", "Invalid payout date")
	}

	return nil
}

// missingField returns the first required field holding its zero value, in reporting order
func missingField(event domain.PayoutEvent) string {
	checks := []struct {
		field   string
		missing bool
	}{
		{"id", event.ID == ""},
		{"creatorId", event.CreatorID == ""},
		{"processorId", event.ProcessorID == ""},
		{"payoutId", event.PayoutID == ""},
		{"amount", !event.Amount.Valid},
		{"currency", event.Currency == ""},
		{"payoutDate", event.PayoutDate.IsZero()},
		{"taxYear", event.TaxYear == 0},
		{"netAmount", !event.NetAmount.Valid},
	}

	for _, c := range checks {
		if c.missing {
			return c.field
		}
	}
	return ""
}
