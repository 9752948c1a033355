package tin

import "github.com/simaogato/payoutcompliance-backend/internal/domain"

// ValidateUK accepts a 10-digit Unique Taxpayer Reference
func ValidateUK(cleanTin string) domain.TinValidationResult {
	if len(cleanTin) == 10 && isDigits(cleanTin) {
		return domain.ValidTin(cleanTin, domain.TinTypeUTR)
	}
	return domain.InvalidTin("Invalid UK UTR format (must be 10 digits)")
}
