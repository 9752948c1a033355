package tin

import "github.com/simaogato/payoutcompliance-backend/internal/domain"

const (
	euMinLength = 8
	euMaxLength = 15
)

// ValidateEU applies a length heuristic; member-state formats and checksums are not distinguished
func ValidateEU(cleanTin string) domain.TinValidationResult {
	if len(cleanTin) < euMinLength || len(cleanTin) > euMaxLength {
		return domain.InvalidTin("Invalid EU TIN length (must be 8-15 characters)")
	}
	return domain.ValidTin(cleanTin, "")
}
