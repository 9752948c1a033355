package tin

import "github.com/simaogato/payoutcompliance-backend/internal/domain"

// ValidateCA accepts a 9-digit SIN passing the Luhn checksum or a 15-character BN (9 digits, 2 letters, 4 digits)
func ValidateCA(cleanTin string) domain.TinValidationResult {
	if len(cleanTin) == 9 && isDigits(cleanTin) {
		if !sinChecksum(cleanTin) {
			return domain.InvalidTin("Invalid SIN checksum")
		}
		return domain.ValidTin(cleanTin, domain.TinTypeSIN)
	}

	if len(cleanTin) == 15 &&
		isDigits(cleanTin[:9]) &&
		isUpperLetters(cleanTin[9:11]) &&
		isDigits(cleanTin[11:]) {
		return domain.ValidTin(cleanTin, domain.TinTypeBN)
	}

	return domain.InvalidTin("Invalid Canadian TIN format (expected 9-digit SIN or 15-character BN)")
}

// sinChecksum applies the Luhn algorithm: digits at odd indexes are doubled,
// doubled values above 9 have 9 subtracted, and the total must be a multiple of 10
func sinChecksum(digits string) bool {
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}
