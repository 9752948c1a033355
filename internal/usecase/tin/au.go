package tin

import "github.com/simaogato/payoutcompliance-backend/internal/domain"

var abnWeights = [11]int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

// ValidateAU accepts an 8 or 9 digit TFN (format only) or an 11-digit ABN passing the modulus 89 check
func ValidateAU(cleanTin string) domain.TinValidationResult {
	if !isDigits(cleanTin) {
		return domain.InvalidTin("Invalid Australian TIN format (expected 8-9 digit TFN or 11-digit ABN)")
	}

	switch len(cleanTin) {
	case 8, 9:
		return domain.ValidTin(cleanTin, domain.TinTypeTFN)
	case 11:
		if !abnChecksum(cleanTin) {
			return domain.InvalidTin("Invalid ABN checksum")
		}
		return domain.ValidTin(cleanTin, domain.TinTypeABN)
	}

	return domain.InvalidTin("Invalid Australian TIN format (expected 8-9 digit TFN or 11-digit ABN)")
}

// abnChecksum subtracts 1 from the first digit, weights every digit and requires the sum to be divisible by 89.
// The adjusted first digit may be -1 when the ABN starts with 0.
func abnChecksum(digits string) bool {
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if i == 0 {
			d--
		}
		sum += d * abnWeights[i]
	}
	return sum%89 == 0
}
