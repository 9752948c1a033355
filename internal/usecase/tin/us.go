package tin

import (
	"strings"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

// einPrefixes are the IRS campus prefixes an EIN may start with.
// This is the full published table of 83 prefixes; the commonly quoted figure of 55
// comes without a list, so the published table is used.
var einPrefixes = map[string]struct{}{
	// Andover, Atlanta, Austin, Fresno, Kansas City, Memphis, Ogden
	"10": {}, "12": {}, "60": {}, "67": {}, "50": {}, "53": {}, "15": {}, "24": {},
	"40": {}, "44": {}, "94": {}, "95": {}, "80": {}, "90": {},
	// Brookhaven
	"01": {}, "02": {}, "03": {}, "04": {}, "05": {}, "06": {}, "11": {}, "13": {},
	"14": {}, "16": {}, "21": {}, "22": {}, "23": {}, "25": {}, "34": {}, "51": {},
	"52": {}, "54": {}, "55": {}, "56": {}, "57": {}, "58": {}, "59": {}, "65": {},
	// Cincinnati
	"30": {}, "32": {}, "35": {}, "36": {}, "37": {}, "38": {}, "61": {},
	// Philadelphia
	"33": {}, "39": {}, "41": {}, "42": {}, "43": {}, "48": {}, "62": {}, "63": {},
	"64": {}, "66": {}, "68": {}, "71": {}, "72": {}, "73": {}, "74": {}, "75": {},
	"76": {}, "77": {}, "91": {},
	// Internet
	"20": {}, "26": {}, "27": {}, "45": {}, "46": {}, "47": {}, "81": {}, "82": {},
	"83": {}, "84": {}, "85": {}, "86": {}, "87": {}, "88": {}, "92": {}, "93": {},
	"98": {}, "99": {},
	// Small Business Administration
	"31": {},
}

// ValidateUS accepts a 9-digit SSN or EIN.
// The SSN rule is applied first; EIN prefixes are only consulted for values
// the SSN rule excludes (000, 666 and 9xx area numbers).
func ValidateUS(cleanTin string) domain.TinValidationResult {
	if len(cleanTin) != 9 || !isDigits(cleanTin) {
		return domain.InvalidTin("Invalid US TIN format (must be 9 digits)")
	}

	if !strings.HasPrefix(cleanTin, "000") &&
		!strings.HasPrefix(cleanTin, "666") &&
		!strings.HasPrefix(cleanTin, "9") {
		return domain.ValidTin(cleanTin, domain.TinTypeSSN)
	}

	if _, ok := einPrefixes[cleanTin[:2]]; ok {
		return domain.ValidTin(cleanTin, domain.TinTypeEIN)
	}

	return domain.InvalidTin("Invalid US TIN: not a valid SSN or EIN")
}
