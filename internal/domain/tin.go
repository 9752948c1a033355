package domain

// Jurisdiction identifies the tax authority whose TIN rules apply
type Jurisdiction string

const (
	JurisdictionUS Jurisdiction = "US"
	JurisdictionCA Jurisdiction = "CA"
	JurisdictionUK Jurisdiction = "UK"
	JurisdictionAU Jurisdiction = "AU"
	JurisdictionEU Jurisdiction = "EU"
)

// TinType is the kind of identifier a TIN was recognized as
type TinType string

const (
	TinTypeSSN TinType = "SSN"
	TinTypeEIN TinType = "EIN"
	TinTypeSIN TinType = "SIN"
	TinTypeBN  TinType = "BN"
	TinTypeUTR TinType = "UTR"
	TinTypeTFN TinType = "TFN"
	TinTypeABN TinType = "ABN"
)

// TinValidationResult is the outcome of validating a taxpayer identification number.
// Error is set whenever IsValid is false. TinType is empty when the jurisdiction
// does not distinguish identifier kinds.
type TinValidationResult struct {
	IsValid       bool
	NormalizedTin string
	TinType       TinType
	Error         string
}

// ValidTin builds a successful result
func ValidTin(normalized string, tinType TinType) TinValidationResult {
	return TinValidationResult{
		IsValid:       true,
		NormalizedTin: normalized,
		TinType:       tinType,
	}
}

// InvalidTin builds a failed result carrying a user-facing message
func InvalidTin(message string) TinValidationResult {
	return TinValidationResult{
		IsValid: false,
		Error:   message,
	}
}
