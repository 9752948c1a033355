package grpc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

// Payout field names on the wire
const (
	fieldID          = "id"
	fieldCreatorID   = "creatorId"
	fieldProcessorID = "processorId"
	fieldPayoutID    = "payoutId"
	fieldAmount      = "amount"
	fieldNetAmount   = "netAmount"
	fieldCurrency    = "currency"
	fieldPayoutDate  = "payoutDate"
	fieldTaxYear     = "taxYear"
	fieldFxRate      = "fxRate"
	fieldFmvUsd      = "fmvUsd"
	fieldFmvFallback = "fmvFallback"
)

var errInvalidPayoutDate = errors.New("Invalid payout date")

// payoutFromStruct decodes a wire payout. Absent and null fields stay at their zero value
// so the validator can report them as missing.
func payoutFromStruct(s *structpb.Struct) (domain.PayoutEvent, error) {
	fields := s.GetFields()
	event := domain.PayoutEvent{
		ID:          stringField(fields, fieldID),
		CreatorID:   stringField(fields, fieldCreatorID),
		ProcessorID: stringField(fields, fieldProcessorID),
		PayoutID:    stringField(fields, fieldPayoutID),
		Currency:    domain.Currency(stringField(fields, fieldCurrency)),
		FmvFallback: fields[fieldFmvFallback].GetBoolValue(),
	}

	var err error
	if event.Amount, err = amountField(fields, fieldAmount); err != nil {
		return domain.PayoutEvent{}, err
	}
	if event.NetAmount, err = amountField(fields, fieldNetAmount); err != nil {
		return domain.PayoutEvent{}, err
	}

	if raw := stringField(fields, fieldPayoutDate); raw != "" {
		if event.PayoutDate, err = parsePayoutDate(raw); err != nil {
			return domain.PayoutEvent{}, err
		}
	}

	if event.TaxYear, err = taxYearField(fields); err != nil {
		return domain.PayoutEvent{}, err
	}

	if rate, err := amountField(fields, fieldFxRate); err != nil {
		return domain.PayoutEvent{}, err
	} else if rate.Valid {
		event.FxRate = &rate.Decimal
	}

	if fmv, err := amountField(fields, fieldFmvUsd); err != nil {
		return domain.PayoutEvent{}, err
	} else if fmv.Valid {
		event.FmvUsd = &fmv.Decimal
	}

	return event, nil
}

// payoutToStruct encodes a payout. Amounts use two decimals, rates keep full precision.
func payoutToStruct(event domain.PayoutEvent) (*structpb.Struct, error) {
	m := map[string]interface{}{
		fieldID:          event.ID,
		fieldCreatorID:   event.CreatorID,
		fieldProcessorID: event.ProcessorID,
		fieldPayoutID:    event.PayoutID,
		fieldCurrency:    string(event.Currency),
		fieldTaxYear:     event.TaxYear,
		fieldFmvFallback: event.FmvFallback,
	}

	if event.Amount.Valid {
		m[fieldAmount] = event.Amount.Decimal.StringFixed(domain.AmountPlaces)
	}
	if event.NetAmount.Valid {
		m[fieldNetAmount] = event.NetAmount.Decimal.StringFixed(domain.AmountPlaces)
	}
	if !event.PayoutDate.IsZero() {
		m[fieldPayoutDate] = event.PayoutDate.UTC().Format(time.DateOnly)
	}
	if event.FxRate != nil {
		m[fieldFxRate] = event.FxRate.String()
	}
	if event.FmvUsd != nil {
		m[fieldFmvUsd] = event.FmvUsd.StringFixed(domain.AmountPlaces)
	}

	return structpb.NewStruct(m)
}

func stringField(fields map[string]*structpb.Value, name string) string {
	return strings.TrimSpace(fields[name].GetStringValue())
}

// amountField accepts a number or a string. Plain decimal strings are read exactly;
// formatted ones such as "$1,234.50" go through the amount sanitizer.
func amountField(fields map[string]*structpb.Value, name string) (decimal.NullDecimal, error) {
	switch v := fields[name].GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return decimal.NullDecimal{}, nil
	case *structpb.Value_NumberValue:
		if math.IsNaN(v.NumberValue) || math.IsInf(v.NumberValue, 0) {
			return decimal.NullDecimal{}, fmt.Errorf("Invalid %s", name)
		}
		return decimal.NewNullDecimal(decimal.NewFromFloat(v.NumberValue)), nil
	case *structpb.Value_StringValue:
		raw := strings.TrimSpace(v.StringValue)
		if raw == "" {
			return decimal.NullDecimal{}, nil
		}
		if d, err := decimal.NewFromString(raw); err == nil {
			return decimal.NewNullDecimal(d), nil
		}
		if d, ok := domain.SanitizeAmount(raw); ok {
			return decimal.NewNullDecimal(d), nil
		}
		return decimal.NullDecimal{}, fmt.Errorf("Invalid %s", name)
	default:
		return decimal.NullDecimal{}, fmt.Errorf("Invalid %s", name)
	}
}

func taxYearField(fields map[string]*structpb.Value) (int, error) {
	switch v := fields[fieldTaxYear].GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return 0, nil
	case *structpb.Value_NumberValue:
		if v.NumberValue != math.Trunc(v.NumberValue) || math.Abs(v.NumberValue) > math.MaxInt32 {
			return 0, errors.New("Invalid taxYear")
		}
		return int(v.NumberValue), nil
	case *structpb.Value_StringValue:
		raw := strings.TrimSpace(v.StringValue)
		if raw == "" {
			return 0, nil
		}
		year, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.New("Invalid taxYear")
		}
		return year, nil
	default:
		return 0, errors.New("Invalid taxYear")
	}
}

// parsePayoutDate accepts a calendar date or an RFC 3339 timestamp.
// Timestamps keep the calendar date of their own offset, stored as midnight UTC.
func parsePayoutDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, errInvalidPayoutDate
}

func tinResultToStruct(result domain.TinValidationResult) (*structpb.Struct, error) {
	m := map[string]interface{}{
		"isValid": result.IsValid,
	}
	if result.NormalizedTin != "" {
		m["normalizedTin"] = result.NormalizedTin
	}
	if result.TinType != "" {
		m["tinType"] = string(result.TinType)
	}
	if result.Error != "" {
		m["error"] = result.Error
	}
	return structpb.NewStruct(m)
}
