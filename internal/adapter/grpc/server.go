package grpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
	"github.com/simaogato/payoutcompliance-backend/internal/usecase/pipeline"
)

// PayoutValidator checks payout invariants
type PayoutValidator interface {
	ValidatePayoutEvent(ctx context.Context, event domain.PayoutEvent) error
}

// PayoutEnricher attaches FX data to a payout
type PayoutEnricher interface {
	EnrichWithFxData(ctx context.Context, event domain.PayoutEvent) domain.PayoutEvent
}

// PayoutProcessor validates then enriches payouts
type PayoutProcessor interface {
	Process(ctx context.Context, event domain.PayoutEvent) (domain.PayoutEvent, error)
	ProcessBatch(ctx context.Context, events []domain.PayoutEvent) []pipeline.BatchResult
}

// TinValidator validates taxpayer identification numbers
type TinValidator interface {
	ValidateTIN(tin string, jurisdiction domain.Jurisdiction) domain.TinValidationResult
	Jurisdictions() []domain.Jurisdiction
}

// Server implements the ComplianceService gRPC server
type Server struct {
	Validator    PayoutValidator
	Enricher     PayoutEnricher
	Pipeline     PayoutProcessor
	TinValidator TinValidator

	logger *zap.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(
	validator PayoutValidator,
	enricher PayoutEnricher,
	processor PayoutProcessor,
	tinValidator TinValidator,
	log *zap.Logger,
) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Validator:    validator,
		Enricher:     enricher,
		Pipeline:     processor,
		TinValidator: tinValidator,
		logger:       log,
	}
}

// ValidatePayout handles the ValidatePayout RPC
func (s *Server) ValidatePayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	event, err := payoutFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := s.Validator.ValidatePayoutEvent(ctx, event); err != nil {
		return nil, mapError(err)
	}

	return structpb.NewStruct(map[string]interface{}{"valid": true})
}

// EnrichPayout handles the EnrichPayout RPC. The payout is not validated first.
func (s *Server) EnrichPayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	event, err := payoutFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return s.encodePayout(s.Enricher.EnrichWithFxData(ctx, event))
}

// ProcessPayout handles the ProcessPayout RPC
func (s *Server) ProcessPayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	event, err := payoutFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	enriched, err := s.Pipeline.Process(ctx, event)
	if err != nil {
		return nil, mapError(err)
	}

	return s.encodePayout(enriched)
}

// ProcessPayoutBatch handles the ProcessPayoutBatch RPC.
// Request: {payouts: [payout...]}. Response: {results: [{index, payout} | {index, error}]} in request order.
// A bad record fails only its own result.
func (s *Server) ProcessPayoutBatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	items := req.GetFields()["payouts"].GetListValue().GetValues()

	results := make([]interface{}, len(items))
	events := make([]domain.PayoutEvent, 0, len(items))
	positions := make([]int, 0, len(items))

	for i, item := range items {
		payout := item.GetStructValue()
		if payout == nil {
			results[i] = batchError(i, "payout must be an object")
			continue
		}

		event, err := payoutFromStruct(payout)
		if err != nil {
			results[i] = batchError(i, err.Error())
			continue
		}

		events = append(events, event)
		positions = append(positions, i)
	}

	for j, result := range s.Pipeline.ProcessBatch(ctx, events) {
		i := positions[j]
		if result.Err != nil {
			results[i] = batchError(i, result.Err.Error())
			continue
		}

		encoded, err := payoutToStruct(result.Event)
		if err != nil {
			return nil, mapError(err)
		}
		results[i] = map[string]interface{}{
			"index":  i,
			"payout": encoded.AsMap(),
		}
	}

	return structpb.NewStruct(map[string]interface{}{"results": results})
}

// ValidateTIN handles the ValidateTIN RPC. An invalid TIN is a normal response, not an error.
func (s *Server) ValidateTIN(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	result := s.TinValidator.ValidateTIN(
		fields["tin"].GetStringValue(),
		domain.Jurisdiction(stringField(fields, "jurisdiction")),
	)

	return tinResultToStruct(result)
}

// ListJurisdictions handles the ListJurisdictions RPC
func (s *Server) ListJurisdictions(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	registered := s.TinValidator.Jurisdictions()
	names := make([]interface{}, len(registered))
	for i, j := range registered {
		names[i] = string(j)
	}
	return structpb.NewStruct(map[string]interface{}{"jurisdictions": names})
}

func (s *Server) encodePayout(event domain.PayoutEvent) (*structpb.Struct, error) {
	resp, err := payoutToStruct(event)
	if err != nil {
		s.logger.Error("failed to encode payout", zap.String("payout_id", event.PayoutID), zap.Error(err))
		return nil, mapError(err)
	}
	return resp, nil
}

func batchError(index int, message string) map[string]interface{} {
	return map[string]interface{}{
		"index": index,
		"error": message,
	}
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrValidation) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	return status.Errorf(codes.Internal, "%s", err.Error())
}
