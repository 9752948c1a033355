package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "payoutcompliance.v1.ComplianceService"

const (
	ValidatePayoutMethod     = "/" + ServiceName + "/ValidatePayout"
	EnrichPayoutMethod       = "/" + ServiceName + "/EnrichPayout"
	ProcessPayoutMethod      = "/" + ServiceName + "/ProcessPayout"
	ProcessPayoutBatchMethod = "/" + ServiceName + "/ProcessPayoutBatch"
	ValidateTINMethod        = "/" + ServiceName + "/ValidateTIN"
	ListJurisdictionsMethod  = "/" + ServiceName + "/ListJurisdictions"
)

// ComplianceServiceServer is the server API for ComplianceService.
// Every message is a google.protobuf.Struct.
type ComplianceServiceServer interface {
	ValidatePayout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EnrichPayout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProcessPayout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProcessPayoutBatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateTIN(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListJurisdictions(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(srv ComplianceServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ComplianceServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ComplianceServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ComplianceServiceDesc describes ComplianceService for grpc.ServiceRegistrar
var ComplianceServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ComplianceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ValidatePayout", Handler: unaryHandler(ValidatePayoutMethod, ComplianceServiceServer.ValidatePayout)},
		{MethodName: "EnrichPayout", Handler: unaryHandler(EnrichPayoutMethod, ComplianceServiceServer.EnrichPayout)},
		{MethodName: "ProcessPayout", Handler: unaryHandler(ProcessPayoutMethod, ComplianceServiceServer.ProcessPayout)},
		{MethodName: "ProcessPayoutBatch", Handler: unaryHandler(ProcessPayoutBatchMethod, ComplianceServiceServer.ProcessPayoutBatch)},
		{MethodName: "ValidateTIN", Handler: unaryHandler(ValidateTINMethod, ComplianceServiceServer.ValidateTIN)},
		{MethodName: "ListJurisdictions", Handler: unaryHandler(ListJurisdictionsMethod, ComplianceServiceServer.ListJurisdictions)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "payoutcompliance/v1/compliance.proto",
}

// RegisterComplianceServiceServer registers srv on s
func RegisterComplianceServiceServer(s grpc.ServiceRegistrar, srv ComplianceServiceServer) {
	s.RegisterService(&ComplianceServiceDesc, srv)
}

// Client is a thin ComplianceService client
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ValidatePayout(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ValidatePayoutMethod, in, opts...)
}

func (c *Client) EnrichPayout(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, EnrichPayoutMethod, in, opts...)
}

func (c *Client) ProcessPayout(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ProcessPayoutMethod, in, opts...)
}

func (c *Client) ProcessPayoutBatch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ProcessPayoutBatchMethod, in, opts...)
}

func (c *Client) ValidateTIN(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ValidateTINMethod, in, opts...)
}

func (c *Client) ListJurisdictions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListJurisdictionsMethod, in, opts...)
}
