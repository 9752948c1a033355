package grpc

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewGRPCServer builds a grpc.Server serving ComplianceService and the standard health service.
// Calls are logged, then authenticated against token. ComplianceService starts as SERVING.
func NewGRPCServer(srv ComplianceServiceServer, token string, log *zap.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(log),
			AuthInterceptor(token),
		),
	}, opts...)

	grpcServer := grpc.NewServer(opts...)
	RegisterComplianceServiceServer(grpcServer, srv)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return grpcServer, healthServer
}
