package grpc

// proto.go hand-writes the service descriptor for loanrisk.v1.LoanRiskService
// in the shape protoc-gen-go-grpc would emit. Messages travel with the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "loanrisk.v1.LoanRiskService"

// Full method names.
const (
	MethodPredictRisk   = "/" + serviceName + "/PredictRisk"
	MethodGetPrediction = "/" + serviceName + "/GetPrediction"
)

// LoanRiskServiceServer is the server API for LoanRiskService.
type LoanRiskServiceServer interface {
	PredictRisk(context.Context, *PredictRiskRequest) (*PredictionReply, error)
	GetPrediction(context.Context, *GetPredictionRequest) (*PredictionReply, error)
	mustEmbedUnimplementedLoanRiskServiceServer()
}

// UnimplementedLoanRiskServiceServer provides forward-compatible default implementations.
type UnimplementedLoanRiskServiceServer struct{}

func (UnimplementedLoanRiskServiceServer) PredictRisk(context.Context, *PredictRiskRequest) (*PredictionReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PredictRisk not implemented")
}
func (UnimplementedLoanRiskServiceServer) GetPrediction(context.Context, *GetPredictionRequest) (*PredictionReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPrediction not implemented")
}
func (UnimplementedLoanRiskServiceServer) mustEmbedUnimplementedLoanRiskServiceServer() {}

// RegisterLoanRiskServiceServer registers srv with the gRPC server.
func RegisterLoanRiskServiceServer(s grpclib.ServiceRegistrar, srv LoanRiskServiceServer) {
	s.RegisterService(&loanRiskServiceDesc, srv)
}

var loanRiskServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LoanRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "PredictRisk", Handler: predictRiskHandler},
		{MethodName: "GetPrediction", Handler: getPredictionHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "loanrisk/v1/loanrisk.proto",
}

func predictRiskHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(PredictRiskRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).PredictRisk(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodPredictRisk}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LoanRiskServiceServer).PredictRisk(ctx, req.(*PredictRiskRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getPredictionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(GetPredictionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).GetPrediction(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodGetPrediction}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LoanRiskServiceServer).GetPrediction(ctx, req.(*GetPredictionRequest))
	}
	return interceptor(ctx, in, info, handler)
}
