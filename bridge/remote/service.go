package remote

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

const serviceName = "osmosistesting.bridge.v1.Bridge"

// BridgeServiceServer is the server-side interface of the bridge gRPC service.
type BridgeServiceServer interface {
	InitSession(context.Context, *InitSessionRequest) (*SessionResponse, error)
	BeginBlock(context.Context, *SessionRequest) (*EmptyResponse, error)
	EndBlock(context.Context, *SessionRequest) (*EmptyResponse, error)
	InitAccount(context.Context, *InitAccountRequest) (*InitAccountResponse, error)
	AccountSequence(context.Context, *AccountRequest) (*AccountResponse, error)
	AccountNumber(context.Context, *AccountRequest) (*AccountResponse, error)
	Simulate(context.Context, *SimulateRequest) (*RawResult, error)
	Execute(context.Context, *ExecuteRequest) (*RawResult, error)
	Query(context.Context, *QueryRequest) (*RawResult, error)
	IncreaseTime(context.Context, *IncreaseTimeRequest) (*EmptyResponse, error)
	WhitelistAddressForForceUnlock(context.Context, *AccountRequest) (*EmptyResponse, error)
}

// RegisterBridgeServiceServer registers srv on a gRPC server.
func RegisterBridgeServiceServer(s grpc.ServiceRegistrar, srv BridgeServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// unaryHandler adapts a typed method of BridgeServiceServer to a grpc.MethodHandler.
func unaryHandler[Req any, Res any](call func(BridgeServiceServer, context.Context, *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		return call(srv.(BridgeServiceServer), ctx, req)
	}
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor of the bridge.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*BridgeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "InitSession", Handler: unaryHandler(BridgeServiceServer.InitSession)},
		{MethodName: "BeginBlock", Handler: unaryHandler(BridgeServiceServer.BeginBlock)},
		{MethodName: "EndBlock", Handler: unaryHandler(BridgeServiceServer.EndBlock)},
		{MethodName: "InitAccount", Handler: unaryHandler(BridgeServiceServer.InitAccount)},
		{MethodName: "AccountSequence", Handler: unaryHandler(BridgeServiceServer.AccountSequence)},
		{MethodName: "AccountNumber", Handler: unaryHandler(BridgeServiceServer.AccountNumber)},
		{MethodName: "Simulate", Handler: unaryHandler(BridgeServiceServer.Simulate)},
		{MethodName: "Execute", Handler: unaryHandler(BridgeServiceServer.Execute)},
		{MethodName: "Query", Handler: unaryHandler(BridgeServiceServer.Query)},
		{MethodName: "IncreaseTime", Handler: unaryHandler(BridgeServiceServer.IncreaseTime)},
		{MethodName: "WhitelistAddressForForceUnlock", Handler: unaryHandler(BridgeServiceServer.WhitelistAddressForForceUnlock)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "osmosistesting/bridge/v1/service.cram",
}
