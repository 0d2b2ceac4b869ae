package remote

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cosmossdk.io/log"

	"github.com/osmosis-labs/osmosis-testing/bridge"
)

var _ BridgeServiceServer = (*Server)(nil)

// Server exposes a bridge.Bridge as a gRPC service. Failed primitives are returned as
// codes.FailedPrecondition statuses carrying the bridge error message.
type Server struct {
	bridge bridge.Bridge
	logger log.Logger
}

// NewServer returns a Server wrapping b.
func NewServer(b bridge.Bridge, logger log.Logger) *Server {
	return &Server{
		bridge: b,
		logger: logger.With("module", "remote"),
	}
}

// Register adds the bridge service to a gRPC server.
func (s *Server) Register(gs *grpc.Server) {
	RegisterBridgeServiceServer(gs, s)
}

// Serve starts a gRPC server on lis and blocks until it stops.
func (s *Server) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

func (s *Server) failed(method string, err error) error {
	s.logger.Debug("bridge call failed", "method", method, "err", err)
	return status.Error(codes.FailedPrecondition, err.Error())
}

func (s *Server) InitSession(_ context.Context, req *InitSessionRequest) (*SessionResponse, error) {
	id, err := s.bridge.InitSession(req.CoinsJSON)
	if err != nil {
		return nil, s.failed("InitSession", err)
	}
	return &SessionResponse{SessionID: id}, nil
}

func (s *Server) BeginBlock(_ context.Context, req *SessionRequest) (*EmptyResponse, error) {
	if err := s.bridge.BeginBlock(req.SessionID); err != nil {
		return nil, s.failed("BeginBlock", err)
	}
	return &EmptyResponse{}, nil
}

func (s *Server) EndBlock(_ context.Context, req *SessionRequest) (*EmptyResponse, error) {
	if err := s.bridge.EndBlock(req.SessionID); err != nil {
		return nil, s.failed("EndBlock", err)
	}
	return &EmptyResponse{}, nil
}

func (s *Server) InitAccount(_ context.Context, req *InitAccountRequest) (*InitAccountResponse, error) {
	privKey, err := s.bridge.InitAccount(req.SessionID, req.CoinsJSON)
	if err != nil {
		return nil, s.failed("InitAccount", err)
	}
	return &InitAccountResponse{PrivKey: privKey}, nil
}

func (s *Server) AccountSequence(_ context.Context, req *AccountRequest) (*AccountResponse, error) {
	seq, err := s.bridge.AccountSequence(req.SessionID, req.Address)
	if err != nil {
		return nil, s.failed("AccountSequence", err)
	}
	return &AccountResponse{Value: seq}, nil
}

func (s *Server) AccountNumber(_ context.Context, req *AccountRequest) (*AccountResponse, error) {
	num, err := s.bridge.AccountNumber(req.SessionID, req.Address)
	if err != nil {
		return nil, s.failed("AccountNumber", err)
	}
	return &AccountResponse{Value: num}, nil
}

func (s *Server) Simulate(_ context.Context, req *SimulateRequest) (*RawResult, error) {
	return newRawResult(s.bridge.Simulate(req.SessionID, req.Tx)), nil
}

func (s *Server) Execute(_ context.Context, req *ExecuteRequest) (*RawResult, error) {
	return newRawResult(s.bridge.Execute(req.SessionID, req.Request)), nil
}

func (s *Server) Query(_ context.Context, req *QueryRequest) (*RawResult, error) {
	return newRawResult(s.bridge.Query(req.SessionID, req.Path, req.Request)), nil
}

func (s *Server) IncreaseTime(_ context.Context, req *IncreaseTimeRequest) (*EmptyResponse, error) {
	if err := s.bridge.IncreaseTime(req.SessionID, req.Seconds); err != nil {
		return nil, s.failed("IncreaseTime", err)
	}
	return &EmptyResponse{}, nil
}

func (s *Server) WhitelistAddressForForceUnlock(_ context.Context, req *AccountRequest) (*EmptyResponse, error) {
	if err := s.bridge.WhitelistAddressForForceUnlock(req.SessionID, req.Address); err != nil {
		return nil, s.failed("WhitelistAddressForForceUnlock", err)
	}
	return &EmptyResponse{}, nil
}
