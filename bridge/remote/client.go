package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/osmosis-labs/osmosis-testing/bridge"
)

// DefaultCallTimeout bounds every call made by a Client.
const DefaultCallTimeout = 30 * time.Second

var _ bridge.Bridge = (*Client)(nil)

// Client implements bridge.Bridge against a remote Server.
type Client struct {
	cc      *grpc.ClientConn
	timeout time.Duration
}

// Dial connects to a remote bridge at addr.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("bridge client: dial %s: %w", addr, err)
	}

	return &Client{cc: cc, timeout: DefaultCallTimeout}, nil
}

// WithTimeout returns a copy of the client bounding every call by timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	return &Client{cc: c.cc, timeout: timeout}
}

func (c *Client) Close() error {
	return c.cc.Close()
}

func (c *Client) invoke(method string, req, resp any) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.cc.Invoke(ctx, fullMethod(method), req, resp); err != nil {
		if s, ok := status.FromError(err); ok {
			return errors.New(s.Message())
		}
		return err
	}

	return nil
}

func (c *Client) InitSession(coinsJSON string) (uint64, error) {
	resp := new(SessionResponse)
	if err := c.invoke("InitSession", &InitSessionRequest{CoinsJSON: coinsJSON}, resp); err != nil {
		return 0, err
	}
	return resp.SessionID, nil
}

func (c *Client) BeginBlock(sessionID uint64) error {
	return c.invoke("BeginBlock", &SessionRequest{SessionID: sessionID}, new(EmptyResponse))
}

func (c *Client) EndBlock(sessionID uint64) error {
	return c.invoke("EndBlock", &SessionRequest{SessionID: sessionID}, new(EmptyResponse))
}

func (c *Client) InitAccount(sessionID uint64, coinsJSON string) (string, error) {
	resp := new(InitAccountResponse)
	if err := c.invoke("InitAccount", &InitAccountRequest{SessionID: sessionID, CoinsJSON: coinsJSON}, resp); err != nil {
		return "", err
	}
	return resp.PrivKey, nil
}

func (c *Client) AccountSequence(sessionID uint64, address string) (uint64, error) {
	resp := new(AccountResponse)
	if err := c.invoke("AccountSequence", &AccountRequest{SessionID: sessionID, Address: address}, resp); err != nil {
		return 0, err
	}
	return resp.Value, nil
}

func (c *Client) AccountNumber(sessionID uint64, address string) (uint64, error) {
	resp := new(AccountResponse)
	if err := c.invoke("AccountNumber", &AccountRequest{SessionID: sessionID, Address: address}, resp); err != nil {
		return 0, err
	}
	return resp.Value, nil
}

func (c *Client) Simulate(sessionID uint64, base64Tx string) *bridge.RawResult {
	return c.rawResult("Simulate", &SimulateRequest{SessionID: sessionID, Tx: base64Tx})
}

func (c *Client) Execute(sessionID uint64, base64Req string) *bridge.RawResult {
	return c.rawResult("Execute", &ExecuteRequest{SessionID: sessionID, Request: base64Req})
}

func (c *Client) Query(sessionID uint64, path, base64Req string) *bridge.RawResult {
	return c.rawResult("Query", &QueryRequest{SessionID: sessionID, Path: path, Request: base64Req})
}

func (c *Client) rawResult(method string, req any) *bridge.RawResult {
	resp := new(RawResult)
	if err := c.invoke(method, req, resp); err != nil {
		return bridge.Failure(err.Error())
	}
	return resp.toBridge()
}

func (c *Client) IncreaseTime(sessionID uint64, seconds uint64) error {
	return c.invoke("IncreaseTime", &IncreaseTimeRequest{SessionID: sessionID, Seconds: seconds}, new(EmptyResponse))
}

func (c *Client) WhitelistAddressForForceUnlock(sessionID uint64, address string) error {
	return c.invoke("WhitelistAddressForForceUnlock", &AccountRequest{SessionID: sessionID, Address: address}, new(EmptyResponse))
}
