package typesvc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client is a thin wrapper over a grpc.ClientConn that always negotiates
// the JSON codec (codec.go) rather than protobuf wire encoding.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to a typesvc server at addr.
func Dial(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dialing typesvc at %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	return c.conn.Invoke(ctx, "/mindscript.typesvc.TypeService/"+method, req, resp, grpc.CallContentSubtype(codecName))
}

func (c *Client) TypeOf(ctx context.Context, req *TypeOfRequest) (*TypeOfResponse, error) {
	resp := new(TypeOfResponse)
	if err := c.invoke(ctx, "TypeOf", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CheckType(ctx context.Context, req *CheckTypeRequest) (*CheckTypeResponse, error) {
	resp := new(CheckTypeResponse)
	if err := c.invoke(ctx, "CheckType", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) IsSubtype(ctx context.Context, req *IsSubtypeRequest) (*IsSubtypeResponse, error) {
	resp := new(IsSubtypeResponse)
	if err := c.invoke(ctx, "IsSubtype", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	resp := new(ResolveResponse)
	if err := c.invoke(ctx, "Resolve", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) EnforceCall(ctx context.Context, req *EnforceCallRequest) (*EnforceCallResponse, error) {
	resp := new(EnforceCallResponse)
	if err := c.invoke(ctx, "EnforceCall", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
