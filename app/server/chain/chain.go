// Package chain reads transactions from a Steem node over JSON-RPC 2.0.
package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/ethereum/go-ethereum/rpc"
	"net/http"
	"time"
)

const methodGetTransaction = "condenser_api.get_transaction"

// Steem 节点对未知交易返回的是一般的服务端错误
const codeServerError = -32000

var ErrTransactionNotFound = errors.New("transaction not found")

// Reader is the read-only view of the chain used when verifying tips.
type Reader interface {
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
}

type Client struct {
	rpc *rpc.Client
}

var _ Reader = (*Client)(nil)

func Dial(ctx context.Context, endpoint string) (*Client, error) {
	c, err := rpc.DialOptions(ctx, endpoint, rpc.WithHTTPClient(&http.Client{
		Timeout: 10 * time.Second,
	}))
	if err != nil {
		return nil, fmt.Errorf("dial steem node %s: %w", endpoint, err)
	}

	return &Client{rpc: c}, nil
}

func (c *Client) Close() {
	c.rpc.Close()
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	var raw json.RawMessage
	if err := c.rpc.CallContext(ctx, &raw, methodGetTransaction, id); err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeServerError {
			return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, rpcErr.Error())
		}
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrTransactionNotFound
	}

	var tx Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", id, err)
	}

	return &tx, nil
}
