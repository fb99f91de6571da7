// Package helius implements the chain-data provider client: enhanced
// transaction history, asset metadata, token accounts and raw account bytes
// for Solana mints and wallets.
package helius

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/dobrana/CheckSol-token/internal/utils"
)

// Order is the sort order for transaction history queries
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ErrUnauthorized is returned when the provider rejects the API key. The
// caller surfaces this as a configuration problem, not a transient failure.
var ErrUnauthorized = errors.New("helius: api key rejected")

// Client talks to the Helius enhanced API and DAS RPC endpoints
type Client struct {
	api    *utils.HTTPClient
	das    *utils.HTTPClient
	rpc    *rpc.Client
	apiKey string
	logger zerolog.Logger
}

// NewClient creates a new Helius client. baseURL serves the enhanced
// transaction API, rpcURL the DAS JSON-RPC methods and raw account fetches.
func NewClient(baseURL, rpcURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		api:    utils.NewHTTPClient(utils.WithBaseURL(baseURL)),
		das:    utils.NewHTTPClient(utils.WithBaseURL(rpcURL)),
		rpc:    rpc.New(fmt.Sprintf("%s/?api-key=%s", rpcURL, apiKey)),
		apiKey: apiKey,
		logger: logger.With().Str("component", "helius").Logger(),
	}
}

// TxQuery bounds a transaction history request
type TxQuery struct {
	Order  Order
	Limit  int
	Before string
}

// Transactions fetches one page of enhanced transaction history for an
// address.
func (c *Client) Transactions(ctx context.Context, address string, q TxQuery) ([]Transaction, error) {
	query := url.Values{}
	query.Set("api-key", c.apiKey)
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Order != "" {
		query.Set("sort-order", string(q.Order))
	}
	if q.Before != "" {
		query.Set("before", q.Before)
	}

	path := fmt.Sprintf("/v0/addresses/%s/transactions", address)
	resp, err := c.api.Get(ctx, path, query)
	if err != nil {
		return nil, c.mapError(err)
	}

	var txs []Transaction
	if err := resp.DecodeJSON(&txs); err != nil {
		return nil, fmt.Errorf("failed to decode transaction history: %w", err)
	}

	return txs, nil
}

// EarliestTransaction returns the oldest known transaction for an address,
// or nil when the address has no history at all.
func (c *Client) EarliestTransaction(ctx context.Context, address string) (*Transaction, error) {
	txs, err := c.Transactions(ctx, address, TxQuery{Order: OrderAsc, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, nil
	}
	return &txs[0], nil
}

// Asset fetches structured asset metadata for a mint via DAS getAsset.
// Returns nil without error when the provider does not know the asset.
func (c *Client) Asset(ctx context.Context, mint string) (*Asset, error) {
	result, err := c.dasCall(ctx, "getAsset", map[string]interface{}{"id": mint})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	var asset Asset
	if err := result.DecodeJSON(&asset); err != nil {
		return nil, fmt.Errorf("failed to decode asset: %w", err)
	}
	return &asset, nil
}

// TokenAccounts fetches up to limit token-holding accounts for a mint
func (c *Client) TokenAccounts(ctx context.Context, mint string, limit int) ([]TokenAccount, error) {
	result, err := c.dasCall(ctx, "getTokenAccounts", map[string]interface{}{
		"mint":  mint,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	var accounts tokenAccountsResult
	if err := result.DecodeJSON(&accounts); err != nil {
		return nil, fmt.Errorf("failed to decode token accounts: %w", err)
	}
	return accounts.TokenAccounts, nil
}

// MintAccountBytes fetches the raw account data for a mint. Used as the
// fallback source for the mint-authority flag when asset metadata is absent.
func (c *Client) MintAccountBytes(ctx context.Context, mint string) ([]byte, error) {
	pubkey, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return nil, fmt.Errorf("invalid mint address: %w", err)
	}

	out, err := c.rpc.GetAccountInfo(ctx, pubkey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mint account: %w", err)
	}
	if out == nil || out.Value == nil {
		return nil, errors.New("mint account not found")
	}

	data := out.Value.Data.GetBinary()
	if len(data) == 0 {
		return nil, errors.New("mint account has no data")
	}
	return data, nil
}

// dasCall performs a single DAS JSON-RPC call. A nil response with nil error
// means the method succeeded but found nothing.
func (c *Client) dasCall(ctx context.Context, method string, params interface{}) (*utils.Response, error) {
	req := rpcRequest{
		Jsonrpc: "2.0",
		ID:      "checksol",
		Method:  method,
		Params:  params,
	}

	query := url.Values{}
	query.Set("api-key", c.apiKey)

	resp, err := c.das.Post(ctx, "/?"+query.Encode(), req)
	if err != nil {
		return nil, c.mapError(err)
	}

	var envelope rpcResponse
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if envelope.Error != nil {
		return nil, fmt.Errorf("%s failed: %s (code %d)", method, envelope.Error.Message, envelope.Error.Code)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil, nil
	}

	return &utils.Response{StatusCode: resp.StatusCode, Body: envelope.Result}, nil
}

// mapError folds credential rejections into ErrUnauthorized
func (c *Client) mapError(err error) error {
	var statusErr *utils.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden {
			return ErrUnauthorized
		}
	}
	return err
}
