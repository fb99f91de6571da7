package helius

import "encoding/json"

// Transaction is one entry of the enhanced transaction history for an
// address. Only the fields the analysis consumes are mapped.
type Transaction struct {
	Signature       string           `json:"signature"`
	Timestamp       int64            `json:"timestamp"`
	FeePayer        string           `json:"feePayer"`
	Type            string           `json:"type"`
	Source          string           `json:"source"`
	Description     string           `json:"description"`
	NativeTransfers []NativeTransfer `json:"nativeTransfers"`
	TokenTransfers  []TokenTransfer  `json:"tokenTransfers"`
}

// NativeTransfer is a SOL movement inside a transaction
type NativeTransfer struct {
	FromUserAccount string `json:"fromUserAccount"`
	ToUserAccount   string `json:"toUserAccount"`
	Amount          int64  `json:"amount"`
}

// TokenTransfer is an SPL token movement inside a transaction
type TokenTransfer struct {
	FromUserAccount string  `json:"fromUserAccount"`
	ToUserAccount   string  `json:"toUserAccount"`
	Mint            string  `json:"mint"`
	TokenAmount     float64 `json:"tokenAmount"`
}

// Asset is the structured metadata for a mint as returned by the DAS
// getAsset method.
type Asset struct {
	ID      string        `json:"id"`
	Content *AssetContent `json:"content"`
	// TokenInfo is nil when the provider has no structured token data for
	// the mint; callers fall back to the raw account bytes in that case.
	TokenInfo *AssetTokenInfo `json:"token_info"`
}

// AssetContent carries the display metadata of an asset
type AssetContent struct {
	Metadata AssetMetadata `json:"metadata"`
}

// AssetMetadata holds name and symbol
type AssetMetadata struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// AssetTokenInfo is the fungible-token section of a DAS asset. MintAuthority
// is empty when the authority has been revoked.
type AssetTokenInfo struct {
	Supply        json.Number `json:"supply"`
	Decimals      int         `json:"decimals"`
	MintAuthority string      `json:"mint_authority"`
}

// TokenAccount is one token-holding account for a mint. Amount is kept as a
// json.Number so arbitrarily large raw balances survive decoding without
// passing through a float.
type TokenAccount struct {
	Address string      `json:"address"`
	Owner   string      `json:"owner"`
	Amount  json.Number `json:"amount"`
}

// rpcRequest is a JSON-RPC request envelope for the DAS methods
type rpcRequest struct {
	Jsonrpc string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// rpcError is a JSON-RPC error object
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcResponse is a JSON-RPC response envelope
type rpcResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// tokenAccountsResult is the result shape of the getTokenAccounts method
type tokenAccountsResult struct {
	Total         int            `json:"total"`
	TokenAccounts []TokenAccount `json:"token_accounts"`
}
