// Package market implements a client for fetching liquidity, pair and trade
// data from the DexScreener API.
package market

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dobrana/CheckSol-token/internal/utils"
)

// Pair is one trading pair as reported by the market-data provider
type Pair struct {
	ChainID     string `json:"chainId"`
	DexID       string `json:"dexId"`
	PairAddress string `json:"pairAddress"`
	BaseToken   Token  `json:"baseToken"`
	QuoteToken  Token  `json:"quoteToken"`
	// Liquidity is a pointer because the provider omits it for pairs it
	// cannot price.
	Liquidity     *Liquidity `json:"liquidity"`
	Txns          PairTxns   `json:"txns"`
	PairCreatedAt int64      `json:"pairCreatedAt"`
}

// Token identifies one side of a pair
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Liquidity holds the USD-denominated pool depth
type Liquidity struct {
	USD float64 `json:"usd"`
}

// PairTxns carries trade counts per window
type PairTxns struct {
	H24 TxnSummary `json:"h24"`
}

// TxnSummary splits trade counts into buys and sells
type TxnSummary struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// Client fetches pair data from DexScreener
type Client struct {
	http   *utils.HTTPClient
	logger zerolog.Logger
}

// NewClient creates a new DexScreener client
func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		http:   utils.NewHTTPClient(utils.WithBaseURL(baseURL)),
		logger: logger.With().Str("component", "dexscreener").Logger(),
	}
}

// PairsForToken returns every trading pair the provider knows for a mint.
// An empty slice means the token is not trading anywhere.
func (c *Client) PairsForToken(ctx context.Context, mint string) ([]Pair, error) {
	path := fmt.Sprintf("/latest/dex/tokens/%s", mint)

	resp, err := c.http.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Pairs []Pair `json:"pairs"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, fmt.Errorf("failed to decode pairs response: %w", err)
	}

	return result.Pairs, nil
}
