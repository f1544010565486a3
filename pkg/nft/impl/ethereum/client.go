package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/textileio/go-nftlookup/pkg/nft"
)

// Client is the Ethereum implementation of nft.Reader.
type Client struct {
	backend bind.ContractCaller
}

var _ nft.Reader = (*Client)(nil)

// NewClient creates a new Client. Calls are made against the latest block.
func NewClient(backend bind.ContractCaller) *Client {
	return &Client{backend: backend}
}

// OwnerOf implements nft.Reader.
func (c *Client) OwnerOf(ctx context.Context, contract common.Address, tokenID *big.Int) (common.Address, error) {
	owner, err := ownerOf(&bind.CallOpts{Context: ctx}, c.backend, contract, tokenID)
	if err != nil {
		return common.Address{}, fmt.Errorf("calling ownerOf: %w", err)
	}
	return owner, nil
}

// TokenURI implements nft.Reader.
func (c *Client) TokenURI(ctx context.Context, contract common.Address, tokenID *big.Int) (string, error) {
	uri, err := tokenURI(&bind.CallOpts{Context: ctx}, c.backend, contract, tokenID)
	if err != nil {
		return "", fmt.Errorf("calling tokenURI: %w", err)
	}
	return uri, nil
}
