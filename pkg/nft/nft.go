package nft

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

var (
	// ErrInvalidAddress is returned when a contract address is not a 0x prefixed 20 bytes hex string.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrAddressChecksum is returned when a mixed-case address fails the EIP-55 checksum.
	ErrAddressChecksum = errors.New("invalid address checksum")
	// ErrInvalidTokenID is returned when a token id is not an unsigned 256 bits integer.
	ErrInvalidTokenID = errors.New("invalid token id")
)

// Reader performs the read-only calls of an ERC-721 contract with the metadata extension.
type Reader interface {
	// OwnerOf returns the address currently holding the token.
	OwnerOf(ctx context.Context, contract common.Address, tokenID *big.Int) (common.Address, error)
	// TokenURI returns the pointer to the token's metadata document.
	TokenURI(ctx context.Context, contract common.Address, tokenID *big.Int) (string, error)
}

// ParseContractAddress coerces user input into a contract address.
// Mixed-case input must carry a valid EIP-55 checksum.
func ParseContractAddress(s string) (common.Address, error) {
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%q: %w", s, ErrInvalidAddress)
	}

	addr := common.HexToAddress(s)
	digits := s[2:]
	if digits != strings.ToLower(digits) && digits != strings.ToUpper(digits) && addr.Hex() != s {
		return common.Address{}, fmt.Errorf("%q: %w", s, ErrAddressChecksum)
	}

	return addr, nil
}

// ParseTokenID coerces user input into a token id. Blank input is token 0.
func ParseTokenID(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}

	id, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%q is not a base 10 integer: %w", s, ErrInvalidTokenID)
	}
	if id.Sign() < 0 || id.Cmp(math.MaxBig256) > 0 {
		return nil, fmt.Errorf("%q is out of the uint256 range: %w", s, ErrInvalidTokenID)
	}

	return id, nil
}
