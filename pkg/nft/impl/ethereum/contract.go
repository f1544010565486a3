package ethereum

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// OwnerOfABI is the single-function ABI fragment of ERC-721 ownerOf(uint256).
const OwnerOfABI = `[{
	"inputs": [{"internalType": "uint256", "name": "tokenId", "type": "uint256"}],
	"name": "ownerOf",
	"outputs": [{"internalType": "address", "name": "", "type": "address"}],
	"stateMutability": "view",
	"type": "function"
}]`

// TokenURIABI is the single-function ABI fragment of ERC-721 metadata tokenURI(uint256).
const TokenURIABI = `[{
	"inputs": [{"internalType": "uint256", "name": "tokenId", "type": "uint256"}],
	"name": "tokenURI",
	"outputs": [{"internalType": "string", "name": "", "type": "string"}],
	"stateMutability": "view",
	"type": "function"
}]`

var (
	ownerOfFragment  = mustParseABI(OwnerOfABI)
	tokenURIFragment = mustParseABI(TokenURIABI)
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("parsing abi fragment: %s", err))
	}
	return parsed
}

// ownerOf performs an eth_call of ownerOf(tokenId) against the contract.
func ownerOf(opts *bind.CallOpts, caller bind.ContractCaller, contract common.Address, tokenID *big.Int) (
	common.Address, error,
) {
	bound := bind.NewBoundContract(contract, ownerOfFragment, caller, nil, nil)

	var out []interface{}
	if err := bound.Call(opts, &out, "ownerOf", tokenID); err != nil {
		return common.Address{}, err
	}
	if len(out) != 1 {
		return common.Address{}, fmt.Errorf("unexpected number of return values: %d", len(out))
	}

	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// tokenURI performs an eth_call of tokenURI(tokenId) against the contract.
func tokenURI(opts *bind.CallOpts, caller bind.ContractCaller, contract common.Address, tokenID *big.Int) (
	string, error,
) {
	bound := bind.NewBoundContract(contract, tokenURIFragment, caller, nil, nil)

	var out []interface{}
	if err := bound.Call(opts, &out, "tokenURI", tokenID); err != nil {
		return "", err
	}
	if len(out) != 1 {
		return "", fmt.Errorf("unexpected number of return values: %d", len(out))
	}

	return *abi.ConvertType(out[0], new(string)).(*string), nil
}
