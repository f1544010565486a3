package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/textileio/go-nftlookup/pkg/nft"
	"github.com/textileio/go-nftlookup/pkg/nft/impl/ethereum"
	"golang.org/x/sync/errgroup"
)

var nftCmd = &cobra.Command{
	Use:   "nft",
	Short: "Offers ERC-721 read calls",
	Long:  `Offers ownerOf and tokenURI read calls to an ERC-721 contract`,
	Args:  cobra.ExactArgs(1),
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query owner and token URI of a token",
	Long:  `Query owner and token URI of a token with a pair of concurrent eth_call requests`,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		contract, tokenID, err := tokenFlags(cmd)
		if err != nil {
			return err
		}
		gatewayEndpoint, err := cmd.Flags().GetString("gateway")
		if err != nil {
			return errors.New("failed to parse gateway")
		}
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return errors.New("failed to parse timeout")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		conn, err := ethclient.DialContext(ctx, gatewayEndpoint)
		if err != nil {
			return errors.Wrap(err, "dial")
		}
		defer conn.Close()
		client := ethereum.NewClient(conn)

		var owner, uri string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			addr, err := client.OwnerOf(gctx, contract, tokenID)
			if err != nil {
				return errors.Wrap(err, "owner")
			}
			owner = addr.Hex()
			return nil
		})
		g.Go(func() error {
			var err error
			if uri, err = client.TokenURI(gctx, contract, tokenID); err != nil {
				return errors.Wrap(err, "token uri")
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return errors.Wrapf(err, "querying token %s of %s", tokenID, contract.Hex())
		}

		fmt.Printf("owner: %s\n", owner)
		fmt.Printf("tokenURI: %s\n", uri)
		return nil
	},
}

var calldataCmd = &cobra.Command{
	Use:   "calldata",
	Short: "Print the eth_call payloads of a token lookup",
	Long:  `Print the hex encoded ownerOf and tokenURI call data sent for a token lookup`,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		contract, tokenID, err := tokenFlags(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("to: %s\n", contract.Hex())
		for _, fragment := range []struct {
			method string
			json   string
		}{
			{method: "ownerOf", json: ethereum.OwnerOfABI},
			{method: "tokenURI", json: ethereum.TokenURIABI},
		} {
			parsed, err := abi.JSON(strings.NewReader(fragment.json))
			if err != nil {
				return errors.Wrapf(err, "parsing %s abi", fragment.method)
			}
			data, err := parsed.Pack(fragment.method, tokenID)
			if err != nil {
				return errors.Wrapf(err, "packing %s", fragment.method)
			}
			fmt.Printf("%s: 0x%s\n", fragment.method, hex.EncodeToString(data))
		}
		return nil
	},
}

func tokenFlags(cmd *cobra.Command) (contract common.Address, tokenID *big.Int, err error) {
	rawContract, err := cmd.Flags().GetString("contract-address")
	if err != nil {
		return common.Address{}, nil, errors.New("failed to parse contract-address")
	}
	rawTokenID, err := cmd.Flags().GetString("token-id")
	if err != nil {
		return common.Address{}, nil, errors.New("failed to parse token-id")
	}

	if contract, err = nft.ParseContractAddress(rawContract); err != nil {
		return common.Address{}, nil, errors.Wrap(err, "contract-address")
	}
	if tokenID, err = nft.ParseTokenID(rawTokenID); err != nil {
		return common.Address{}, nil, errors.Wrap(err, "token-id")
	}
	return contract, tokenID, nil
}
