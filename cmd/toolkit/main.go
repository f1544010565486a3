package main

import (
	"time"

	"github.com/spf13/cobra"
)

var cliName = "toolkit"

var rootCmd = &cobra.Command{
	Use:   cliName,
	Short: "toolkit is CLI for NFT lookup developers",
	Long:  `toolkit is CLI for NFT lookup developers executing mundane tasks`,
	Args:  cobra.ExactArgs(0),
}

func main() {
	rootCmd.Execute() //nolint
}

func init() {
	rootCmd.AddCommand(nftCmd)

	nftCmd.PersistentFlags().String("contract-address", "0x0483b0dfc6c78062b9e999a82ffb795925381415", "the ERC-721 contract address")
	nftCmd.PersistentFlags().String("token-id", "1", "the token id in base 10")
	nftCmd.AddCommand(queryCmd)
	nftCmd.AddCommand(calldataCmd)

	queryCmd.Flags().String("gateway", "https://eth-mainnet.public.blastapi.io", "URL of an Ethereum node API (i.e: Alchemy/Infura)")
	queryCmd.Flags().Duration("timeout", 30*time.Second, "max duration of the pair of queries")
}
