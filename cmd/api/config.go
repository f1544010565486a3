package main

import (
	"os"

	"github.com/omeid/uconfig"
)

type config struct {
	HTTP struct {
		Port string `default:"8080"` // HTTP port (e.g. 8080)

		RenderTimeout         string `default:"10s"` // Max wait for the lookup before rendering
		RateLimInterval       string `default:"1s"`
		MaxRequestPerInterval uint64 `default:"10"`
	}
	Gateway struct {
		EthEndpoint    string `default:"https://eth-mainnet.public.blastapi.io"`
		RequestTimeout string `default:"30s"`
	}
	Defaults struct {
		ContractAddress string `default:"0x0483b0dfc6c78062b9e999a82ffb795925381415"`
		TokenID         string `default:"1"`
	}
	Metrics struct {
		Port string `default:"9090"`
	}
	Log struct {
		Human bool `default:"false"`
		Debug bool `default:"false"`
	}
}

func setupConfig() *config {
	conf := &config{}

	c, err := uconfig.Classic(&conf, uconfig.Files{})
	if err != nil {
		c.Usage()
		os.Exit(1)
	}

	return conf
}
