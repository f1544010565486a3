package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	"github.com/textileio/go-nftlookup/buildinfo"
	"github.com/textileio/go-nftlookup/internal/lookup"
	"github.com/textileio/go-nftlookup/internal/router"
	"github.com/textileio/go-nftlookup/pkg/logging"
	"github.com/textileio/go-nftlookup/pkg/metrics"
	"github.com/textileio/go-nftlookup/pkg/nft/impl/ethereum"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg := setupConfig()
	logging.SetupLogger(buildinfo.GitCommit, cfg.Log.Debug, cfg.Log.Human)

	if err := metrics.SetupInstrumentation(":"+cfg.Metrics.Port, "nftlookup"); err != nil {
		log.Fatal().Err(err).Str("port", cfg.Metrics.Port).Msg("could not setup instrumentation")
	}

	renderTimeout := parseDuration("render timeout", cfg.HTTP.RenderTimeout)
	rateLimInterval := parseDuration("rate limit interval", cfg.HTTP.RateLimInterval)
	requestTimeout := parseDuration("gateway request timeout", cfg.Gateway.RequestTimeout)

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   requestTimeout,
	}
	rpcClient, err := rpc.DialHTTPWithClient(cfg.Gateway.EthEndpoint, httpClient)
	if err != nil {
		log.Fatal().
			Err(err).
			Str("ethEndpoint", cfg.Gateway.EthEndpoint).
			Msg("failed to connect to ethereum endpoint")
	}
	conn := ethclient.NewClient(rpcClient)
	defer conn.Close()

	reader, err := ethereum.NewInstrumentedClient(ethereum.NewClient(conn))
	if err != nil {
		log.Fatal().Err(err).Msg("instrumenting nft reader")
	}

	rtr, err := router.ConfiguredRouter(reader, router.Config{
		Defaults: lookup.Query{
			ContractAddress: cfg.Defaults.ContractAddress,
			TokenID:         cfg.Defaults.TokenID,
		},
		RenderTimeout:   renderTimeout,
		MaxRPI:          cfg.HTTP.MaxRequestPerInterval,
		RateLimInterval: rateLimInterval,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuring router")
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           rtr.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      renderTimeout + 10*time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	go func() {
		log.Info().Str("port", cfg.HTTP.Port).Str("ethEndpoint", cfg.Gateway.EthEndpoint).Msg("serving nft lookup")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("port", cfg.HTTP.Port).Msg("could not start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutting down http server")
	}
	log.Info().Msg("daemon closed")
}

func parseDuration(name, value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s has invalid format: %s", name, value)
	}
	return d
}
