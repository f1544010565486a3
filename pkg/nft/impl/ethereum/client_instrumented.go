package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/textileio/go-nftlookup/pkg/metrics"
	"github.com/textileio/go-nftlookup/pkg/nft"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
)

// InstrumentedClient implements an instrumented nft.Reader.
type InstrumentedClient struct {
	reader           nft.Reader
	callCount        instrument.Int64Counter
	latencyHistogram instrument.Int64Histogram
}

var _ nft.Reader = (*InstrumentedClient)(nil)

// NewInstrumentedClient creates a new InstrumentedClient.
func NewInstrumentedClient(reader nft.Reader) (nft.Reader, error) {
	meter := global.MeterProvider().Meter("nftlookup")
	callCount, err := meter.Int64Counter("nftlookup.reader.call.count")
	if err != nil {
		return &InstrumentedClient{}, fmt.Errorf("registering call counter: %s", err)
	}
	latencyHistogram, err := meter.Int64Histogram("nftlookup.reader.call.latency")
	if err != nil {
		return &InstrumentedClient{}, fmt.Errorf("registering latency histogram: %s", err)
	}

	return &InstrumentedClient{reader, callCount, latencyHistogram}, nil
}

// OwnerOf implements nft.Reader.
func (c *InstrumentedClient) OwnerOf(
	ctx context.Context, contract common.Address, tokenID *big.Int,
) (common.Address, error) {
	start := time.Now()
	owner, err := c.reader.OwnerOf(ctx, contract, tokenID)
	c.record(ctx, "OwnerOf", start, err)

	return owner, err
}

// TokenURI implements nft.Reader.
func (c *InstrumentedClient) TokenURI(ctx context.Context, contract common.Address, tokenID *big.Int) (string, error) {
	start := time.Now()
	uri, err := c.reader.TokenURI(ctx, contract, tokenID)
	c.record(ctx, "TokenURI", start, err)

	return uri, err
}

func (c *InstrumentedClient) record(ctx context.Context, method string, start time.Time, err error) {
	latency := time.Since(start).Milliseconds()

	attributes := append([]attribute.KeyValue{
		{Key: "method", Value: attribute.StringValue(method)},
		{Key: "success", Value: attribute.BoolValue(err == nil)},
	}, metrics.BaseAttrs...)

	c.callCount.Add(ctx, 1, attributes...)
	c.latencyHistogram.Record(ctx, latency, attributes...)
}
