package controllers

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/textileio/go-nftlookup/buildinfo"
	"github.com/textileio/go-nftlookup/internal/lookup"
	"github.com/textileio/go-nftlookup/internal/router/middlewares"
	"github.com/textileio/go-nftlookup/pkg/errors"
	"github.com/textileio/go-nftlookup/pkg/nft"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Controller defines the HTTP handlers of the lookup page and API.
type Controller struct {
	reader        nft.Reader
	defaults      lookup.Query
	renderTimeout time.Duration
}

// NewController creates a new Controller. Every request waits at most renderTimeout for
// the lookup to settle before rendering what is resolved.
func NewController(reader nft.Reader, defaults lookup.Query, renderTimeout time.Duration) *Controller {
	return &Controller{
		reader:        reader,
		defaults:      defaults,
		renderTimeout: renderTimeout,
	}
}

// Version returns git information of the running binary.
func (c *Controller) Version(rw http.ResponseWriter, _ *http.Request) {
	rw.Header().Set("Content-type", "application/json")
	rw.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(rw).Encode(buildinfo.GetSummary())
}

// lookupState mounts a page view for the request parameters and returns its state once the
// pair of queries settled, the request is gone or the render timeout elapsed.
func (c *Controller) lookupState(r *http.Request) lookup.State {
	ctx := r.Context()

	view := lookup.New(ctx, c.reader, c.defaults)
	defer view.Close()
	view.Mount(queryFromRequest(r, c.defaults))

	waitCtx, cancel := context.WithTimeout(ctx, c.renderTimeout)
	defer cancel()
	if err := view.Wait(waitCtx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("rendering before the lookup settled")
	}

	return view.State()
}

// queryFromRequest reads the contract and tokenId query string parameters. An absent
// parameter takes its default; a present but empty one is kept as typed.
func queryFromRequest(r *http.Request, defaults lookup.Query) lookup.Query {
	q := defaults
	values := r.URL.Query()
	if values.Has("contract") {
		q.ContractAddress = values.Get("contract")
	}
	if values.Has("tokenId") {
		q.TokenID = values.Get("tokenId")
	}
	return q
}

func writeServiceError(rw http.ResponseWriter, status int, message string) {
	rw.Header().Set("Content-type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(errors.ServiceError{
		Message: message,
		TraceID: rw.Header().Get(middlewares.TraceIDHeader),
	})
}
