package lookup

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/textileio/go-nftlookup/pkg/nft"
	"go.uber.org/atomic"
)

// Query is the user input of a page view, kept exactly as typed.
type Query struct {
	ContractAddress string
	TokenID         string
}

// State is a snapshot of a page view. Owner and TokenURI are nil until their query resolves;
// a failed query never resolves.
type State struct {
	Query
	Owner      *string
	TokenURI   *string
	Generation uint64
}

// Resolved reports whether both queries of the current generation resolved.
func (s State) Resolved() bool {
	return s.Owner != nil && s.TokenURI != nil
}

// Controller holds the state of a single page view. Every change of the query parameters issues
// a new pair of ownerOf and tokenURI queries; responses of a pair issued for older parameters
// are discarded.
type Controller struct {
	reader   nft.Reader
	defaults Query

	ctx    context.Context
	cancel context.CancelFunc

	generation atomic.Uint64

	mu       sync.Mutex
	query    Query
	owner    *string
	tokenURI *string
	settled  chan struct{}
}

// New returns a controller holding the defaults. No query is issued until Mount.
// Queries run until they finish, ctx is done or the controller is closed.
func New(ctx context.Context, reader nft.Reader, defaults Query) *Controller {
	ctx, cancel := context.WithCancel(ctx)

	settled := make(chan struct{})
	close(settled)

	return &Controller{
		reader:   reader,
		defaults: defaults,
		ctx:      ctx,
		cancel:   cancel,
		query:    defaults,
		settled:  settled,
	}
}

// Mount sets the query parameters and issues the first pair of queries.
func (c *Controller) Mount(q Query) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = q
	c.refetchLocked()
}

// Reset reinitializes the view with the default parameters.
func (c *Controller) Reset() {
	c.Mount(c.defaults)
}

// SetContractAddress changes the contract address. An unchanged value issues no queries.
func (c *Controller) SetContractAddress(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.query.ContractAddress == addr {
		return
	}
	c.query.ContractAddress = addr
	c.refetchLocked()
}

// SetTokenID changes the token id. An unchanged value issues no queries.
func (c *Controller) SetTokenID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.query.TokenID == id {
		return
	}
	c.query.TokenID = id
	c.refetchLocked()
}

// State returns a snapshot of the view.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Query:      c.query,
		Owner:      c.owner,
		TokenURI:   c.tokenURI,
		Generation: c.generation.Load(),
	}
}

// Generation returns the generation of the latest pair of queries. Zero means not mounted.
func (c *Controller) Generation() uint64 {
	return c.generation.Load()
}

// Wait blocks until both queries of the pair current at call time settled, or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	settled := c.settled
	c.mu.Unlock()

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the queries in flight. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.cancel()
}

func (c *Controller) refetchLocked() {
	gen := c.generation.Inc()
	c.owner, c.tokenURI = nil, nil
	c.settled = make(chan struct{})

	go c.fetch(gen, c.query, c.settled)
}

func (c *Controller) fetch(gen uint64, q Query, settled chan struct{}) {
	defer close(settled)

	logger := zerolog.Ctx(c.ctx).With().
		Uint64("generation", gen).
		Str("contractAddress", q.ContractAddress).
		Str("tokenId", q.TokenID).
		Logger()
	logger.Debug().Msg("querying token")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		owner, err := c.ownerOf(q)
		if err != nil {
			logger.Warn().Err(err).Msg("owner left unresolved")
			return
		}
		c.store(gen, logger, func() { c.owner = &owner })
	}()
	go func() {
		defer wg.Done()
		uri, err := c.tokenURIOf(q)
		if err != nil {
			logger.Warn().Err(err).Msg("token uri left unresolved")
			return
		}
		c.store(gen, logger, func() { c.tokenURI = &uri })
	}()
	wg.Wait()
}

func (c *Controller) ownerOf(q Query) (string, error) {
	contract, err := nft.ParseContractAddress(q.ContractAddress)
	if err != nil {
		return "", fmt.Errorf("parsing contract address: %w", err)
	}
	tokenID, err := nft.ParseTokenID(q.TokenID)
	if err != nil {
		return "", fmt.Errorf("parsing token id: %w", err)
	}

	owner, err := c.reader.OwnerOf(c.ctx, contract, tokenID)
	if err != nil {
		return "", err
	}
	return owner.Hex(), nil
}

func (c *Controller) tokenURIOf(q Query) (string, error) {
	contract, err := nft.ParseContractAddress(q.ContractAddress)
	if err != nil {
		return "", fmt.Errorf("parsing contract address: %w", err)
	}
	tokenID, err := nft.ParseTokenID(q.TokenID)
	if err != nil {
		return "", fmt.Errorf("parsing token id: %w", err)
	}

	return c.reader.TokenURI(c.ctx, contract, tokenID)
}

// store applies a resolved result unless a newer pair was issued since gen.
func (c *Controller) store(gen uint64, logger zerolog.Logger, apply func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current := c.generation.Load(); current != gen {
		logger.Debug().Uint64("current", current).Msg("discarding stale result")
		return
	}
	apply()
}
