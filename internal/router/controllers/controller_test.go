package controllers

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/textileio/go-nftlookup/buildinfo"
	"github.com/textileio/go-nftlookup/internal/lookup"
	"github.com/textileio/go-nftlookup/mocks"
)

var (
	defaultContract = common.HexToAddress("0x0483b0dfc6c78062b9e999a82ffb795925381415")
	holder          = common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

	defaults = lookup.Query{
		ContractAddress: "0x0483b0dfc6c78062b9e999a82ffb795925381415",
		TokenID:         "1",
	}
)

func TestPageRendersResolvedToken(t *testing.T) {
	t.Parallel()

	reader := mocks.NewReader(t)
	reader.On("OwnerOf", mock.Anything, defaultContract, tokenID(1)).Return(holder, nil).Once()
	reader.On("TokenURI", mock.Anything, defaultContract, tokenID(1)).Return("ipfs://bafy/1.json", nil).Once()

	ctrl := NewController(reader, defaults, 5*time.Second)
	rr := httptest.NewRecorder()
	ctrl.Page(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-type"))

	body := rr.Body.String()
	require.Contains(t, body, `value="0x0483b0dfc6c78062b9e999a82ffb795925381415"`)
	require.Contains(t, body, `<span id="owner">`+holder.Hex()+`</span>`)
	require.Contains(t, body, `href="ipfs://bafy/1.json" target="_blank" rel="noopener noreferrer">ipfs://bafy/1.json</a>`)
	require.NotContains(t, body, "Loading...")
}

func TestPageUsesQueryParameters(t *testing.T) {
	t.Parallel()

	other := common.HexToAddress("0xB0Cf943Cf94E7B6A2657D15af41c5E06c2BFEA3D")
	reader := mocks.NewReader(t)
	reader.On("OwnerOf", mock.Anything, other, tokenID(42)).Return(holder, nil).Once()
	reader.On("TokenURI", mock.Anything, other, tokenID(42)).Return("https://example.com/42", nil).Once()

	ctrl := NewController(reader, defaults, 5*time.Second)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?contract="+other.Hex()+"&tokenId=42", nil)
	ctrl.Page(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, `value="`+other.Hex()+`"`)
	require.Contains(t, body, `value="42"`)
	require.Contains(t, body, `href="https://example.com/42"`)
}

func TestPageMalformedInputShowsLoading(t *testing.T) {
	t.Parallel()

	// No expectations: the reader must not be called for unparsable input.
	reader := mocks.NewReader(t)

	ctrl := NewController(reader, defaults, 5*time.Second)
	rr := httptest.NewRecorder()
	ctrl.Page(rr, httptest.NewRequest(http.MethodGet, "/?contract=0xnotanaddress&tokenId=abc", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Equal(t, 2, strings.Count(body, "Loading..."))
	require.Contains(t, body, `value="0xnotanaddress"`)
	require.NotContains(t, strings.ToLower(body), "error")
}

func TestPageFailedQueryShowsLoading(t *testing.T) {
	t.Parallel()

	reader := mocks.NewReader(t)
	reader.On("OwnerOf", mock.Anything, defaultContract, tokenID(1)).
		Return(common.Address{}, errors.New("execution reverted")).Once()
	reader.On("TokenURI", mock.Anything, defaultContract, tokenID(1)).Return("ipfs://bafy/1.json", nil).Once()

	ctrl := NewController(reader, defaults, 5*time.Second)
	rr := httptest.NewRecorder()
	ctrl.Page(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, `<span id="owner" class="loading">Loading...</span>`)
	require.Contains(t, body, ">ipfs://bafy/1.json</a>")
}

func TestPageRenderTimeout(t *testing.T) {
	t.Parallel()

	block := func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}
	reader := mocks.NewReader(t)
	reader.On("OwnerOf", mock.Anything, defaultContract, tokenID(1)).
		Run(block).Return(common.Address{}, context.Canceled).Maybe()
	reader.On("TokenURI", mock.Anything, defaultContract, tokenID(1)).
		Run(block).Return("", context.Canceled).Maybe()

	ctrl := NewController(reader, defaults, 50*time.Millisecond)
	rr := httptest.NewRecorder()
	start := time.Now()
	ctrl.Page(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Less(t, time.Since(start), 5*time.Second)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 2, strings.Count(rr.Body.String(), "Loading..."))
}

func TestPageRefreshLeadsToDefaults(t *testing.T) {
	t.Parallel()

	reader := mocks.NewReader(t)
	ctrl := NewController(reader, defaults, 5*time.Second)
	rr := httptest.NewRecorder()
	ctrl.Page(rr, httptest.NewRequest(http.MethodGet, "/?contract=bad", nil))

	require.Contains(t, rr.Body.String(), `<form method="get" action="/">
    <button type="submit">Refresh</button>`)
}

func TestPageUnsafeURIIsNotLinked(t *testing.T) {
	t.Parallel()

	reader := mocks.NewReader(t)
	reader.On("OwnerOf", mock.Anything, defaultContract, tokenID(1)).Return(holder, nil).Once()
	reader.On("TokenURI", mock.Anything, defaultContract, tokenID(1)).Return("javascript:alert(1)", nil).Once()

	ctrl := NewController(reader, defaults, 5*time.Second)
	rr := httptest.NewRecorder()
	ctrl.Page(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rr.Body.String()
	require.NotContains(t, body, `href="javascript:alert(1)"`)
	require.Contains(t, body, ">javascript:alert(1)</a>")
}

func TestLookup(t *testing.T) {
	t.Parallel()

	reader := mocks.NewReader(t)
	reader.On("OwnerOf", mock.Anything, defaultContract, tokenID(7)).Return(holder, nil).Once()
	reader.On("TokenURI", mock.Anything, defaultContract, tokenID(7)).Return("ipfs://bafy/7.json", nil).Once()

	ctrl := NewController(reader, defaults, 5*time.Second)
	rr := httptest.NewRecorder()
	ctrl.Lookup(rr, httptest.NewRequest(http.MethodGet, "/api/v1/lookup?tokenId=7", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-type"))
	require.JSONEq(t, `{
		"contractAddress": "0x0483b0dfc6c78062b9e999a82ffb795925381415",
		"tokenId": "7",
		"owner": "`+holder.Hex()+`",
		"tokenURI": "ipfs://bafy/7.json"
	}`, rr.Body.String())
}

func TestLookupUnresolvedIsNull(t *testing.T) {
	t.Parallel()

	reader := mocks.NewReader(t)
	reader.On("OwnerOf", mock.Anything, defaultContract, tokenID(1)).
		Return(common.Address{}, errors.New("execution reverted")).Once()
	reader.On("TokenURI", mock.Anything, defaultContract, tokenID(1)).
		Return("", errors.New("execution reverted")).Once()

	ctrl := NewController(reader, defaults, 5*time.Second)
	rr := httptest.NewRecorder()
	ctrl.Lookup(rr, httptest.NewRequest(http.MethodGet, "/api/v1/lookup", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{
		"contractAddress": "0x0483b0dfc6c78062b9e999a82ffb795925381415",
		"tokenId": "1",
		"owner": null,
		"tokenURI": null
	}`, rr.Body.String())
}

func TestVersion(t *testing.T) {
	t.Parallel()

	ctrl := NewController(mocks.NewReader(t), defaults, time.Second)
	rr := httptest.NewRecorder()
	ctrl.Version(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var summary buildinfo.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	require.Equal(t, buildinfo.GetSummary(), summary)
}

func tokenID(n int64) interface{} {
	want := big.NewInt(n)
	return mock.MatchedBy(func(id *big.Int) bool { return id.Cmp(want) == 0 })
}
