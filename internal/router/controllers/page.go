package controllers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/textileio/go-nftlookup/internal/lookup"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

// linkSchemes are the URI schemes rendered as clickable links. Any other scheme keeps its
// text but the href is left to html/template sanitization.
var linkSchemes = map[string]struct{}{
	"http":  {},
	"https": {},
	"ipfs":  {},
	"ipns":  {},
	"ar":    {},
}

type pageData struct {
	ContractAddress  string
	TokenID          string
	Owner            string
	OwnerResolved    bool
	TokenURI         string
	TokenURIHref     any
	TokenURIResolved bool
}

func newPageData(state lookup.State) pageData {
	data := pageData{
		ContractAddress: state.ContractAddress,
		TokenID:         state.TokenID,
	}
	if state.Owner != nil {
		data.Owner = *state.Owner
		data.OwnerResolved = true
	}
	if state.TokenURI != nil {
		data.TokenURI = *state.TokenURI
		data.TokenURIHref = tokenURIHref(*state.TokenURI)
		data.TokenURIResolved = true
	}
	return data
}

func tokenURIHref(uri string) any {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	if _, ok := linkSchemes[strings.ToLower(u.Scheme)]; ok {
		return template.URL(uri) // nolint
	}
	return uri
}

// Page renders the lookup view for GET /?contract={address}&tokenId={id}.
// Unresolved fields render as loading; failed queries never surface an error.
func (c *Controller) Page(rw http.ResponseWriter, r *http.Request) {
	state := c.lookupState(r)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPageData(state)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("rendering lookup page")
		writeServiceError(rw, http.StatusInternalServerError, "Failed to render page")
		return
	}

	rw.Header().Set("Content-type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(rw)
}
