package controllers

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// LookupResponse is the body of GET /api/v1/lookup. Owner and TokenURI are null
// while unresolved.
type LookupResponse struct {
	ContractAddress string  `json:"contractAddress"`
	TokenID         string  `json:"tokenId"`
	Owner           *string `json:"owner"`
	TokenURI        *string `json:"tokenURI"`
}

// Lookup handles the GET /api/v1/lookup?contract={address}&tokenId={id} call.
func (c *Controller) Lookup(rw http.ResponseWriter, r *http.Request) {
	state := c.lookupState(r)

	body, err := json.Marshal(LookupResponse{
		ContractAddress: state.ContractAddress,
		TokenID:         state.TokenID,
		Owner:           state.Owner,
		TokenURI:        state.TokenURI,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("encoding lookup response")
		writeServiceError(rw, http.StatusInternalServerError, "Failed to encode lookup")
		return
	}

	rw.Header().Set("Content-type", "application/json")
	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write(body)
}
