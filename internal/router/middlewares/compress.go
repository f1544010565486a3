package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
)

// Compress gzips responses when the client accepts it.
func Compress() (mux.MiddlewareFunc, error) {
	wrapper, err := gzhttp.NewWrapper(gzhttp.MinSize(512))
	if err != nil {
		return nil, fmt.Errorf("creating gzip wrapper: %s", err)
	}
	return func(next http.Handler) http.Handler {
		return wrapper(next)
	}, nil
}
