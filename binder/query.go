package binder

import "net/http"

// Query binds `query:` tagged fields from the URL query string.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", fromValues(r.URL.Query()), ErrInvalidQuery)
	}
}
