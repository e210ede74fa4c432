package binder

import (
	"fmt"
	"net/http"
)

// Path binds `path:` tagged fields using a router specific extractor, such
// as chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: nil extractor", ErrInvalidPath)
		}
		lookup := func(name string) []string {
			if s := extractor(r, name); s != "" {
				return []string{s}
			}
			return nil
		}
		return bindValues(v, "path", lookup, ErrInvalidPath)
	}
}
