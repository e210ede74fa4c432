package binder

import (
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// SignalsParam is the query parameter datastar uses to send signals on GET.
const SignalsParam = "datastar"

// Signals decodes datastar signals into the `json:` tagged fields of v.
// Only GET requests carrying the datastar query parameter apply.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Method != http.MethodGet || !r.URL.Query().Has(SignalsParam) {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignals, err)
		}
		return nil
	}
}
