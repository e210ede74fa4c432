package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures the datastar patch of a templ response.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the patch is applied to.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how datastar merges the patch into the target.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

type templResponse struct {
	partial templ.Component
	full    templ.Component
	status  int
	options []TemplOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders c as HTML, or as a datastar patch for datastar requests.
func Templ(c templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: c, full: c, options: opts}
}

// TemplPartial patches partial for datastar requests and renders full
// otherwise.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}

// TemplStatus renders c as HTML with an explicit status code. Datastar
// requests get a patch; SSE responses always carry 200.
func TemplStatus(status int, c templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: c, full: c, status: status, options: opts}
}
