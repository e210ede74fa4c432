package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarAcceptHeader is sent by datastar on every backend action.
	DataStarAcceptHeader = "text/event-stream"
	// DataStarQueryParam carries datastar signals on GET requests.
	DataStarQueryParam = "datastar"
)

// Patch modes used by responses in this module. Outer is datastar's default
// and needs no option.
const (
	PatchInner   = datastar.ElementPatchModeInner
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r was issued by a datastar action.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}
