// Package binder fills request structs from query strings, urlencoded forms,
// router path parameters and datastar signals.
//
// Each binder reads only its own struct tag (`query:`, `form:`, `path:`) so several
// can be chained by handler.Wrap. A binder that does not apply to a request
// returns ErrBinderNotApplicable and is skipped.
//
//	type suggestRequest struct {
//		Name      string   `query:"name" form:"name" json:"name"`
//		Salt      *int64   `query:"salt" form:"salt" json:"salt"`
//		Platforms []string `query:"platform"`
//	}
//
// Supported field kinds: string, signed and unsigned integers, floats, bool,
// pointers to those, and slices of those. Slice values may repeat
// (?platform=x&platform=tiktok) or be comma separated (?platform=x,tiktok).
package binder
