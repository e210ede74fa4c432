// Package handler provides typed HTTP handlers for the handlekit web UI and
// JSON API.
//
// A HandlerFunc receives a bound request struct and returns a Response.
// Wrap turns it into an http.HandlerFunc, running the configured binders,
// decorators and error handler:
//
//	type suggestRequest struct {
//		Name string `query:"name" json:"name"`
//	}
//
//	func suggest(ctx handler.Context, req suggestRequest) handler.Response {
//		return handler.JSON(handle.Generate(req.Name, handle.SaltAt(time.Now())))
//	}
//
//	r.Get("/api/suggestions", handler.Wrap(suggest,
//		handler.WithBinders[handler.Context, suggestRequest](binder.Query()),
//	))
//
// # Responses
//
//	handler.JSON(v)                    // {"data": v}
//	handler.JSONError(err)             // {"error": {...}} with status from HTTPError
//	handler.Templ(c, WithTarget("#x")) // HTML, or a datastar patch for datastar requests
//	handler.TemplPartial(part, full)   // part for datastar, full page otherwise
//	handler.Blob("image/png", data)    // raw bytes
//
// # Errors
//
// Handlers signal HTTP failures with HTTPError values. NewErrorHandler renders
// them as an error page for regular requests and as a toast patch for
// datastar requests; binding failures surface as 400 Bad Request.
package handler
