package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/dmitrymomot/handlekit/handler"
	"github.com/dmitrymomot/handlekit/pkg/handle"
	"github.com/dmitrymomot/handlekit/pkg/logger"
	"github.com/dmitrymomot/handlekit/pkg/qrcode"
	"github.com/dmitrymomot/handlekit/pkg/ratelimiter"
	"github.com/dmitrymomot/handlekit/pkg/validator"
)

var (
	errUnknownPlatform = handler.NewHTTPError(http.StatusBadRequest, "unknown_platform")
	errInvalidHandle   = handler.NewHTTPError(http.StatusBadRequest, "invalid_qr_request")
)

// validHandle accepts anything Compose can produce, with or without "@".
var validHandle = regexp.MustCompile(`^@?[a-zA-Z0-9_]{1,32}$`)

type suggestRequest struct {
	Name      string   `query:"name" json:"name"`
	Salt      *int64   `query:"salt" json:"salt,omitempty"`
	Platforms []string `query:"platform" json:"-"`
}

type qrRequest struct {
	Platform string `path:"platform" query:"-"`
	Handle   string `path:"handle" query:"-"`
	Size     int    `path:"-" query:"size"`
}

// apiResult is the data payload of GET /api/suggestions.
type apiResult struct {
	Name        string              `json:"name"`
	Normalized  string              `json:"normalized"`
	Salt        int64               `json:"salt"`
	Suggestions []handle.Suggestion `json:"suggestions"`
}

type handlers struct {
	log    *slog.Logger
	now    func() time.Time
	qrSize int

	limiter    *ratelimiter.Bucket
	trustProxy bool
	checks     []func(context.Context) error
}

// salt returns the requested salt, or a fresh one from the clock.
func (h *handlers) salt(req suggestRequest) int64 {
	if req.Salt != nil {
		return *req.Salt
	}
	return handle.SaltAt(h.now())
}

func (h *handlers) build(ctx handler.Context, req suggestRequest) listView {
	salt := h.salt(req)
	v := listView{
		Name:        req.Name,
		Salt:        salt,
		Suggestions: handle.Generate(req.Name, salt),
	}
	if req.Name != "" {
		h.log.DebugContext(ctx, "suggestions generated",
			logger.Salt(salt),
			logger.Suggestions(len(v.Suggestions)),
		)
	}
	return v
}

func (h *handlers) index(ctx handler.Context, req suggestRequest) handler.Response {
	return handler.Templ(page(h.build(ctx, req)))
}

func (h *handlers) suggestions(ctx handler.Context, req suggestRequest) handler.Response {
	return handler.Templ(suggestionList(h.build(ctx, req)), handler.WithTarget("#suggestions"))
}

func (h *handlers) api(ctx handler.Context, req suggestRequest) handler.Response {
	if err := validator.Apply(
		validator.EachInListCaseInsensitive("platform", req.Platforms, handle.PlatformKeys()),
	); err != nil {
		return handler.JSONError(errors.Join(errUnknownPlatform, err))
	}

	salt := h.salt(req)
	out := handle.GenerateFor(req.Name, salt, req.Platforms...)
	if out == nil {
		out = []handle.Suggestion{}
	}

	return handler.JSON(apiResult{
		Name:        req.Name,
		Normalized:  handle.Normalize(req.Name),
		Salt:        salt,
		Suggestions: out,
	})
}

func (h *handlers) qr(ctx handler.Context, req qrRequest) handler.Response {
	p, ok := handle.LookupPlatform(req.Platform)
	if !ok {
		return handler.Error(handler.ErrNotFound)
	}
	if err := validator.Apply(
		validator.Matches("handle", req.Handle, validHandle, "social handle"),
		validator.RangeNum("size", req.Size, 0, qrcode.MaxSize),
	); err != nil {
		return handler.Error(errors.Join(errInvalidHandle, err))
	}

	size := req.Size
	if size <= 0 {
		size = h.qrSize
	}

	png, err := qrcode.Profile(p, req.Handle, size)
	if err != nil {
		if errors.Is(err, qrcode.ErrEmptyContent) {
			return handler.Error(errInvalidHandle)
		}
		return handler.Error(err)
	}

	h.log.DebugContext(ctx, "qr rendered", logger.Platform(p.Key))
	return handler.Blob("image/png", png, handler.WithCacheControl("public, max-age=86400"))
}
