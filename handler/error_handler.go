package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/handlekit/binder"
	"github.com/dmitrymomot/handlekit/pkg/logger"
	"github.com/dmitrymomot/handlekit/pkg/requestid"
	"github.com/dmitrymomot/handlekit/pkg/validator"
)

// ErrorPageParams is passed to the error page component.
type ErrorPageParams struct {
	StatusCode int
	Message    string
	RequestID  string
}

// ErrorToastParams is passed to the datastar toast component.
type ErrorToastParams struct {
	Message   string
	Type      string // "warning" or "error"
	RequestID string
}

// ErrorHandlerConfig selects how errors are rendered.
type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string // default "#toasts"
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Key        string
	Message    string
}

func classifyError(err error) ErrorInfo {
	var httpErr HTTPError
	isHTTP := errors.As(err, &httpErr)

	// Validation failures are 400 unless an HTTPError in the chain says
	// otherwise; their message lists the failed fields.
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		info := ErrorInfo{StatusCode: http.StatusBadRequest, Key: ErrValidation.Key, Message: verrs.Error()}
		if isHTTP {
			info.StatusCode, info.Key = httpErr.Code, httpErr.Key
		}
		return info
	}

	switch {
	case isHTTP:
		return ErrorInfo{StatusCode: httpErr.Code, Key: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrorInfo{StatusCode: http.StatusUnsupportedMediaType, Key: ErrUnsupportedMediaType.Key, Message: err.Error()}
	case errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, binder.ErrInvalidPath),
		errors.Is(err, binder.ErrInvalidSignals):
		return ErrorInfo{StatusCode: http.StatusBadRequest, Key: ErrBadRequest.Key, Message: err.Error()}
	}
	return ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Key:        ErrInternalServerError.Key,
		Message:    "An error occurred processing your request",
	}
}

func toastType(status int) string {
	if status < http.StatusInternalServerError {
		return "warning"
	}
	return "error"
}

// NewErrorHandler logs every error and renders it as an error page, or as a
// toast patch for datastar requests. Missing components fall back to plain
// text.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r, w := ctx.Request(), ctx.ResponseWriter()
		info := classifyError(err)
		reqID := requestid.FromContext(r.Context())

		level := slog.LevelError
		if info.StatusCode < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		var resp Response
		switch {
		case IsDataStar(r) && cfg.ErrorToast != nil:
			resp = Templ(cfg.ErrorToast(ErrorToastParams{
				Message:   info.Message,
				Type:      toastType(info.StatusCode),
				RequestID: reqID,
			}), WithTarget(cfg.ToastTarget), WithPatchMode(PatchPrepend))
		case !IsDataStar(r) && cfg.ErrorPage != nil:
			resp = TemplStatus(info.StatusCode, cfg.ErrorPage(ErrorPageParams{
				StatusCode: info.StatusCode,
				Message:    info.Message,
				RequestID:  reqID,
			}))
		default:
			http.Error(w, info.Message, info.StatusCode)
			return
		}

		if rerr := resp.Render(w, r); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error", logger.RequestID(reqID), logger.Error(rerr))
		}
	}
}

// JSONErrorHandler renders every error with JSONError.
func JSONErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("api"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		log.WarnContext(r.Context(), "api error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.String("path", r.URL.Path),
		)
		if rerr := JSONError(err).Render(ctx.ResponseWriter(), r); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render api error", logger.Error(rerr))
		}
	}
}
