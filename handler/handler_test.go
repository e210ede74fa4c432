package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/handlekit/binder"
	"github.com/dmitrymomot/handlekit/handler"
)

type nameRequest struct {
	Name string `query:"name" form:"name" json:"name"`
	Salt int64  `query:"salt" form:"salt" json:"salt"`
}

func echo(ctx handler.Context, req nameRequest) handler.Response {
	return handler.JSON(req)
}

func TestWrap_Binders(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(echo, handler.WithBinders[handler.Context, nameRequest](
		binder.Query(),
		binder.Form(),
	))

	t.Run("query only, form not applicable", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/?name=Mira&salt=3", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"name":"Mira","salt":3}}`, w.Body.String())
	})

	t.Run("later binders overwrite earlier ones", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/?name=Query&salt=1", strings.NewReader("name=Form"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h(w, req)

		assert.JSONEq(t, `{"data":{"name":"Form","salt":1}}`, w.Body.String())
	})

	t.Run("binding error is a bad request", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/?salt=nope", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "salt")
	})
}

func TestWrap_Decorators(t *testing.T) {
	t.Parallel()

	var order []string
	trace := func(name string) handler.Decorator[handler.Context, nameRequest] {
		return func(next handler.HandlerFunc[handler.Context, nameRequest]) handler.HandlerFunc[handler.Context, nameRequest] {
			return func(ctx handler.Context, req nameRequest) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(echo, handler.WithDecorators(trace("outer"), trace("inner")))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap[handler.Context, nameRequest](
		func(handler.Context, nameRequest) handler.Response { return nil },
		handler.WithErrorHandler[handler.Context, nameRequest](func(_ handler.Context, err error) { got = err }),
	)
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, got, handler.ErrNilResponse)
}

func TestWrap_HTTPError(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[handler.Context, nameRequest](func(handler.Context, nameRequest) handler.Response {
		return handler.Error(handler.ErrNotFound)
	})
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWrap_InternalErrorHidesDetails(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[handler.Context, nameRequest](func(handler.Context, nameRequest) handler.Response {
		return handler.ResponseFunc(func(http.ResponseWriter, *http.Request) error {
			return errors.New("db password leaked")
		})
	})
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

type appContext struct {
	handler.Context
	tenant string
}

func TestWrap_CustomContext(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[appContext, nameRequest](
		func(ctx appContext, _ nameRequest) handler.Response { return handler.JSON(ctx.tenant) },
		handler.WithContextFactory[appContext, nameRequest](func(w http.ResponseWriter, r *http.Request) appContext {
			return appContext{Context: handler.NewContext(w, r), tenant: "acme"}
		}),
	)
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.JSONEq(t, `{"data":"acme"}`, w.Body.String())
}

func TestWrap_CustomContextWithoutFactoryPanics(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[appContext, nameRequest](func(appContext, nameRequest) handler.Response { return handler.JSON(nil) })
	assert.Panics(t, func() {
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

type ctxKey struct{}

func TestNewContext(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, "v"))
	w := httptest.NewRecorder()

	ctx := handler.NewContext(w, r)
	require.Same(t, r, ctx.Request())
	assert.Equal(t, w, ctx.ResponseWriter())
	assert.Equal(t, "v", ctx.Value(ctxKey{}))
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		accept string
		want   bool
	}{
		{name: "plain", target: "/"},
		{name: "sse accept", target: "/", accept: "text/event-stream", want: true},
		{name: "signals param", target: "/?datastar=%7B%7D", want: true},
		{name: "html accept", target: "/", accept: "text/html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, handler.IsDataStar(r))
		})
	}
}
