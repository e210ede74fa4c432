package web

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/handlekit/handler"
	"github.com/dmitrymomot/handlekit/pkg/handle"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// copyScript copies the bare handle from data-copy and shows the outcome on
// the button. A rejected write leaves the button in its idle state.
const copyScript = `document.addEventListener("click", async (e) => {
  const btn = e.target.closest("[data-copy]");
  if (!btn) return;
  try {
    await navigator.clipboard.writeText(btn.dataset.copy);
    btn.textContent = "Copied";
    setTimeout(() => { btn.textContent = "Copy"; }, 1500);
  } catch {
    btn.textContent = "Copy";
  }
});`

type listView struct {
	Name        string
	Salt        int64
	Suggestions []handle.Suggestion
}

// writer accumulates the first write error so views read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...any) {
	if w.err == nil {
		_, w.err = fmt.Fprintf(w.w, format, args...)
	}
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err == nil {
		w.err = c.Render(ctx, w.w)
	}
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.printf(`<title>%s</title>`, esc(title))
		w.printf(`<script type="module" src="%s"></script>`, datastarScript)
		w.printf(`</head><body><main>`)
		w.printf(`<div id="toasts"></div>`)
		w.render(ctx, body)
		w.printf(`</main><script>%s</script></body></html>`, copyScript)
		return w.err
	})
}

func page(v listView) templ.Component {
	return layout("handlekit", templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.printf(`<h1>handlekit</h1>`)
		w.printf(`<form action="/" method="get" data-signals:name="%s" data-on:submit="@get('/suggestions')">`,
			esc(strconv.Quote(v.Name)))
		w.printf(`<label for="name">Name</label>`)
		w.printf(`<input id="name" name="name" type="text" autocomplete="off" value="%s" data-bind:name>`, esc(v.Name))
		w.printf(`<button type="submit">Suggest</button>`)
		w.printf(`</form>`)
		w.render(ctx, suggestionList(v))
		return w.err
	}))
}

func suggestionList(v listView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.printf(`<section id="suggestions">`)

		switch {
		case v.Name == "":
			w.printf(`<p class="hint">Type a name to get handle ideas.</p>`)
		case len(v.Suggestions) == 0:
			w.printf(`<p class="hint">Use at least one letter or digit.</p>`)
		default:
			w.printf(`<p class="meta">Salt <a href="%s">%d</a> `, esc(pageURL(v.Name, &v.Salt)), v.Salt)
			w.printf(`<a href="%s" data-on:click__prevent="@get('/suggestions')">Remix</a></p>`, esc(pageURL(v.Name, nil)))
			for _, s := range v.Suggestions {
				w.render(ctx, platformCard(s))
			}
		}

		w.printf(`</section>`)
		return w.err
	})
}

func platformCard(s handle.Suggestion) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		p, _ := handle.LookupPlatform(s.Key)

		w.printf(`<article class="platform" data-platform="%s"><h2>%s</h2><ul>`, esc(s.Key), esc(s.Platform))
		ids := s.Identifiers()
		for i, display := range s.Handles {
			id := ids[i]
			w.printf(`<li><a href="%s" rel="noopener" target="_blank">%s</a>`, esc(p.ProfileURL(id)), esc(display))
			w.printf(` <button type="button" data-copy="%s">Copy</button>`, esc(id))
			w.printf(` <img src="/qr/%s/%s" alt="QR code for %s" width="96" height="96" loading="lazy">`,
				url.PathEscape(s.Key), url.PathEscape(id), esc(display))
			w.printf(`</li>`)
		}
		w.printf(`</ul><p class="tip">%s</p></article>`, esc(s.Tip))
		return w.err
	})
}

func pageURL(name string, salt *int64) string {
	q := url.Values{"name": {name}}
	if salt != nil {
		q.Set("salt", strconv.FormatInt(*salt, 10))
	}
	return "/?" + q.Encode()
}

func errorPage(p handler.ErrorPageParams) templ.Component {
	return layout("Error", templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.printf(`<h1>%d</h1><p>%s</p>`, p.StatusCode, esc(p.Message))
		if p.RequestID != "" {
			w.printf(`<p class="meta">Request %s</p>`, esc(p.RequestID))
		}
		w.printf(`<p><a href="/">Back</a></p>`)
		return w.err
	}))
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.printf(`<div class="toast toast-%s" role="alert">%s</div>`, esc(p.Type), esc(p.Message))
		return w.err
	})
}
