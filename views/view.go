package views

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// writer collects the first write error so components can emit markup
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (hw *writer) raw(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

// text writes s HTML-escaped.
func (hw *writer) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *writer) rawf(format string, args ...any) {
	hw.raw(fmt.Sprintf(format, args...))
}

func (hw *writer) component(ctx context.Context, c templ.Component) {
	if hw.err == nil {
		hw.err = c.Render(ctx, hw.w)
	}
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		hw.raw(`<!doctype html><html lang="pt-BR"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<link rel="stylesheet" href="/static/style.css"><title>`)
		hw.text(title)
		hw.raw(`</title></head><body><header><a href="/">cue-bracket</a>`)
		if user := GetUser(ctx); user != nil {
			hw.raw(`<span class="user">`)
			hw.text(user.DisplayName())
			hw.raw(`</span><form method="post" action="/logout"><button>Sair</button></form>`)
		}
		hw.raw(`</header><main>`)
		hw.component(ctx, body)
		hw.raw(`</main></body></html>`)
		return hw.err
	})
}
