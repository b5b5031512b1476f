package views

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// writer accumulates markup for one component. f escapes every string
// argument; raw writes trusted markup unchanged.
type writer struct {
	ctx context.Context
	buf bytes.Buffer
	err error
}

func (w *writer) raw(s string) {
	w.buf.WriteString(s)
}

func (w *writer) text(s string) {
	w.buf.WriteString(templ.EscapeString(s))
}

func (w *writer) f(format string, args ...any) {
	for i, a := range args {
		switch v := a.(type) {
		case string:
			args[i] = templ.EscapeString(v)
		case templ.SafeURL:
			args[i] = templ.EscapeString(string(v))
		}
	}
	fmt.Fprintf(&w.buf, format, args...)
}

// href sanitizes a URL that came from the API before it lands in an
// attribute.
func href(s string) templ.SafeURL {
	return templ.URL(s)
}

// child renders a nested component into the buffer.
func (w *writer) child(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, &w.buf)
}

// component wraps a buffer-building function as a templ.Component.
func component(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{ctx: ctx}
		fn(w)
		if w.err != nil {
			return w.err
		}
		_, err := out.Write(w.buf.Bytes())
		return err
	})
}

func jsonLD(w *writer, data string) {
	w.raw(`<script type="application/ld+json">`)
	w.raw(data)
	w.raw(`</script>`)
}

func attrIf(cond bool, attr string) string {
	if cond {
		return " " + attr
	}
	return ""
}
