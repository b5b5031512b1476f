package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio/validate"
)

// AuthView is the data behind the login and register forms.
type AuthView struct {
	Register    bool
	Username    string
	Email       string
	Next        string
	Error       string
	FieldErrors validate.FieldErrors
	CSRF        string
}

// AuthPage renders the login or register form with a link to the other.
func AuthPage(d AuthView) templ.Component {
	return component(func(w *writer) {
		title, action := "Login", "/login/"
		if d.Register {
			title, action = "Register", "/register/"
		}
		w.f(`<section class="login-page"><div class="login-card"><h2>%s</h2>`, title)
		w.child(Banner("error", d.Error))
		w.f(`<form method="post" action="%s" novalidate><input type="hidden" name="_csrf" value="%s">`, action, d.CSRF)
		if d.Next != "" {
			w.f(`<input type="hidden" name="next" value="%s">`, d.Next)
		}
		if d.Register {
			field(w, "Username", "text", "username", d.Username, d.FieldErrors)
		}
		field(w, "Email", "email", "email", d.Email, d.FieldErrors)
		field(w, "Password", "password", "password", "", d.FieldErrors)
		w.f(`<button type="submit" class="btn btn-primary btn-block">%s</button></form>`, title)
		if d.Register {
			w.raw(`<p class="toggle-auth">Already have an account? <a href="/login/">Login</a></p>`)
		} else {
			w.raw(`<p class="toggle-auth">Don't have an account? <a href="/register/">Register</a></p>`)
		}
		w.raw(`</div></section>`)
	})
}

func field(w *writer, label, typ, name, value string, errs validate.FieldErrors) {
	w.f(`<div class="form-group"><label for="%s">%s</label>`, name, label)
	w.f(`<input id="%s" type="%s" name="%s" value="%s">`, name, typ, name, value)
	if msg := errs[name]; msg != "" {
		w.f(`<span class="field-error">%s</span>`, msg)
	}
	w.raw(`</div>`)
}
