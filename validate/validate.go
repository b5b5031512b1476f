// Package validate holds the field checks shared by the login, register and
// admin forms. Every function is pure; nothing here touches the network.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reEmail    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reUsername = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
)

// MinPasswordLength is the shortest password the register form accepts.
const MinPasswordLength = 6

// Email reports whether s looks like local@domain.tld. The check is
// intentionally loose; the API enforces the real rules.
func Email(s string) bool {
	return reEmail.MatchString(s)
}

// Password reports whether s is at least MinPasswordLength characters long.
func Password(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// Username reports whether s is 3-30 letters, digits or underscores.
func Username(s string) bool {
	return reUsername.MatchString(s)
}

// Required reports whether s has any non-whitespace content.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// URL reports whether s is empty or an absolute URL.
func URL(s string) bool {
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

// Rule declares the checks applied to one form field.
type Rule struct {
	Required  bool
	Email     bool
	MinLength int
	MaxLength int
	URL       bool
}

// Rules maps a field name to its rule.
type Rules map[string]Rule

// FieldErrors maps a field name to the first message it failed with.
type FieldErrors map[string]string

// check is a single predicate+message pair. skipEmpty checks only run when
// the value is non-empty.
type check struct {
	ok        func(string) bool
	message   string
	skipEmpty bool
}

// checks expands r into its ordered predicate list:
// required, email, minLength, maxLength, url.
func (r Rule) checks(field string) []check {
	var cs []check
	if r.Required {
		cs = append(cs, check{ok: Required, message: field + " is required"})
	}
	if r.Email {
		cs = append(cs, check{ok: Email, message: "Invalid email format", skipEmpty: true})
	}
	if r.MinLength > 0 {
		n := r.MinLength
		cs = append(cs, check{
			ok:        func(s string) bool { return utf8.RuneCountInString(s) >= n },
			message:   fmt.Sprintf("Must be at least %d characters", n),
			skipEmpty: true,
		})
	}
	if r.MaxLength > 0 {
		n := r.MaxLength
		cs = append(cs, check{
			ok:        func(s string) bool { return utf8.RuneCountInString(s) <= n },
			message:   fmt.Sprintf("Must be no more than %d characters", n),
			skipEmpty: true,
		})
	}
	if r.URL {
		cs = append(cs, check{ok: URL, message: "Invalid URL format", skipEmpty: true})
	}
	return cs
}

// Errors evaluates rules against values and returns at most one message per
// field. Fields are independent; within a field evaluation stops at the first
// failing check. A field missing from the result passed every check.
func Errors(values map[string]string, rules Rules) FieldErrors {
	errs := FieldErrors{}
	for field, rule := range rules {
		value := values[field]
		for _, c := range rule.checks(field) {
			if c.skipEmpty && value == "" {
				continue
			}
			if !c.ok(value) {
				errs[field] = c.message
				break
			}
		}
	}
	return errs
}

// Predefined rule sets for the forms rendered by the server.
var (
	LoginRules = Rules{
		"email":    {Required: true, Email: true},
		"password": {Required: true, MinLength: MinPasswordLength},
	}
	RegisterRules = Rules{
		"username": {Required: true, MinLength: 3, MaxLength: 30},
		"email":    {Required: true, Email: true},
		"password": {Required: true, MinLength: MinPasswordLength},
	}
	BlogRules = Rules{
		"title":         {Required: true, MaxLength: 200},
		"content":       {Required: true},
		"excerpt":       {MaxLength: 500},
		"featuredImage": {URL: true},
	}
	ProjectRules = Rules{
		"title":            {Required: true, MaxLength: 200},
		"description":      {Required: true},
		"shortDescription": {MaxLength: 300},
		"imageUrl":         {URL: true},
		"liveUrl":          {URL: true},
		"repoUrl":          {URL: true},
	}
)
