package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"a@b.c", true},
		{"user@example", false},
		{"user example@x.com", false},
		{"@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Email(tt.in), "Email(%q)", tt.in)
	}
}

func TestPasswordBoundary(t *testing.T) {
	assert.False(t, Password("12345"))
	assert.True(t, Password("123456"))
	assert.False(t, Password(""))
}

func TestUsername(t *testing.T) {
	assert.False(t, Username("ab"))
	assert.True(t, Username("valid_user1"))
	assert.False(t, Username("has space"))
	assert.True(t, Username("abc"))
	assert.True(t, Username("a23456789012345678901234567890"))
	assert.False(t, Username("a234567890123456789012345678901"))
}

func TestRequired(t *testing.T) {
	assert.False(t, Required(""))
	assert.False(t, Required("   \t\n"))
	assert.True(t, Required(" x "))
}

func TestURL(t *testing.T) {
	assert.True(t, URL(""))
	assert.False(t, URL("not a url"))
	assert.True(t, URL("https://a.b"))
	assert.True(t, URL("http://localhost:8080/path?q=1"))
	assert.False(t, URL("example.com"))
	assert.False(t, URL("http://bad host.com"))
}

func TestErrorsOrderAndShortCircuit(t *testing.T) {
	rules := Rules{
		"email":    {Required: true, Email: true, MinLength: 50},
		"password": {Required: true, MinLength: 6},
		"site":     {URL: true, MaxLength: 5},
	}
	errs := Errors(map[string]string{
		"email":    "nope",
		"password": "",
		"site":     "not a url at all",
	}, rules)

	assert.Equal(t, FieldErrors{
		"email":    "Invalid email format",
		"password": "password is required",
		"site":     "Must be no more than 5 characters",
	}, errs)
}

func TestErrorsSkipOptionalEmptyValues(t *testing.T) {
	errs := Errors(map[string]string{}, Rules{
		"excerpt":  {MinLength: 10},
		"imageUrl": {URL: true},
		"email":    {Email: true},
	})
	assert.Empty(t, errs)
}

func TestErrorsMinLength(t *testing.T) {
	errs := Errors(map[string]string{"username": "ab"}, RegisterRules)
	assert.Equal(t, "Must be at least 3 characters", errs["username"])
	assert.Equal(t, "email is required", errs["email"])
	assert.Equal(t, "password is required", errs["password"])
}

func TestErrorsPassingFieldsAbsent(t *testing.T) {
	errs := Errors(map[string]string{
		"email":    "me@site.dev",
		"password": "secret1",
	}, LoginRules)
	assert.Empty(t, errs)
}

func TestProjectRulesURLFields(t *testing.T) {
	errs := Errors(map[string]string{
		"title":       "Folio",
		"description": "A site",
		"liveUrl":     "folio.dev",
		"repoUrl":     "https://github.com/eringen/folio",
	}, ProjectRules)
	assert.Equal(t, FieldErrors{"liveUrl": "Invalid URL format"}, errs)
}
