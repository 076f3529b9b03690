package greeting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice", "Alice"},
		{"  Alice  ", "Alice"},
		{"<b>Alice</b>", "bAlice/b"},
		{"<Alice>", "Alice"},
		{"< >", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SanitizeName(c.in), "input %q", c.in)
	}
}

func TestRender_SubstitutesAllPlaceholders(t *testing.T) {
	got := Render("Hey {name}! Happy birthday {name}!", " <Bob> ")
	assert.Equal(t, "Hey Bob! Happy birthday Bob!", got)
}

func TestRender_EmptyTemplateUsesDefault(t *testing.T) {
	got := Render("", "Alice")
	assert.Contains(t, got, "Alice")
	assert.NotContains(t, got, namePlaceholder)

	matched := false
	for _, tmpl := range defaultTemplates {
		if got == strings.ReplaceAll(tmpl, namePlaceholder, "Alice") {
			matched = true
			break
		}
	}
	assert.True(t, matched, "rendered text %q does not match any default template", got)
}

func TestRandomTemplate_CoversWholeSet(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		seen[RandomTemplate()] = true
	}
	assert.Len(t, seen, len(defaultTemplates))
}
