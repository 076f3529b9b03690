package greeting

import (
	"math/rand"
	"strings"
)

const namePlaceholder = "{name}"

var defaultTemplates = []string{
	"Happy birthday, {name}! Hope you have a fantastic day!",
	"Happy birthday, {name}! Wishing you all the best for the year ahead!",
	"It's your big day, {name} — happy birthday!",
	"{name}, happy birthday! Have a great one!",
}

// RandomTemplate returns one of the default greeting templates, chosen
// uniformly at random.
func RandomTemplate() string {
	return defaultTemplates[rand.Intn(len(defaultTemplates))]
}

// Render substitutes the sanitized name into every {name} placeholder of
// tmpl. An empty tmpl selects a random default template.
func Render(tmpl, name string) string {
	if tmpl == "" {
		tmpl = RandomTemplate()
	}
	return strings.ReplaceAll(tmpl, namePlaceholder, SanitizeName(name))
}

// SanitizeName strips angle brackets and surrounding whitespace. This is a
// minimal guard against markup-significant characters in free-text names,
// not full escaping.
func SanitizeName(name string) string {
	name = strings.NewReplacer("<", "", ">", "").Replace(name)
	return strings.TrimSpace(name)
}
