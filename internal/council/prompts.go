package council

import "regexp"

var placeholderRe = regexp.MustCompile(`\{[a-zA-Z_][a-zA-Z0-9_]*\}`)

// RenderPrompt substitutes {name} placeholders in a template. Placeholders
// with no value substitute the empty string, so a malformed custom template
// never fails a council run.
func RenderPrompt(template string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		return values[key]
	})
}
