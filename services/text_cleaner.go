package services

import (
	"regexp"
	"strings"
)

type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// cleanupRules run in order. List markers are rewritten before emphasis so that a
// "*" bullet is never mistaken for italics.
var cleanupRules = []rewriteRule{
	{regexp.MustCompile(`(?m)^### (.*)$`), "\n\n🔹 ${1}\n"},
	{regexp.MustCompile(`(?m)^## (.*)$`), "\n\n🔸 ${1}\n"},
	{regexp.MustCompile(`(?m)^# (.*)$`), "\n\n⭐ ${1}\n"},
	{regexp.MustCompile(`(?m)^\s*[-*]\s+(.*)$`), "• ${1}"},
	{regexp.MustCompile(`(?m)^\s*\d+\.\s+(.*)$`), "→ ${1}"},
	{regexp.MustCompile(`(?m)^\s*>\s+(.*)$`), "“${1}”"},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "${1}"},
	{regexp.MustCompile(`\*(.*?)\*`), "${1}"},
	{regexp.MustCompile("```[\\s\\S]*?```"), ""},
	{regexp.MustCompile("`([^`]+)`"), "${1}"},
	{regexp.MustCompile("[#*`]"), ""},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
	{regexp.MustCompile(`\s{2,}`), " "},
}

// CleanResponse rewrites model output into plain text. Headings become marker lines,
// emphasis and code syntax are dropped, list items get bullet or arrow prefixes and
// whitespace runs collapse to a single space.
func CleanResponse(text string) string {
	if text == "" {
		return ""
	}
	for _, rule := range cleanupRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return strings.TrimSpace(text)
}
