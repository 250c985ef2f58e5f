package services

import (
	"regexp"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_.-]+)`)

// ExtractMentions returns the distinct @name mentions in order of first
// appearance.
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// NewMentions returns the names mentioned in the new text but not in the old
// one. Mentions that survive an edit are not reported again; a name removed
// and re-added in a later update shows up as new.
func NewMentions(oldText, newText string) []string {
	old := toSet(ExtractMentions(oldText))
	var added []string
	for _, name := range ExtractMentions(newText) {
		if !old[name] {
			added = append(added, name)
		}
	}
	return added
}
