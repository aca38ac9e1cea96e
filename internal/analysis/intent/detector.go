package intent

import "strings"

// Tag is a coarse topic classification of an interviewer question.
type Tag string

const (
	None          Tag = "none"
	Life          Tag = "life"
	Superpower    Tag = "superpower"
	Growth        Tag = "growth"
	Misconception Tag = "misconception"
	Boundaries    Tag = "boundaries"
)

type rule struct {
	tag      Tag
	keywords []string
}

// rules are evaluated in order; the first hit wins.
var rules = []rule{
	{tag: Life, keywords: []string{"life", "story"}},
	{tag: Superpower, keywords: []string{"superpower", "strength"}},
	{tag: Growth, keywords: []string{"grow", "improve"}},
	{tag: Misconception, keywords: []string{"misconception"}},
	{tag: Boundaries, keywords: []string{"boundary", "limit"}},
}

// Detect classifies a user message by substring matching on its lower-cased form.
func Detect(message string) Tag {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return None
	}

	for _, r := range rules {
		for _, word := range r.keywords {
			if strings.Contains(normalized, word) {
				return r.tag
			}
		}
	}
	return None
}

// Tags lists every tag that Detect can return apart from None.
func Tags() []Tag {
	tags := make([]Tag, 0, len(rules))
	for _, r := range rules {
		tags = append(tags, r.tag)
	}
	return tags
}
