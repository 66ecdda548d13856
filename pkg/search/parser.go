package search

import (
	"strings"
)

// Query holds the tag filters and the remaining free text of a memo search.
type Query struct {
	Tags []string
	Text string // matched against title, content, summary and tags
}

// ParseQuery extracts tag filters from the raw query string.
// Supported:
// #<tag> or tag:<tag> -> memo must carry the tag (case-insensitive)
// <text> -> remaining text
func ParseQuery(raw string) Query {
	var q Query
	var cleanParts []string

	for _, part := range strings.Fields(raw) {
		lowerPart := strings.ToLower(part)

		switch {
		case strings.HasPrefix(lowerPart, "#") && len(lowerPart) > 1:
			q.Tags = append(q.Tags, strings.TrimPrefix(lowerPart, "#"))
		case strings.HasPrefix(lowerPart, "tag:") && len(lowerPart) > len("tag:"):
			q.Tags = append(q.Tags, strings.TrimPrefix(lowerPart, "tag:"))
		default:
			cleanParts = append(cleanParts, part)
		}
	}

	q.Text = strings.Join(cleanParts, " ")
	return q
}

func (q Query) Empty() bool {
	return q.Text == "" && len(q.Tags) == 0
}

// Needle is the term handed to the store to narrow candidates.
func (q Query) Needle() string {
	if q.Text != "" {
		return q.Text
	}
	if len(q.Tags) > 0 {
		return q.Tags[0]
	}
	return ""
}

// HasTags reports whether tags contains every filter tag.
func (q Query) HasTags(tags []string) bool {
	for _, want := range q.Tags {
		found := false
		for _, t := range tags {
			if strings.EqualFold(t, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
