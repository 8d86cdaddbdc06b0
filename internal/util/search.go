package util

import (
	"regexp"
	"strings"
)

// SearchQuery represents the parsed components of a task filter string.
type SearchQuery struct {
	Status   []string
	Priority []string
	Assignee []string
	Text     []string
}

var (
	statusRegex   = regexp.MustCompile(`status:(\w+)`)
	priorityRegex = regexp.MustCompile(`priority:(\w+)`)
	assigneeRegex = regexp.MustCompile(`assignee:(\w+)`)
)

// ParseSearchQuery breaks down a raw query string into its structured components.
func ParseSearchQuery(query string) SearchQuery {
	sq := SearchQuery{}

	extract := func(re *regexp.Regexp) []string {
		matches := re.FindAllStringSubmatch(query, -1)
		if matches == nil {
			return nil
		}
		var values []string
		for _, match := range matches {
			if len(match) > 1 {
				values = append(values, strings.ToLower(match[1]))
			}
		}
		query = re.ReplaceAllString(query, "")
		return values
	}

	sq.Status = extract(statusRegex)
	sq.Priority = extract(priorityRegex)
	sq.Assignee = extract(assigneeRegex)
	sq.Text = strings.Fields(strings.ToLower(query))

	return sq
}

// Empty reports whether the query constrains nothing.
func (q SearchQuery) Empty() bool {
	return len(q.Status) == 0 && len(q.Priority) == 0 && len(q.Assignee) == 0 && len(q.Text) == 0
}

// MatchesText reports whether every free-text term occurs in one of fields.
func (q SearchQuery) MatchesText(fields ...string) bool {
	if len(q.Text) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join(fields, " "))
	for _, term := range q.Text {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
