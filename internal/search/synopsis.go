package search

import (
	"fmt"
	"strings"
)

// synopsisPlaceholderPrefix marks synthesized synopsis text. Ranking and
// enrichment both key off this exact prefix, so it must not change.
const synopsisPlaceholderPrefix = "No publicly retrievable synopsis is available."

// hasRealSynopsis reports whether text is genuine provider content rather
// than empty or synthesized placeholder text.
func hasRealSynopsis(text string) bool {
	content := strings.TrimSpace(text)
	if content == "" {
		return false
	}
	return !strings.HasPrefix(content, synopsisPlaceholderPrefix)
}

// placeholderSynopsis builds display text from whatever fields survived
// enrichment, so the client always has something to show.
func placeholderSynopsis(c Candidate) string {
	var parts []string
	if c.Author != "" {
		parts = append(parts, "Author: "+c.Author)
	}
	if c.Year != nil {
		parts = append(parts, fmt.Sprintf("Year: %d", *c.Year))
	}
	if c.Category != "" {
		parts = append(parts, "Category: "+c.Category)
	}
	if c.Source != "" {
		parts = append(parts, "Source: "+c.Source)
	}

	const pointer = "See the resource links below for the detail page or an online preview."
	if len(parts) == 0 {
		return synopsisPlaceholderPrefix + " " + pointer
	}
	return synopsisPlaceholderPrefix + " " + strings.Join(parts, "; ") + ". " + pointer
}
