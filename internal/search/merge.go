package search

import (
	"strings"
	"unicode/utf8"
)

// mergeCandidates collapses candidates that describe the same book across
// providers, grouped by the normalized (title, author) key. Field
// precedence follows the higher-scored side, with one deliberate twist: a
// strictly longer synopsis wins even when it comes from the lower-scored
// side, because synopsis quality matters more than provider rank.
func mergeCandidates(candidates []Candidate) []Candidate {
	merged := make(map[string]Candidate, len(candidates))
	var order []string

	for _, item := range candidates {
		key := normalizeKey(item.Title, item.Author)
		if key == "" {
			continue
		}

		current, ok := merged[key]
		if !ok {
			if item.Source != "" && len(item.Sources) == 0 {
				item.Sources = []string{item.Source}
			}
			merged[key] = item
			order = append(order, key)
			continue
		}

		preferred, backup := current, item
		if item.score > current.score {
			preferred, backup = item, current
		}

		combined := preferred
		if combined.Synopsis == "" {
			combined.Synopsis = backup.Synopsis
		}
		// Strictly longer in characters, not bytes, so multi-byte scripts
		// do not outweigh longer Latin text.
		if utf8.RuneCountInString(backup.Synopsis) > utf8.RuneCountInString(combined.Synopsis) {
			combined.Synopsis = backup.Synopsis
		}
		if combined.Cover == "" {
			combined.Cover = backup.Cover
		}
		if combined.Rating == nil && backup.Rating != nil {
			combined.Rating = backup.Rating
			combined.RatingSource = backup.RatingSource
		}
		if combined.Year == nil && backup.Year != nil {
			combined.Year = backup.Year
		}
		if combined.Category == "" || combined.Category == CategoryDefault {
			if backup.Category != "" && backup.Category != CategoryDefault {
				combined.Category = backup.Category
			}
		}
		combined.Resources = mergeResources(append(append([]Resource{}, current.Resources...), item.Resources...))
		combined.Sources = unionSources(current, item)
		combined.Source = strings.Join(combined.Sources, " / ")

		merged[key] = combined
	}

	out := make([]Candidate, 0, len(order))
	for _, key := range order {
		out = append(out, merged[key])
	}
	return out
}

// unionSources collects every contributing provider name once, keeping
// first-seen order so the joined display string is deterministic.
func unionSources(a, b Candidate) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(names ...string) {
		for _, name := range names {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	add(a.Sources...)
	add(b.Sources...)
	add(a.Source)
	add(b.Source)
	return out
}
