package search

import "strings"

// scoreMatch computes the similarity between a query and a candidate
// (title, author) pair. Title tiers dominate author tiers so a right title
// with an unknown author still outranks a wrong title. Provider-specific
// bonuses (rating, cover, description presence and so on) are layered on
// top by the adapters.
func scoreMatch(queryTitle, queryAuthor, candidateTitle, candidateAuthor string) int {
	titleQ := normalizeText(queryTitle)
	authorQ := normalizeText(queryAuthor)
	titleC := normalizeText(candidateTitle)
	authorC := normalizeText(candidateAuthor)

	score := 0
	if titleQ != "" {
		switch {
		case titleC == titleQ:
			score += 85
		case strings.HasPrefix(titleC, titleQ):
			score += 55
		case strings.Contains(titleC, titleQ):
			score += 35
		}
	}

	if authorQ != "" {
		switch {
		case authorC == authorQ:
			score += 35
		case strings.HasPrefix(authorC, authorQ):
			score += 22
		case strings.Contains(authorC, authorQ):
			score += 15
		}
	}

	return score
}
