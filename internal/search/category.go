package search

import "strings"

// categoryKeywords maps keyword groups to category labels. Order matters:
// the first group with any keyword present wins, so "science fiction" must
// be tried before plain "science".
var categoryKeywords = []struct {
	keywords string
	label    string
}{
	{"science fiction fantasy dystopia", "Sci-Fi & Fantasy"},
	{"mystery detective crime thriller", "Mystery & Thriller"},
	{"history biography memoir", "History & Biography"},
	{"philosophy ethics", "Philosophy"},
	{"sociology politics culture society", "Social Science"},
	{"science physics biology chemistry", "Natural Science"},
	{"psychology mental", "Psychology"},
	{"business economics management finance", "Business & Economics"},
	{"computer technology programming ai", "Technology"},
	{"art design music", "Art & Design"},
	{"health cooking lifestyle", "Lifestyle"},
}

// mapCategory lowercase-joins the subject/genre tags and matches them
// against the keyword table. No match means the default label.
func mapCategory(tags []string) string {
	if len(tags) == 0 {
		return CategoryDefault
	}
	joined := strings.ToLower(strings.Join(tags, " "))
	for _, group := range categoryKeywords {
		for _, keyword := range strings.Fields(group.keywords) {
			if strings.Contains(joined, keyword) {
				return group.label
			}
		}
	}
	return CategoryDefault
}
