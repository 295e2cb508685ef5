package search

import (
	"net/url"
	"strings"
)

// maxResources caps the outbound links per candidate.
const maxResources = 8

// Hosts known to serve the same content over TLS; plain-http links to them
// are upgraded in place.
var httpsUpgradePrefixes = []string{
	"http://books.google.com",
	"http://play.google.com",
	"http://archive.org",
}

func normalizeResourceURL(raw string) string {
	fixed := strings.TrimSpace(raw)
	for _, prefix := range httpsUpgradePrefixes {
		if strings.HasPrefix(fixed, prefix) {
			return "https://" + strings.TrimPrefix(fixed, "http://")
		}
	}
	return fixed
}

// mergeResources drops entries with empty or duplicate URLs, upgrades known
// hosts to https, fills generic labels for missing names/types and caps the
// list, preserving input order.
func mergeResources(resources []Resource) []Resource {
	merged := make([]Resource, 0, len(resources))
	seen := make(map[string]bool, len(resources))
	for _, item := range resources {
		u := normalizeResourceURL(item.URL)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true

		name := item.Name
		if name == "" {
			name = "Resource link"
		}
		typ := item.Type
		if typ == "" {
			typ = ResourceDetail
		}
		merged = append(merged, Resource{Name: name, URL: u, Type: typ})
		if len(merged) == maxResources {
			break
		}
	}
	return merged
}

// appendDiscoveryResources adds legal search entry points when nothing in
// the list is directly readable or borrowable, so no result ever ships
// without an actionable link.
func appendDiscoveryResources(resources []Resource, title, author string) []Resource {
	for _, item := range resources {
		switch item.Type {
		case ResourceEbook, ResourceOnlineRead, ResourceBorrow:
			return mergeResources(resources)
		}
	}

	query := url.QueryEscape(strings.TrimSpace(title + " " + author))
	out := append(append([]Resource{}, resources...),
		Resource{
			Name: "Douban Books search",
			URL:  "https://m.douban.com/search/?query=" + query + "&type=book",
			Type: ResourceSearch,
		},
		Resource{
			Name: "WeRead search",
			URL:  "https://weread.qq.com/web/search/books?keyword=" + query,
			Type: ResourceSearch,
		},
		Resource{
			Name: "Google Play Books search",
			URL:  "https://play.google.com/store/search?q=" + query + "&c=books",
			Type: ResourceSearch,
		},
	)
	return mergeResources(out)
}
