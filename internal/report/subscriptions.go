package report

import "strings"

// ServiceCatalog is the fixed set of recurring services recognized in both
// report text and tabular descriptions. Catalog entries are the identifier
// space for subscriptions everywhere in this package.
var ServiceCatalog = []string{
	"Spotify", "Netflix", "Amazon Prime", "Hotstar", "SonyLIV", "Apple Music",
	"YouTube Premium", "Gaana", "JioSaavn", "ALTBalaji", "Zee5", "Voot",
	"Prime Video", "Disney+", "Airtel Xstream", "Sun NXT",
}

// DetectSubscriptions returns the catalog entries whose name appears
// anywhere in the text, matched as a case-insensitive substring. Each entry
// is tested once, so the result is a set.
func DetectSubscriptions(text string) []string {
	return matchCatalog(strings.ToLower(text))
}

// matchCatalog matches catalog entries against already-lowercased text.
func matchCatalog(lower string) []string {
	var found []string
	for _, service := range ServiceCatalog {
		if strings.Contains(lower, strings.ToLower(service)) {
			found = append(found, service)
		}
	}
	return found
}
