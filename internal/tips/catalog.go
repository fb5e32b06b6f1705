// Package tips holds the compiled-in security tip catalog. The catalog is
// fixed at build time and never persisted; repositories that bookmark tips
// store catalog ids only, so the texts can change between releases without
// touching stored state.
package tips

import "strconv"

type Tip struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

var rawTips = []string{
	"Use different passwords for each account.",
	"Enable two-factor authentication wherever possible.",
	"Avoid clicking on unknown email links.",
	"Update your software and apps regularly.",
	"Don’t reuse old passwords.",
	"Use a password manager or iCloud Keychain.",
	"Lock your phone and computer when not in use.",
	"Avoid using public Wi-Fi for sensitive actions.",
	"Watch out for phishing messages and fake websites.",
	"Don’t share your passwords with anyone.",
	"Use biometric authentication if available.",
	"Monitor your accounts for suspicious activity.",
	"Avoid using birthdays or names in passwords.",
	"Back up your data securely and regularly.",
	"Log out from services you no longer use.",
}

var (
	catalog = buildCatalog()
	byID    = indexCatalog(catalog)
)

func buildCatalog() []Tip {
	out := make([]Tip, len(rawTips))
	for i, text := range rawTips {
		id := strconv.Itoa(i + 1)
		out[i] = Tip{
			ID:    id,
			Title: "Tip #" + id,
			Text:  text,
		}
	}
	return out
}

func indexCatalog(tips []Tip) map[string]Tip {
	out := make(map[string]Tip, len(tips))
	for _, tip := range tips {
		out[tip.ID] = tip
	}
	return out
}

// Catalog returns the full tip list in display order. Callers get a copy and
// may not mutate catalog entries through it.
func Catalog() []Tip {
	out := make([]Tip, len(catalog))
	copy(out, catalog)
	return out
}

// ByID resolves a catalog id. Ids are the stringified 1-based position and
// match exactly: numeric aliases like "01" or "+5" are not catalog ids.
func ByID(id string) (Tip, bool) {
	tip, ok := byID[id]
	return tip, ok
}

// Len reports the catalog size.
func Len() int {
	return len(catalog)
}
