package letterhunt

import (
	"strings"

	"storybloom-admin-backend/internal/models"
)

// themeSynonyms collapses plural/singular theme labels to one canonical
// form. Anything not listed normalizes to its lower-cased self.
var themeSynonyms = map[string]string{
	"dogs":       "dog",
	"dog":        "dog",
	"dinosaurs":  "dinosaur",
	"dinosaur":   "dinosaur",
	"cats":       "cat",
	"cat":        "cat",
	"adventures": "adventure",
	"adventure":  "adventure",
}

// NormalizeTheme is idempotent and case-insensitive.
func NormalizeTheme(theme string) string {
	t := strings.ToLower(strings.TrimSpace(theme))
	if canon, ok := themeSynonyms[t]; ok {
		return canon
	}
	return t
}

// SelectForSlot picks one asset from a slot's candidate list: the first
// candidate whose normalized theme matches the requested theme, else the
// first candidate overall. "First" is fetch order, which encodes group
// priority; nil when the list is empty.
func SelectForSlot(candidates []models.Asset, theme string) *models.Asset {
	if len(candidates) == 0 {
		return nil
	}

	want := NormalizeTheme(theme)
	for i := range candidates {
		if NormalizeTheme(candidates[i].Theme) == want {
			return &candidates[i]
		}
	}

	return &candidates[0]
}
