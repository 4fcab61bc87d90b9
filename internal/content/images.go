package content

import "strings"

// Known equipment icon slugs, matching the webp files shipped with the kiosk
// UI under /equipment-icons/.
var iconSlugs = []string{
	"fotboll",
	"basketboll",
	"volleyboll",
	"handboll",
	"tennisboll",
	"hopprep",
	"langhopprep",
	"rockring",
	"frisbee",
	"bandyklubba",
	"innebandyklubba",
	"hockeyklubba",
	"pingisracket",
	"badmintonracket",
	"kubb",
	"kritor",
	"hinkar_och_spadar",
	"gravmaskiner_och_stora_bilar",
	"styltor",
	"twistband",
}

// FindMatchingIcon maps an equipment name to an icon slug. Exact match wins;
// otherwise a partial match is accepted in either direction, so "gräv"
// matches "gravmaskiner_och_stora_bilar" and "fotbollar" matches "fotboll".
// Returns "" when nothing matches.
func FindMatchingIcon(equipmentName string) string {
	name := normalizeIconName(equipmentName)
	if name == "" {
		return ""
	}
	for _, slug := range iconSlugs {
		if name == slug {
			return slug
		}
	}
	for _, slug := range iconSlugs {
		if strings.HasPrefix(slug, name) || strings.HasPrefix(name, slug) {
			return slug
		}
	}
	for _, slug := range iconSlugs {
		if strings.Contains(slug, name) || strings.Contains(name, slug) {
			return slug
		}
	}
	return ""
}

// IconURL returns the image URL for an equipment name, or "" when no icon
// matches.
func IconURL(equipmentName string) string {
	slug := FindMatchingIcon(equipmentName)
	if slug == "" {
		return ""
	}
	return "/equipment-icons/" + slug + ".webp"
}

// IconSlugs returns the full icon list, for the static lookup endpoint.
func IconSlugs() []string {
	out := make([]string, len(iconSlugs))
	copy(out, iconSlugs)
	return out
}

var iconReplacer = strings.NewReplacer(
	"å", "a", "ä", "a", "ö", "o",
	"Å", "a", "Ä", "a", "Ö", "o",
	" ", "_",
)

func normalizeIconName(name string) string {
	return iconReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}
