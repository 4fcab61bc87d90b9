package content

import "strings"

// Blocklisted words for names entered on the kiosk, Swedish and English.
// Matching is case-insensitive substring, which is deliberately aggressive
// for a school context: false positives only cost the user a rename.
var blockedWords = []string{
	// Swedish
	"fan", "skit", "satan", "helvete", "jävla", "jävel", "jävlar", "kuk",
	"fitta", "hora", "slampa", "knulla", "runk", "pulla", "bajsa", "kiss",
	"piss", "röv", "arsle", "mongo", "självmord", "mörda", "våldta", "bög",
	"blatte", "neger", "svartskalle", "faen", "javla", "javlar", "kuksugare",
	"fitthuvud", "horunge", "skitstövel", "satans", "helvetes", "jävligt",
	"förbannad",
	// English
	"fuck", "shit", "damn", "dammit", "bitch", "asshole", "crap", "cock",
	"dick", "pussy", "whore", "slut", "rape", "bastard", "moron", "retard",
	"nazi", "hitler", "terrorist", "faggot", "nigger", "nigga", "chink",
	"wtf", "stfu", "gtfo", "bullshit",
}

// ContainsBlockedWord reports whether the text contains any blocklisted word.
func ContainsBlockedWord(text string) bool {
	if text == "" {
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, word := range blockedWords {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}
