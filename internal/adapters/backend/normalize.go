package backend

import (
	"strings"
	"unicode"
)

// featPrefixes mark bracketed segments that are noise for display
// purposes, e.g. "(feat. Someone)".
var featPrefixes = []string{"feat.", "feat ", "ft.", "ft ", "featuring"}

// remasterMarkers start trailing segments like "- Remastered 2011".
var remasterMarkers = []string{"- remaster", "- 2011 remaster", "- remastered"}

// cleanTrackName normalizes a track name for display: collapses
// whitespace, strips featured-artist brackets and remaster suffixes.
func cleanTrackName(name string) string {
	cleaned := collapseWhitespace(name)
	if cleaned == "" {
		return "Unknown Track"
	}

	cleaned = stripFeatSegments(cleaned)
	cleaned = stripRemasterSuffix(cleaned)
	cleaned = collapseWhitespace(cleaned)
	if cleaned == "" {
		return "Unknown Track"
	}
	return cleaned
}

// cleanArtistName collapses whitespace and fills in a placeholder for
// blank names.
func cleanArtistName(name string) string {
	cleaned := collapseWhitespace(name)
	if cleaned == "" {
		return "Unknown Artist"
	}
	return cleaned
}

// normalizeGenre title-cases a genre label so "hip hop" and "Hip Hop"
// land in the same histogram bucket. Empty stays empty; the deriver
// owns the "Other" fallback.
func normalizeGenre(genre string) string {
	cleaned := collapseWhitespace(genre)
	if cleaned == "" {
		return ""
	}

	words := strings.Fields(strings.ToLower(cleaned))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripFeatSegments removes bracketed segments that begin with a
// featured-artist marker, keeping other brackets like "(Live)" intact
// within remaster handling's remit.
func stripFeatSegments(s string) string {
	var out strings.Builder
	for {
		open := strings.IndexAny(s, "([")
		if open < 0 {
			out.WriteString(s)
			break
		}
		closeIdx := matchingClose(s, open)
		if closeIdx < 0 {
			out.WriteString(s)
			break
		}

		inner := strings.ToLower(strings.TrimSpace(s[open+1 : closeIdx]))
		keep := true
		for _, p := range featPrefixes {
			if strings.HasPrefix(inner, p) {
				keep = false
				break
			}
		}

		if keep {
			out.WriteString(s[:closeIdx+1])
		} else {
			out.WriteString(strings.TrimRight(s[:open], " "))
		}
		s = s[closeIdx+1:]
	}
	return out.String()
}

func matchingClose(s string, open int) int {
	var closer byte
	switch s[open] {
	case '(':
		closer = ')'
	case '[':
		closer = ']'
	}
	for i := open + 1; i < len(s); i++ {
		if s[i] == closer {
			return i
		}
	}
	return -1
}

func stripRemasterSuffix(s string) string {
	lower := strings.ToLower(s)
	for _, m := range remasterMarkers {
		if idx := strings.Index(lower, m); idx >= 0 {
			return strings.TrimRight(s[:idx], " ")
		}
	}
	// "- 2011 Remaster" style: a dash followed by a year and the word.
	if idx := strings.Index(lower, " - "); idx >= 0 && strings.Contains(lower[idx:], "remaster") {
		return strings.TrimRight(s[:idx], " ")
	}
	return s
}
