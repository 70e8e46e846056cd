package console

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// vocabulary maps spellings to canonical words.
type vocabulary struct {
	canonical []string
	aliases   map[string]string // alias -> canonical, canonical words included
}

func newVocabulary(words map[string][]string) *vocabulary {
	v := &vocabulary{aliases: make(map[string]string)}
	for word, aliases := range words {
		v.canonical = append(v.canonical, word)
		v.aliases[word] = word
		for _, a := range aliases {
			v.aliases[a] = word
		}
	}
	sort.Strings(v.canonical)
	return v
}

type matchKind int

const (
	matchNone matchKind = iota
	matchExact
	matchPrefix
	matchFuzzy
)

// lookup resolves token to a canonical word. Exact spellings and aliases
// win, then an unambiguous prefix of at least two letters, then the closest
// spelling within the edit distance limit.
func (v *vocabulary) lookup(token string) (string, matchKind) {
	if w, ok := v.aliases[token]; ok {
		return w, matchExact
	}

	if len(token) >= 2 {
		found := ""
		for _, w := range v.canonical {
			if strings.HasPrefix(w, token) {
				if found != "" {
					found = ""
					break
				}
				found = w
			}
		}
		if found != "" {
			return found, matchPrefix
		}
	}

	if len(token) < 3 {
		return "", matchNone
	}
	best, bestDist, tie := "", -1, false
	for _, w := range v.canonical {
		d := levenshtein.ComputeDistance(token, w)
		if d > distanceLimit(len(w)) {
			continue
		}
		switch {
		case bestDist < 0 || d < bestDist:
			best, bestDist, tie = w, d, false
		case d == bestDist:
			tie = true
		}
	}
	if best == "" || tie {
		return "", matchNone
	}
	return best, matchFuzzy
}

// suggest returns the canonical word closest to token, ignoring limits.
func (v *vocabulary) suggest(token string) string {
	best, bestDist := "", -1
	for _, w := range v.canonical {
		d := levenshtein.ComputeDistance(token, w)
		if bestDist < 0 || d < bestDist {
			best, bestDist = w, d
		}
	}
	return best
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
