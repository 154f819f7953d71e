package scope

import "xactscope/internal/util"

// synonyms maps field vocabulary onto the wording used in catalog descriptions.
// Values may be phrases; a phrase is matched as one substring.
var synonyms = map[string]string{
	"trim":      "baseboard",
	"sheetrock": "drywall",
	"gyp":       "drywall",
	"lvp":       "vinyl plank",
}

// relatedKeywords suggests companion items for the first word of a query.
var relatedKeywords = map[string][]string{
	"sink":    {"p-trap", "supply line", "stop valve"},
	"cabinet": {"toe kick"},
	"ceiling": {"register", "light fixture", "junction box"},
	"wall":    {"insulation"},
	"floor":   {"floor sample", "floor prep"},
}

// NormalizeQuery cleans input into match tokens, applying synonyms and
// dropping repeats while keeping order.
func NormalizeQuery(input string) []string {
	words := util.Words(input)
	out := make([]string, 0, len(words))
	seen := map[string]struct{}{}
	for _, w := range words {
		if syn, ok := synonyms[w]; ok {
			w = syn
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// RelatedKeywords returns the companion keywords keyed by the first word of
// input, or nil when that word has none.
func RelatedKeywords(input string) []string {
	words := util.Words(input)
	if len(words) == 0 {
		return nil
	}
	return relatedKeywords[words[0]]
}
