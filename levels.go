package pdfoutline

import "sort"

// ClassifyLevels assigns each accepted candidate a level in H1..H4 and
// returns the candidates with Level populated.
//
// Two complementary signals resolve the level. Numbering depth, when a
// pattern matched, maps directly: depth 1 is H1, depth 4 and deeper cap at
// H4. Size clustering maps the distinct dominant sizes among the accepted
// candidates, sorted descending, positionally onto H1..H4; candidates
// sharing a size share a level. Which signal wins a disagreement is a
// tunable policy (Config.NumberingPrecedence): numbering is document-
// authored while font size can vary for unrelated emphasis reasons, so
// numbering wins by default.
func ClassifyLevels(candidates []HeadingCandidate, cfg Config) []HeadingCandidate {
	if len(candidates) == 0 {
		return candidates
	}

	sizeRanks := clusterSizes(candidates)

	classified := make([]HeadingCandidate, len(candidates))
	for i, cand := range candidates {
		classified[i] = cand

		sizeLevel := levelForDepth(sizeRanks[sizeKey(cand.Line.FontSize)] + 1)

		if cand.NumberingDepth > 0 {
			numberingLevel := levelForDepth(cand.NumberingDepth)
			if cfg.NumberingPrecedence || numberingLevel == sizeLevel {
				classified[i].Level = numberingLevel
				continue
			}
		}

		classified[i].Level = sizeLevel
	}

	return classified
}

// clusterSizes returns the 0-based descending rank of each distinct
// candidate size. A document with fewer than four distinct heading sizes
// simply never populates the deeper levels.
func clusterSizes(candidates []HeadingCandidate) map[float64]int {
	seen := make(map[float64]bool)
	var sizes []float64
	for _, cand := range candidates {
		key := sizeKey(cand.Line.FontSize)
		if !seen[key] {
			seen[key] = true
			sizes = append(sizes, key)
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	ranks := make(map[float64]int, len(sizes))
	for i, size := range sizes {
		ranks[size] = i
	}
	return ranks
}
