package index

// Candidate is one occurrence of a key within the corpus: a media fragment
// URL (path plus #t=start,end offsets), the corpus it came from, and a match
// score. Immutable once created.
type Candidate struct {
	VideoURL string  `json:"videoUrl"`
	Source   string  `json:"source"`
	Score    float64 `json:"score"`
}

// Index maps a normalized gloss key to its candidate fragments. A key that is
// present always carries at least one candidate; absence means "no known
// video". The structure is never mutated after the build or load that
// produced it.
type Index map[string][]Candidate

// Add appends a candidate under key, preserving encounter order.
func (idx Index) Add(key string, c Candidate) {
	idx[key] = append(idx[key], c)
}

// Best selects the winning candidate for key: the highest score, with ties
// resolved in favor of the earliest-appended candidate. Encounter order is
// the documented tie-break, not an accident of map iteration, so selection
// scans the slice in order and only replaces on a strictly higher score.
func (idx Index) Best(key string) (Candidate, bool) {
	candidates, ok := idx[key]
	if !ok || len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, true
}
