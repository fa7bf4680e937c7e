// Package ranking orders discovery results by location affinity and shapes
// providers into the sanitized view returned to clients.
//
// Both operations are pure: they do no I/O, never fail and are safe for
// concurrent use.
package ranking

import "math/rand/v2"

// Located is anything that has a fine-grained locality and a coarse region.
type Located interface {
	Locality() string
	Region() string
}

// Tier is the affinity group a candidate falls into relative to a requester.
type Tier int

const (
	// TierLocal candidates share the requester's locality.
	TierLocal Tier = iota
	// TierRegional candidates share the requester's region but not locality.
	TierRegional
	// TierOther candidates match neither.
	TierOther
)

// TierOf returns the tier of candidate for requester. Locality is checked
// before region and empty requester attributes never match.
func TierOf(requester, candidate Located) Tier {
	if l := requester.Locality(); l != "" && candidate.Locality() == l {
		return TierLocal
	}
	if r := requester.Region(); r != "" && candidate.Region() == r {
		return TierRegional
	}

	return TierOther
}

// Rank returns candidates ordered local first, then regional, then the rest.
// Order inside a tier is a fresh uniform shuffle on every call. The input
// slice is left untouched and the result is never nil.
//
// Candidates must already exclude the requester.
func Rank[T Located](requester Located, candidates []T) []T {
	var tiers [3][]T
	for _, c := range candidates {
		t := TierOf(requester, c)
		tiers[t] = append(tiers[t], c)
	}

	out := make([]T, 0, len(candidates))
	for _, group := range tiers {
		rand.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		out = append(out, group...)
	}

	return out
}
