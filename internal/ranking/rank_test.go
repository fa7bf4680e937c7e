package ranking_test

import (
	"artisan/internal/ranking"
	"artisan/pkg/domain"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type place struct {
	id       string
	locality string
	region   string
}

func (p place) Locality() string { return p.locality }
func (p place) Region() string   { return p.region }

func ids(in []place) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		out = append(out, p.id)
	}

	return out
}

func TestRank_IkejaScenario(t *testing.T) {
	requester := place{locality: "Ikeja", region: "Lagos"}
	candidates := []place{
		{id: "C", locality: "Kano", region: "Kano"},
		{id: "A", locality: "Ikeja"},
		{id: "B", locality: "Yaba", region: "Lagos"},
	}

	for range 200 {
		require.Equal(t, []string{"A", "B", "C"}, ids(ranking.Rank(requester, candidates)))
	}
}

func TestRank_EmptyCandidates(t *testing.T) {
	got := ranking.Rank(place{locality: "Ikeja", region: "Lagos"}, []place{})
	require.NotNil(t, got)
	require.Empty(t, got)

	got = ranking.Rank[place](place{}, nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestRank_RequesterWithoutLocation(t *testing.T) {
	candidates := []place{
		{id: "1", locality: "Ikeja", region: "Lagos"},
		{id: "2", locality: "", region: ""},
		{id: "3", locality: "Kano", region: "Kano"},
	}

	seen := map[string]bool{}
	for range 300 {
		got := ranking.Rank(place{}, candidates)
		require.ElementsMatch(t, ids(candidates), ids(got))
		seen[strings.Join(ids(got), "")] = true
	}
	// every candidate is in the same tier so more than one order must show up
	require.Greater(t, len(seen), 1)
}

func TestRank_EmptyAttributesNeverMatch(t *testing.T) {
	requester := place{}
	candidate := place{}
	require.Equal(t, ranking.TierOther, ranking.TierOf(requester, candidate))
	require.Equal(t, ranking.TierOther, ranking.TierOf(place{region: "Lagos"}, place{locality: "Lagos"}))
}

func TestRank_CaseSensitiveMatch(t *testing.T) {
	requester := place{locality: "Ikeja", region: "Lagos"}
	require.Equal(t, ranking.TierOther, ranking.TierOf(requester, place{locality: "ikeja", region: "lagos"}))
	require.Equal(t, ranking.TierRegional, ranking.TierOf(requester, place{locality: "ikeja", region: "Lagos"}))
	require.Equal(t, ranking.TierLocal, ranking.TierOf(requester, place{locality: "Ikeja", region: "Kano"}))
}

func TestRank_PartitionAndPrecedenceProperties(t *testing.T) {
	localities := []string{"", "Ikeja", "Yaba", "Kano", "Surulere"}
	regions := []string{"", "Lagos", "Kano", "Oyo"}
	r := rand.New(rand.NewPCG(1, 2)) //nolint: gosec

	for iter := range 500 {
		requester := place{
			locality: localities[r.IntN(len(localities))],
			region:   regions[r.IntN(len(regions))],
		}
		n := r.IntN(30)
		candidates := make([]place, n)
		for i := range candidates {
			candidates[i] = place{
				id:       fmt.Sprintf("%d-%d", iter, i),
				locality: localities[r.IntN(len(localities))],
				region:   regions[r.IntN(len(regions))],
			}
		}
		before := slices.Clone(candidates)

		got := ranking.Rank(requester, candidates)

		// same elements, no duplicates, no omissions
		require.Len(t, got, n)
		require.ElementsMatch(t, ids(candidates), ids(got))
		// input untouched
		require.Equal(t, before, candidates)
		// tiers never go backwards
		for i := 1; i < len(got); i++ {
			require.LessOrEqual(t,
				ranking.TierOf(requester, got[i-1]),
				ranking.TierOf(requester, got[i]),
				"tier order violated at %d", i)
		}
		// every locality match precedes every non-match
		lastLocal, firstNonLocal := -1, len(got)
		for i, c := range got {
			if requester.locality != "" && c.locality == requester.locality {
				lastLocal = i
			} else if i < firstNonLocal {
				firstNonLocal = i
			}
		}
		require.Less(t, lastLocal, firstNonLocal)
	}
}

// TestRank_ShuffleIsUniform runs a chi-square goodness of fit test on the
// orderings of three same-tier candidates.
func TestRank_ShuffleIsUniform(t *testing.T) {
	const runs = 6000
	requester := place{locality: "Ikeja", region: "Lagos"}
	candidates := []place{
		{id: "a", locality: "Ikeja"},
		{id: "b", locality: "Ikeja"},
		{id: "c", locality: "Ikeja"},
	}

	counts := map[string]int{}
	for range runs {
		counts[strings.Join(ids(ranking.Rank(requester, candidates)), "")]++
	}
	require.Len(t, counts, 6, "every permutation should appear")

	expected := float64(runs) / 6
	chi2 := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	// critical value for 5 degrees of freedom at p = 0.001
	require.Less(t, chi2, 20.515, "orderings are not uniform: %v", counts)
}

func TestRank_WorksWithProviders(t *testing.T) {
	requester := domain.User{LGA: "Ikeja", State: "Lagos"}
	providers := []domain.Provider{
		{User: domain.User{Username: "far", LGA: "Kano", State: "Kano"}},
		{User: domain.User{Username: "near", LGA: "Ikeja", State: "Lagos"}},
	}

	got := ranking.Rank(requester, providers)
	require.Equal(t, "near", got[0].Username)
	require.Equal(t, "far", got[1].Username)
}

func TestRank_ConcurrentUse(t *testing.T) {
	requester := place{locality: "Ikeja", region: "Lagos"}
	candidates := []place{
		{id: "A", locality: "Ikeja"},
		{id: "B", locality: "Yaba", region: "Lagos"},
		{id: "C", locality: "Kano", region: "Kano"},
		{id: "D", locality: "Ikeja"},
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				got := ranking.Rank(requester, candidates)
				if len(got) != len(candidates) || got[2].id != "B" || got[3].id != "C" {
					t.Errorf("unexpected order %v", ids(got))

					return
				}
			}
		}()
	}
	wg.Wait()
}
