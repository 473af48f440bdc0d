package refl_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtalmerge/snapmerge/refl"
)

func TestAdd_UpsertSemantics(t *testing.T) {
	list := refl.NewReflList()

	h1 := list.Add(1, 2, 3)
	list.SetIntensity(h1, 42)

	h2 := list.Add(1, 2, 3)
	require.Equal(t, h1, h2)
	require.Equal(t, 1, list.Count())
	require.Equal(t, 42.0, list.Intensity(h2))
}

func TestFind_ExactNoFolding(t *testing.T) {
	list := refl.NewReflList()
	list.Add(1, 0, 0)

	_, ok := list.Find(1, 0, 0)
	require.True(t, ok)

	_, ok = list.Find(-1, 0, 0)
	require.False(t, ok, "Find must not fold symmetry equivalents")
}

func TestIteration_DeterministicSortedOrder(t *testing.T) {
	list := refl.NewReflList()
	keys := [][3]int32{{3, 0, 0}, {1, 0, 0}, {2, 0, 0}, {1, -1, 0}, {1, 1, 0}}
	for _, k := range keys {
		list.Add(k[0], k[1], k[2])
	}

	var got [][3]int32
	list.ForEach(func(h refl.Handle) {
		a, b, c := list.HKL(h)
		got = append(got, [3]int32{a, b, c})
	})

	require.Equal(t, [][3]int32{{1, -1, 0}, {1, 0, 0}, {1, 1, 0}, {2, 0, 0}, {3, 0, 0}}, got)
}

func TestIteration_MatchesInsertionCountAfterRandomOrder(t *testing.T) {
	list := refl.NewReflList()
	rng := rand.New(rand.NewSource(7))
	seen := map[[3]int32]bool{}
	for len(seen) < 200 {
		k := [3]int32{int32(rng.Intn(20) - 10), int32(rng.Intn(20) - 10), int32(rng.Intn(20) - 10)}
		if seen[k] {
			continue
		}
		seen[k] = true
		list.Add(k[0], k[1], k[2])
	}

	require.Equal(t, len(seen), list.Count())

	var prev [3]int32
	first := true
	list.ForEach(func(h refl.Handle) {
		a, b, c := list.HKL(h)
		cur := [3]int32{a, b, c}
		if !first {
			require.True(t, less(prev, cur), "iteration order must be sorted")
		}
		first = false
		prev = cur
	})
}

func less(a, b [3]int32) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}

// Invariant 1 — 0 <= partiality <= 1, sigma >= 0, redundancy >= 0 (here we
// only check that the defaults satisfy the invariant; producers are
// responsible for keeping it true after mutation).
func TestDefaults_SatisfyInvariants(t *testing.T) {
	list := refl.NewReflList()
	h := list.Add(0, 0, 1)

	require.GreaterOrEqual(t, list.Partiality(h), 0.0)
	require.LessOrEqual(t, list.Partiality(h), 1.0)
	require.GreaterOrEqual(t, list.Sigma(h), 0.0)
	require.GreaterOrEqual(t, list.Redundancy(h), int32(0))
}

func TestFreeAll_ResetsList(t *testing.T) {
	list := refl.NewReflList()
	list.Add(1, 1, 1)
	list.Add(2, 2, 2)
	require.Equal(t, 2, list.Count())

	list.FreeAll()
	require.Equal(t, 0, list.Count())
	_, ok := list.Find(1, 1, 1)
	require.False(t, ok)
}
