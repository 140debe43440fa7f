package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFleet_Accepts(t *testing.T) {
	for name, groups := range map[string][][]int{
		"fleet A": fleetA(),
		"fleet B": fleetB(),
		"vertical ships": {
			{0, 10, 20, 30},
			{2, 12, 22},
			{4, 14, 24},
			{6, 16},
			{8, 18},
			{50, 60},
			{52},
			{54},
			{56},
			{58},
		},
	} {
		t.Run(name, func(t *testing.T) {
			fleet, err := ValidateFleet(groups)
			require.NoError(t, err)
			assertFleetShape(t, fleet)
		})
	}
}

func TestValidateFleet_RandomFleetsAreLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		fleet, err := ValidateFleet(RandomFleet(rng))
		require.NoError(t, err)
		assertFleetShape(t, fleet)
	}
}

func assertFleetShape(t *testing.T, fleet *Fleet) {
	t.Helper()
	counts := map[int]int{}
	cells := 0
	for _, s := range fleet.Ships() {
		counts[s.Len()]++
		cells += s.Len()
	}
	assert.Equal(t, FleetCells, cells)
	assert.Equal(t, map[int]int{4: 1, 3: 2, 2: 3, 1: 4}, counts)

	ships := fleet.Ships()
	for i, a := range ships {
		for j, b := range ships {
			if i == j {
				continue
			}
			for _, c := range a.Cells() {
				assert.False(t, b.Contains(c), "ships overlap at %s", c)
				for _, n := range c.Neighbors8() {
					assert.False(t, b.Contains(n), "ships touch at %s/%s", c, n)
				}
			}
		}
	}
}

func TestValidateFleet_Rejects(t *testing.T) {
	replace := func(i int, group []int) [][]int {
		groups := fleetA()
		groups[i] = group
		return groups
	}

	cases := []struct {
		name   string
		groups [][]int
		want   error
	}{
		{"two 4-length ships", replace(1, []int{5, 6, 7, 8}), ErrFleetComposition},
		{"missing ship", fleetA()[:9], ErrFleetComposition},
		{"extra ship", append(fleetA(), []int{99}), ErrFleetComposition},
		{"ship too long", replace(0, []int{0, 1, 2, 3, 4}), ErrFleetComposition},
		{"no ships", nil, ErrFleetComposition},
		{"bent ship", replace(2, []int{20, 21, 31}), ErrInvalidShape},
		{"gap in ship", replace(2, []int{20, 21, 23}), ErrInvalidShape},
		{"diagonal ship", replace(3, []int{24, 35}), ErrInvalidShape},
		{"wraps across rows", replace(5, []int{39, 40}), ErrInvalidShape},
		{"off the board", replace(9, []int{100}), ErrInvalidShape},
		{"negative cell", replace(9, []int{-1}), ErrInvalidShape},
		{"repeated cell", replace(5, []int{40, 40}), ErrInvalidShape},
		{"empty group", replace(9, []int{}), ErrInvalidShape},
		{"overlap", replace(9, []int{47}), ErrOverlap},
		{"diagonal touch", replace(9, []int{38}), ErrAdjacent},
		{"side touch", replace(9, []int{8}), ErrAdjacent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fleet, err := ValidateFleet(tc.groups)
			assert.Nil(t, fleet)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var perr *PlacementError
			require.True(t, errors.As(err, &perr))
			assert.NotEmpty(t, perr.Detail)
		})
	}
}

func TestValidateFleet_UnsortedGroupsAreNormalized(t *testing.T) {
	groups := fleetA()
	groups[0] = []int{3, 1, 0, 2}
	fleet, err := ValidateFleet(groups)
	require.NoError(t, err)

	ship, ok := fleet.ShipAt(2)
	require.True(t, ok)
	assert.Equal(t, []Cell{0, 1, 2, 3}, ship.Cells())
}

func TestQuota_TakeDoesNotMutate(t *testing.T) {
	q := FleetRule
	next, ok := q.Take(4)
	require.True(t, ok)
	assert.Equal(t, 1, q[4])
	assert.Equal(t, 0, next[4])

	_, ok = next.Take(4)
	assert.False(t, ok)
	_, ok = next.Take(5)
	assert.False(t, ok)
	_, ok = next.Take(0)
	assert.False(t, ok)

	assert.Equal(t, 10, FleetRule.Ships())
	assert.False(t, FleetRule.Empty())
	assert.True(t, Quota{}.Empty())
}
