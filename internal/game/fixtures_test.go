package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fleetA keeps its ships on rows 0, 2 and 4, with the 4-ship at 0..3.
func fleetA() [][]int {
	return [][]int{
		{0, 1, 2, 3},
		{5, 6, 7},
		{20, 21, 22},
		{24, 25},
		{27, 28},
		{40, 41},
		{43},
		{45},
		{47},
		{49},
	}
}

// fleetB is fleetA moved down five rows: the 4-ship sits at 50..53.
func fleetB() [][]int {
	groups := fleetA()
	for _, g := range groups {
		for i := range g {
			g[i] += 50
		}
	}
	return groups
}

func fleetCells(groups [][]int) []Cell {
	var out []Cell
	for _, g := range groups {
		for _, v := range g {
			out = append(out, Cell(v))
		}
	}
	return out
}

func startedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, s.Fill(Seat0))
	require.NoError(t, s.Fill(Seat1))
	_, err := s.PlaceFleet(Seat0, fleetA())
	require.NoError(t, err)
	started, err := s.PlaceFleet(Seat1, fleetB())
	require.NoError(t, err)
	require.True(t, started)
	return s
}
