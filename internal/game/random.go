package game

import (
	"math/rand"
)

// RandomFleet lays out a legal fleet, largest ships first, and returns it as the
// groups a client would submit.
func RandomFleet(rng *rand.Rand) [][]int {
	for {
		if groups, ok := tryRandomFleet(rng); ok {
			return groups
		}
	}
}

func tryRandomFleet(rng *rand.Rand) ([][]int, bool) {
	var taken [CellCount]bool
	var groups [][]int
	for length := len(FleetRule) - 1; length >= 1; length-- {
		for n := 0; n < FleetRule[length]; n++ {
			group, ok := placeRandomShip(rng, &taken, length)
			if !ok {
				return nil, false
			}
			groups = append(groups, group)
		}
	}
	return groups, true
}

func placeRandomShip(rng *rand.Rand, taken *[CellCount]bool, length int) ([]int, bool) {
	for attempt := 0; attempt < 200; attempt++ {
		vertical := rng.Intn(2) == 1
		row, col := rng.Intn(BoardSize), rng.Intn(BoardSize)
		group := make([]int, 0, length)
		fits := true
		for i := 0; i < length && fits; i++ {
			r, c := row, col+i
			if vertical {
				r, c = row+i, col
			}
			cell, ok := CellAt(r, c)
			if !ok || taken[cell] || touchesTaken(taken, cell) {
				fits = false
				break
			}
			group = append(group, int(cell))
		}
		if !fits {
			continue
		}
		for _, v := range group {
			taken[v] = true
		}
		return group, true
	}
	return nil, false
}

func touchesTaken(taken *[CellCount]bool, c Cell) bool {
	for _, n := range c.Neighbors8() {
		if taken[n] {
			return true
		}
	}
	return false
}
