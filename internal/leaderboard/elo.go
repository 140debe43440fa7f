package leaderboard

import "math"

const (
	// K is the maximum rating change of a single game.
	K       = 32
	BaseElo = 1500
)

// Rate returns the new ratings after winner beat loser.
func Rate(winner, loser int) (int, int) {
	expectedWinner := 1 / (1 + math.Pow(10, float64(loser-winner)/400))
	expectedLoser := 1 / (1 + math.Pow(10, float64(winner-loser)/400))
	return winner + int(math.Round(K*(1-expectedWinner))), loser + int(math.Round(K*(0-expectedLoser)))
}
