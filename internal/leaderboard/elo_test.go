package leaderboard

import (
	"context"
	"testing"

	"github.com/krishanu7/sea-battle/internal/events"
	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	w, l := Rate(BaseElo, BaseElo)
	assert.Equal(t, BaseElo+K/2, w)
	assert.Equal(t, BaseElo-K/2, l)

	// an upset moves more points than an expected result
	upW, upL := Rate(1400, 1600)
	favW, favL := Rate(1600, 1400)
	assert.Greater(t, upW-1400, favW-1600)
	assert.Less(t, upL-1600, favL-1400)
	assert.LessOrEqual(t, upW-1400, K)
}

func TestReport_IgnoresUnratedGames(t *testing.T) {
	// a nil db would panic if any of these reached RecordResult
	s := NewService(nil, nil)
	ctx := context.Background()

	cases := []events.Event{
		{Type: events.GameStarted, Players: [2]string{"a", "b"}},
		{Type: events.GameOver, Players: [2]string{"a", "b"}},
		{Type: events.GameOver, Players: [2]string{"a", ""}, Winner: events.IntPtr(0)},
		{Type: events.GameOver, Players: [2]string{"", "b"}, Winner: events.IntPtr(1)},
		{Type: events.GameOver, Players: [2]string{"a", "a"}, Winner: events.IntPtr(0)},
		{Type: events.GameOver, Players: [2]string{"a", "b"}, Winner: events.IntPtr(2)},
	}
	for _, ev := range cases {
		assert.NoError(t, s.Report(ctx, ev))
	}
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, defaultLimit, parseLimit(""))
	assert.Equal(t, defaultLimit, parseLimit("abc"))
	assert.Equal(t, defaultLimit, parseLimit("-4"))
	assert.Equal(t, 25, parseLimit("25"))
	assert.Equal(t, maxLimit, parseLimit("5000"))
}
