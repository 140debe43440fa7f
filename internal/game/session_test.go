package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_PhaseProgression(t *testing.T) {
	s := NewSession()
	assert.Equal(t, PhaseAwaitingParticipants, s.Phase())

	require.NoError(t, s.Fill(Seat0))
	assert.Equal(t, PhaseAwaitingParticipants, s.Phase())
	assert.ErrorIs(t, s.Fill(Seat0), ErrSeatTaken)

	require.NoError(t, s.Fill(Seat1))
	assert.Equal(t, PhasePlacingFleets, s.Phase())

	started, err := s.PlaceFleet(Seat1, fleetB())
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, PhasePlacingFleets, s.Phase())

	started, err = s.PlaceFleet(Seat0, fleetA())
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, PhaseInProgress, s.Phase())
	assert.Equal(t, Seat0, s.Turn())

	assert.ErrorIs(t, s.Fill(Seat0), ErrWrongPhase)
}

func TestSession_FillRejectsInvalidSeat(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.Fill(Seat(2)), ErrInvalidSeat)
	assert.ErrorIs(t, s.Fill(Seat(-1)), ErrInvalidSeat)
}

func TestSession_PlaceFleetBeforeBothSeats(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Fill(Seat0))
	_, err := s.PlaceFleet(Seat0, fleetA())
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.False(t, s.HasFleet(Seat0))
}

func TestSession_RejectedFleetLeavesNoTrace(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Fill(Seat0))
	require.NoError(t, s.Fill(Seat1))

	bad := fleetA()
	bad[1] = []int{5, 6, 7, 8}
	_, err := s.PlaceFleet(Seat0, bad)
	assert.ErrorIs(t, err, ErrFleetComposition)
	assert.False(t, s.HasFleet(Seat0))
	assert.Nil(t, s.Fleet(Seat0))
	assert.Equal(t, PhasePlacingFleets, s.Phase())

	// the seat may try again
	_, err = s.PlaceFleet(Seat0, fleetA())
	require.NoError(t, err)
	assert.True(t, s.HasFleet(Seat0))
}

func TestSession_ResubmissionRejected(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Fill(Seat0))
	require.NoError(t, s.Fill(Seat1))
	_, err := s.PlaceFleet(Seat0, fleetA())
	require.NoError(t, err)

	_, err = s.PlaceFleet(Seat0, fleetB())
	assert.ErrorIs(t, err, ErrFleetAlreadyPlaced)
	assert.True(t, s.Fleet(Seat0).Occupied(0), "first fleet must be kept")
	assert.False(t, s.Fleet(Seat0).Occupied(50))
}

func TestSession_PlaceFleetAfterStart(t *testing.T) {
	s := startedSession(t)
	_, err := s.PlaceFleet(Seat0, fleetA())
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestSession_Resign(t *testing.T) {
	s := NewSession()
	_, ok := s.Resign(Seat0)
	assert.False(t, ok, "resign before the game starts is ignored")

	s = startedSession(t)
	out, ok := s.Resign(Seat1)
	require.True(t, ok)
	assert.Equal(t, Outcome{Winner: Seat0, HasWinner: true, Reason: EndResigned}, out)
	assert.Equal(t, PhaseConcluded, s.Phase())

	_, ok = s.Resign(Seat0)
	assert.False(t, ok)
}

func TestSession_Abandon(t *testing.T) {
	t.Run("while awaiting participants", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.Fill(Seat0))
		_, concluded := s.Abandon(Seat0)
		assert.False(t, concluded)
		assert.Equal(t, PhaseAwaitingParticipants, s.Phase())
		assert.False(t, s.filled[Seat0])
		require.NoError(t, s.Fill(Seat0), "freed seat can be filled again")
	})

	t.Run("during placement", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.Fill(Seat0))
		require.NoError(t, s.Fill(Seat1))
		out, concluded := s.Abandon(Seat0)
		require.True(t, concluded)
		assert.Equal(t, Outcome{Winner: Seat1, HasWinner: true, Reason: EndAbandoned}, out)
		assert.Equal(t, PhaseConcluded, s.Phase())
	})

	t.Run("during play", func(t *testing.T) {
		s := startedSession(t)
		out, concluded := s.Abandon(Seat1)
		require.True(t, concluded)
		assert.Equal(t, Seat0, out.Winner)
		assert.True(t, out.HasWinner)

		got, ok := s.Outcome()
		assert.True(t, ok)
		assert.Equal(t, out, got)

		_, again := s.Abandon(Seat0)
		assert.False(t, again, "concluded session does not conclude twice")
	})

	t.Run("unfilled seat", func(t *testing.T) {
		s := NewSession()
		_, concluded := s.Abandon(Seat1)
		assert.False(t, concluded)
	})
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "AwaitingParticipants", PhaseAwaitingParticipants.String())
	assert.Equal(t, "PlacingFleets", PhasePlacingFleets.String())
	assert.Equal(t, "InProgress", PhaseInProgress.String())
	assert.Equal(t, "Concluded", PhaseConcluded.String())
	assert.Equal(t, "Unknown", Phase(42).String())
}
