package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/krishanu7/sea-battle/db"
	"github.com/krishanu7/sea-battle/internal/events"
	"go.uber.org/zap"
)

type Service struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

func NewService(db *sql.DB, log *zap.Logger) *Service {
	return &Service{
		db:  db,
		log: log,
		now: time.Now,
	}
}

type LeaderboardEntry struct {
	PlayerID  string    `json:"player_id"`
	Username  string    `json:"username"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	Elo       int       `json:"elo"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.player_id, u.username, s.wins, s.losses, s.elo, s.updated_at
		FROM stats s
		JOIN users u ON s.player_id = u.id
		ORDER BY s.elo DESC, s.wins DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	leaderboard := []LeaderboardEntry{}
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.PlayerID, &entry.Username, &entry.Wins, &entry.Losses, &entry.Elo, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		leaderboard = append(leaderboard, entry)
	}
	return leaderboard, rows.Err()
}

// Report records finished games between two signed-in players. Other events,
// anonymous seats and games without a winner are ignored.
func (s *Service) Report(ctx context.Context, ev events.Event) error {
	if ev.Type != events.GameOver || ev.Winner == nil {
		return nil
	}
	winner := *ev.Winner
	if winner != 0 && winner != 1 {
		return nil
	}
	winnerID, loserID := ev.Players[winner], ev.Players[1-winner]
	if winnerID == "" || loserID == "" || winnerID == loserID {
		return nil
	}
	return s.RecordResult(ctx, winnerID, loserID)
}

// RecordResult adds a win and a loss and moves both ratings in one transaction.
func (s *Service) RecordResult(ctx context.Context, winnerID, loserID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	winnerStats, err := loadStats(ctx, tx, winnerID)
	if err != nil {
		return fmt.Errorf("failed to get winner stats: %w", err)
	}
	loserStats, err := loadStats(ctx, tx, loserID)
	if err != nil {
		return fmt.Errorf("failed to get loser stats: %w", err)
	}

	winnerStats.Elo, loserStats.Elo = Rate(winnerStats.Elo, loserStats.Elo)
	winnerStats.Wins++
	loserStats.Losses++

	now := s.now().UTC()
	for _, st := range []db.PlayerStats{winnerStats, loserStats} {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO stats (player_id, wins, losses, elo, updated_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (player_id) DO UPDATE SET wins = $2, losses = $3, elo = $4, updated_at = $5`,
			st.PlayerID, st.Wins, st.Losses, st.Elo, now,
		)
		if err != nil {
			return fmt.Errorf("failed to update stats for %s: %w", st.PlayerID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stats: %w", err)
	}

	s.log.Info("updated stats",
		zap.String("winner", winnerID), zap.Int("winner_elo", winnerStats.Elo),
		zap.String("loser", loserID), zap.Int("loser_elo", loserStats.Elo))
	return nil
}

func loadStats(ctx context.Context, tx *sql.Tx, playerID string) (db.PlayerStats, error) {
	st := db.PlayerStats{PlayerID: playerID}
	err := tx.QueryRowContext(ctx,
		"SELECT wins, losses, elo FROM stats WHERE player_id = $1 FOR UPDATE", playerID,
	).Scan(&st.Wins, &st.Losses, &st.Elo)
	if errors.Is(err, sql.ErrNoRows) {
		st.Elo = BaseElo
		return st, nil
	}
	return st, err
}
