package db

import "time"

type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // bcrypt hash
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type PlayerStats struct {
	PlayerID  string    `json:"player_id" db:"player_id"`
	Wins      int       `json:"wins" db:"wins"`
	Losses    int       `json:"losses" db:"losses"`
	Elo       int       `json:"elo" db:"elo"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
