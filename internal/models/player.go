package models

import "time"

// Player and Team are owned by the account subsystem; matchmaking only
// resolves them by id.
type Player struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Team struct {
	ID        string    `db:"id" json:"id"`
	PlayerID  string    `db:"player_id" json:"playerId"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
