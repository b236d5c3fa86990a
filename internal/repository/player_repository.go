package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Llayon/fantasy-autobattler-sub008/internal/models"
	"github.com/Llayon/fantasy-autobattler-sub008/pkg/database"
)

type PlayerRepository struct {
	db *database.DB
}

func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// FindByID returns the player, nil when unknown.
func (r *PlayerRepository) FindByID(ctx context.Context, id string) (*models.Player, error) {
	query := `
		SELECT id, username, created_at
		FROM players
		WHERE id = $1
	`

	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID,
		&player.Username,
		&player.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find player: %w", err)
	}

	return player, nil
}
