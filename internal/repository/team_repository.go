package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Llayon/fantasy-autobattler-sub008/internal/models"
	"github.com/Llayon/fantasy-autobattler-sub008/pkg/database"
)

const teamColumns = "id, player_id, name, is_active, created_at"

type TeamRepository struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// FindActiveOwned returns the team only when it exists, belongs to the
// player and is marked active; nil otherwise.
func (r *TeamRepository) FindActiveOwned(ctx context.Context, teamID, playerID string) (*models.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE id = $1 AND player_id = $2 AND is_active = TRUE
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, teamID, playerID))
}

// FindByID returns the team regardless of ownership, nil when unknown.
func (r *TeamRepository) FindByID(ctx context.Context, teamID string) (*models.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, teamID))
}

func (r *TeamRepository) scanOne(row *sql.Row) (*models.Team, error) {
	team := &models.Team{}
	err := row.Scan(
		&team.ID,
		&team.PlayerID,
		&team.Name,
		&team.IsActive,
		&team.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return team, nil
}
