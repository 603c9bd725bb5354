package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lacosa-game/lacosa-server-go/internal/game"
)

const resultsSchema = `
CREATE TABLE IF NOT EXISTS game_results (
	game_id      TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	winning_side TEXT NOT NULL,
	winner_ids   TEXT[] NOT NULL,
	player_count INT NOT NULL,
	turns_taken  INT NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ResultRepository persists finished-game outcomes.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a repository over the given pool.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// EnsureSchema creates the results table if it does not exist.
func (r *ResultRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, resultsSchema); err != nil {
		return fmt.Errorf("failed to ensure game_results schema: %w", err)
	}
	return nil
}

// RecordResult stores one finished game. Implements game.ResultRecorder.
func (r *ResultRepository) RecordResult(ctx context.Context, result game.GameResult) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO game_results (game_id, name, winning_side, winner_ids, player_count, turns_taken)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (game_id) DO NOTHING`,
		result.GameID, result.Name, string(result.Side), result.WinnerIDs,
		result.PlayerCount, result.TurnsTaken,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}
	return nil
}

// ResultRow is one stored game outcome.
type ResultRow struct {
	GameID      string    `json:"game_id"`
	Name        string    `json:"name"`
	WinningSide string    `json:"winning_side"`
	WinnerIDs   []string  `json:"winner_ids"`
	PlayerCount int       `json:"player_count"`
	TurnsTaken  int       `json:"turns_taken"`
	FinishedAt  time.Time `json:"finished_at"`
}

// RecentResults returns up to limit finished games, newest first.
func (r *ResultRepository) RecentResults(ctx context.Context, limit int) ([]ResultRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx,
		`SELECT game_id, name, winning_side, winner_ids, player_count, turns_taken, finished_at
		 FROM game_results ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}
	defer rows.Close()

	var results []ResultRow
	for rows.Next() {
		var row ResultRow
		if err := rows.Scan(&row.GameID, &row.Name, &row.WinningSide, &row.WinnerIDs,
			&row.PlayerCount, &row.TurnsTaken, &row.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
