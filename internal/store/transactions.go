package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Transaction struct {
	ID              string    `json:"id"`
	LeagueID        string    `json:"league_id"`
	TeamID          int       `json:"team_id"`
	TransactionType string    `json:"transaction_type"`
	Summary         string    `json:"summary"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func LogTransaction(db *pgxpool.Pool, leagueID string, teamID int, transType, summary string) error {
	_, err := db.Exec(context.Background(), `
		INSERT INTO transactions (league_id, team_id, transaction_type, summary, status)
		VALUES ($1, $2, $3, $4, 'COMPLETED')
	`, leagueID, teamID, transType, summary)
	return err
}

// GetTradeLog lists settled trade transactions for a league, newest first,
// for the commissioner's review page.
func GetTradeLog(db *pgxpool.Pool, leagueID string, limit int) ([]Transaction, error) {
	rows, err := db.Query(context.Background(), `
		SELECT id, league_id, team_id, transaction_type, COALESCE(summary, ''), status, created_at
		FROM transactions
		WHERE league_id = $1 AND transaction_type = 'TRADE'
		ORDER BY created_at DESC
		LIMIT $2
	`, leagueID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var log []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.LeagueID, &t.TeamID, &t.TransactionType, &t.Summary, &t.Status, &t.CreatedAt); err != nil {
			continue
		}
		log = append(log, t)
	}
	return log, nil
}
