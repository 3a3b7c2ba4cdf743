package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// League as wired at boot. Plumbing selects which trade backend serves it:
// 'rest' leagues talk to their legacy trade service, 'warroom' leagues use
// the live draft document model.
type League struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Sport    string `json:"sport"` // 'football' or 'hockey'
	Tier     string `json:"tier"`  // 'college' or 'pro'
	Plumbing string `json:"plumbing"`
	TradeAPI string `json:"trade_api_url"`
}

func GetLeagues(db *pgxpool.Pool) ([]League, error) {
	rows, err := db.Query(context.Background(), `
		SELECT id, name, sport, tier, trade_plumbing, COALESCE(trade_api_url, '')
		FROM leagues ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leagues []League
	for rows.Next() {
		var l League
		if err := rows.Scan(&l.ID, &l.Name, &l.Sport, &l.Tier, &l.Plumbing, &l.TradeAPI); err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, nil
}

func GetLeague(db *pgxpool.Pool, leagueID string) (*League, error) {
	var l League
	err := db.QueryRow(context.Background(), `
		SELECT id, name, sport, tier, trade_plumbing, COALESCE(trade_api_url, '')
		FROM leagues WHERE id = $1
	`, leagueID).Scan(&l.ID, &l.Name, &l.Sport, &l.Tier, &l.Plumbing, &l.TradeAPI)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
