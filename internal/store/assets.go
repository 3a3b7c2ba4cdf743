package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Asset catalog reads: display data for what a team can put on the table.
// Nothing here mutates ownership; that only happens at settlement.

type RosterPlayer struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	TeamID   int     `json:"team_id"`
	Salary   float64 `json:"salary"`
}

type DraftPick struct {
	ID           string `json:"id"`
	TeamID       int    `json:"team_id"`
	Year         int    `json:"year"`
	Round        int    `json:"round"`
	OriginalTeam string `json:"original_team"`
}

func GetRosterPlayers(db *pgxpool.Pool, teamID int) ([]RosterPlayer, error) {
	rows, err := db.Query(context.Background(), `
		SELECT id, first_name || ' ' || last_name, position, team_id, COALESCE(salary, 0)
		FROM players WHERE team_id = $1
		ORDER BY last_name, first_name
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []RosterPlayer
	for rows.Next() {
		var p RosterPlayer
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.TeamID, &p.Salary); err != nil {
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

func GetDraftPicks(db *pgxpool.Pool, teamID int) ([]DraftPick, error) {
	rows, err := db.Query(context.Background(), `
		SELECT dp.id, dp.team_id, dp.year, dp.round, COALESCE(orig.name, '')
		FROM draft_picks dp
		LEFT JOIN teams orig ON orig.id = dp.original_team_id
		WHERE dp.team_id = $1 AND dp.used = FALSE
		ORDER BY dp.year, dp.round
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []DraftPick
	for rows.Next() {
		var d DraftPick
		if err := rows.Scan(&d.ID, &d.TeamID, &d.Year, &d.Round, &d.OriginalTeam); err != nil {
			continue
		}
		picks = append(picks, d)
	}
	return picks, nil
}

func GetPlayerName(db *pgxpool.Pool, playerID string) string {
	var name string
	err := db.QueryRow(context.Background(),
		`SELECT first_name || ' ' || last_name FROM players WHERE id = $1`, playerID).Scan(&name)
	if err != nil {
		return ""
	}
	return name
}
