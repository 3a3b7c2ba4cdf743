package store

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	LeagueID     string `json:"league_id"`
	Owner        string `json:"owner"`
}

// PartyKey is the identity a team carries inside trade documents: the league
// abbreviation when it has one, otherwise its numeric ID. War-room document
// names and proposal routing both build on this, so the derivation lives in
// one place.
func (t Team) PartyKey() string {
	if t.Abbreviation != "" {
		return t.Abbreviation
	}
	return strconv.Itoa(t.ID)
}

func GetTeam(db *pgxpool.Pool, teamID int) (*Team, error) {
	var t Team
	err := db.QueryRow(context.Background(), `
		SELECT t.id, t.name, COALESCE(t.abbreviation, ''), t.league_id, COALESCE(u.username, '')
		FROM teams t
		LEFT JOIN team_owners o ON o.team_id = t.id
		LEFT JOIN users u ON u.id = o.user_id
		WHERE t.id = $1
	`, teamID).Scan(&t.ID, &t.Name, &t.Abbreviation, &t.LeagueID, &t.Owner)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func GetTeamsByLeague(db *pgxpool.Pool, leagueID string) ([]Team, error) {
	rows, err := db.Query(context.Background(), `
		SELECT id, name, COALESCE(abbreviation, ''), league_id
		FROM teams WHERE league_id = $1 ORDER BY name
	`, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Abbreviation, &t.LeagueID); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, nil
}

// GetManagedTeams lists every team a user owns, across all six leagues.
func GetManagedTeams(db *pgxpool.Pool, userID string) ([]Team, error) {
	rows, err := db.Query(context.Background(), `
		SELECT t.id, t.name, COALESCE(t.abbreviation, ''), t.league_id
		FROM teams t
		JOIN team_owners o ON o.team_id = t.id
		WHERE o.user_id = $1
		ORDER BY t.league_id, t.name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Abbreviation, &t.LeagueID); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, nil
}

// GetOwnerEmails lists the addresses of everyone who manages a team, for
// trade notifications.
func GetOwnerEmails(db *pgxpool.Pool, teamID int) []string {
	rows, err := db.Query(context.Background(), `
		SELECT u.email FROM team_owners o
		JOIN users u ON u.id = o.user_id
		WHERE o.team_id = $1 AND u.email <> ''
	`, teamID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err == nil {
			emails = append(emails, e)
		}
	}
	return emails
}

func IsTeamOwner(db *pgxpool.Pool, teamID int, userID string) (bool, error) {
	var isOwner bool
	err := db.QueryRow(context.Background(),
		`SELECT COUNT(*) > 0 FROM team_owners WHERE team_id = $1 AND user_id = $2`,
		teamID, userID).Scan(&isOwner)
	if err != nil {
		return false, err
	}
	return isOwner, nil
}
