package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// IsTradeWindowOpen checks whether trades are allowed for the given league.
// The offseason always allows trades; during the season, league_dates may
// carry a trade_deadline entry.
func IsTradeWindowOpen(db *pgxpool.Pool, leagueID string) (bool, string) {
	now := time.Now()
	month := now.Month()

	var sport string
	if err := db.QueryRow(context.Background(),
		`SELECT sport FROM leagues WHERE id = $1`, leagueID).Scan(&sport); err != nil {
		sport = "football"
	}

	// Football offseason: Feb – Aug. Hockey offseason: Jul – Sep.
	switch sport {
	case "hockey":
		if month >= 7 && month <= 9 {
			return true, ""
		}
	default:
		if month >= 2 && month <= 8 {
			return true, ""
		}
	}

	var deadlineDate time.Time
	err := db.QueryRow(context.Background(), `
		SELECT event_date FROM league_dates
		WHERE league_id = $1 AND year = $2 AND date_type = 'trade_deadline'
	`, leagueID, now.Year()).Scan(&deadlineDate)

	if err != nil {
		// No deadline configured, allow trades
		return true, ""
	}

	if now.After(deadlineDate) {
		return false, fmt.Sprintf("The trade deadline for this league was %s. Trades are closed until the offseason.", deadlineDate.Format("January 2, 2006"))
	}

	return true, ""
}
