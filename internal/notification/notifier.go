package notification

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kbrewster21/league-office-go/internal/store"
	"github.com/kbrewster21/league-office-go/internal/trade"
)

// TradeNotifier builds the fire-and-forget notifier wired into every
// league's controller. Delivery failures are logged and dropped: a trade
// state change never depends on a message arriving.
func TradeNotifier(db *pgxpool.Pool) trade.Notifier {
	return func(leagueID string, p trade.Proposal, event string) {
		proposerName := teamName(db, p.ProposingTeamID, p.ProposingTeam)
		recipientName := teamName(db, p.RecipientTeamID, p.RecipientTeam)

		msg := fmt.Sprintf("🤝 *TRADE %s* — %s ↔ %s (%s)",
			strings.ToUpper(event), proposerName, recipientName, p.ID)
		if err := SendSlackNotification(db, leagueID, "trade", msg); err != nil {
			fmt.Printf("Slack notify error (league %s): %v\n", leagueID, err)
		}

		subject, body := TradeEventEmail(event, proposerName, recipientName)
		targets := store.GetOwnerEmails(db, p.RecipientTeamID)
		if event != "proposed" {
			targets = append(targets, store.GetOwnerEmails(db, p.ProposingTeamID)...)
		}
		for _, to := range targets {
			SendEmail(to, subject, body)
		}
	}
}

func teamName(db *pgxpool.Pool, teamID int, fallback string) string {
	if t, err := store.GetTeam(db, teamID); err == nil {
		return t.Name
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("Team %d", teamID)
}
