package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kbrewster21/league-office-go/internal/trade"
)

// Settlement applies an approved proposal's asset transfers inside one
// transaction. Ownership changes happen here and nowhere else; up to this
// point a proposal has only referenced assets.
type Settlement struct {
	db       *pgxpool.Pool
	leagueID string
}

func NewSettlement(db *pgxpool.Pool, leagueID string) *Settlement {
	return &Settlement{db: db, leagueID: leagueID}
}

// Apply transfers every asset on both sides of the proposal. Applying the
// same trade twice is a no-op: the settlement ledger keys on the trade ID, so
// a redelivered approval cannot move a player twice.
func (s *Settlement) Apply(ctx context.Context, p trade.Proposal) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO trade_settlements (trade_id, league_id)
		VALUES ($1, $2)
		ON CONFLICT (trade_id) DO NOTHING
	`, p.ID, s.leagueID)
	if err != nil {
		return fmt.Errorf("settlement: record trade %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		// Already settled on a previous delivery
		return tx.Commit(ctx)
	}

	for _, a := range p.ProposingTeamOptions {
		if err := s.transfer(ctx, tx, p.ID, a, p.RecipientTeamID); err != nil {
			return err
		}
	}
	for _, a := range p.RecipientTeamOptions {
		if err := s.transfer(ctx, tx, p.ID, a, p.ProposingTeamID); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (league_id, team_id, transaction_type, status, summary)
		VALUES ($1, $2, 'TRADE', 'COMPLETED', $3)
	`, s.leagueID, p.ProposingTeamID, fmt.Sprintf("Trade %s approved and applied", p.ID))
	if err != nil {
		return fmt.Errorf("settlement: log trade %s: %w", p.ID, err)
	}

	return tx.Commit(ctx)
}

func (s *Settlement) transfer(ctx context.Context, tx pgx.Tx, tradeID string, a trade.Asset, targetTeamID int) error {
	switch a.Kind {
	case trade.AssetPlayer:
		_, err := tx.Exec(ctx, `UPDATE players SET team_id = $1 WHERE id = $2`, targetTeamID, a.RefID)
		if err != nil {
			return fmt.Errorf("settlement: move player %s: %w", a.RefID, err)
		}
	case trade.AssetDraftPick:
		_, err := tx.Exec(ctx, `UPDATE draft_picks SET team_id = $1 WHERE id = $2`, targetTeamID, a.RefID)
		if err != nil {
			return fmt.Errorf("settlement: move pick %s: %w", a.RefID, err)
		}
	case trade.AssetCash:
		// The sending team keeps SalaryPct of the player's salary on its own
		// books as a retained obligation.
		var salary float64
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(salary, 0) FROM players WHERE id = $1`, a.RefID).Scan(&salary); err != nil {
			return fmt.Errorf("settlement: look up salary for %s: %w", a.RefID, err)
		}
		retained := salary * a.SalaryPct
		if retained > 0 {
			_, err := tx.Exec(ctx, `
				INSERT INTO retained_salary (trade_id, team_id, player_id, amount, year, note)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, tradeID, a.TeamID, a.RefID, retained, time.Now().Year(),
				fmt.Sprintf("Trade retention (%.0f%%)", a.SalaryPct*100))
			if err != nil {
				return fmt.Errorf("settlement: record retention for %s: %w", a.RefID, err)
			}
		}
	default:
		return fmt.Errorf("settlement: unknown asset kind %q on trade %s", a.Kind, tradeID)
	}
	return nil
}

// Reverse undoes an applied trade: players and picks return to their original
// teams, retained salary is cleared, and the settlement is marked reversed.
// Commissioner-only, exposed through the admin surface.
func (s *Settlement) Reverse(ctx context.Context, p trade.Proposal) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var reversed bool
	err = tx.QueryRow(ctx,
		`SELECT reversed FROM trade_settlements WHERE trade_id = $1 FOR UPDATE`, p.ID).Scan(&reversed)
	if err != nil {
		return fmt.Errorf("settlement: trade %s was never applied: %w", p.ID, err)
	}
	if reversed {
		return tx.Commit(ctx)
	}

	// Send everything back where it came from.
	for _, a := range append(append([]trade.Asset{}, p.ProposingTeamOptions...), p.RecipientTeamOptions...) {
		switch a.Kind {
		case trade.AssetPlayer:
			if _, err := tx.Exec(ctx, `UPDATE players SET team_id = $1 WHERE id = $2`, a.TeamID, a.RefID); err != nil {
				return fmt.Errorf("settlement: return player %s: %w", a.RefID, err)
			}
		case trade.AssetDraftPick:
			if _, err := tx.Exec(ctx, `UPDATE draft_picks SET team_id = $1 WHERE id = $2`, a.TeamID, a.RefID); err != nil {
				return fmt.Errorf("settlement: return pick %s: %w", a.RefID, err)
			}
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM retained_salary WHERE trade_id = $1`, p.ID); err != nil {
		return fmt.Errorf("settlement: clear retention for %s: %w", p.ID, err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE trade_settlements SET reversed = TRUE WHERE trade_id = $1`, p.ID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (league_id, team_id, transaction_type, status, summary)
		VALUES ($1, $2, 'COMMISSIONER', 'COMPLETED', $3)
	`, s.leagueID, p.ProposingTeamID, fmt.Sprintf("Trade %s reversed by Commissioner", p.ID))
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
