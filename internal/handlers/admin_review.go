package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kbrewster21/league-office-go/internal/store"
	"github.com/kbrewster21/league-office-go/internal/trade"
)

// The admin review surface is a thin consumer of the approved queue: it reads
// the queue live and pushes approve/veto back through the controller. It
// keeps no state of its own.

func requireCommissioner(db *pgxpool.Pool, c *gin.Context, leagueID string) *store.User {
	user := c.MustGet("user").(*store.User)
	ok, _ := store.IsCommissioner(db, user.ID, leagueID)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "commissioner only"})
		return nil
	}
	return user
}

// AdminTradeQueueHandler renders every league's approved queue plus the
// settled trade log.
func AdminTradeQueueHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*store.User)
		adminLeagues, _ := store.GetCommissionerLeagues(db, user.ID)
		if len(adminLeagues) == 0 {
			c.String(http.StatusForbidden, "Commissioner only")
			return
		}

		queues := make(map[string][]trade.Proposal)
		logs := make(map[string][]store.Transaction)
		leagueNames := make(map[string]string)
		playerNames := make(map[string]string)
		for _, leagueID := range adminLeagues {
			if l, err := store.GetLeague(db, leagueID); err == nil {
				leagueNames[leagueID] = l.Name
			}
			if rooms, ok := env.WarRooms[leagueID]; ok {
				doc, err := rooms.Queue(c.Request.Context())
				if err == nil {
					queues[leagueID] = doc.ApprovedRequests
					hydratePlayerNames(db, doc.ApprovedRequests, playerNames)
				}
			}
			if log, err := store.GetTradeLog(db, leagueID, 25); err == nil {
				logs[leagueID] = log
			}
		}

		RenderTemplate(c, "admin_trade_review.html", gin.H{
			"User":        user,
			"Queues":      queues,
			"TradeLogs":   logs,
			"LeagueNames": leagueNames,
			"PlayerNames": playerNames,
			"IsCommish":   true,
		})
	}
}

// hydratePlayerNames fills names with a display name for every player asset
// referenced by the queued proposals, so the review page shows who is in the
// deal rather than bare reference IDs.
func hydratePlayerNames(db *pgxpool.Pool, queue []trade.Proposal, names map[string]string) {
	for _, p := range queue {
		for _, a := range append(append([]trade.Asset{}, p.ProposingTeamOptions...), p.RecipientTeamOptions...) {
			if a.Kind == trade.AssetDraftPick || a.RefID == "" {
				continue
			}
			if _, done := names[a.RefID]; done {
				continue
			}
			if name := store.GetPlayerName(db, a.RefID); name != "" {
				names[a.RefID] = name
			}
		}
	}
}

// AdminQueueStreamHandler streams approved-queue snapshots over SSE so the
// review page updates without polling.
func AdminQueueStreamHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return func(c *gin.Context) {
		leagueID := c.Param("league")
		if requireCommissioner(db, c, leagueID) == nil {
			return
		}

		rooms, ok := env.WarRooms[leagueID]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "league has no approval queue stream"})
			return
		}

		updates, err := rooms.WatchQueue(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.Stream(func(w io.Writer) bool {
			doc, open := <-updates
			if !open {
				return false
			}
			c.SSEvent("queue", doc.ApprovedRequests)
			return true
		})
	}
}

type adminTradeRequest struct {
	LeagueID string         `json:"league_id"`
	Proposal trade.Proposal `json:"proposal"`
}

func adminAction(db *pgxpool.Pool, env *TradeEnv,
	act func(ctrl *trade.Controller, c *gin.Context, req adminTradeRequest) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminTradeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if requireCommissioner(db, c, req.LeagueID) == nil {
			return
		}

		ctrl, ok := env.Registry.Lookup(req.LeagueID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown league"})
			return
		}

		if err := act(ctrl, c, req); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// AdminApproveTradeHandler settles an accepted trade: asset transfers are
// applied, then the proposal is retired from the queue.
func AdminApproveTradeHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return adminAction(db, env, func(ctrl *trade.Controller, c *gin.Context, req adminTradeRequest) error {
		return ctrl.Approve(c.Request.Context(), req.Proposal)
	})
}

// AdminVetoTradeHandler discards an accepted trade from the queue. The
// parties' pending lists do not regain it. Vetoes never touch the settlement
// tables, so the trade log row is the only relational record one leaves.
func AdminVetoTradeHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return adminAction(db, env, func(ctrl *trade.Controller, c *gin.Context, req adminTradeRequest) error {
		if err := ctrl.Veto(c.Request.Context(), req.Proposal); err != nil {
			return err
		}
		if err := store.LogTransaction(db, req.LeagueID, req.Proposal.ProposingTeamID,
			"TRADE", fmt.Sprintf("Trade %s vetoed by Commissioner", req.Proposal.ID)); err != nil {
			fmt.Printf("Trade log error (league %s): %v\n", req.LeagueID, err)
		}
		return nil
	})
}

// AdminReverseTradeHandler unwinds an already-applied trade.
func AdminReverseTradeHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminTradeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if requireCommissioner(db, c, req.LeagueID) == nil {
			return
		}

		settlement, ok := env.Settlements[req.LeagueID]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "league has no settlement service"})
			return
		}

		if err := settlement.Reverse(c.Request.Context(), req.Proposal); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
