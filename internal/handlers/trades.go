package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kbrewster21/league-office-go/internal/store"
	"github.com/kbrewster21/league-office-go/internal/trade"
)

// TradeCenterHandler shows every outstanding proposal for the teams the user
// manages, across all leagues they play in.
func TradeCenterHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*store.User)
		adminLeagues, _ := store.GetCommissionerLeagues(db, user.ID)
		myTeams, _ := store.GetManagedTeams(db, user.ID)

		pending := make(map[int][]trade.Proposal)
		for _, t := range myTeams {
			if ps, ok := env.Proposals[t.LeagueID]; ok {
				pending[t.ID] = ps.ProposalsFor(t.ID)
			}
		}

		RenderTemplate(c, "trades.html", gin.H{
			"User":          user,
			"MyTeams":       myTeams,
			"PendingTrades": pending,
			"IsCommish":     len(adminLeagues) > 0,
		})
	}
}

// NewTradeHandler renders the proposal builder against a target team's asset
// catalog.
func NewTradeHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*store.User)
		targetTeamID, err := atoiParam(c, "team_id")
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid team id")
			return
		}

		targetTeam, err := store.GetTeam(db, targetTeamID)
		if err != nil {
			c.String(http.StatusNotFound, "Target team not found")
			return
		}

		allMyTeams, _ := store.GetManagedTeams(db, user.ID)
		var myTeam *store.Team
		for i, t := range allMyTeams {
			if t.LeagueID == targetTeam.LeagueID && t.ID != targetTeam.ID {
				myTeam = &allMyTeams[i]
				break
			}
		}
		if myTeam == nil {
			c.String(http.StatusForbidden, "You do not have a team in this league.")
			return
		}

		theirPlayers, _ := store.GetRosterPlayers(db, targetTeam.ID)
		theirPicks, _ := store.GetDraftPicks(db, targetTeam.ID)
		myPlayers, _ := store.GetRosterPlayers(db, myTeam.ID)
		myPicks, _ := store.GetDraftPicks(db, myTeam.ID)

		RenderTemplate(c, "trade_new.html", gin.H{
			"User":         user,
			"MyTeam":       myTeam,
			"MyPlayers":    myPlayers,
			"MyPicks":      myPicks,
			"TargetTeam":   targetTeam,
			"TheirPlayers": theirPlayers,
			"TheirPicks":   theirPicks,
		})
	}
}

type submitTradeRequest struct {
	LeagueID string         `json:"league_id"`
	Proposal trade.Proposal `json:"proposal"`
}

// SubmitTradeHandler creates a proposal through the league's controller. The
// local view only updates after the backend confirms.
func SubmitTradeHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*store.User)

		var req submitTradeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		isOwner, _ := store.IsTeamOwner(db, req.Proposal.ProposingTeamID, user.ID)
		if !isOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not own the proposing team"})
			return
		}

		if open, reason := store.IsTradeWindowOpen(db, req.LeagueID); !open {
			c.JSON(http.StatusConflict, gin.H{"error": reason})
			return
		}

		ctrl, ok := env.Registry.Lookup(req.LeagueID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown league"})
			return
		}

		created, err := ctrl.Propose(c.Request.Context(), req.Proposal)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"proposal": created})
	}
}

type tradeActionRequest struct {
	LeagueID     string         `json:"league_id"`
	ActingTeamID int            `json:"acting_team_id"`
	Proposal     trade.Proposal `json:"proposal"`
}

func tradeAction(db *pgxpool.Pool, env *TradeEnv,
	act func(ctrl *trade.Controller, c *gin.Context, req tradeActionRequest) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*store.User)

		var req tradeActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		isOwner, _ := store.IsTeamOwner(db, req.ActingTeamID, user.ID)
		if !isOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not own the acting team"})
			return
		}

		ctrl, ok := env.Registry.Lookup(req.LeagueID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown league"})
			return
		}

		if err := act(ctrl, c, req); err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, trade.ErrNotRecipient) ||
				errors.Is(err, trade.ErrNotProposer) ||
				errors.Is(err, trade.ErrNotParty) {
				status = http.StatusForbidden
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func AcceptTradeHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return tradeAction(db, env, func(ctrl *trade.Controller, c *gin.Context, req tradeActionRequest) error {
		return ctrl.Accept(c.Request.Context(), req.Proposal, req.ActingTeamID)
	})
}

func RejectTradeHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return tradeAction(db, env, func(ctrl *trade.Controller, c *gin.Context, req tradeActionRequest) error {
		return ctrl.Reject(c.Request.Context(), req.Proposal, req.ActingTeamID)
	})
}

func CancelTradeHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return tradeAction(db, env, func(ctrl *trade.Controller, c *gin.Context, req tradeActionRequest) error {
		return ctrl.Cancel(c.Request.Context(), req.Proposal, req.ActingTeamID)
	})
}
