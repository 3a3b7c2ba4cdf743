package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kbrewster21/league-office-go/internal/store"
)

// teamForPartyKey resolves a war-room party key back to the team it names.
// Nil when no team in the league carries that key.
func teamForPartyKey(teams []store.Team, key string) *store.Team {
	for i := range teams {
		if teams[i].PartyKey() == key {
			return &teams[i]
		}
	}
	return nil
}

// WarRoomHandler returns a team's live war-room document: outgoing offers in
// sentRequests, incoming in requests. The draft frontend polls this during
// the event. The party key in the path names the document; the caller must
// own the team behind that key (commissioners may read any room).
func WarRoomHandler(db *pgxpool.Pool, env *TradeEnv) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*store.User)
		leagueID := c.Param("league")
		partyKey := c.Param("key")

		rooms, ok := env.WarRooms[leagueID]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "league has no war rooms"})
			return
		}

		teams, err := store.GetTeamsByLeague(db, leagueID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		team := teamForPartyKey(teams, partyKey)
		if team == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such war room"})
			return
		}

		if isOwner, _ := store.IsTeamOwner(db, team.ID, user.ID); !isOwner {
			if isCommish, _ := store.IsCommissioner(db, user.ID, leagueID); !isCommish {
				c.JSON(http.StatusForbidden, gin.H{"error": "not your war room"})
				return
			}
		}

		doc, err := rooms.WarRoom(c.Request.Context(), partyKey)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, doc)
	}
}
