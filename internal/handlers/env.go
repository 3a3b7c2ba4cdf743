package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kbrewster21/league-office-go/internal/proposals"
	"github.com/kbrewster21/league-office-go/internal/store"
	"github.com/kbrewster21/league-office-go/internal/trade"
	"github.com/kbrewster21/league-office-go/internal/warroom"
)

// TradeEnv bundles the per-league trade machinery built once in main. A
// league appears in exactly one of Proposals or WarRooms depending on its
// plumbing; every league has a controller in the registry.
type TradeEnv struct {
	Registry    *trade.Registry
	Proposals   map[string]*proposals.Store
	WarRooms    map[string]*warroom.Store
	Settlements map[string]*store.Settlement
}

func atoiParam(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Query(name))
}
