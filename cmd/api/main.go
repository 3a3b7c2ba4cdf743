package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kbrewster21/league-office-go/internal/db"
	"github.com/kbrewster21/league-office-go/internal/docstore"
	"github.com/kbrewster21/league-office-go/internal/handlers"
	"github.com/kbrewster21/league-office-go/internal/middleware"
	"github.com/kbrewster21/league-office-go/internal/notification"
	"github.com/kbrewster21/league-office-go/internal/proposals"
	"github.com/kbrewster21/league-office-go/internal/store"
	"github.com/kbrewster21/league-office-go/internal/trade"
	"github.com/kbrewster21/league-office-go/internal/warroom"
	"github.com/kbrewster21/league-office-go/internal/worker"
)

func main() {
	// 1. Initialize Databases
	database := db.InitDB()
	defer database.Close()

	mongoDB := docstore.InitMongo()

	// 1b. Initialize Email Notifications
	notification.InitEmail()

	// 2. Build per-league trade machinery
	leagues, err := store.GetLeagues(database)
	if err != nil {
		log.Fatal("Failed to load leagues: ", err)
	}

	env := &handlers.TradeEnv{
		Registry:    trade.NewRegistry(),
		Proposals:   make(map[string]*proposals.Store),
		WarRooms:    make(map[string]*warroom.Store),
		Settlements: make(map[string]*store.Settlement),
	}
	notify := notification.TradeNotifier(database)
	draftYear := os.Getenv("DRAFT_YEAR")
	if draftYear == "" {
		draftYear = strconv.Itoa(time.Now().Year())
	}
	tradeAPIToken := os.Getenv("TRADE_API_TOKEN")

	warRoomKeys := make(map[string][]string)
	for _, l := range leagues {
		var backend trade.Backend

		switch l.Plumbing {
		case "warroom":
			wr := warroom.NewStore(docstore.NewMerge(mongoDB), l.ID+"-draft-"+draftYear)
			env.WarRooms[l.ID] = wr
			backend = wr
			warRoomKeys[l.ID] = leaguePartyKeys(database, l.ID)
		default: // 'rest'
			if l.TradeAPI == "" {
				fmt.Printf("⚠️  League %s has no trade API URL, skipping\n", l.Name)
				continue
			}
			ps := proposals.NewStore(proposals.NewHTTPClient(l.TradeAPI, tradeAPIToken))
			if err := ps.Bootstrap(context.Background(), leagueTeamIDs(database, l.ID)); err != nil {
				fmt.Printf("⚠️  Bootstrap failed for %s: %v\n", l.Name, err)
			}
			env.Proposals[l.ID] = ps
			backend = ps
		}

		settlement := store.NewSettlement(database, l.ID)
		env.Settlements[l.ID] = settlement
		env.Registry.Register(trade.NewController(l.ID, backend, settlement, notify))
		fmt.Printf("✅ Trade desk ready for %s (%s)\n", l.Name, l.Plumbing)
	}

	// 3. Start Background Workers
	worker.StartReconcileWorker(context.Background(), env.WarRooms, warRoomKeys)

	// 4. Initialize Router
	r := gin.Default()
	r.Use(middleware.SecurityHeaders())

	// CORS Configuration
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "https://leagueofficesports.com"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// --- PUBLIC ROUTES ---
	public := r.Group("/")
	{
		public.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/trades")
		})
		public.GET("/login", handlers.LoginPageHandler())
		public.POST("/login", middleware.RateLimit(10, time.Minute), handlers.LoginHandler(database))
		public.GET("/register", handlers.RegisterPageHandler())
		public.POST("/register", middleware.RateLimit(5, time.Minute), handlers.RegisterHandler(database))
		public.GET("/logout", handlers.LogoutHandler())
	}

	// --- PROTECTED ROUTES ---
	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware(database))
	{
		// Trades
		authorized.GET("/trades", handlers.TradeCenterHandler(database, env))
		authorized.GET("/trades/new", handlers.NewTradeHandler(database))
		authorized.POST("/trades/submit", middleware.RateLimit(20, time.Minute), handlers.SubmitTradeHandler(database, env))
		authorized.POST("/trades/accept", handlers.AcceptTradeHandler(database, env))
		authorized.POST("/trades/reject", handlers.RejectTradeHandler(database, env))
		authorized.POST("/trades/cancel", handlers.CancelTradeHandler(database, env))

		// War Rooms (draft-time leagues)
		authorized.GET("/warroom/:league/:key", handlers.WarRoomHandler(database, env))

		// Commissioner Tools
		authorized.GET("/admin/trades", handlers.AdminTradeQueueHandler(database, env))
		authorized.GET("/admin/trades/stream/:league", handlers.AdminQueueStreamHandler(database, env))
		authorized.POST("/admin/trades/approve", handlers.AdminApproveTradeHandler(database, env))
		authorized.POST("/admin/trades/veto", handlers.AdminVetoTradeHandler(database, env))
		authorized.POST("/admin/trade-reverse", handlers.AdminReverseTradeHandler(database, env))
	}

	// --- API ROUTES ---
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong", "status": "League Office API is Live 🏈"})
	})

	// 5. Start Server
	fmt.Println("🚀 Server starting on http://localhost:8080")
	r.Run(":8080")
}

func leagueTeamIDs(database *pgxpool.Pool, leagueID string) []int {
	teams, err := store.GetTeamsByLeague(database, leagueID)
	if err != nil {
		fmt.Printf("⚠️  Could not load teams for %s: %v\n", leagueID, err)
		return nil
	}
	ids := make([]int, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return ids
}

func leaguePartyKeys(database *pgxpool.Pool, leagueID string) []string {
	teams, err := store.GetTeamsByLeague(database, leagueID)
	if err != nil {
		fmt.Printf("⚠️  Could not load teams for %s: %v\n", leagueID, err)
		return nil
	}
	keys := make([]string, 0, len(teams))
	for _, t := range teams {
		keys = append(keys, t.PartyKey())
	}
	return keys
}
