package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/kbrewster21/league-office-go/internal/warroom"
)

// StartReconcileWorker sweeps every war-room league's documents and flags
// proposals that have gone missing from all lists without reaching the
// approval queue. The accept transition is not atomic, so a crash between
// its removals and the queue append can strand an offer this way.
//
// Orphans are logged and treated as cancelled, never retried. Retrying
// would risk double-applying asset transfers.
func StartReconcileWorker(ctx context.Context, stores map[string]*warroom.Store, partyKeys map[string][]string) {
	ticker := time.NewTicker(5 * time.Minute)
	go func() {
		defer ticker.Stop()
		seen := make(map[string]map[string]bool) // leagueID -> proposal IDs last sweep
		for {
			select {
			case <-ctx.Done():
				fmt.Println("Reconcile worker stopped")
				return
			case <-ticker.C:
				for leagueID, s := range stores {
					seen[leagueID] = sweep(ctx, leagueID, s, partyKeys[leagueID], seen[leagueID])
				}
			}
		}
	}()
}

func sweep(ctx context.Context, leagueID string, s *warroom.Store, keys []string, previous map[string]bool) map[string]bool {
	current := make(map[string]bool)

	for _, key := range keys {
		doc, err := s.WarRoom(ctx, key)
		if err != nil {
			fmt.Printf("Reconcile error (league %s, room %s): %v\n", leagueID, key, err)
			return previous
		}
		for _, p := range doc.SentRequests {
			current[p.ID] = true
		}
		for _, p := range doc.Requests {
			current[p.ID] = true
		}
	}

	queue, err := s.Queue(ctx)
	if err != nil {
		fmt.Printf("Reconcile error (league %s, queue): %v\n", leagueID, err)
		return previous
	}
	for _, p := range queue.ApprovedRequests {
		current[p.ID] = true
	}

	for id := range previous {
		if !current[id] {
			// Gone from every pending list and the queue without an observed
			// terminal action: counted as lost, safe to ignore.
			fmt.Printf("Reconcile: proposal %s (league %s) vanished from all lists, treating as cancelled\n", id, leagueID)
		}
	}
	return current
}
