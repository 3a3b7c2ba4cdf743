package handlers

import (
	"testing"

	"github.com/kbrewster21/league-office-go/internal/store"
)

func leagueTeams() []store.Team {
	return []store.Team{
		{ID: 2, Name: "Green Bay", Abbreviation: "GB", LeagueID: "L"},
		{ID: 5, Name: "Fifth Franchise", LeagueID: "L"},
	}
}

func TestTeamForPartyKey_ResolvesTheKeysOwnTeam(t *testing.T) {
	// Ownership of one team must never open another team's room: the key in
	// the path decides which team the ownership check runs against.
	team := teamForPartyKey(leagueTeams(), "GB")
	if team == nil {
		t.Fatal("expected GB to resolve")
	}
	if team.ID != 2 {
		t.Errorf("key GB resolved to team %d, want 2", team.ID)
	}
}

func TestTeamForPartyKey_NumericFallback(t *testing.T) {
	team := teamForPartyKey(leagueTeams(), "5")
	if team == nil || team.ID != 5 {
		t.Fatalf("key 5 should resolve to the abbreviation-less team, got %+v", team)
	}
}

func TestTeamForPartyKey_UnknownKeyIsNil(t *testing.T) {
	if team := teamForPartyKey(leagueTeams(), "CHI"); team != nil {
		t.Errorf("unknown key resolved to team %d", team.ID)
	}
	if team := teamForPartyKey(nil, "GB"); team != nil {
		t.Errorf("empty league resolved to team %d", team.ID)
	}
}
