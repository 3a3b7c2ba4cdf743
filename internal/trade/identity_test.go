package trade

import "testing"

func TestResolvePartyKey_PrefersLeagueField(t *testing.T) {
	p := Proposal{
		ProposingTeam:   "GB",
		RecipientTeam:   "CHI",
		ProposingTeamID: 7,
		RecipientTeamID: 12,
	}

	if got := ResolvePartyKey(p, RoleSender); got != "GB" {
		t.Errorf("sender key = %q, want GB", got)
	}
	if got := ResolvePartyKey(p, RoleRecipient); got != "CHI" {
		t.Errorf("recipient key = %q, want CHI", got)
	}
}

func TestResolvePartyKey_FallsBackToNumericID(t *testing.T) {
	p := Proposal{ProposingTeamID: 7, RecipientTeamID: 12}

	if got := ResolvePartyKey(p, RoleSender); got != "7" {
		t.Errorf("sender key = %q, want 7", got)
	}
	if got := ResolvePartyKey(p, RoleRecipient); got != "12" {
		t.Errorf("recipient key = %q, want 12", got)
	}
}

func TestResolvePartyKey_MalformedProposalIsEmptyNotPanic(t *testing.T) {
	// Empty proposals and unknown roles must return "" and never panic.
	cases := []struct {
		name string
		p    Proposal
		role Role
	}{
		{"zero proposal sender", Proposal{}, RoleSender},
		{"zero proposal recipient", Proposal{}, RoleRecipient},
		{"unknown role", Proposal{ProposingTeamID: 3}, Role("admin")},
		{"only sender populated", Proposal{ProposingTeamID: 3}, RoleRecipient},
	}
	for _, tc := range cases {
		if got := ResolvePartyKey(tc.p, tc.role); got != "" {
			t.Errorf("%s: key = %q, want empty", tc.name, got)
		}
	}
}
