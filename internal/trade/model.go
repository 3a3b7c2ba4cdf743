package trade

// AssetKind discriminates what a trade asset actually is. The legacy data
// model guessed by checking which ID field was non-zero; the tag makes it
// explicit.
type AssetKind string

const (
	AssetPlayer    AssetKind = "player"
	AssetDraftPick AssetKind = "draft_pick"
	AssetCash      AssetKind = "cash"
)

// Asset is one item on one side of a proposal: a player, a draft pick, or a
// cash consideration. RefID points into the roster/pick catalog; SalaryPct is
// only meaningful for cash assets (fraction of salary retained by the sender).
type Asset struct {
	Kind      AssetKind `json:"kind" bson:"kind"`
	TeamID    int       `json:"team_id" bson:"teamID"`
	RefID     string    `json:"ref_id" bson:"refID"`
	SalaryPct float64   `json:"salary_pct,omitempty" bson:"salaryPct,omitempty"`
}

// Proposal is a single negotiation between two franchises. Ownership of the
// referenced assets never changes until a commissioner approves the trade;
// a proposal only points at assets.
//
// ProposingTeam/RecipientTeam carry the football-league abbreviation when the
// payload came from a football league; hockey-style leagues only populate the
// numeric IDs. ResolvePartyKey hides the difference.
type Proposal struct {
	ID              string `json:"id" bson:"id"`
	ProposingTeam   string `json:"proposing_team,omitempty" bson:"proposingTeam,omitempty"`
	RecipientTeam   string `json:"recipient_team,omitempty" bson:"recipientTeam,omitempty"`
	ProposingTeamID int    `json:"proposing_team_id" bson:"proposingTeamID"`
	RecipientTeamID int    `json:"recipient_team_id" bson:"recipientTeamID"`

	ProposingTeamOptions []Asset `json:"proposing_team_options" bson:"proposingTeamOptions"`
	RecipientTeamOptions []Asset `json:"recipient_team_options" bson:"recipientTeamOptions"`

	IsAccepted bool `json:"is_accepted" bson:"isAccepted"`
	IsRejected bool `json:"is_rejected" bson:"isRejected"`
}

// State of a proposal in the negotiation machine.
type State string

const (
	StateProposed             State = "proposed"
	StatePendingAdminApproval State = "pending_admin_approval"
	StateApproved             State = "approved"
	StateVetoed               State = "vetoed"
	StateRejected             State = "rejected"
	StateCancelled            State = "cancelled"
)

// Terminal reports whether no further action can change the proposal.
func (s State) Terminal() bool {
	switch s {
	case StateApproved, StateVetoed, StateRejected, StateCancelled:
		return true
	}
	return false
}
