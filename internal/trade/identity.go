package trade

import "strconv"

// Role names which side of a proposal a party key is wanted for.
type Role string

const (
	RoleSender    Role = "sender"
	RoleRecipient Role = "recipient"
)

// ResolvePartyKey derives the identifier used to address a team's war-room
// document, regardless of which league shape produced the proposal. Football
// payloads name the team directly; hockey payloads only carry a numeric team
// ID. An empty return means the proposal cannot be routed and the caller must
// drop the operation rather than fail.
func ResolvePartyKey(p Proposal, role Role) string {
	switch role {
	case RoleSender:
		if p.ProposingTeam != "" {
			return p.ProposingTeam
		}
		if p.ProposingTeamID != 0 {
			return strconv.Itoa(p.ProposingTeamID)
		}
	case RoleRecipient:
		if p.RecipientTeam != "" {
			return p.RecipientTeam
		}
		if p.RecipientTeamID != 0 {
			return strconv.Itoa(p.RecipientTeamID)
		}
	}
	return ""
}
