package brackets

import (
	"fmt"

	"github.com/matchdayhq/fixture-engine/models"
)

type SourceKind string

const (
	SourceConcrete    SourceKind = "team"
	SourceGroupRank   SourceKind = "group_rank"
	SourceMatchWinner SourceKind = "match_winner"
	SourceMatchLoser  SourceKind = "match_loser"
)

// TeamSource is the tagged union behind every bracket slot: a concrete
// team, a rank within a group, or the winner/loser of a prior match.
// Placeholder identity is carried as structured data, never inferred
// from id prefixes or free-text notes.
type TeamSource struct {
	Kind      SourceKind `json:"kind"`
	TeamID    *int       `json:"team_id,omitempty"`
	GroupID   *int       `json:"group_id,omitempty"`
	GroupName string     `json:"group_name,omitempty"`
	Rank      int        `json:"rank,omitempty"`
	MatchUID  *string    `json:"match_uid,omitempty"`
}

func ConcreteTeam(teamID int) TeamSource {
	return TeamSource{Kind: SourceConcrete, TeamID: &teamID}
}

func GroupRank(group models.Group, rank int) TeamSource {
	groupID := group.ID
	return TeamSource{Kind: SourceGroupRank, GroupID: &groupID, GroupName: group.Name, Rank: rank}
}

func MatchWinner(matchUID string) TeamSource {
	return TeamSource{Kind: SourceMatchWinner, MatchUID: &matchUID}
}

func MatchLoser(matchUID string) TeamSource {
	return TeamSource{Kind: SourceMatchLoser, MatchUID: &matchUID}
}

// Resolved reports whether the slot holds a concrete team id.
func (s TeamSource) Resolved() bool {
	return s.Kind == SourceConcrete && s.TeamID != nil
}

// Label is the display form of an unresolved slot, e.g. "1st Group A" or
// "Winner of CHAMPIONSHIP-R1M2". Concrete sources render the team id;
// hosts substitute the team name downstream.
func (s TeamSource) Label() string {
	switch s.Kind {
	case SourceConcrete:
		if s.TeamID != nil {
			return fmt.Sprintf("Team %d", *s.TeamID)
		}
		return "Unknown Team"
	case SourceGroupRank:
		return fmt.Sprintf("%s %s", ordinal(s.Rank), s.GroupName)
	case SourceMatchWinner:
		return "Winner of " + derefString(s.MatchUID)
	case SourceMatchLoser:
		return "Loser of " + derefString(s.MatchUID)
	}
	return "TBD"
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func derefString(s *string) string {
	if s == nil {
		return "?"
	}
	return *s
}
