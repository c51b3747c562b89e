package brackets

import (
	"context"

	"github.com/matchdayhq/fixture-engine/standings"
)

type WarningKind string

const WarningUnresolvedDependency WarningKind = "unresolved_dependency"

// Warning is advisory, not an error: generation proceeded with a
// placeholder because a source group is not finished yet.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	MatchUID string      `json:"match_uid"`
	Source   TeamSource  `json:"source"`
	Message  string      `json:"message"`
}

// BracketMatch is one node of the generated placement graph. Home/Away
// are either concrete teams or symbolic sources; WinnerTo/LoserTo link
// the advancement chain by match UID and slot (1 = home, 2 = away).
type BracketMatch struct {
	UID          string     `json:"uid"`
	Bracket      string     `json:"bracket"`
	Round        int        `json:"round"`
	RoundLabel   string     `json:"round_label"`
	OrderInRound int        `json:"order_in_round"`
	ThirdPlace   bool       `json:"third_place"`
	Home         TeamSource `json:"home"`
	Away         TeamSource `json:"away"`
	WinnerTo     *string    `json:"winner_to,omitempty"`
	WinnerSlot   int        `json:"winner_slot,omitempty"`
	LoserTo      *string    `json:"loser_to,omitempty"`
	LoserSlot    int        `json:"loser_slot,omitempty"`
}

type GenerateParams struct {
	Standings []standings.GroupStanding
	Template  PlacementTemplate
}

type Result struct {
	Matches  []*BracketMatch
	Warnings []Warning
}

type Generator interface {
	Generate(ctx context.Context, params GenerateParams) (*Result, error)

	Name() string
}
