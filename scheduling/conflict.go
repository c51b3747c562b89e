package scheduling

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/matchdayhq/fixture-engine/models"
)

type ConflictKind string

const (
	ConflictPitch ConflictKind = "pitch_conflict"
	ConflictTeam  ConflictKind = "team_conflict"
)

// Conflict describes one illegal overlap found for a candidate
// placement. It carries enough of the offending match for an actionable
// message: its id, window and participants.
type Conflict struct {
	Kind       ConflictKind `json:"kind"`
	MatchID    int          `json:"match_id"`
	PitchID    *int         `json:"pitch_id,omitempty"`
	TeamID     *int         `json:"team_id,omitempty"`
	Window     TimeWindow   `json:"window"`
	HomeTeamID *int         `json:"home_team_id,omitempty"`
	AwayTeamID *int         `json:"away_team_id,omitempty"`
}

// ConflictError is the rejection payload of a schedule/reschedule call.
// It is always returned, never a silent no-op; retry policy belongs to
// the caller.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return "placement conflict"
	}
	c := e.Conflicts[0]
	switch c.Kind {
	case ConflictTeam:
		teamID := 0
		if c.TeamID != nil {
			teamID = *c.TeamID
		}
		return fmt.Sprintf("team %d is already booked by match %d between %s and %s",
			teamID, c.MatchID, c.Window.Start.Format("15:04"), c.Window.End.Format("15:04"))
	default:
		pitchID := 0
		if c.PitchID != nil {
			pitchID = *c.PitchID
		}
		return fmt.Sprintf("pitch %d is occupied by match %d between %s and %s",
			pitchID, c.MatchID, c.Window.Start.Format("15:04"), c.Window.End.Format("15:04"))
	}
}

// DivisionLookup resolves a match's division so its end instant can be
// recomputed from the configured duration.
type DivisionLookup func(divisionID int) (models.Division, bool)

// Placement is a proposed pitch/time assignment for one match.
type Placement struct {
	MatchID    int
	DivisionID int
	HomeTeamID *int
	AwayTeamID *int
	PitchID    int
	Start      time.Time
}

// CheckPlacement decides whether the candidate placement is legal
// against every other currently placed match. End instants are always
// recomputed from division durations; a stored end time is never
// trusted, so a stale value after a duration change cannot mask a
// conflict. Pure function: no side effects, deterministic output.
//
// All conflicts are enumerated rather than short-circuiting on the
// first, so a caller can surface the complete picture at once. A match
// referencing an unknown division is a programmer error and fails
// loudly.
func CheckPlacement(candidate Placement, existing []models.Match, divisions DivisionLookup) ([]Conflict, error) {
	division, ok := divisions(candidate.DivisionID)
	if !ok {
		return nil, errors.AssertionFailedf("match %d references unknown division %d", candidate.MatchID, candidate.DivisionID)
	}
	window := WindowFor(candidate.Start, division.MatchMinutes)

	var conflicts []Conflict
	for i := range existing {
		other := &existing[i]
		if other.ID == candidate.MatchID {
			continue
		}
		if !other.IsPlaced() {
			continue
		}
		otherDivision, ok := divisions(other.DivisionID)
		if !ok {
			return nil, errors.AssertionFailedf("match %d references unknown division %d", other.ID, other.DivisionID)
		}
		otherWindow := WindowFor(*other.StartTime, otherDivision.MatchMinutes)
		if !window.Overlaps(otherWindow) {
			continue
		}

		if *other.PitchID == candidate.PitchID {
			pitchID := candidate.PitchID
			conflicts = append(conflicts, Conflict{
				Kind:       ConflictPitch,
				MatchID:    other.ID,
				PitchID:    &pitchID,
				Window:     otherWindow,
				HomeTeamID: other.HomeTeamID,
				AwayTeamID: other.AwayTeamID,
			})
		}

		for _, teamID := range sharedTeams(candidate, other) {
			teamID := teamID
			conflicts = append(conflicts, Conflict{
				Kind:       ConflictTeam,
				MatchID:    other.ID,
				TeamID:     &teamID,
				Window:     otherWindow,
				HomeTeamID: other.HomeTeamID,
				AwayTeamID: other.AwayTeamID,
			})
		}
	}
	return conflicts, nil
}

// sharedTeams lists candidate team ids that also appear in the other
// match, home or away on either side.
func sharedTeams(candidate Placement, other *models.Match) []int {
	var shared []int
	for _, id := range []*int{candidate.HomeTeamID, candidate.AwayTeamID} {
		if id == nil {
			continue
		}
		if other.HasTeam(*id) {
			shared = append(shared, *id)
		}
	}
	return shared
}
