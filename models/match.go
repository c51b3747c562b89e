package models

import "time"

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
)

// RoundMeta is structured round identity produced by the bracket
// generator. Round identity is never inferred from display names.
type RoundMeta struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Position int    `json:"position"`
}

// Match references everything by id. Placement fields (pitch, venue,
// start, end) are owned by the scheduler; score and status transitions
// past "scheduled" belong to the host's result entry.
type Match struct {
	ID         int         `json:"id"`
	DivisionID int         `json:"division_id"`
	GroupID    *int        `json:"group_id,omitempty"`
	HomeTeamID *int        `json:"home_team_id,omitempty"`
	AwayTeamID *int        `json:"away_team_id,omitempty"`
	PitchID    *int        `json:"pitch_id,omitempty"`
	VenueID    *int        `json:"venue_id,omitempty"`
	StartTime  *time.Time  `json:"start_time,omitempty"`
	EndTime    *time.Time  `json:"end_time,omitempty"`
	Status     MatchStatus `json:"status"`
	HomeScore  *int        `json:"home_score,omitempty"`
	AwayScore  *int        `json:"away_score,omitempty"`
	Number     *string     `json:"number,omitempty"`
	Round      *RoundMeta  `json:"round,omitempty"`
}

// IsPlaced reports whether the match occupies a pitch/time slot.
func (m *Match) IsPlaced() bool {
	return m.PitchID != nil && m.StartTime != nil
}

func (m *Match) HasTeam(teamID int) bool {
	if m.HomeTeamID != nil && *m.HomeTeamID == teamID {
		return true
	}
	if m.AwayTeamID != nil && *m.AwayTeamID == teamID {
		return true
	}
	return false
}

// ClearPlacement removes the match from the schedule. The result status
// is untouched.
func (m *Match) ClearPlacement() {
	m.PitchID = nil
	m.VenueID = nil
	m.StartTime = nil
	m.EndTime = nil
}
