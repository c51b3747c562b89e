package models

type AssignmentMode string

const (
	AssignmentManual AssignmentMode = "manual"
	AssignmentAuto   AssignmentMode = "automatic"
)

// Division is the authoritative source for match timing: a match's end
// instant is always start + MatchMinutes of its division, never stored
// independently.
type Division struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	MatchMinutes int            `json:"match_minutes"`
	BreakMinutes int            `json:"break_minutes"`
	Assignment   AssignmentMode `json:"assignment"`
}

// SlotMinutes is the pitch time one fixture occupies including the
// configured break, for callers that lay out consecutive slots.
func (d Division) SlotMinutes() int {
	return d.MatchMinutes + d.BreakMinutes
}
