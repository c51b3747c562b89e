package models

// Group is a named set of teams competing round-robin. TeamIDs keeps the
// insertion order, which doubles as the final tie-break for standings.
type Group struct {
	ID         int    `json:"id"`
	DivisionID int    `json:"division_id"`
	Name       string `json:"name"`
	TeamIDs    []int  `json:"team_ids"`
}

func (g Group) HasTeam(teamID int) bool {
	for _, id := range g.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
