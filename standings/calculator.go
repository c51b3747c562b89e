package standings

import (
	"sort"

	"github.com/matchdayhq/fixture-engine/models"
)

// Fixed scoring rule.
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

type TeamStanding struct {
	TeamID         int `json:"team_id"`
	Played         int `json:"played"`
	Wins           int `json:"wins"`
	Draws          int `json:"draws"`
	Losses         int `json:"losses"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`
	GoalDifference int `json:"goal_difference"`
	Points         int `json:"points"`
	Position       int `json:"position"`
}

// GroupStanding is the bracket generator's input: a ranked table plus
// the flag that gates resolving symbolic positions to concrete teams.
type GroupStanding struct {
	Group    models.Group   `json:"group"`
	Finished bool           `json:"finished"`
	Table    []TeamStanding `json:"table"`
}

// Compute derives the ranked table for one group from finished results.
// Order is points, then goal difference, then goals for, descending. The
// sort is stable: teams still tied after the chain keep the group's team
// list order.
func Compute(group models.Group, matches []models.Match) []TeamStanding {
	index := make(map[int]*TeamStanding, len(group.TeamIDs))
	table := make([]TeamStanding, len(group.TeamIDs))
	for i, teamID := range group.TeamIDs {
		table[i] = TeamStanding{TeamID: teamID}
		index[teamID] = &table[i]
	}

	for i := range matches {
		m := &matches[i]
		if !belongsToGroup(m, group) || m.Status != models.StatusFinished {
			continue
		}
		if m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		home, away := index[*m.HomeTeamID], index[*m.AwayTeamID]
		if home == nil || away == nil {
			continue
		}
		apply(home, *m.HomeScore, *m.AwayScore)
		apply(away, *m.AwayScore, *m.HomeScore)
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	for i := range table {
		table[i].Position = i + 1
	}
	return table
}

// IsFinished reports whether every match belonging to the group is
// finished. A group with no matches at all is not finished: there are no
// results to rank, so symbolic positions must stay unresolved.
func IsFinished(group models.Group, matches []models.Match) bool {
	found := false
	for i := range matches {
		m := &matches[i]
		if !belongsToGroup(m, group) {
			continue
		}
		found = true
		if m.Status != models.StatusFinished {
			return false
		}
	}
	return found
}

func ComputeGroup(group models.Group, matches []models.Match) GroupStanding {
	return GroupStanding{
		Group:    group,
		Finished: IsFinished(group, matches),
		Table:    Compute(group, matches),
	}
}

func belongsToGroup(m *models.Match, group models.Group) bool {
	if m.GroupID == nil || *m.GroupID != group.ID {
		return false
	}
	return m.HomeTeamID != nil && m.AwayTeamID != nil
}

func apply(s *TeamStanding, scored, conceded int) {
	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
	switch {
	case scored > conceded:
		s.Wins++
		s.Points += PointsWin
	case scored == conceded:
		s.Draws++
		s.Points += PointsDraw
	default:
		s.Losses++
		s.Points += PointsLoss
	}
}
