package brackets

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/matchdayhq/fixture-engine/models"
)

var ErrNotEnoughTeams = errors.New("not enough teams for a fixture list (minimum 2)")

type RoundRobinOptions struct {
	// DoubleRound adds a second leg with home and away swapped.
	DoubleRound bool
	// FirstMatchID seeds the id sequence; hosts usually renumber on
	// persist.
	FirstMatchID int
}

// GenerateRoundRobin produces the group's fixture list: every pairing
// once (or twice for a double round). Matches come back unplaced; pitch
// and start assignment is the scheduler's job.
func GenerateRoundRobin(group models.Group, division models.Division, opts RoundRobinOptions) ([]models.Match, error) {
	teams := group.TeamIDs
	if len(teams) < 2 {
		return nil, errors.Wrapf(ErrNotEnoughTeams, "group %q has %d teams", group.Name, len(teams))
	}

	nextID := opts.FirstMatchID
	groupID := group.ID
	matchNo := 0
	var matches []models.Match

	appendMatch := func(homeID, awayID int) {
		matchNo++
		home, away := homeID, awayID
		number := fmt.Sprintf("%s M%d", group.Name, matchNo)
		matches = append(matches, models.Match{
			ID:         nextID,
			DivisionID: division.ID,
			GroupID:    &groupID,
			HomeTeamID: &home,
			AwayTeamID: &away,
			Status:     models.StatusScheduled,
			Number:     &number,
		})
		nextID++
	}

	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			appendMatch(teams[i], teams[j])
		}
	}
	if opts.DoubleRound {
		firstLeg := len(matches)
		for k := 0; k < firstLeg; k++ {
			appendMatch(*matches[k].AwayTeamID, *matches[k].HomeTeamID)
		}
	}
	return matches, nil
}
