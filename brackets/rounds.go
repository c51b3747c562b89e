package brackets

import "fmt"

const (
	RoundLabelFinal      = "Final"
	RoundLabelSemiFinal  = "Semi-Final"
	RoundLabelQuarter    = "Quarter-Final"
	RoundLabelThirdPlace = "Third Place"
)

// RoundLabel names a round by its distance from the final. Earlier
// rounds fall back to "Round N".
func RoundLabel(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return RoundLabelFinal
	case 1:
		return RoundLabelSemiFinal
	case 2:
		return RoundLabelQuarter
	default:
		return fmt.Sprintf("Round %d", round)
	}
}
