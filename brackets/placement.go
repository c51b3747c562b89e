package brackets

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/matchdayhq/fixture-engine/standings"
)

// PlacementGenerator expands a placement template into a fully linked
// set of knockout matches seeded from group standings. Generation is a
// pure function of its params: the same standings and template always
// produce identical output, so re-running after a group finishes only
// swaps placeholders for concrete teams and never reshuffles matches.
type PlacementGenerator struct{}

func NewPlacementGenerator() Generator {
	return &PlacementGenerator{}
}

func (g *PlacementGenerator) Name() string {
	return "Placement"
}

func (g *PlacementGenerator) Generate(ctx context.Context, params GenerateParams) (*Result, error) {
	eligible := 0
	for _, gs := range params.Standings {
		eligible += len(gs.Group.TeamIDs)
	}
	if err := params.Template.Validate(eligible); err != nil {
		return nil, err
	}

	qualifiers := qualifierOrder(params.Standings)
	res := &Result{}
	for _, bt := range params.Template.Brackets {
		if len(bt.Positions) < 2 {
			// A single target position has nothing to play for.
			continue
		}
		res.Matches = append(res.Matches, buildBracket(bt, qualifiers)...)
	}
	linkAdvancement(res.Matches)
	resolveSources(res, params.Standings)
	return res, nil
}

// qualifierOrder is the overall seeding order behind final standing
// positions: rank-major across the source groups in input order (all
// group winners first, then all runners-up, and so on). With two groups
// feeding a four-slot bracket this puts same-group teams in opposite
// halves.
func qualifierOrder(gs []standings.GroupStanding) []TeamSource {
	largest := 0
	for _, g := range gs {
		if len(g.Group.TeamIDs) > largest {
			largest = len(g.Group.TeamIDs)
		}
	}
	var out []TeamSource
	for rank := 1; rank <= largest; rank++ {
		for _, g := range gs {
			if rank > len(g.Group.TeamIDs) {
				continue
			}
			out = append(out, GroupRank(g.Group, rank))
		}
	}
	return out
}

type node struct {
	source *TeamSource
	bye    bool
}

// buildBracket generates one bracket's matches: round 1 seeded in the
// classic recursive order over the next power-of-two size, byes
// advancing the spare top seeds without emitting a match, later rounds
// fed by winner references. Template validation has already guaranteed
// every targeted position has a qualifier.
func buildBracket(bt BracketTemplate, qualifiers []TeamSource) []*BracketMatch {
	positions := append([]int(nil), bt.Positions...)
	sort.Ints(positions)
	n := len(positions)

	seeds := make([]TeamSource, n)
	for i, p := range positions {
		seeds[i] = qualifiers[p-1]
	}

	numRounds := int(math.Ceil(math.Log2(float64(n))))
	size := 1 << uint(numRounds)
	code := bracketCode(bt.Name)

	slots := make([]node, size)
	for i, seedPos := range seedOrder(size) {
		if seedPos <= n {
			src := seeds[seedPos-1]
			slots[i] = node{source: &src}
		} else {
			slots[i] = node{bye: true}
		}
	}

	var matches []*BracketMatch
	current := slots
	for r := 1; r <= numRounds; r++ {
		next := make([]node, 0, len(current)/2)
		orderInRound := 0
		for i := 0; i < len(current); i += 2 {
			a, b := current[i], current[i+1]
			switch {
			case a.bye && b.bye:
				next = append(next, node{bye: true})
			case b.bye:
				next = append(next, a)
			case a.bye:
				next = append(next, b)
			default:
				orderInRound++
				uid := fmt.Sprintf("%s-R%dM%d", code, r, orderInRound)
				matches = append(matches, &BracketMatch{
					UID:          uid,
					Bracket:      bt.Name,
					Round:        r,
					RoundLabel:   RoundLabel(r, numRounds),
					OrderInRound: orderInRound,
					Home:         *a.source,
					Away:         *b.source,
				})
				winner := MatchWinner(uid)
				next = append(next, node{source: &winner})
			}
		}
		current = next
	}

	if bt.ThirdPlace {
		var semis []*BracketMatch
		for _, m := range matches {
			if m.Round == numRounds-1 {
				semis = append(semis, m)
			}
		}
		// Byes can leave fewer than two played semifinals; third place
		// is then already decided and no match is emitted.
		if len(semis) == 2 {
			matches = append(matches, &BracketMatch{
				UID:          fmt.Sprintf("%s-R%dM2", code, numRounds),
				Bracket:      bt.Name,
				Round:        numRounds,
				RoundLabel:   RoundLabelThirdPlace,
				OrderInRound: 2,
				ThirdPlace:   true,
				Home:         MatchLoser(semis[0].UID),
				Away:         MatchLoser(semis[1].UID),
			})
		}
	}
	return matches
}

// seedOrder lays seeds into the classic recursive bracket order so top
// seeds can only meet in the latest rounds: 4 -> [1 4 2 3],
// 8 -> [1 8 4 5 2 7 3 6]. Adjacent pairs form round 1 matches and the
// winners of matches 1 and 2 feed the next round's first match.
func seedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		k := len(order) * 2
		doubled := make([]int, 0, k)
		for _, s := range order {
			doubled = append(doubled, s, k+1-s)
		}
		order = doubled
	}
	return order
}

func bracketCode(name string) string {
	code := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(name))
	return strings.Trim(code, "-")
}

// linkAdvancement records on each match where its winner and loser go,
// by walking every slot's source reference. The third-place match has
// loser references into the semifinals but no outgoing links of its own;
// it is terminal.
func linkAdvancement(matches []*BracketMatch) {
	byUID := make(map[string]*BracketMatch, len(matches))
	for _, m := range matches {
		byUID[m.UID] = m
	}
	for _, m := range matches {
		linkSlot(byUID, m.Home, m.UID, 1)
		linkSlot(byUID, m.Away, m.UID, 2)
	}
}

func linkSlot(byUID map[string]*BracketMatch, src TeamSource, targetUID string, slot int) {
	if src.MatchUID == nil {
		return
	}
	source, ok := byUID[*src.MatchUID]
	if !ok {
		return
	}
	uid := targetUID
	switch src.Kind {
	case SourceMatchWinner:
		source.WinnerTo = &uid
		source.WinnerSlot = slot
	case SourceMatchLoser:
		source.LoserTo = &uid
		source.LoserSlot = slot
	}
}

// resolveSources swaps group-rank placeholders for concrete teams where
// the source group is finished. Resolution is monotonic: a finished
// group stays finished in the caller's snapshot, so a resolved slot can
// never revert on regeneration. Unresolved slots are reported as
// warnings, not errors.
func resolveSources(res *Result, gs []standings.GroupStanding) {
	byGroup := make(map[int]standings.GroupStanding, len(gs))
	for _, g := range gs {
		byGroup[g.Group.ID] = g
	}
	for _, m := range res.Matches {
		m.Home = resolveSlot(res, byGroup, m, m.Home)
		m.Away = resolveSlot(res, byGroup, m, m.Away)
	}
}

func resolveSlot(res *Result, byGroup map[int]standings.GroupStanding, m *BracketMatch, src TeamSource) TeamSource {
	if src.Kind != SourceGroupRank || src.GroupID == nil {
		return src
	}
	gs, ok := byGroup[*src.GroupID]
	if ok && gs.Finished && src.Rank <= len(gs.Table) {
		return ConcreteTeam(gs.Table[src.Rank-1].TeamID)
	}
	res.Warnings = append(res.Warnings, Warning{
		Kind:     WarningUnresolvedDependency,
		MatchUID: m.UID,
		Source:   src,
		Message:  fmt.Sprintf("%s is not decided yet: group %q has unfinished matches", src.Label(), src.GroupName),
	})
	return src
}
