package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matchdayhq/fixture-engine/models"
)

func newTestScheduler(t *testing.T, matches []models.Match) *Scheduler {
	t.Helper()
	pitches := []models.Pitch{
		{ID: 1, VenueID: 1, Name: "Pitch 1", Available: true},
		{ID: 2, VenueID: 1, Name: "Pitch 2", Available: true},
		{ID: 3, VenueID: 2, Name: "Pitch 3", Available: true},
		{ID: 4, VenueID: 2, Name: "Pitch 4", Available: false},
	}
	divisions := []models.Division{
		{ID: 1, Name: "Open", MatchMinutes: 60, BreakMinutes: 5},
	}
	return NewScheduler(matches, pitches, divisions, zap.NewNop())
}

func pendingMatch(id, homeID, awayID int) models.Match {
	return models.Match{
		ID:         id,
		DivisionID: 1,
		HomeTeamID: &homeID,
		AwayTeamID: &awayID,
		Status:     models.StatusScheduled,
	}
}

func TestScheduleSetsPlacementFields(t *testing.T) {
	s := newTestScheduler(t, []models.Match{pendingMatch(1, 10, 11)})

	match, err := s.Schedule(1, 1, at(10, 0))

	require.NoError(t, err)
	assert.Equal(t, intp(1), match.PitchID)
	assert.Equal(t, intp(1), match.VenueID)
	assert.Equal(t, timep(at(10, 0)), match.StartTime)
	assert.Equal(t, timep(at(11, 0)), match.EndTime)
}

func TestScheduleConflictLeavesMatchUntouched(t *testing.T) {
	s := newTestScheduler(t, []models.Match{
		pendingMatch(1, 10, 11),
		pendingMatch(2, 20, 21),
	})
	_, err := s.Schedule(1, 1, at(10, 0))
	require.NoError(t, err)

	_, err = s.Schedule(2, 1, at(10, 59))

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, 1, conflictErr.Conflicts[0].MatchID)

	// No partial mutation on rejection.
	rejected, ok := s.Match(2)
	require.True(t, ok)
	assert.Nil(t, rejected.PitchID)
	assert.Nil(t, rejected.VenueID)
	assert.Nil(t, rejected.StartTime)
	assert.Nil(t, rejected.EndTime)
}

func TestScheduleBackToBackSamePitchAndTeam(t *testing.T) {
	s := newTestScheduler(t, []models.Match{
		pendingMatch(1, 10, 11),
		pendingMatch(2, 10, 12),
	})
	_, err := s.Schedule(1, 1, at(10, 0))
	require.NoError(t, err)

	_, err = s.Schedule(2, 1, at(11, 0))

	require.NoError(t, err)
}

func TestScheduleUnknownMatchAndPitch(t *testing.T) {
	s := newTestScheduler(t, []models.Match{pendingMatch(1, 10, 11)})

	_, err := s.Schedule(99, 1, at(10, 0))
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = s.Schedule(1, 99, at(10, 0))
	assert.ErrorIs(t, err, ErrPitchNotFound)
}

func TestScheduleUnavailablePitchRejected(t *testing.T) {
	s := newTestScheduler(t, []models.Match{pendingMatch(1, 10, 11)})

	_, err := s.Schedule(1, 4, at(10, 0))

	assert.ErrorIs(t, err, ErrPitchUnavailable)
}

func TestRescheduleExcludesSelf(t *testing.T) {
	s := newTestScheduler(t, []models.Match{pendingMatch(1, 10, 11)})
	_, err := s.Schedule(1, 1, at(10, 0))
	require.NoError(t, err)

	// Shifting within the match's own occupied window must be legal.
	match, err := s.Reschedule(1, at(10, 30), nil)

	require.NoError(t, err)
	assert.Equal(t, timep(at(10, 30)), match.StartTime)
	assert.Equal(t, timep(at(11, 30)), match.EndTime)
}

func TestRescheduleCrossVenuePitchReassignsVenue(t *testing.T) {
	s := newTestScheduler(t, []models.Match{pendingMatch(1, 10, 11)})
	_, err := s.Schedule(1, 1, at(10, 0))
	require.NoError(t, err)

	match, err := s.Reschedule(1, at(10, 0), intp(3))

	require.NoError(t, err)
	assert.Equal(t, intp(3), match.PitchID)
	assert.Equal(t, intp(2), match.VenueID)
}

func TestRescheduleUnplacedMatchRejected(t *testing.T) {
	s := newTestScheduler(t, []models.Match{pendingMatch(1, 10, 11)})

	_, err := s.Reschedule(1, at(10, 0), nil)

	assert.ErrorIs(t, err, ErrMatchNotPlaced)
}

func TestUnscheduleAlwaysSucceeds(t *testing.T) {
	s := newTestScheduler(t, []models.Match{
		pendingMatch(1, 10, 11),
		pendingMatch(2, 20, 21),
	})
	_, err := s.Schedule(1, 1, at(10, 0))
	require.NoError(t, err)
	_, err = s.Schedule(2, 2, at(10, 0))
	require.NoError(t, err)

	match, err := s.Unschedule(1)

	require.NoError(t, err)
	assert.Nil(t, match.PitchID)
	assert.Nil(t, match.VenueID)
	assert.Nil(t, match.StartTime)
	assert.Nil(t, match.EndTime)
	assert.Equal(t, models.StatusScheduled, match.Status)
}

func TestClearAllRequiresConfirmation(t *testing.T) {
	s := newTestScheduler(t, []models.Match{pendingMatch(1, 10, 11)})
	_, err := s.Schedule(1, 1, at(10, 0))
	require.NoError(t, err)

	_, err = s.ClearAll(ClearScope{}, false)
	assert.ErrorIs(t, err, ErrClearNotConfirmed)

	placed, ok := s.Match(1)
	require.True(t, ok)
	assert.True(t, placed.IsPlaced())

	cleared, err := s.ClearAll(ClearScope{}, true)
	require.NoError(t, err)
	require.Len(t, cleared, 1)
	assert.False(t, cleared[0].IsPlaced())
}

func TestClearAllScopedToDivision(t *testing.T) {
	other := pendingMatch(2, 20, 21)
	other.DivisionID = 2
	s := NewScheduler(
		[]models.Match{pendingMatch(1, 10, 11), other},
		[]models.Pitch{{ID: 1, VenueID: 1, Name: "Pitch 1", Available: true}},
		[]models.Division{
			{ID: 1, Name: "Open", MatchMinutes: 60},
			{ID: 2, Name: "Youth", MatchMinutes: 30},
		},
		zap.NewNop(),
	)
	_, err := s.Schedule(1, 1, at(10, 0))
	require.NoError(t, err)
	_, err = s.Schedule(2, 1, at(12, 0))
	require.NoError(t, err)

	cleared, err := s.ClearAll(ClearScope{DivisionID: intp(2)}, true)

	require.NoError(t, err)
	require.Len(t, cleared, 1)
	assert.Equal(t, 2, cleared[0].ID)

	kept, ok := s.Match(1)
	require.True(t, ok)
	assert.True(t, kept.IsPlaced())
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := newTestScheduler(t, []models.Match{pendingMatch(1, 10, 11)})

	err := s.Add(pendingMatch(1, 20, 21))

	require.Error(t, err)
	assert.True(t, errors.HasAssertionFailure(err))
}

func TestRemoveIsExplicit(t *testing.T) {
	s := newTestScheduler(t, []models.Match{pendingMatch(1, 10, 11)})

	removed, err := s.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed.ID)

	_, err = s.Remove(1)
	assert.ErrorIs(t, err, ErrMatchNotFound)
	assert.Empty(t, s.Matches())
}

// Randomized placements through the scheduler: after every accepted
// operation no pitch and no team may be double-booked under recomputed
// windows.
func TestRandomizedPlacementsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	var matches []models.Match
	for id := 1; id <= 30; id++ {
		home := rng.Intn(10)
		away := (home + 1 + rng.Intn(9)) % 10
		matches = append(matches, pendingMatch(id, home, away))
	}
	s := newTestScheduler(t, matches)

	accepted := 0
	for op := 0; op < 300; op++ {
		matchID := 1 + rng.Intn(30)
		pitchID := 1 + rng.Intn(3)
		start := at(8, 0).Add(time.Duration(rng.Intn(12*4)) * 15 * time.Minute)

		var err error
		switch rng.Intn(4) {
		case 0:
			_, err = s.Unschedule(matchID)
			require.NoError(t, err)
		case 1:
			_, err = s.Reschedule(matchID, start, &pitchID)
		default:
			_, err = s.Schedule(matchID, pitchID, start)
		}
		if err == nil {
			accepted++
		} else {
			var conflictErr *ConflictError
			if !errors.As(err, &conflictErr) {
				require.ErrorIs(t, err, ErrMatchNotPlaced)
			}
		}
		assertNoDoubleBookings(t, s)
	}
	require.NotZero(t, accepted)
}

func assertNoDoubleBookings(t *testing.T, s *Scheduler) {
	t.Helper()
	matches := s.Matches()
	for i := range matches {
		a := &matches[i]
		if !a.IsPlaced() {
			continue
		}
		divA, _ := s.Division(a.DivisionID)
		windowA := WindowFor(*a.StartTime, divA.MatchMinutes)
		for j := i + 1; j < len(matches); j++ {
			b := &matches[j]
			if !b.IsPlaced() {
				continue
			}
			divB, _ := s.Division(b.DivisionID)
			windowB := WindowFor(*b.StartTime, divB.MatchMinutes)
			if !windowA.Overlaps(windowB) {
				continue
			}
			require.NotEqual(t, *a.PitchID, *b.PitchID,
				"matches %d and %d share pitch %d with overlapping windows", a.ID, b.ID, *a.PitchID)
			for _, teamID := range []*int{a.HomeTeamID, a.AwayTeamID} {
				if teamID != nil {
					require.False(t, b.HasTeam(*teamID),
						"team %d double-booked by matches %d and %d", *teamID, a.ID, b.ID)
				}
			}
		}
	}
}
