package scheduling

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/matchdayhq/fixture-engine/models"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrPitchNotFound     = errors.New("pitch not found")
	ErrPitchUnavailable  = errors.New("pitch is not available")
	ErrMatchNotPlaced    = errors.New("match is not on the schedule")
	ErrClearNotConfirmed = errors.New("clearing the schedule requires explicit confirmation")
)

// Scheduler owns a mutable match collection and gates every placement
// mutation through the conflict detector. Each operation either commits
// all affected fields of one match or none of them. The scheduler itself
// is not safe for concurrent use: the embedding system serializes
// mutations per tournament so the detector always sees a consistent
// snapshot.
type Scheduler struct {
	matches   map[int]*models.Match
	order     []int
	pitches   map[int]models.Pitch
	divisions map[int]models.Division
	log       *zap.Logger
}

func NewScheduler(matches []models.Match, pitches []models.Pitch, divisions []models.Division, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{
		matches:   make(map[int]*models.Match, len(matches)),
		order:     make([]int, 0, len(matches)),
		pitches:   make(map[int]models.Pitch, len(pitches)),
		divisions: make(map[int]models.Division, len(divisions)),
		log:       log,
	}
	for _, p := range pitches {
		s.pitches[p.ID] = p
	}
	for _, d := range divisions {
		s.divisions[d.ID] = d
	}
	for i := range matches {
		m := matches[i]
		if _, ok := s.matches[m.ID]; ok {
			continue
		}
		s.matches[m.ID] = &m
		s.order = append(s.order, m.ID)
	}
	return s
}

// Add appends newly generated fixtures to the collection, e.g. the
// output of the round-robin generator. Duplicate ids are a programmer
// error.
func (s *Scheduler) Add(matches ...models.Match) error {
	for _, m := range matches {
		if _, ok := s.matches[m.ID]; ok {
			return errors.AssertionFailedf("match %d already exists in the schedule", m.ID)
		}
	}
	for i := range matches {
		m := matches[i]
		s.matches[m.ID] = &m
		s.order = append(s.order, m.ID)
	}
	return nil
}

// Remove is the explicit deletion operation; matches are never removed
// implicitly.
func (s *Scheduler) Remove(matchID int) (models.Match, error) {
	m, ok := s.matches[matchID]
	if !ok {
		return models.Match{}, errors.Wrapf(ErrMatchNotFound, "match %d", matchID)
	}
	removed := *m
	delete(s.matches, matchID)
	for i, id := range s.order {
		if id == matchID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return removed, nil
}

// Match returns a value copy; callers never mutate scheduler state
// directly.
func (s *Scheduler) Match(matchID int) (models.Match, bool) {
	m, ok := s.matches[matchID]
	if !ok {
		return models.Match{}, false
	}
	return *m, true
}

// Matches snapshots the collection in insertion order.
func (s *Scheduler) Matches() []models.Match {
	out := make([]models.Match, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.matches[id])
	}
	return out
}

func (s *Scheduler) Division(divisionID int) (models.Division, bool) {
	d, ok := s.divisions[divisionID]
	return d, ok
}

// Schedule places an unscheduled match onto a pitch at a start instant.
// The venue is derived from the pitch and the end instant from the
// division duration.
func (s *Scheduler) Schedule(matchID, pitchID int, start time.Time) (models.Match, error) {
	m, ok := s.matches[matchID]
	if !ok {
		return models.Match{}, errors.Wrapf(ErrMatchNotFound, "match %d", matchID)
	}
	return s.place(m, pitchID, start)
}

// Reschedule moves an already placed match. The match is excluded from
// its own conflict check, so shifting within its own occupied window is
// legal. A pitch in a different venue implies a venue reassignment.
// pitchID nil keeps the current pitch.
func (s *Scheduler) Reschedule(matchID int, start time.Time, pitchID *int) (models.Match, error) {
	m, ok := s.matches[matchID]
	if !ok {
		return models.Match{}, errors.Wrapf(ErrMatchNotFound, "match %d", matchID)
	}
	if !m.IsPlaced() {
		return models.Match{}, errors.Wrapf(ErrMatchNotPlaced, "match %d", matchID)
	}
	target := *m.PitchID
	if pitchID != nil {
		target = *pitchID
	}
	return s.place(m, target, start)
}

// place runs the conflict gate and commits pitch, venue, start and end
// together. On rejection the match is untouched.
func (s *Scheduler) place(m *models.Match, pitchID int, start time.Time) (models.Match, error) {
	pitch, ok := s.pitches[pitchID]
	if !ok {
		return models.Match{}, errors.Wrapf(ErrPitchNotFound, "pitch %d", pitchID)
	}
	if !pitch.Available {
		return models.Match{}, errors.Wrapf(ErrPitchUnavailable, "pitch %d", pitchID)
	}

	start = Normalize(start)
	candidate := Placement{
		MatchID:    m.ID,
		DivisionID: m.DivisionID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		PitchID:    pitchID,
		Start:      start,
	}
	conflicts, err := CheckPlacement(candidate, s.Matches(), s.Division)
	if err != nil {
		return models.Match{}, err
	}
	if len(conflicts) > 0 {
		s.log.Info("placement rejected",
			zap.Int("match_id", m.ID),
			zap.Int("pitch_id", pitchID),
			zap.Time("start", start),
			zap.Int("conflicts", len(conflicts)))
		return models.Match{}, &ConflictError{Conflicts: conflicts}
	}

	division := s.divisions[m.DivisionID]
	end := AddMinutes(start, division.MatchMinutes)
	venueID := pitch.VenueID
	m.PitchID = &pitchID
	m.VenueID = &venueID
	m.StartTime = &start
	m.EndTime = &end

	s.log.Debug("match placed",
		zap.Int("match_id", m.ID),
		zap.Int("pitch_id", pitchID),
		zap.Time("start", start),
		zap.Time("end", end))
	return *m, nil
}

// Unschedule clears a match's placement. Removing a constraint cannot
// conflict, so this always succeeds for a known match.
func (s *Scheduler) Unschedule(matchID int) (models.Match, error) {
	m, ok := s.matches[matchID]
	if !ok {
		return models.Match{}, errors.Wrapf(ErrMatchNotFound, "match %d", matchID)
	}
	m.ClearPlacement()
	s.log.Debug("match unscheduled", zap.Int("match_id", matchID))
	return *m, nil
}

// ClearScope limits ClearAll. A nil DivisionID means every match.
type ClearScope struct {
	DivisionID *int
}

func (c ClearScope) contains(m *models.Match) bool {
	return c.DivisionID == nil || m.DivisionID == *c.DivisionID
}

// ClearAll unschedules every placed match in scope. Destructive, so the
// caller must pass confirm explicitly; interactive double-click
// confirmation is a presentation concern that never reaches the engine.
func (s *Scheduler) ClearAll(scope ClearScope, confirm bool) ([]models.Match, error) {
	if !confirm {
		return nil, ErrClearNotConfirmed
	}
	var cleared []models.Match
	for _, id := range s.order {
		m := s.matches[id]
		if !m.IsPlaced() || !scope.contains(m) {
			continue
		}
		m.ClearPlacement()
		cleared = append(cleared, *m)
	}
	s.log.Info("schedule cleared", zap.Int("matches", len(cleared)))
	return cleared, nil
}
