package services

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matchdayhq/fixture-engine/brackets"
	"github.com/matchdayhq/fixture-engine/events"
	"github.com/matchdayhq/fixture-engine/models"
	"github.com/matchdayhq/fixture-engine/scheduling"
	"github.com/matchdayhq/fixture-engine/standings"
)

// Snapshot is the in-memory tournament state the engine operates on.
// The host supplies it from persistence and is responsible for
// serializing mutations per tournament; the engine assumes a consistent
// snapshot.
type Snapshot struct {
	Room      string
	Matches   []models.Match
	Pitches   []models.Pitch
	Divisions []models.Division
	Groups    []models.Group
}

// PlanningService is the stateless command layer over the engine: it
// validates references, delegates to the scheduler, standings calculator
// and bracket generator, publishes events on successful mutations and
// holds no business invariants of its own.
type PlanningService interface {
	ScheduleMatch(ctx context.Context, matchID, pitchID int, start time.Time) (models.Match, error)
	RescheduleMatch(ctx context.Context, matchID int, start time.Time, pitchID *int) (models.Match, error)
	UnscheduleMatch(ctx context.Context, matchID int) (models.Match, error)
	ClearSchedule(ctx context.Context, scope scheduling.ClearScope, confirm bool) ([]models.Match, error)

	Matches(ctx context.Context) []models.Match
	GroupStandings(ctx context.Context) ([]standings.GroupStanding, error)
	GenerateFixtures(ctx context.Context, groupID int, opts brackets.RoundRobinOptions) ([]models.Match, error)
	GeneratePlacement(ctx context.Context, template brackets.PlacementTemplate) (*brackets.Result, error)
}

type planningService struct {
	scheduler *scheduling.Scheduler
	generator brackets.Generator
	groups    []models.Group
	divisions map[int]models.Division
	hub       *events.Hub
	room      string
	log       *zap.Logger
}

func NewPlanningService(snapshot Snapshot, hub *events.Hub, log *zap.Logger) PlanningService {
	if log == nil {
		log = zap.NewNop()
	}
	divisions := make(map[int]models.Division, len(snapshot.Divisions))
	for _, d := range snapshot.Divisions {
		divisions[d.ID] = d
	}
	return &planningService{
		scheduler: scheduling.NewScheduler(snapshot.Matches, snapshot.Pitches, snapshot.Divisions, log),
		generator: brackets.NewPlacementGenerator(),
		groups:    snapshot.Groups,
		divisions: divisions,
		hub:       hub,
		room:      snapshot.Room,
		log:       log,
	}
}

func (s *planningService) ScheduleMatch(ctx context.Context, matchID, pitchID int, start time.Time) (models.Match, error) {
	match, err := s.scheduler.Schedule(matchID, pitchID, start)
	if err != nil {
		return models.Match{}, err
	}
	s.publish(events.EventMatchScheduled, match)
	s.log.Info("match scheduled",
		zap.Int("match_id", match.ID),
		zap.Intp("pitch_id", match.PitchID),
		zap.Timep("start", match.StartTime))
	return match, nil
}

func (s *planningService) RescheduleMatch(ctx context.Context, matchID int, start time.Time, pitchID *int) (models.Match, error) {
	match, err := s.scheduler.Reschedule(matchID, start, pitchID)
	if err != nil {
		return models.Match{}, err
	}
	s.publish(events.EventMatchRescheduled, match)
	s.log.Info("match rescheduled",
		zap.Int("match_id", match.ID),
		zap.Intp("pitch_id", match.PitchID),
		zap.Timep("start", match.StartTime))
	return match, nil
}

func (s *planningService) UnscheduleMatch(ctx context.Context, matchID int) (models.Match, error) {
	match, err := s.scheduler.Unschedule(matchID)
	if err != nil {
		return models.Match{}, err
	}
	s.publish(events.EventMatchUnscheduled, match)
	return match, nil
}

func (s *planningService) ClearSchedule(ctx context.Context, scope scheduling.ClearScope, confirm bool) ([]models.Match, error) {
	cleared, err := s.scheduler.ClearAll(scope, confirm)
	if err != nil {
		return nil, err
	}
	if len(cleared) > 0 {
		s.publish(events.EventScheduleCleared, cleared)
	}
	return cleared, nil
}

func (s *planningService) Matches(ctx context.Context) []models.Match {
	return s.scheduler.Matches()
}

// GroupStandings computes every group's table from the current match
// snapshot, one goroutine per group. Results are index-addressed so the
// output order always matches the group input order.
func (s *planningService) GroupStandings(ctx context.Context) ([]standings.GroupStanding, error) {
	matches := s.scheduler.Matches()
	out := make([]standings.GroupStanding, len(s.groups))

	g, _ := errgroup.WithContext(ctx)
	for i, group := range s.groups {
		i, group := i, group
		g.Go(func() error {
			out[i] = standings.ComputeGroup(group, matches)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "compute group standings")
	}
	return out, nil
}

// GenerateFixtures creates the round-robin match list for one group and
// adds it to the schedulable collection.
func (s *planningService) GenerateFixtures(ctx context.Context, groupID int, opts brackets.RoundRobinOptions) ([]models.Match, error) {
	group, ok := s.groupByID(groupID)
	if !ok {
		return nil, errors.Wrapf(ErrGroupNotFound, "group %d", groupID)
	}
	division, ok := s.divisions[group.DivisionID]
	if !ok {
		return nil, errors.Wrapf(ErrDivisionNotFound, "division %d", group.DivisionID)
	}
	if opts.FirstMatchID == 0 {
		opts.FirstMatchID = s.nextMatchID()
	}

	matches, err := brackets.GenerateRoundRobin(group, division, opts)
	if err != nil {
		return nil, err
	}
	if err := s.scheduler.Add(matches...); err != nil {
		return nil, err
	}
	s.publish(events.EventFixturesCreated, matches)
	s.log.Info("fixtures generated",
		zap.Int("group_id", group.ID),
		zap.Int("matches", len(matches)))
	return matches, nil
}

func (s *planningService) GeneratePlacement(ctx context.Context, template brackets.PlacementTemplate) (*brackets.Result, error) {
	groupStandings, err := s.GroupStandings(ctx)
	if err != nil {
		return nil, err
	}
	result, err := s.generator.Generate(ctx, brackets.GenerateParams{
		Standings: groupStandings,
		Template:  template,
	})
	if err != nil {
		return nil, err
	}
	s.publish(events.EventBracketGenerated, result.Matches)
	s.log.Info("placement bracket generated",
		zap.Int("matches", len(result.Matches)),
		zap.Int("unresolved", len(result.Warnings)))
	return result, nil
}

func (s *planningService) groupByID(groupID int) (models.Group, bool) {
	for _, g := range s.groups {
		if g.ID == groupID {
			return g, true
		}
	}
	return models.Group{}, false
}

func (s *planningService) nextMatchID() int {
	next := 1
	for _, m := range s.scheduler.Matches() {
		if m.ID >= next {
			next = m.ID + 1
		}
	}
	return next
}

func (s *planningService) publish(eventType events.EventType, payload any) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(s.room, eventType, payload)
}
