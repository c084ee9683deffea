package badges

import (
	"time"

	"github.com/lumen/focusflow/pkg/entity"
)

// Evaluation is everything a predicate may look at: the freshly updated
// aggregate, the event-time session metadata (nil on non-event paths), and
// whether the current week's log covers both Saturday and Sunday.
type Evaluation struct {
	Stats          entity.StudyStats
	Meta           *entity.SessionMeta
	WeekendStudied bool
}

// checker decides eligibility for one badge category. The category set is
// closed, so adding a category means adding a checker, not editing existing
// predicates.
type checker interface {
	eligible(b entity.Badge, ev Evaluation) bool
}

var checkers = map[entity.BadgeCategory]checker{
	entity.BadgeStreak:   streakChecker{},
	entity.BadgeHours:    hoursChecker{},
	entity.BadgeSessions: sessionsChecker{},
	entity.BadgeSpecial:  specialChecker{},
}

type streakChecker struct{}

func (streakChecker) eligible(b entity.Badge, ev Evaluation) bool {
	return ev.Stats.CurrentStreak >= b.Requirement || ev.Stats.LongestStreak >= b.Requirement
}

type hoursChecker struct{}

func (hoursChecker) eligible(b entity.Badge, ev Evaluation) bool {
	return ev.Stats.TotalMinutes >= b.Requirement
}

type sessionsChecker struct{}

func (sessionsChecker) eligible(b entity.Badge, ev Evaluation) bool {
	return ev.Stats.TotalSessions >= b.Requirement
}

type specialChecker struct{}

var specialPredicates = map[string]func(b entity.Badge, ev Evaluation) bool{
	"early_bird": func(_ entity.Badge, ev Evaluation) bool {
		return ev.Meta != nil && ev.Meta.Hour < 6
	},
	"night_owl": func(_ entity.Badge, ev Evaluation) bool {
		return ev.Meta != nil && ev.Meta.Hour >= 23
	},
	"weekend_warrior": func(_ entity.Badge, ev Evaluation) bool {
		return ev.WeekendStudied
	},
	"perfect_week": func(b entity.Badge, ev Evaluation) bool {
		return ev.Stats.CurrentStreak >= b.Requirement
	},
}

func (specialChecker) eligible(b entity.Badge, ev Evaluation) bool {
	pred, ok := specialPredicates[b.ID]
	if !ok {
		return false
	}
	return pred(b, ev)
}

// Eligible reports whether the badge's predicate holds for the evaluation.
func Eligible(b entity.Badge, ev Evaluation) bool {
	c, ok := checkers[b.Category]
	if !ok {
		return false
	}
	return c.eligible(b, ev)
}

// Evaluate scans the catalog against ev and returns the batch of badges the
// user newly qualifies for. Badges whose ids are in owned are skipped, which
// makes re-evaluation after an award a no-op for that badge.
func Evaluate(ev Evaluation, owned map[string]struct{}, now time.Time) []entity.EarnedBadge {
	newBadges := make([]entity.EarnedBadge, 0)
	for _, b := range catalog {
		if _, has := owned[b.ID]; has {
			continue
		}
		if !Eligible(b, ev) {
			continue
		}
		newBadges = append(newBadges, entity.EarnedBadge{
			BadgeID:     b.ID,
			Name:        b.Name,
			Icon:        b.Icon,
			Description: b.Description,
			EarnedAt:    now,
		})
	}
	return newBadges
}
