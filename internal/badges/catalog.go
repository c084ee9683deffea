// Package badges holds the static badge catalog and the eligibility
// evaluator. The catalog is process-wide and immutable after startup.
package badges

import (
	"time"

	"github.com/lumen/focusflow/pkg/entity"
)

var catalog = []entity.Badge{
	{ID: "streak_3", Name: "Getting Started", Icon: "🔥", Description: "3 day study streak", Category: entity.BadgeStreak, Requirement: 3},
	{ID: "streak_7", Name: "Weekly Warrior", Icon: "⚔️", Description: "7 day study streak", Category: entity.BadgeStreak, Requirement: 7},
	{ID: "streak_14", Name: "Consistent", Icon: "💪", Description: "14 day study streak", Category: entity.BadgeStreak, Requirement: 14},
	{ID: "streak_30", Name: "Monthly Master", Icon: "👑", Description: "30 day study streak", Category: entity.BadgeStreak, Requirement: 30},
	{ID: "streak_100", Name: "Legendary", Icon: "🏆", Description: "100 day study streak", Category: entity.BadgeStreak, Requirement: 100},

	{ID: "hours_1", Name: "First Hour", Icon: "⏰", Description: "Study for 1 hour total", Category: entity.BadgeHours, Requirement: 60},
	{ID: "hours_10", Name: "Dedicated", Icon: "📚", Description: "10 hours studied", Category: entity.BadgeHours, Requirement: 600},
	{ID: "hours_50", Name: "Scholar", Icon: "🎓", Description: "50 hours studied", Category: entity.BadgeHours, Requirement: 3000},
	{ID: "hours_100", Name: "Expert", Icon: "🌟", Description: "100 hours studied", Category: entity.BadgeHours, Requirement: 6000},
	{ID: "hours_500", Name: "Master", Icon: "💎", Description: "500 hours studied", Category: entity.BadgeHours, Requirement: 30000},

	{ID: "first_session", Name: "First Steps", Icon: "🎯", Description: "Complete first study session", Category: entity.BadgeSessions, Requirement: 1},
	{ID: "sessions_10", Name: "Regular", Icon: "📖", Description: "Complete 10 study sessions", Category: entity.BadgeSessions, Requirement: 10},
	{ID: "sessions_50", Name: "Committed", Icon: "🔰", Description: "Complete 50 study sessions", Category: entity.BadgeSessions, Requirement: 50},
	{ID: "sessions_100", Name: "Centurion", Icon: "🛡️", Description: "Complete 100 study sessions", Category: entity.BadgeSessions, Requirement: 100},

	{ID: "early_bird", Name: "Early Bird", Icon: "🌅", Description: "Study before 6 AM", Category: entity.BadgeSpecial, Requirement: 1},
	{ID: "night_owl", Name: "Night Owl", Icon: "🦉", Description: "Study after 11 PM", Category: entity.BadgeSpecial, Requirement: 1},
	{ID: "weekend_warrior", Name: "Weekend Warrior", Icon: "🗓️", Description: "Study on both Saturday and Sunday", Category: entity.BadgeSpecial, Requirement: 1},
	{ID: "perfect_week", Name: "Perfect Week", Icon: "💯", Description: "Study every day for a week", Category: entity.BadgeSpecial, Requirement: 7},
}

// Catalog returns the full badge list in stable order.
func Catalog() []entity.Badge {
	return catalog
}

// ByID looks a badge definition up by its id.
func ByID(id string) (entity.Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return entity.Badge{}, false
}

// BadgeStatus is a catalog entry annotated with the user's earned state.
type BadgeStatus struct {
	entity.Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// Annotate joins the catalog with a user's earned badges.
func Annotate(earned []entity.EarnedBadge) []BadgeStatus {
	earnedAt := make(map[string]time.Time, len(earned))
	for _, e := range earned {
		earnedAt[e.BadgeID] = e.EarnedAt
	}
	result := make([]BadgeStatus, 0, len(catalog))
	for _, b := range catalog {
		status := BadgeStatus{Badge: b}
		if at, ok := earnedAt[b.ID]; ok {
			status.Earned = true
			at := at
			status.EarnedAt = &at
		}
		result = append(result, status)
	}
	return result
}
