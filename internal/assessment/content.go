package assessment

import "healing-companion-service/internal/domain"

// DefaultContent returns the built-in suggestion content rows, one per level.
// Deployments with a content table or a remote backend override these; they
// also seed the content migration.
func DefaultContent() map[domain.Level]domain.Suggestions {
	return map[domain.Level]domain.Suggestions{
		domain.LevelGenuine: {
			Title: "Keep Nurturing Your Wellbeing",
			Bullets: []string{
				"Write down one thing you're grateful for today.",
				"Take a 5-minute mindful breathing break.",
				"Send a kind message to someone you appreciate.",
			},
			Actions: []domain.SuggestionAction{
				{Label: "Daily Healing Tasks", Href: "/tasks"},
				{Label: "Browse Resources", Href: "/resources"},
			},
		},
		domain.LevelMid: {
			Title: "Managing Stress and Anxiety",
			Bullets: []string{
				"Try a short guided meditation or grounding exercise.",
				"Keep a regular sleep schedule this week.",
				"Reduce caffeine and screen time before bed.",
				"Talk to a friend or family member about how you feel.",
			},
			Actions: []domain.SuggestionAction{
				{Label: "Calming Resources", Href: "/resources"},
				{Label: "Daily Healing Tasks", Href: "/tasks"},
			},
		},
		domain.LevelHigh: {
			Title: "Reaching Out for Support",
			Bullets: []string{
				"Consider speaking with a mental health professional.",
				"Reach out to someone you trust today, not tomorrow.",
				"Keep instant-relief breathing exercises close at hand.",
			},
			Actions: []domain.SuggestionAction{
				{Label: "Talk to Someone", Href: "/contact"},
				{Label: "Instant Relief", Href: "/tasks"},
			},
		},
	}
}
