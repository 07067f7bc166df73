// Package classify maps a turn-completion event to a sound category.
package classify

import (
	"strings"

	"turncue/internal/config"
	"turncue/internal/event"
	"turncue/internal/state"
)

// Decision is the classifier output.
type Decision struct {
	// Category is the resolved, enabled category to play. Empty when Silent.
	Category string
	// Raw is the category before the enabled-fallback chain was applied.
	Raw string
	// IsRapid reports whether the thread hit the rapid-turn threshold,
	// independent of whether a keyword match overrode the annoyed category.
	IsRapid bool
	// SessionStart reports a first event or an idle-gap restart for the thread.
	SessionStart bool
	// Silent means no enabled category remained after the fallback chain.
	Silent bool
}

// rule pairs a predicate with the category it selects. Rules are evaluated
// in order; the first match wins.
type rule struct {
	category string
	match    func(text string, cfg *config.Config) bool
}

// keywordRules returns the keyword inference rules in priority order:
// permission over error over resource_limit.
func keywordRules() []rule {
	var rules []rule
	for _, cat := range event.KeywordCategories() {
		category := cat
		rules = append(rules, rule{
			category: category,
			match: func(text string, cfg *config.Config) bool {
				return matchesAny(text, cfg.Keywords[category])
			},
		})
	}
	return rules
}

// matchesAny reports whether text contains any of the phrases,
// case-insensitively. An empty text never matches.
func matchesAny(text string, phrases []string) bool {
	if text == "" {
		return false
	}
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// inferKeywordCategory scans the message against the keyword rules.
// Returns empty when nothing matches.
func inferKeywordCategory(message string, cfg *config.Config) string {
	text := strings.ToLower(message)
	for _, r := range keywordRules() {
		if r.match(text, cfg) {
			return r.category
		}
	}
	return ""
}

// Classify decides which category an event should trigger. It mutates the
// thread's recent-event window in st, since the rapid-turn counter is itself
// part of classification.
func Classify(ev event.Event, st *state.State, cfg *config.Config) Decision {
	prior, seen := st.LastEvent(ev.ThreadID)
	sessionStart := !seen || ev.Timestamp.Sub(prior) > cfg.SessionIdle()

	count := st.AppendEvent(ev.ThreadID, ev.Timestamp, cfg.AnnoyedWindow())
	isRapid := count >= cfg.AnnoyedThreshold

	matched := inferKeywordCategory(ev.LastAssistantMessage, cfg)

	var category string
	switch {
	case sessionStart && cfg.GreetOnTurnStart():
		category = event.CategoryGreeting
	case matched != "":
		category = matched
	case isRapid:
		category = event.CategoryAnnoyed
	default:
		category = event.CategoryAcknowledge
	}

	resolved := ResolveEnabled(cfg, category)
	return Decision{
		Category:     resolved,
		Raw:          category,
		IsRapid:      isRapid,
		SessionStart: sessionStart,
		Silent:       resolved == "",
	}
}

// ResolveEnabled walks the fallback chain (category, acknowledge, complete)
// and returns the first enabled category, or empty when none is.
func ResolveEnabled(cfg *config.Config, category string) string {
	for _, candidate := range event.FallbackChain(category) {
		if cfg.CategoryEnabled(candidate) {
			return candidate
		}
	}
	return ""
}
