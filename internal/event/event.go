// Package event defines the turn-completion event model and sound categories.
package event

import "time"

// Sound categories, in the order they are shown to users.
const (
	CategoryGreeting      = "greeting"
	CategoryAcknowledge   = "acknowledge"
	CategoryComplete      = "complete"
	CategoryPermission    = "permission"
	CategoryError         = "error"
	CategoryResourceLimit = "resource_limit"
	CategoryAnnoyed       = "annoyed"
)

// DefaultThreadID is used when the inbound payload carries no thread id.
const DefaultThreadID = "__default__"

// Event is a single turn-completion event supplied per invocation.
type Event struct {
	ThreadID             string
	Timestamp            time.Time
	LastAssistantMessage string
}

// Categories returns all known categories in display order.
func Categories() []string {
	return []string{
		CategoryGreeting,
		CategoryAcknowledge,
		CategoryComplete,
		CategoryPermission,
		CategoryError,
		CategoryResourceLimit,
		CategoryAnnoyed,
	}
}

// ValidCategory reports whether name is a known category.
func ValidCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}

// FallbackChain returns the candidate categories tried when resolving a
// category that is disabled or has no sounds: the category itself, then
// acknowledge, then complete. Duplicates are elided.
func FallbackChain(category string) []string {
	chain := []string{category}
	for _, fb := range []string{CategoryAcknowledge, CategoryComplete} {
		if fb != category {
			chain = append(chain, fb)
		}
	}
	return chain
}

// KeywordCategories returns the categories that support keyword inference,
// in match-priority order (first match wins).
func KeywordCategories() []string {
	return []string{CategoryPermission, CategoryError, CategoryResourceLimit}
}
