package category

import (
	"context"
	"strings"
)

// Heuristic guesses a category from the package name alone. It is the last
// layer of the chain and answers for every name, so grouped output always has
// a home for each entry even fully offline.
type Heuristic struct{}

// NewHeuristic creates the name-based resolver.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// nameRules map a name fragment to a category. Rules are checked in order,
// first match wins, so more specific fragments come first.
var nameRules = []struct {
	fragment string
	category string
}{
	{"firebase", "Firebase"},
	{"bloc", "State Management"},
	{"provider", "State Management"},
	{"riverpod", "State Management"},
	{"get_it", "Dependency Injection"},
	{"injectable", "Dependency Injection"},
	{"http", "Networking"},
	{"dio", "Networking"},
	{"graphql", "Networking"},
	{"socket", "Networking"},
	{"grpc", "Networking"},
	{"sqflite", "Storage"},
	{"sqlite", "Storage"},
	{"hive", "Storage"},
	{"isar", "Storage"},
	{"shared_preferences", "Storage"},
	{"secure_storage", "Storage"},
	{"drift", "Storage"},
	{"json", "Serialization"},
	{"serializ", "Serialization"},
	{"freezed", "Serialization"},
	{"built_value", "Serialization"},
	{"mock", "Testing"},
	{"test", "Testing"},
	{"fake", "Testing"},
	{"golden", "Testing"},
	{"lint", "Tooling"},
	{"analyzer", "Tooling"},
	{"build_runner", "Tooling"},
	{"gen", "Tooling"},
	{"intl", "Localization"},
	{"l10n", "Localization"},
	{"localiz", "Localization"},
	{"image", "Media"},
	{"video", "Media"},
	{"audio", "Media"},
	{"camera", "Media"},
	{"svg", "Media"},
	{"cached_network", "Media"},
	{"route", "Navigation"},
	{"navigat", "Navigation"},
	{"go_router", "Navigation"},
	{"animation", "UI"},
	{"animate", "UI"},
	{"font", "UI"},
	{"icon", "UI"},
	{"shimmer", "UI"},
	{"chart", "UI"},
	{"path", "Files"},
	{"file", "Files"},
	{"archive", "Files"},
	{"crypto", "Security"},
	{"auth", "Security"},
	{"permission", "Platform"},
	{"device", "Platform"},
	{"package_info", "Platform"},
	{"url_launcher", "Platform"},
	{"connectivity", "Platform"},
	{"geo", "Location"},
	{"location", "Location"},
	{"map", "Location"},
	{"log", "Logging"},
}

// Categories guesses a category for every requested name. The error return
// exists only to satisfy the layer contract and is always nil.
func (h *Heuristic) Categories(_ context.Context, names []string) (map[string]string, error) {
	hits := make(map[string]string, len(names))
	for _, name := range names {
		hits[name] = h.guess(name)
	}
	return hits, nil
}

func (h *Heuristic) guess(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range nameRules {
		if strings.Contains(lower, rule.fragment) {
			return rule.category
		}
	}
	return FallbackCategory
}
