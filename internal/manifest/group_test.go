package manifest

import (
	"strings"
	"testing"
)

func TestGroupSection(t *testing.T) {
	e := NewEditor(sampleLines(), "dependencies", "dev_dependencies")

	categories := map[string]string{
		"dio":            "Networking",
		"intl":           "Localization",
		"state_notifier": "State Management",
	}

	if !e.GroupSection("dependencies", categories, "Other") {
		t.Fatal("GroupSection should succeed")
	}

	got := joined(e.Lines())

	for _, header := range []string{"  # Networking", "  # Localization", "  # State Management", "  # Other"} {
		if !strings.Contains(got, header+"\n") {
			t.Errorf("missing group header %q:\n%s", header, got)
		}
	}

	// flutter has no category and falls into Other.
	idxOther := strings.Index(got, "  # Other")
	idxFlutter := strings.Index(got, "  flutter:")
	if idxFlutter < idxOther {
		t.Errorf("uncategorized entry should sit under the fallback group:\n%s", got)
	}

	// The structured block stays intact under its group.
	idxState := strings.Index(got, "  # State Management")
	idxURL := strings.Index(got, "      url: https://example.com/state_notifier.git")
	if idxURL < idxState {
		t.Errorf("nested lines must travel with their declaration:\n%s", got)
	}

	// Groups are sorted by category name.
	if !(strings.Index(got, "  # Localization") < strings.Index(got, "  # Networking")) {
		t.Errorf("groups should be sorted:\n%s", got)
	}

	// Lines outside the section are untouched.
	if !strings.Contains(got, "dev_dependencies:\n  build_runner: ^2.4.8\n  mockito: ^5.4.4") {
		t.Errorf("dev section must not change:\n%s", got)
	}
}

func TestGroupSectionIdempotent(t *testing.T) {
	e := NewEditor(sampleLines(), "dependencies", "dev_dependencies")
	categories := map[string]string{"dio": "Networking"}

	if !e.GroupSection("dependencies", categories, "Other") {
		t.Fatal("first grouping should succeed")
	}
	first := joined(e.Lines())

	if !e.GroupSection("dependencies", categories, "Other") {
		t.Fatal("second grouping should succeed")
	}
	second := joined(e.Lines())

	if first != second {
		t.Errorf("regrouping must be idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestGroupSectionTrackingStaysConsistent(t *testing.T) {
	e := NewEditor(sampleLines(), "dependencies", "dev_dependencies")
	e.GroupSection("dependencies", map[string]string{}, "Other")

	for _, key := range []string{"dependencies", "dev_dependencies"} {
		tracked, ok := e.Section(key)
		if !ok {
			t.Fatalf("section %s lost", key)
		}
		fresh := FindSection(e.Lines(), key)
		if fresh == nil || tracked.Start != fresh.Start || tracked.End != fresh.End {
			t.Errorf("section %s tracked as %+v, re-derived as %+v", key, tracked, fresh)
		}
	}
}

func TestGroupMissingSection(t *testing.T) {
	e := NewEditor(sampleLines(), "dependencies", "dev_dependencies")
	if e.GroupSection("dependency_overrides", nil, "Other") {
		t.Error("grouping an absent section should report false")
	}
}
