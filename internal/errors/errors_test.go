package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSweepErrorKindMatching(t *testing.T) {
	err := New(ErrManifest, "pubspec.yaml is broken")

	if !errors.Is(err, ErrManifest) {
		t.Error("errors.Is should match the kind")
	}
	if errors.Is(err, ErrConfig) {
		t.Error("errors.Is must not match a different kind")
	}
}

func TestSweepErrorCauseChain(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(cause, ErrEdit, "failed to write manifest")

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be in the chain")
	}
	if got := err.Error(); !strings.Contains(got, "disk on fire") {
		t.Errorf("Error() = %q, should include the cause", got)
	}

	var se *SweepError
	if !errors.As(err, &se) {
		t.Fatal("errors.As should find the SweepError")
	}
	if se.Message != "failed to write manifest" {
		t.Errorf("Message = %q", se.Message)
	}
}

func TestFormatIncludesDetailsAndSuggestion(t *testing.T) {
	err := WithSuggestion(ErrManifest, "no pubspec.yaml found", "run pubsweep inside a Dart project").
		WithDetails("path", "/tmp/nowhere")

	out := err.Format()
	for _, want := range []string{"Error:", "no pubspec.yaml found", "path: /tmp/nowhere", "Suggestion:", "run pubsweep inside a Dart project"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestManifestConstructors(t *testing.T) {
	tests := []struct {
		err  *SweepError
		kind error
	}{
		{ManifestNotFound("pubspec.yaml", errors.New("no such file")), ErrManifest},
		{ManifestReadFailed("pubspec.yaml", errors.New("perm")), ErrManifest},
		{ManifestParseFailed("pubspec.yaml", errors.New("bad yaml")), ErrManifest},
		{ManifestWriteFailed("pubspec.yaml", errors.New("perm")), ErrEdit},
		{BackupFailed("pubspec.yaml.bak", errors.New("perm")), ErrBackup},
		{RestoreFailed("pubspec.yaml.bak", errors.New("perm")), ErrBackup},
		{ScanFailed("lib", errors.New("perm")), ErrScan},
	}
	for i, tt := range tests {
		if !errors.Is(tt.err, tt.kind) {
			t.Errorf("case %d: kind mismatch for %v", i, tt.err)
		}
	}

	if ManifestNotFound("pubspec.yaml", nil).Suggestion == "" {
		t.Error("missing-manifest errors should tell the user what to do")
	}
}

func TestNetworkHelpers(t *testing.T) {
	netErr := NetworkUnavailable("api.pubsweep.dev", errors.New("connection refused"))
	if !errors.Is(netErr, ErrNetwork) {
		t.Error("kind should be ErrNetwork")
	}
	if !IsRetryable(netErr) {
		t.Error("network errors are retryable")
	}

	timeoutErr := OperationTimeout("category lookup", 5*time.Second)
	if !errors.Is(timeoutErr, ErrTimeout) {
		t.Error("kind should be ErrTimeout")
	}
	if !IsRetryable(timeoutErr) {
		t.Error("timeouts are retryable")
	}

	cfgErr := New(ErrConfig, "bad setting")
	if IsRetryable(cfgErr) {
		t.Error("config errors are not retryable")
	}
	if !IsUserError(cfgErr) {
		t.Error("config errors are user errors")
	}
	if IsUserError(netErr) {
		t.Error("network errors are not user errors")
	}
}

func TestSweepErrorWorksWithWrapVerb(t *testing.T) {
	inner := New(ErrScan, "walk failed")
	outer := fmt.Errorf("analyze: %w", inner)

	if !errors.Is(outer, ErrScan) {
		t.Error("kind should survive fmt.Errorf wrapping")
	}
}
