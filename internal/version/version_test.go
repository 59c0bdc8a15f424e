package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "1.2.3", "0123456789abcdef", "2026-01-02T03:04:05Z"

	got := String()
	for _, want := range []string{"tokentint 1.2.3", "commit 01234567", "built 2026-01-02T03:04:05Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, want it to contain %q", got, want)
		}
	}
	if Short() != "1.2.3" {
		t.Errorf("Short() = %q, want 1.2.3", Short())
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.GoVersion == "" || info.Platform == "" {
		t.Errorf("GetInfo() = %+v, want Go version and platform", info)
	}
	if shortCommit("abc") != "abc" {
		t.Errorf("shortCommit(abc) = %q", shortCommit("abc"))
	}
}
