package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	origCommit, origDate := Commit, Date
	defer func() { Commit, Date = origCommit, origDate }()

	tests := []struct {
		name   string
		commit string
		date   string
		want   string
	}{
		{name: "unstamped", commit: unknown, date: unknown, want: "swatch version dev ("},
		{name: "short commit", commit: "abc", date: "2025-01-01T00:00:00Z", want: "commit: abc, built: 2025-01-01T00:00:00Z"},
		{name: "truncated commit", commit: "0123456789abcdef", date: "2025-01-01T00:00:00Z", want: "commit: 01234567,"},
		{name: "commit without date", commit: "0123456789abcdef", date: unknown, want: "swatch version dev ("},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Commit, Date = tt.commit, tt.date
			if got := String(); !strings.Contains(got, tt.want) {
				t.Errorf("String() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Errorf("GetInfo() = %+v", info)
	}
	if info.Stamped() {
		t.Error("test binaries should not be stamped")
	}
}
