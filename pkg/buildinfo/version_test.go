package buildinfo

import (
	"strings"
	"testing"
)

func TestGetKeepsLdflagsValues(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.3", "abc123", "2024-05-01"
	got := Get()
	want := Info{Version: "v1.2.3", Commit: "abc123", Date: "2024-05-01"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestTemplate(t *testing.T) {
	oldV := Version
	t.Cleanup(func() { Version = oldV })
	Version = "v9.9.9"

	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v9.9.9\n") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.Contains(got, "version: v9.9.9") {
		t.Errorf("String() = %q", got)
	}
}
