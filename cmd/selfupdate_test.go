package cmd

import (
	"strings"
	"testing"
)

func TestSelfUpdateCommand(t *testing.T) {
	cmd := newSelfUpdateCmd()
	if cmd.Use != "self-update" {
		t.Errorf("expected Use to be 'self-update', got %s", cmd.Use)
	}
	if !strings.Contains(cmd.Long, "Checks for the latest release") {
		t.Error("expected Long description to mention release checking")
	}
	if cmd.RunE == nil {
		t.Error("expected self-update command to have a RunE function")
	}
}

func TestSelfUpdateRejectsDevVersion(t *testing.T) {
	orig := rootCmd.Version
	defer func() { rootCmd.Version = orig }()

	for _, version := range []string{"", "dev"} {
		rootCmd.Version = version
		err := runSelfUpdate(nil, nil)
		if err == nil {
			t.Fatalf("expected error for version %q", version)
		}
		if !strings.Contains(err.Error(), "cannot self-update a development version") {
			t.Errorf("unexpected error for version %q: %v", version, err)
		}
	}
}

func TestGithubRepoSlug(t *testing.T) {
	if githubRepoSlug != "modctl-dev/modctl" {
		t.Errorf("unexpected repo slug: %s", githubRepoSlug)
	}
}
