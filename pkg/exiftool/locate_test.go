package exiftool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/platform"
)

// statStubFor builds a stat stub that reports the given paths as
// existing regular files.
func statStubFor(t *testing.T, existing ...string) func(string) (os.FileInfo, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "exiftool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	info, err := os.Stat(path)
	require.NoError(t, err)

	set := make(map[string]bool, len(existing))
	for _, p := range existing {
		set[p] = true
	}

	return func(name string) (os.FileInfo, error) {
		if set[name] {
			return info, nil
		}
		return nil, os.ErrNotExist
	}
}

// ============================================================================
// Well-Known Path Tests
// ============================================================================

func TestWellKnownPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		os       platform.OS
		contains string
	}{
		{name: "darwin includes homebrew", os: platform.Darwin, contains: "/opt/homebrew/bin/exiftool"},
		{name: "darwin includes macports", os: platform.Darwin, contains: "/opt/local/bin/exiftool"},
		{name: "linux includes linuxbrew", os: platform.Linux, contains: "/home/linuxbrew/.linuxbrew/bin/exiftool"},
		{name: "linux includes snap", os: platform.Linux, contains: "/snap/bin/exiftool"},
		{name: "windows includes chocolatey", os: platform.Windows, contains: `C:\ProgramData\chocolatey\bin\exiftool.exe`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc := NewLocator(platform.Platform{OS: tt.os}, &runner.Fake{})
			assert.Contains(t, loc.WellKnownPaths(), tt.contains)
		})
	}
}

func TestWellKnownPathsWindowsUseExeSuffix(t *testing.T) {
	t.Parallel()

	loc := NewLocator(platform.Platform{OS: platform.Windows}, &runner.Fake{})
	for _, p := range loc.WellKnownPaths() {
		assert.True(t, strings.HasSuffix(p, ".exe"), "expected .exe suffix: %s", p)
	}
}

// ============================================================================
// Locate Tests
// ============================================================================

func TestLocate(t *testing.T) {
	t.Parallel()

	t.Run("FirstExistingWellKnownPathWins", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{}
		loc := NewLocator(platform.Platform{OS: platform.Darwin}, fake)
		loc.Stat = statStubFor(t, "/usr/local/bin/exiftool", "/usr/bin/exiftool")

		tool, err := loc.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/usr/local/bin/exiftool", tool.Path)
		assert.Equal(t, SourceWellKnown, tool.Source)
		assert.Zero(t, fake.CallCount(), "existing well-known path needs no probe")
	})

	t.Run("DirectoryAtCandidatePathIsSkipped", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		dirInfo, err := os.Stat(dir)
		require.NoError(t, err)

		fake := versionRunner("13.10")
		loc := NewLocator(platform.Platform{OS: platform.Linux}, fake)
		loc.Stat = func(name string) (os.FileInfo, error) {
			if name == "/usr/local/bin/exiftool" {
				return dirInfo, nil
			}
			return nil, os.ErrNotExist
		}

		tool, err := loc.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourcePath, tool.Source)
	})

	t.Run("FallsBackToPathProbe", func(t *testing.T) {
		t.Parallel()

		fake := versionRunner("13.10")
		loc := NewLocator(platform.Platform{OS: platform.Linux}, fake)
		loc.Stat = func(name string) (os.FileInfo, error) { return nil, os.ErrNotExist }

		tool, err := loc.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "exiftool", tool.Path)
		assert.Equal(t, SourcePath, tool.Source)

		calls := fake.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "exiftool", calls[0].Name)
		assert.Equal(t, []string{"-ver"}, calls[0].Args)
	})

	t.Run("WindowsProbesExeName", func(t *testing.T) {
		t.Parallel()

		fake := versionRunner("13.10")
		loc := NewLocator(platform.Platform{OS: platform.Windows}, fake)
		loc.Stat = func(name string) (os.FileInfo, error) { return nil, os.ErrNotExist }

		tool, err := loc.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "exiftool.exe", tool.Path)
	})

	t.Run("NothingInstalledMeansNotFound", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{ExitCode: -1}, errors.New("executable file not found in $PATH")
		}}

		loc := NewLocator(platform.Platform{OS: platform.Darwin}, fake)
		loc.Stat = func(name string) (os.FileInfo, error) { return nil, os.ErrNotExist }

		_, err := loc.Locate(context.Background())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func versionRunner(version string) *runner.Fake {
	return &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
		return runner.Result{Stdout: []byte(version + "\n")}, nil
	}}
}
