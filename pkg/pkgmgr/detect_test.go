package pkgmgr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/platform"
)

func statStubFor(t *testing.T, existing ...string) func(string) (os.FileInfo, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "brew")
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

func TestDetect(t *testing.T) {
	t.Parallel()

	t.Run("FindsHomebrewOnDarwin", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{Stdout: []byte("Homebrew 4.4.2\n")}, nil
		}}

		det := NewDetector(platform.Platform{OS: platform.Darwin}, fake)
		det.Stat = statStubFor(t, "/opt/homebrew/bin/brew")

		mgr, err := det.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Homebrew, mgr.Kind)
		assert.Equal(t, "/opt/homebrew/bin/brew", mgr.Path)
	})

	t.Run("FindsLinuxbrewOnLinux", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{Stdout: []byte("Homebrew 4.4.2\n")}, nil
		}}

		det := NewDetector(platform.Platform{OS: platform.Linux}, fake)
		det.Stat = statStubFor(t, "/home/linuxbrew/.linuxbrew/bin/brew")

		mgr, err := det.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Homebrew, mgr.Kind)
		assert.Equal(t, "/home/linuxbrew/.linuxbrew/bin/brew", mgr.Path)
	})

	t.Run("FindsChocolateyOnWindows", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{Stdout: []byte("2.3.0\n")}, nil
		}}

		det := NewDetector(platform.Platform{OS: platform.Windows}, fake)
		det.Stat = statStubFor(t, `C:\ProgramData\chocolatey\bin\choco.exe`)

		mgr, err := det.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Chocolatey, mgr.Kind)
	})

	t.Run("FallsBackToPath", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{Stdout: []byte("Homebrew 4.4.2\n")}, nil
		}}

		det := NewDetector(platform.Platform{OS: platform.Linux}, fake)
		det.Stat = statStubFor(t)
		det.LookPath = func(file string) (string, error) {
			assert.Equal(t, "brew", file)
			return "/custom/bin/brew", nil
		}

		mgr, err := det.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/custom/bin/brew", mgr.Path)
	})

	t.Run("BrokenCandidateIsSkipped", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			if cmd.Name == "/opt/homebrew/bin/brew" {
				return runner.Result{ExitCode: 1}, errors.New("dyld: missing library")
			}
			return runner.Result{Stdout: []byte("Homebrew 4.1.0\n")}, nil
		}}

		det := NewDetector(platform.Platform{OS: platform.Darwin}, fake)
		det.Stat = statStubFor(t, "/opt/homebrew/bin/brew", "/usr/local/bin/brew")

		mgr, err := det.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/usr/local/bin/brew", mgr.Path)
	})

	t.Run("NothingInstalledMeansErrNoManager", func(t *testing.T) {
		t.Parallel()

		det := NewDetector(platform.Platform{OS: platform.Darwin}, &runner.Fake{})
		det.Stat = statStubFor(t)
		det.LookPath = func(file string) (string, error) { return "", errors.New("not found") }

		_, err := det.Detect(context.Background())
		assert.ErrorIs(t, err, ErrNoManager)
	})
}
