package exiftool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdwipe/mdwipe/internal/runner"
)

// ============================================================================
// Version Tests
// ============================================================================

func TestVersion(t *testing.T) {
	t.Parallel()

	t.Run("ReturnsTrimmedVersion", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{Stdout: []byte("13.10\n")}, nil
		}}

		client := NewClient("/usr/bin/exiftool", fake)
		version, err := client.Version(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "13.10", version)

		calls := fake.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "/usr/bin/exiftool", calls[0].Name)
		assert.Equal(t, []string{"-ver"}, calls[0].Args)
	})

	t.Run("ProbeFailureIsWrapped", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{ExitCode: 1}, errors.New("exec format error")
		}}

		client := NewClient("/usr/bin/exiftool", fake)
		_, err := client.Version(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "version probe failed")
	})

	t.Run("EmptyOutputIsAnError", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{Stdout: []byte("  \n")}, nil
		}}

		client := NewClient("/usr/bin/exiftool", fake)
		_, err := client.Version(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty version")
	})
}

// ============================================================================
// Strip Tests
// ============================================================================

func TestStripAll(t *testing.T) {
	t.Parallel()

	t.Run("PassesComprehensiveArgs", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{}
		client := NewClient("/opt/homebrew/bin/exiftool", fake)

		err := client.StripAll(context.Background(), "/tmp/photo.jpg")
		require.NoError(t, err)

		calls := fake.Calls()
		require.Len(t, calls, 1)
		args := calls[0].Args

		assert.Equal(t, "-overwrite_original", args[0])
		assert.Contains(t, args, "-ignoreMinorErrors")
		assert.Contains(t, args, "-all=")
		assert.Contains(t, args, "-GPS:all=")
		assert.Contains(t, args, "-MakerNotes:all=")
		assert.Contains(t, args, "-ThumbnailImage=")
		assert.Contains(t, args, "-QuickTime:all=")
		assert.Equal(t, "/tmp/photo.jpg", args[len(args)-1])
	})

	t.Run("FileNameWithSpacesStaysOneArg", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{}
		client := NewClient("/usr/bin/exiftool", fake)

		err := client.StripAll(context.Background(), "/tmp/my holiday photo.jpg")
		require.NoError(t, err)

		calls := fake.Calls()
		require.Len(t, calls, 1)
		args := calls[0].Args
		assert.Equal(t, "/tmp/my holiday photo.jpg", args[len(args)-1])
	})

	t.Run("FailureIsWrapped", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{ExitCode: 1}, errors.New("Error: Not a valid JPG")
		}}

		client := NewClient("/usr/bin/exiftool", fake)
		err := client.StripAll(context.Background(), "/tmp/photo.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "comprehensive strip failed")
	})

	t.Run("StripAllDoesNotMutateSharedArgs", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{}
		client := NewClient("/usr/bin/exiftool", fake)

		require.NoError(t, client.StripAll(context.Background(), "/tmp/a.jpg"))
		require.NoError(t, client.StripAll(context.Background(), "/tmp/b.jpg"))

		calls := fake.Calls()
		require.Len(t, calls, 2)
		assert.Equal(t, "/tmp/a.jpg", calls[0].Args[len(calls[0].Args)-1])
		assert.Equal(t, "/tmp/b.jpg", calls[1].Args[len(calls[1].Args)-1])
	})
}

func TestStripMinimal(t *testing.T) {
	t.Parallel()

	t.Run("PassesMinimalArgs", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{}
		client := NewClient("/usr/bin/exiftool", fake)

		err := client.StripMinimal(context.Background(), "/tmp/photo.heic")
		require.NoError(t, err)

		calls := fake.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{
			"-overwrite_original", "-q", "-q", "-all=", "/tmp/photo.heic",
		}, calls[0].Args)
	})

	t.Run("FailureIsWrapped", func(t *testing.T) {
		t.Parallel()

		fake := &runner.Fake{Handler: func(cmd runner.Command) (runner.Result, error) {
			return runner.Result{ExitCode: 1}, errors.New("Error: File not writable")
		}}

		client := NewClient("/usr/bin/exiftool", fake)
		err := client.StripMinimal(context.Background(), "/tmp/photo.heic")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "minimal strip failed")
	})
}
