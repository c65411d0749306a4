// Package exiftool locates and drives the exiftool binary, which does
// the actual metadata stripping. Everything runs through an injected
// runner so the package is testable without exiftool installed.
package exiftool

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdwipe/mdwipe/internal/runner"
)

// comprehensiveArgs removes every metadata group we know about. The
// explicit group wipes cover formats where a bare -all= leaves
// embedded blocks behind (thumbnails, ICC profiles, maker notes).
var comprehensiveArgs = []string{
	"-overwrite_original",
	"-ignoreMinorErrors",
	"-q", "-q",
	"-all=",
	"-EXIF:all=",
	"-GPS:all=",
	"-IPTC:all=",
	"-XMP:all=",
	"-ICC_Profile:all=",
	"-Photoshop:all=",
	"-MakerNotes:all=",
	"-ThumbnailImage=",
	"-PreviewImage=",
	"-Comment=",
	"-UserComment=",
	"-PDF:all=",
	"-ID3:all=",
	"-QuickTime:all=",
}

// minimalArgs is the fallback strip for files where the comprehensive
// set trips over format quirks.
var minimalArgs = []string{
	"-overwrite_original",
	"-q", "-q",
	"-all=",
}

// Client drives a located exiftool binary.
type Client struct {
	path   string
	runner runner.Runner
}

// NewClient creates a Client for the exiftool binary at path.
func NewClient(path string, r runner.Runner) *Client {
	return &Client{path: path, runner: r}
}

// Path returns the absolute path of the binary this client drives.
func (c *Client) Path() string {
	return c.path
}

// Version runs exiftool -ver and returns the trimmed version string.
// This doubles as the health probe: a binary that cannot report its
// version is not usable.
func (c *Client) Version(ctx context.Context) (string, error) {
	res, err := c.runner.Run(ctx, runner.Command{Name: c.path, Args: []string{"-ver"}})
	if err != nil {
		return "", fmt.Errorf("exiftool version probe failed: %w", err)
	}

	version := strings.TrimSpace(string(res.Stdout))
	if version == "" {
		return "", fmt.Errorf("exiftool at %s returned an empty version", c.path)
	}
	return version, nil
}

// StripAll removes all known metadata groups from the file, including
// embedded thumbnails and maker notes.
func (c *Client) StripAll(ctx context.Context, path string) error {
	args := make([]string, 0, len(comprehensiveArgs)+1)
	args = append(args, comprehensiveArgs...)
	args = append(args, path)

	if _, err := c.runner.Run(ctx, runner.Command{Name: c.path, Args: args}); err != nil {
		return fmt.Errorf("comprehensive strip failed: %w", err)
	}
	return nil
}

// StripMinimal removes writable metadata with a bare -all= pass. Used
// as a fallback when StripAll fails on an uncooperative format.
func (c *Client) StripMinimal(ctx context.Context, path string) error {
	args := make([]string, 0, len(minimalArgs)+1)
	args = append(args, minimalArgs...)
	args = append(args, path)

	if _, err := c.runner.Run(ctx, runner.Command{Name: c.path, Args: args}); err != nil {
		return fmt.Errorf("minimal strip failed: %w", err)
	}
	return nil
}
