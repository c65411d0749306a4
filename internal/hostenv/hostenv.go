// Package hostenv integrates with the desktop environment around the
// process: clipboard, terminal windows, and the default browser. All
// of it is best-effort convenience for the guided install flow.
package hostenv

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/atotto/clipboard"

	"github.com/mdwipe/mdwipe/internal/logger"
	"github.com/mdwipe/mdwipe/internal/runner"
	"github.com/mdwipe/mdwipe/pkg/platform"
)

// linuxTerminals lists terminal emulators to try on Linux, most
// standard first. x-terminal-emulator is the Debian alternatives entry.
var linuxTerminals = []string{
	"x-terminal-emulator",
	"gnome-terminal",
	"konsole",
	"xterm",
}

// Host performs desktop environment actions for one platform.
type Host struct {
	Platform platform.Platform
	Runner   runner.Runner

	// WriteClipboard and LookPath are injectable for tests.
	WriteClipboard func(text string) error
	LookPath       func(file string) (string, error)
}

// New creates a Host backed by the real clipboard and PATH.
func New(p platform.Platform, r runner.Runner) *Host {
	return &Host{
		Platform:       p,
		Runner:         r,
		WriteClipboard: clipboard.WriteAll,
		LookPath:       exec.LookPath,
	}
}

// CopyToClipboard places text on the system clipboard so the user can
// paste an install command straight into their shell.
func (h *Host) CopyToClipboard(text string) error {
	if err := h.WriteClipboard(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// OpenTerminal opens a new terminal window so the user can paste the
// install command. On macOS it first tries to activate Terminal and
// inject a paste keystroke; that needs accessibility permissions, so a
// plain Terminal open is the fallback. On Linux it walks a list of
// common emulators and uses the first one present.
func (h *Host) OpenTerminal(ctx context.Context) error {
	switch h.Platform.OS {
	case platform.Darwin:
		_, err := h.Runner.Run(ctx, runner.Command{Name: "osascript", Args: []string{
			"-e", `tell application "Terminal" to activate`,
			"-e", `tell application "System Events" to keystroke "v" using command down`,
		}})
		if err == nil {
			return nil
		}
		logger.Debug("terminal auto-paste failed, opening Terminal instead", logger.Err(err))

		_, err = h.Runner.Run(ctx, runner.Command{Name: "open", Args: []string{"-a", "Terminal"}})
		return err
	case platform.Windows:
		_, err := h.Runner.Run(ctx, runner.Command{Name: "cmd", Args: []string{"/c", "start", "cmd"}})
		return err
	case platform.Linux:
		for _, term := range linuxTerminals {
			resolved, err := h.LookPath(term)
			if err != nil {
				continue
			}
			_, err = h.Runner.Run(ctx, runner.Command{Name: resolved})
			return err
		}
		return fmt.Errorf("no terminal emulator found\nHint: Install one of %v or run the install command in your current shell", linuxTerminals)
	default:
		return fmt.Errorf("cannot open a terminal on %s", h.Platform.OS)
	}
}

// OpenURL opens the URL in the default browser.
func (h *Host) OpenURL(ctx context.Context, url string) error {
	var cmd runner.Command
	switch h.Platform.OS {
	case platform.Darwin:
		cmd = runner.Command{Name: "open", Args: []string{url}}
	case platform.Windows:
		cmd = runner.Command{Name: "rundll32", Args: []string{"url.dll,FileProtocolHandler", url}}
	default:
		cmd = runner.Command{Name: "xdg-open", Args: []string{url}}
	}

	if _, err := h.Runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
