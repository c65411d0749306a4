// Package platform identifies the host operating system for components
// that branch per platform. Components receive a Platform value instead
// of reading runtime.GOOS directly so every branch can be exercised in
// tests regardless of the host.
package platform

import (
	"fmt"
	"runtime"
)

// OS names an operating system family.
type OS string

const (
	Darwin  OS = "darwin"
	Linux   OS = "linux"
	Windows OS = "windows"
)

// Platform describes the host operating system.
type Platform struct {
	OS OS
}

// Current returns the Platform for the running process.
func Current() Platform {
	return Platform{OS: OS(runtime.GOOS)}
}

// IsWindows reports whether the platform is Windows.
func (p Platform) IsWindows() bool {
	return p.OS == Windows
}

// IsDarwin reports whether the platform is macOS.
func (p Platform) IsDarwin() bool {
	return p.OS == Darwin
}

// IsUnix reports whether the platform is a Unix-like system.
func (p Platform) IsUnix() bool {
	return p.OS == Darwin || p.OS == Linux
}

// ExeSuffix returns the executable filename suffix for the platform.
func (p Platform) ExeSuffix() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}

// Validate returns an error when mdwipe does not support the host OS.
func (p Platform) Validate() error {
	switch p.OS {
	case Darwin, Linux, Windows:
		return nil
	}
	return fmt.Errorf("unsupported platform: %s\nHint: Supported platforms are macOS, Linux, and Windows", p.OS)
}

func (p Platform) String() string {
	return string(p.OS)
}
