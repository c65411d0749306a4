//go:build linux

package wipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sys/unix"
)

// clearNativeXattrs removes every extended attribute of the file.
// Filesystems without xattr support have nothing to clear.
func clearNativeXattrs(path string) error {
	size, err := unix.Llistxattr(path, nil)
	if err != nil {
		if errors.Is(err, unix.ENOTSUP) {
			return nil
		}
		return fmt.Errorf("failed to list extended attributes: %w", err)
	}
	if size == 0 {
		return nil
	}

	buf := make([]byte, size)
	n, err := unix.Llistxattr(path, buf)
	if err != nil {
		return fmt.Errorf("failed to read extended attributes: %w", err)
	}

	var errs *multierror.Error
	for _, name := range strings.Split(strings.TrimRight(string(buf[:n]), "\x00"), "\x00") {
		if name == "" {
			continue
		}
		// ENODATA means something else removed it between list and
		// remove, which is fine.
		if err := unix.Lremovexattr(path, name); err != nil && !errors.Is(err, unix.ENODATA) {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errs.ErrorOrNil()
}
