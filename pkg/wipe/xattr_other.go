//go:build !linux

package wipe

// clearNativeXattrs is only needed on Linux. macOS clears attributes
// through xattr(1) and Windows keeps nothing comparable.
func clearNativeXattrs(string) error {
	return nil
}
