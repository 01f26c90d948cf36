//go:build !unix

package config

// withConfigLock runs fn directly; the atomic rename in Save still keeps
// the file consistent.
func withConfigLock(baseDir string, fn func() error) error {
	return fn()
}
