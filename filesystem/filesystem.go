// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library so that logs, config files and the release cache can be
// redirected to an in-memory backend under test.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// Use swaps the backend for an arbitrary afero filesystem.
func Use(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing and CI environments.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}
