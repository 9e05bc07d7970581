package lint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigureAC is the canonical configure script name.
	ConfigureAC = "configure.ac"
	// ConfigureIn is the deprecated configure script name, still accepted.
	ConfigureIn = "configure.in"
	// AutomakeFile is the companion build file whose presence makes
	// AM_INIT_AUTOMAKE mandatory.
	AutomakeFile = "Makefile.am"
)

// ErrNoConfigureScript means neither configure.ac nor configure.in exists in
// the project directory.
var ErrNoConfigureScript = errors.New("cannot find 'configure.ac' or 'configure.in'")

// FindConfigureScript locates the configure script in dir, preferring the
// canonical name. deprecated is true when only configure.in was found.
func FindConfigureScript(dir string) (path string, deprecated bool, err error) {
	candidate := filepath.Join(dir, ConfigureAC)
	if ok, statErr := fileExists(candidate); statErr != nil {
		return "", false, statErr
	} else if ok {
		return candidate, false, nil
	}

	candidate = filepath.Join(dir, ConfigureIn)
	if ok, statErr := fileExists(candidate); statErr != nil {
		return "", false, statErr
	} else if ok {
		return candidate, true, nil
	}

	return "", false, ErrNoConfigureScript
}

// HasAutomakeFile reports whether a Makefile.am sits in dir. Only its
// presence matters; its content is never parsed here.
func HasAutomakeFile(dir string) bool {
	ok, err := fileExists(filepath.Join(dir, AutomakeFile))
	return err == nil && ok
}

func fileExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil
	} else if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else {
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
}
