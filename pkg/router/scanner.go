package router

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// Scanner walks a pages directory and compiles every file into a Route.
type Scanner struct {
	rootDir string
}

// NewScanner creates a scanner rooted at the pages directory.
func NewScanner(rootDir string) *Scanner {
	return &Scanner{rootDir: rootDir}
}

// Scan compiles every regular file under the root. Files that fail to
// compile do not abort the walk; their errors are joined and returned
// alongside the routes that did compile.
func (s *Scanner) Scan() ([]*Route, error) {
	var routes []*Route
	var errs []error

	walkErr := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories hold editor and VCS state, not pages.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		route, err := FromPath(filepath.ToSlash(path), filepath.ToSlash(s.rootDir))
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		routes = append(routes, route)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return routes, errors.Join(errs...)
}

// ScanInto compiles the pages tree and registers every route on r.
// Compilation and registration errors are joined; routes that compiled
// and registered cleanly are kept.
func (s *Scanner) ScanInto(r *Router) error {
	routes, err := s.Scan()
	var errs []error
	if err != nil {
		errs = append(errs, err)
	}
	for _, route := range routes {
		if addErr := r.AddRoute(route); addErr != nil {
			errs = append(errs, addErr)
		}
	}
	return errors.Join(errs...)
}
