package repo

import (
	"fmt"

	"github.com/distribution/reference"
)

// Registry coordinates for the images and manifests a build run produces.
type Coordinates struct {
	Registry     string // Registry host (e.g., "registry.altlinux.org").
	Organization string // Organization or namespace within the registry.
	Name         string // Image name (e.g., "archive").
}

// Returns the manifest reference for a branch/date pair.
//
// One manifest aggregates the images of every architecture built for that
// pair; it is the publish unit.
func (c Coordinates) Manifest(branch string, date Date) string {
	return fmt.Sprintf("%s/%s/%s:%s-%s", c.Registry, c.Organization, c.Name, branch, date)
}

// Returns the image reference for a single (architecture, branch, date) cell.
func (c Coordinates) Image(branch string, date Date, arch string) string {
	return fmt.Sprintf("%s-%s", c.Manifest(branch, date), arch)
}

// Checks that every reference the run will construct is syntactically valid.
//
// Each manifest and image reference for the requested matrix is parsed with
// the registry reference grammar, so malformed registry, organization, or
// name input fails before any external tool is invoked.
func (c Coordinates) Validate(branches []string, dates []Date, arches []string) error {
	for _, branch := range branches {
		for _, date := range dates {
			if err := parseRef(c.Manifest(branch, date)); err != nil {
				return err
			}
			for _, arch := range arches {
				if err := parseRef(c.Image(branch, date, arch)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Parses a reference, requiring an explicit registry domain.
func parseRef(ref string) error {
	if _, err := reference.ParseNamed(ref); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidReference, ref, err)
	}
	return nil
}
