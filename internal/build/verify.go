package build

import (
	"context"

	"github.com/altlinux/archivebuild/internal/repo"
	"github.com/altlinux/archivebuild/internal/runtime"
)

// Package whose end-to-end installation proves the image's package manager
// and network access work. Small and universally available.
const probePackage = "ncdu"

// Runs the smoke checks against a committed image.
//
// The first three checks assert the in-image source list carries the branch,
// the repository architecture identifier, and the snapshot date path. The
// fourth performs a real metadata refresh and package install, proving the
// image is functional rather than merely well-configured. Each check is a
// separate ephemeral container run; any failure is fatal, since a failing
// smoke test must never be silently skipped before publish.
func verify(ctx context.Context, rt *runtime.Runtime, c cell, image string) error {
	archID, err := repo.ArchID(c.arch)
	if err != nil {
		return err
	}

	for _, value := range []string{c.branch, archID, c.date.Path()} {
		if err := rt.RunImage(ctx, image, "grep", "-q", value, imageSourcesPath); err != nil {
			return err
		}
	}

	return rt.RunImage(ctx, image,
		"sh", "-c", "apt-get update && apt-get install -y "+probePackage)
}
