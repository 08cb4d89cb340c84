package build

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/altlinux/archivebuild/internal/repo"
	"github.com/altlinux/archivebuild/internal/runtime"
)

// File name of the bootstrapped root filesystem tarball.
const tarballFile = "alt.tar.xz"

// Controls a matrix run.
type Options struct {
	Coordinates repo.Coordinates // Registry coordinates for images and manifests.
	Arches      []string         // Logical architectures to build.
	Branches    []string         // Distribution releases to build.
	Dates       []repo.Date      // Snapshot dates to build.
	Stages      StageSet         // Requested stages.
	Packages    []string         // Packages installed on top of the base system.
	ProfilesDir string           // mkimage-profiles working tree.
	WorkDir     string           // Run working directory for config files and tarballs.
}

// Returned after a completed matrix run.
type Result struct {
	Cells  int // Matrix cells processed.
	Pushed int // Manifests pushed to the registry.
}

// One (architecture, branch, date) unit of build and test work.
type cell struct {
	arch   string
	branch string
	date   repo.Date
}

// Executes the requested stages across the whole build matrix.
//
// Branches and dates form the outer loops; for every branch/date pair the
// manifest is reset (when build_image is requested) and each architecture
// cell runs its stages in the fixed pipeline order. The first failure of any
// external tool halts everything that remains: a partial matrix must never
// reach the registry.
func Run(ctx context.Context, rt *runtime.Runtime, opts Options) (*Result, error) {
	slog.Info("building matrix",
		"arches", opts.Arches,
		"branches", opts.Branches,
		"dates", len(opts.Dates),
		"stages", opts.Stages.InOrder(),
	)

	result := &Result{}

	for _, branch := range opts.Branches {
		for _, date := range opts.Dates {
			if err := runPair(ctx, rt, opts, branch, date, result); err != nil {
				return nil, err
			}
		}
	}

	if opts.Stages.Has(StageClean) {
		slog.Info("pruning local build state")
		if err := rt.Prune(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuild, err)
		}
	}

	return result, nil
}

// Processes every architecture cell of one branch/date pair, then pushes the
// pair's manifest when requested.
//
// A rebuild of the manifest starts from a clean slate: the previous manifest
// is removed before the first cell so entries from an earlier aborted run
// cannot survive into the new one.
func runPair(ctx context.Context, rt *runtime.Runtime, opts Options, branch string, date repo.Date, result *Result) error {
	manifest := opts.Coordinates.Manifest(branch, date)

	if opts.Stages.Has(StageBuildImage) {
		rt.RemoveManifest(ctx, manifest)
	}

	for _, arch := range opts.Arches {
		c := cell{arch: arch, branch: branch, date: date}
		if err := runCell(ctx, rt, opts, c, manifest); err != nil {
			return fmt.Errorf("%w: %s/%s/%s: %w", ErrBuild, branch, date, arch, err)
		}
		result.Cells++
	}

	if opts.Stages.Has(StagePush) {
		slog.Info("pushing manifest", "manifest", manifest)
		if err := rt.PushManifest(ctx, manifest); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrBuild, manifest, err)
		}
		result.Pushed++
	}

	return nil
}

// Runs the requested per-cell stages in the fixed order
// build_tarball, build_image, test.
func runCell(ctx context.Context, rt *runtime.Runtime, opts Options, c cell, manifest string) error {
	image := opts.Coordinates.Image(c.branch, c.date, c.arch)

	if opts.Stages.Has(StageBuildTarball) {
		slog.Info("building tarball", "arch", c.arch, "branch", c.branch, "date", c.date)
		if err := buildTarball(ctx, rt, opts, c); err != nil {
			return err
		}
	}

	if opts.Stages.Has(StageBuildImage) {
		slog.Info("building image", "image", image)
		if err := buildImage(ctx, rt, opts, c, manifest, image); err != nil {
			return err
		}
	}

	if opts.Stages.Has(StageTest) {
		slog.Info("verifying image", "image", image)
		if err := verify(ctx, rt, c, image); err != nil {
			return err
		}
	}

	return nil
}
