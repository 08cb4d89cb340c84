// Package build orchestrates the archive image build matrix.
//
// A run expands the cross-product of branches, snapshot dates, and
// architectures into cells and processes each cell through the requested
// stages in the fixed order build_tarball, build_image, test. A push runs
// once per branch/date pair after all of its architectures complete, and
// clean runs once after the entire matrix. Stages may be requested in any
// combination; omitting a prerequisite stage assumes its artifact already
// exists from a prior run. In particular, test without build_image runs the
// smoke checks against whatever image currently exists at the coordinate,
// and aborts with the runtime's own error when there is none.
//
// When build_image is requested, the manifest for a branch/date pair is
// removed before any of its cells run, so the rebuilt manifest never carries
// stale architecture entries from an earlier aborted run. Images, containers,
// and tarballs follow the same remove-then-recreate discipline, which makes
// re-running any stage subset idempotent.
//
// Execution is strictly sequential. The apt configuration and source list
// live at fixed paths shared by every cell, and working containers are named
// per architecture only, so concurrent cells would corrupt each other's
// inputs. Any failure of an external tool halts the remaining matrix; a
// partially processed matrix is never pushed.
//
// Example usage:
//
//	result, err := build.Run(ctx, rt, build.Options{
//	    Coordinates: coords,
//	    Arches:      []string{"amd64", "arm64"},
//	    Branches:    []string{"p10"},
//	    Dates:       []repo.Date{date},
//	    Stages:      build.NewStageSet(build.StageBuildTarball, build.StageBuildImage),
//	    ProfilesDir: profilesDir,
//	    WorkDir:     cwd,
//	})
//	if err != nil {
//	    return err
//	}
package build
