package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/altlinux/archivebuild/internal/build"
	"github.com/altlinux/archivebuild/internal/repo"
	"github.com/altlinux/archivebuild/internal/runtime"
)

// Represents the 'archivebuild build' command.
type BuildCmd struct {
	Registry     string `short:"r" default:"registry.altlinux.org" help:"Registry to address images and manifests in."`
	Organization string `short:"o" required:"" help:"Registry organization."`
	Name         string `short:"n" default:"archive" help:"Image name."`

	Dates []string `short:"d" required:"" help:"Snapshot dates to build (YYYY-MM-DD)."`

	Arches     []string `short:"a" default:"amd64,arm64" enum:"amd64,386,arm64,arm,ppc64le" help:"Architectures to build."`
	SkipArches []string `help:"Architectures to exclude from the selection."`

	Branches     []string `short:"b" default:"p10,sisyphus" enum:"p9,p10,sisyphus" help:"Branches to build."`
	SkipBranches []string `help:"Branches to exclude from the selection."`

	Stages     []string `default:"build_tarball,build_image,test,push,clean" enum:"build_tarball,build_image,test,push,clean" help:"Stages to run."`
	SkipStages []string `help:"Stages to exclude from the selection."`

	Packages []string `help:"Packages to install on top of the base system."`

	MkimageProfilesDir string `default:"${mkimage_dir}" help:"Path to the mkimage-profiles working tree."`
}

// Executes the build command.
//
// Resolves the effective matrix (selection minus skip lists), validates the
// dates and every registry reference the run will construct, then drives the
// build matrix to completion. Validation failures are configuration errors
// reported before any external tool is invoked.
func (c *BuildCmd) Run(ctx context.Context) error {
	arches := subtract(c.Arches, c.SkipArches)
	branches := subtract(c.Branches, c.SkipBranches)
	stages := subtract(c.Stages, c.SkipStages)

	dates := make([]repo.Date, 0, len(c.Dates))
	for _, raw := range c.Dates {
		date, err := repo.ParseDate(raw)
		if err != nil {
			return err
		}
		dates = append(dates, date)
	}

	coords := repo.Coordinates{
		Registry:     c.Registry,
		Organization: c.Organization,
		Name:         c.Name,
	}
	if err := coords.Validate(branches, dates, arches); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	_, err = build.Run(ctx, runtime.New(), build.Options{
		Coordinates: coords,
		Arches:      arches,
		Branches:    branches,
		Dates:       dates,
		Stages:      build.ParseStageSet(stages),
		Packages:    c.Packages,
		ProfilesDir: c.MkimageProfilesDir,
		WorkDir:     workDir,
	})
	return err
}
