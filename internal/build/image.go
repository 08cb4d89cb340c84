package build

import (
	"context"
	"strings"

	"github.com/altlinux/archivebuild/internal/paths"
	"github.com/altlinux/archivebuild/internal/repo"
	"github.com/altlinux/archivebuild/internal/runtime"
)

const (

	// Prefix of the working container name. The name is qualified by
	// architecture only, so cells sharing an architecture must not run
	// concurrently.
	containerPrefix = "archivebuild"

	// In-image path of the apt source list.
	imageSourcesPath = "/etc/apt/sources.list.d/alt.list"

	// Default resource-limit file disabled in the committed image.
	limitsPath = "/etc/security/limits.d/50-defaults.conf"

	// Default command of the committed image.
	imageCommand = `["/bin/bash"]`
)

// Turns the cell's tarball into a committed image within the manifest.
//
// Stale state of the same coordinate (image, working container) is removed
// first, a fresh container is created from scratch for the target
// architecture, the tarball becomes its root filesystem, baseline
// configuration and optional package installs are applied, and the container
// is committed into the manifest. The commit removes the working container,
// so a successful run leaks nothing.
func buildImage(ctx context.Context, rt *runtime.Runtime, opts Options, c cell, manifest, image string) error {
	container := containerPrefix + "-" + c.arch

	rt.RemoveImage(ctx, image)
	rt.RemoveContainer(ctx, container)

	if err := rt.CreateContainer(ctx, c.arch, container); err != nil {
		return err
	}

	if err := rt.AddArchive(ctx, container, paths.OutputDir(opts.WorkDir, c.arch), tarballFile); err != nil {
		return err
	}

	if err := configureImage(ctx, rt, container, c); err != nil {
		return err
	}

	if len(opts.Packages) > 0 {
		if err := installPackages(ctx, rt, container, opts.Packages); err != nil {
			return err
		}
	}

	if err := rt.SetCommand(ctx, container, imageCommand); err != nil {
		return err
	}

	return rt.Commit(ctx, container, manifest, image)
}

// Applies the fixed baseline configuration inside the working container:
// the default resource-limit file is emptied and the snapshot source list
// is written so the image installs from the same archive it was built from.
func configureImage(ctx context.Context, rt *runtime.Runtime, container string, c cell) error {
	if err := rt.RunInContainer(ctx, container, "sh", "-c", "true > "+limitsPath); err != nil {
		return err
	}

	list, err := repo.SourceList(c.arch, c.branch, c.date)
	if err != nil {
		return err
	}

	return rt.RunInContainerWithInput(ctx, container, list, "sh", "-c", "cat > "+imageSourcesPath)
}

// Installs the requested packages and purges the package caches afterwards.
//
// The purge keeps the committed image minimal; it is part of the install
// step, not an optional cleanup.
func installPackages(ctx context.Context, rt *runtime.Runtime, container string, packages []string) error {
	if err := rt.RunInContainer(ctx, container, "apt-get", "update"); err != nil {
		return err
	}

	install := append([]string{"apt-get", "install", "-y"}, packages...)
	if err := rt.RunInContainer(ctx, container, install...); err != nil {
		return err
	}

	purge := strings.Join([]string{
		"rm -f",
		"/var/cache/apt/archives/*.rpm",
		"/var/cache/apt/*.bin",
		"/var/lib/apt/lists/*.*",
	}, " ")
	return rt.RunInContainer(ctx, container, "sh", "-c", purge)
}
