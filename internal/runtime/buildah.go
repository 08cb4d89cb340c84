package runtime

import "context"

const buildahBin = "buildah"

// Removes a manifest. Best-effort: absence is not an error.
func (rt *Runtime) RemoveManifest(ctx context.Context, name string) {
	rt.discard(ctx, Invocation{
		Program: buildahBin,
		Args:    []string{"manifest", "rm", name},
	})
}

// Removes an image. Best-effort: absence is not an error.
func (rt *Runtime) RemoveImage(ctx context.Context, name string) {
	rt.discard(ctx, Invocation{
		Program: buildahBin,
		Args:    []string{"image", "rm", name},
	})
}

// Removes a working container. Best-effort: absence is not an error.
func (rt *Runtime) RemoveContainer(ctx context.Context, name string) {
	rt.discard(ctx, Invocation{
		Program: buildahBin,
		Args:    []string{"rm", name},
	})
}

// Creates an empty working container scoped to the target architecture.
func (rt *Runtime) CreateContainer(ctx context.Context, arch, name string) error {
	return rt.run(ctx, Invocation{
		Program: buildahBin,
		Args:    []string{"from", "--arch", arch, "--name", name, "scratch"},
	})
}

// Imports an archive from dir as the container's root filesystem.
func (rt *Runtime) AddArchive(ctx context.Context, container, dir, archive string) error {
	return rt.run(ctx, Invocation{
		Program: buildahBin,
		Args:    []string{"add", container, archive, "/"},
		Dir:     dir,
	})
}

// Runs a command inside the working container.
func (rt *Runtime) RunInContainer(ctx context.Context, container string, args ...string) error {
	return rt.run(ctx, Invocation{
		Program: buildahBin,
		Args:    append([]string{"run", container}, args...),
	})
}

// Runs a command inside the working container with data fed to its stdin.
func (rt *Runtime) RunInContainerWithInput(ctx context.Context, container, input string, args ...string) error {
	return rt.run(ctx, Invocation{
		Program: buildahBin,
		Args:    append([]string{"run", container}, args...),
		Input:   input,
	})
}

// Sets the container's default command.
func (rt *Runtime) SetCommand(ctx context.Context, container, command string) error {
	return rt.run(ctx, Invocation{
		Program: buildahBin,
		Args:    []string{"config", "--cmd", command, container},
	})
}

// Commits the working container as an image within a manifest.
//
// The commit removes the working container on success; commit-with-cleanup
// is a single tool call, so no separate removal follows a successful commit.
func (rt *Runtime) Commit(ctx context.Context, container, manifest, image string) error {
	return rt.run(ctx, Invocation{
		Program: buildahBin,
		Args:    []string{"commit", "--rm", "--manifest", manifest, container, image},
	})
}
