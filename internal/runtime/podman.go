package runtime

import "context"

const podmanBin = "podman"

// Runs a command in an ephemeral container of the given image.
//
// The container is removed when the command exits. Used by the verifier to
// run smoke checks against a committed image.
func (rt *Runtime) RunImage(ctx context.Context, image string, args ...string) error {
	return rt.run(ctx, Invocation{
		Program: podmanBin,
		Args:    append([]string{"run", "--rm", image}, args...),
	})
}

// Pushes a manifest and its images to the registry it is named for.
func (rt *Runtime) PushManifest(ctx context.Context, manifest string) error {
	return rt.run(ctx, Invocation{
		Program: podmanBin,
		Args:    []string{"manifest", "push", manifest, "docker://" + manifest},
	})
}

// Reclaims all local container, image, and build cache state.
//
// Destructive and irreversible; intended only as end-of-run housekeeping.
func (rt *Runtime) Prune(ctx context.Context) error {
	return rt.run(ctx, Invocation{
		Program: podmanBin,
		Args:    []string{"system", "prune", "-af"},
	})
}
