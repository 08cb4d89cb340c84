// Package runtime invokes the external build tools as subprocesses.
//
// A [Runtime] wraps the three tools the pipeline orchestrates: make (driving
// the mkimage-profiles bootstrapper), buildah (container and manifest
// construction), and podman (smoke tests and manifest push). Every operation
// is a single synchronous subprocess invocation; the tools' own stdout and
// stderr stream to the console so their diagnostics are the user-visible
// output, and this layer adds no retry or translation.
//
// Invocations come in two families. Fatal operations return a wrapped
// [ErrExternalTool] on any nonzero exit; the caller aborts the run. The
// removal operations (RemoveManifest, RemoveImage, RemoveContainer) are
// best-effort: absence of the target is the expected common case, so their
// output is suppressed and failures are logged at debug level only.
//
// Example usage:
//
//	rt := runtime.New()
//
//	rt.RemoveContainer(ctx, "archivebuild-amd64")
//	if err := rt.CreateContainer(ctx, "amd64", "archivebuild-amd64"); err != nil {
//	    return err
//	}
//	if err := rt.Commit(ctx, "archivebuild-amd64", manifest, image); err != nil {
//	    return err
//	}
package runtime
