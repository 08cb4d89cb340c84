package runtime

import "context"

// Make target that produces the container root filesystem tarball.
const mkimageTarget = "ve/docker.tar.xz"

// Parameters for one bootstrapper invocation.
type MkimageOptions struct {
	ProfilesDir string // mkimage-profiles working tree (cwd for make).
	AptConf     string // Absolute path to the generated apt configuration.
	ArchID      string // Repository architecture identifier (e.g., "x86_64").
	Branch      string // Distribution release (e.g., "p10").
	OutDir      string // Directory the tarball is written to.
	OutFile     string // Tarball file name (e.g., "alt.tar.xz").
}

// Bootstraps a root filesystem tarball via the mkimage-profiles tree.
//
// Runs make in the profiles directory with per-cell variables; on success
// the named tarball exists in the output directory. A broken bootstrap is
// fatal for the whole run.
func (rt *Runtime) Mkimage(ctx context.Context, opts MkimageOptions) error {
	return rt.run(ctx, Invocation{
		Program: "make",
		Args: []string{
			"APTCONF=" + opts.AptConf,
			"ARCH=" + opts.ArchID,
			"BRANCH=" + opts.Branch,
			"IMAGE_OUTDIR=" + opts.OutDir,
			"IMAGE_OUTFILE=" + opts.OutFile,
			mkimageTarget,
		},
		Dir: opts.ProfilesDir,
	})
}
