package build

import (
	"context"
	"fmt"
	"os"

	"github.com/altlinux/archivebuild/internal/paths"
	"github.com/altlinux/archivebuild/internal/repo"
	"github.com/altlinux/archivebuild/internal/runtime"
)

// Bootstraps the root filesystem tarball for one cell.
//
// Writes the apt configuration and source list the bootstrapper consumes,
// ensures the per-architecture output directory exists, and invokes the
// mkimage-profiles tree. Re-running overwrites the same tarball path.
func buildTarball(ctx context.Context, rt *runtime.Runtime, opts Options, c cell) error {
	sourceList := paths.SourceList(opts.WorkDir)
	aptConf := paths.AptConf(opts.WorkDir)

	list, err := repo.SourceList(c.arch, c.branch, c.date)
	if err != nil {
		return err
	}

	if err := os.WriteFile(sourceList, []byte(list), paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	if err := os.WriteFile(aptConf, []byte(repo.AptConf(sourceList)), paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	outDir := paths.OutputDir(opts.WorkDir, c.arch)
	if err := os.MkdirAll(outDir, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	archID, err := repo.ArchID(c.arch)
	if err != nil {
		return err
	}

	return rt.Mkimage(ctx, runtime.MkimageOptions{
		ProfilesDir: opts.ProfilesDir,
		AptConf:     aptConf,
		ArchID:      archID,
		Branch:      c.branch,
		OutDir:      outDir,
		OutFile:     tarballFile,
	})
}
