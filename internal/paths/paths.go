package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// File name of the generated apt configuration.
	aptConfFile = "apt.conf"

	// File name of the generated apt source list.
	sourceListFile = "source.list"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the apt configuration consumed by the bootstrapper.
//
// The file lives at a fixed name under the run's working directory and is
// rewritten for every cell; concurrent cells would corrupt each other.
func AptConf(workDir string) string {
	return filepath.Join(workDir, aptConfFile)
}

// Path to the apt source list referenced by the apt configuration.
func SourceList(workDir string) string {
	return filepath.Join(workDir, sourceListFile)
}

// Path to the tarball output directory for an architecture.
func OutputDir(workDir, arch string) string {
	return filepath.Join(workDir, arch)
}

// Default location of the mkimage-profiles working tree.
//
//	~/build/mkimage-profiles
func DefaultMkimageProfiles() string {
	return filepath.Join(xdg.Home, "build", "mkimage-profiles")
}
