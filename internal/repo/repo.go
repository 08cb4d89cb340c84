package repo

import "fmt"

// Root URL of the archive package repository.
const RepositoryRoot = "http://ftp.altlinux.org/pub/distributions/archive"

// Maps logical architecture names to the identifiers used by the package
// repository and the image bootstrapper. The table is closed; architectures
// accepted by the CLI must all have an entry.
var archTable = map[string]string{
	"amd64":   "x86_64",
	"386":     "i586",
	"arm64":   "aarch64",
	"arm":     "armh",
	"ppc64le": "ppc64le",
}

// Returns the repository architecture identifier for a logical architecture.
//
// An architecture outside the table is a configuration error, not a runtime
// one; callers report it before any external tool is invoked.
func ArchID(arch string) (string, error) {
	id, ok := archTable[arch]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownArch, arch)
	}
	return id, nil
}

// Renders the two-line apt source list for a snapshot.
//
// Both lines point at the same branch/date archive path; the first carries
// the architecture-specific component and the second the noarch component.
func SourceList(arch, branch string, date Date) (string, error) {
	id, err := ArchID(arch)
	if err != nil {
		return "", err
	}

	base := fmt.Sprintf("rpm %s/%s/date/%s", RepositoryRoot, branch, date.Path())
	return fmt.Sprintf("%s %s classic\n%s noarch classic\n", base, id, base), nil
}

// Renders the apt configuration consumed by the bootstrapper.
//
// The configuration disables every default apt config search path and points
// apt at the single generated source list.
func AptConf(sourceListPath string) string {
	return fmt.Sprintf(`Dir::Etc::main "/dev/null";
Dir::Etc::parts "/var/empty";
Dir::Etc::SourceList "%s";
Dir::Etc::SourceParts "/var/empty";
Dir::Etc::preferences "/dev/null";
Dir::Etc::preferencesparts "/var/empty";
`, sourceListPath)
}
