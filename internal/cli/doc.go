// Parses flags and configures logging for the archivebuild tool.
//
// The tool accepts the following global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	    --debug     Enable debug output.
//
// The build subcommand selects the matrix: registry coordinates, snapshot
// dates (required), architectures, branches, and stages, each with a skip
// list subtracted from the selection after parsing. Architecture, branch,
// and stage values come from closed sets enforced at parse time. Flags
// override build-time defaults set via linker flags. After parsing, the
// global logger is reconfigured to reflect the final level before the run
// starts.
package cli
