// Provides the well-known paths of a build run.
//
// The apt configuration and source list live at fixed names directly under
// the run's working directory, because the external bootstrapper is pointed
// at them by absolute path. Tarball output directories are per-architecture
// subdirectories of the same working directory. The paths are shared across
// every cell of a run, which is why runs are strictly sequential.
package paths
