package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/executor"
)

// Describes one external command invocation.
type Invocation struct {
	Program string   // Binary to run (e.g., "buildah").
	Args    []string // Command arguments.
	Dir     string   // Working directory; empty means the process cwd.
	Input   string   // Data fed to the command's stdin.
	Silent  bool     // Suppress console output (best-effort removals).
}

// Runs external commands on behalf of the runtime.
//
// The production implementation spawns real subprocesses; tests substitute
// a recording implementation via [NewWithInvoker].
type Invoker interface {
	Invoke(ctx context.Context, inv Invocation) (int, error)
}

// Invokes the external build tools.
type Runtime struct {
	invoker Invoker
}

// Creates a runtime that spawns real subprocesses.
func New() *Runtime {
	return &Runtime{invoker: execInvoker{}}
}

// Creates a runtime backed by a custom invoker.
func NewWithInvoker(inv Invoker) *Runtime {
	return &Runtime{invoker: inv}
}

// Spawns subprocesses with the command executor.
type execInvoker struct{}

// Runs the invocation as a subprocess.
//
// Unless the invocation is silent, the tool's stdout and stderr stream to
// the console; its diagnostics are the user-visible output on failure.
func (execInvoker) Invoke(ctx context.Context, inv Invocation) (int, error) {
	opts := []executor.Option{
		executor.WithConsoleRedirect(!inv.Silent),
	}
	if inv.Dir != "" {
		opts = append(opts, executor.WithWorkingDir(inv.Dir))
	}

	result, err := executor.New(inv.Program, inv.Args...).ExecuteWithInput(ctx, inv.Input, opts...)
	if result == nil {
		return -1, err
	}
	return result.ExitCode, err
}

// Runs an invocation, treating any failure (spawn error or nonzero exit)
// as fatal.
func (rt *Runtime) run(ctx context.Context, inv Invocation) error {
	slog.Debug("running", "program", inv.Program, "args", inv.Args)

	if _, err := rt.invoker.Invoke(ctx, inv); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExternalTool, inv.Program, err)
	}
	return nil
}

// Runs a best-effort invocation whose failure is expected and ignorable.
//
// Output is suppressed and errors are discarded; removal of something that
// does not exist is the common case, not an error.
func (rt *Runtime) discard(ctx context.Context, inv Invocation) {
	inv.Silent = true

	if code, err := rt.invoker.Invoke(ctx, inv); err != nil {
		slog.Debug("ignoring expected failure",
			"program", inv.Program,
			"args", inv.Args,
			"code", code,
		)
	}
}
