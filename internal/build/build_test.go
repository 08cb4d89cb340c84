package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/altlinux/archivebuild/internal/repo"
	"github.com/altlinux/archivebuild/internal/runtime"
)

// Records invocations instead of spawning subprocesses. When failOn is
// non-empty, the first invocation whose command line contains it fails.
type fakeInvoker struct {
	calls  []runtime.Invocation
	failOn string
}

func (f *fakeInvoker) Invoke(ctx context.Context, inv runtime.Invocation) (int, error) {
	f.calls = append(f.calls, inv)
	if f.failOn != "" && !inv.Silent && strings.Contains(commandLine(inv), f.failOn) {
		return 1, errors.New("exit status 1")
	}
	return 0, nil
}

// Renders an invocation as a single command line for assertions.
func commandLine(inv runtime.Invocation) string {
	return inv.Program + " " + strings.Join(inv.Args, " ")
}

func (f *fakeInvoker) commandLines() []string {
	lines := make([]string, 0, len(f.calls))
	for _, inv := range f.calls {
		lines = append(lines, commandLine(inv))
	}
	return lines
}

func (f *fakeInvoker) count(substr string) int {
	n := 0
	for _, line := range f.commandLines() {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func mustDate(t *testing.T, s string) repo.Date {
	t.Helper()
	date, err := repo.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return date
}

func testOptions(t *testing.T, stages StageSet) Options {
	t.Helper()
	return Options{
		Coordinates: repo.Coordinates{
			Registry:     "registry.altlinux.org",
			Organization: "alt",
			Name:         "archive",
		},
		Arches:      []string{"amd64"},
		Branches:    []string{"p10"},
		Dates:       []repo.Date{mustDate(t, "2024-01-15")},
		Stages:      stages,
		ProfilesDir: "/mkp",
		WorkDir:     t.TempDir(),
	}
}

func TestRunExampleScenario(t *testing.T) {
	fake := &fakeInvoker{}
	opts := testOptions(t, NewStageSet(StageBuildTarball, StageBuildImage))

	result, err := Run(context.Background(), runtime.NewWithInvoker(fake), opts)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.Cells != 1 {
		t.Fatalf("Cells = %d, want 1", result.Cells)
	}

	manifest := "registry.altlinux.org/alt/archive:p10-2024-01-15"
	image := manifest + "-amd64"
	outDir := filepath.Join(opts.WorkDir, "amd64")

	want := []string{
		"buildah manifest rm " + manifest,
		"make APTCONF=" + filepath.Join(opts.WorkDir, "apt.conf") +
			" ARCH=x86_64 BRANCH=p10 IMAGE_OUTDIR=" + outDir +
			" IMAGE_OUTFILE=alt.tar.xz ve/docker.tar.xz",
		"buildah image rm " + image,
		"buildah rm archivebuild-amd64",
		"buildah from --arch amd64 --name archivebuild-amd64 scratch",
		"buildah add archivebuild-amd64 alt.tar.xz /",
		"buildah run archivebuild-amd64 sh -c true > /etc/security/limits.d/50-defaults.conf",
		"buildah run archivebuild-amd64 sh -c cat > /etc/apt/sources.list.d/alt.list",
		`buildah config --cmd ["/bin/bash"] archivebuild-amd64`,
		"buildah commit --rm --manifest " + manifest + " archivebuild-amd64 " + image,
	}
	if got := fake.commandLines(); !slices.Equal(got, want) {
		t.Fatalf("command lines =\n%s\nwant\n%s",
			strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	// The bootstrapper runs in the profiles tree, the archive import in the
	// per-architecture output directory.
	if dir := fake.calls[1].Dir; dir != "/mkp" {
		t.Errorf("make dir = %q, want /mkp", dir)
	}
	if dir := fake.calls[5].Dir; dir != outDir {
		t.Errorf("add dir = %q, want %q", dir, outDir)
	}

	// The in-container source list is fed via stdin and matches what the
	// tarball stage wrote to disk.
	wantList := "rpm http://ftp.altlinux.org/pub/distributions/archive/p10/date/2024/01/15 x86_64 classic\n" +
		"rpm http://ftp.altlinux.org/pub/distributions/archive/p10/date/2024/01/15 noarch classic\n"
	if input := fake.calls[7].Input; input != wantList {
		t.Errorf("source list input =\n%q\nwant\n%q", input, wantList)
	}

	onDisk, err := os.ReadFile(filepath.Join(opts.WorkDir, "source.list"))
	if err != nil {
		t.Fatalf("reading source.list: %v", err)
	}
	if string(onDisk) != wantList {
		t.Errorf("source.list on disk =\n%q\nwant\n%q", onDisk, wantList)
	}

	aptConf, err := os.ReadFile(filepath.Join(opts.WorkDir, "apt.conf"))
	if err != nil {
		t.Fatalf("reading apt.conf: %v", err)
	}
	wantDirective := `Dir::Etc::SourceList "` + filepath.Join(opts.WorkDir, "source.list") + `";`
	if !strings.Contains(string(aptConf), wantDirective) {
		t.Errorf("apt.conf missing %q:\n%s", wantDirective, aptConf)
	}
}

func TestRunAllStagesOrder(t *testing.T) {
	fake := &fakeInvoker{}
	opts := testOptions(t, NewStageSet(StageClean, StagePush, StageTest, StageBuildImage, StageBuildTarball))

	if _, err := Run(context.Background(), runtime.NewWithInvoker(fake), opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	lines := fake.commandLines()

	// Regardless of the order stages were requested in, the pipeline runs
	// tarball, image, test, push, clean.
	landmarks := []string{
		"make APTCONF=",
		"buildah commit",
		"podman run --rm",
		"podman manifest push",
		"podman system prune -af",
	}
	last := -1
	for _, landmark := range landmarks {
		idx := slices.IndexFunc(lines, func(line string) bool {
			return strings.Contains(line, landmark)
		})
		if idx < 0 {
			t.Fatalf("missing invocation %q in:\n%s", landmark, strings.Join(lines, "\n"))
		}
		if idx <= last {
			t.Fatalf("invocation %q out of order in:\n%s", landmark, strings.Join(lines, "\n"))
		}
		last = idx
	}

	if got := fake.count("podman system prune"); got != 1 {
		t.Fatalf("prune ran %d times, want 1", got)
	}
	if !strings.Contains(lines[len(lines)-1], "podman system prune") {
		t.Fatal("prune is not the final invocation")
	}
}

func TestManifestResetOnlyWhenBuildImageRequested(t *testing.T) {
	tests := []struct {
		name      string
		stages    StageSet
		wantReset int
	}{
		{name: "build_image requested", stages: NewStageSet(StageBuildImage), wantReset: 1},
		{name: "tarball only", stages: NewStageSet(StageBuildTarball), wantReset: 0},
		{name: "test only", stages: NewStageSet(StageTest), wantReset: 0},
		{name: "push only", stages: NewStageSet(StagePush), wantReset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeInvoker{}
			opts := testOptions(t, tt.stages)

			if _, err := Run(context.Background(), runtime.NewWithInvoker(fake), opts); err != nil {
				t.Fatalf("Run() error: %v", err)
			}

			if got := fake.count("buildah manifest rm"); got != tt.wantReset {
				t.Fatalf("manifest rm ran %d times, want %d", got, tt.wantReset)
			}
			if tt.wantReset == 1 && !strings.Contains(fake.commandLines()[0], "buildah manifest rm") {
				t.Fatal("manifest reset did not precede the cells")
			}
		})
	}
}

func TestTestStageRunsAgainstExistingImage(t *testing.T) {
	fake := &fakeInvoker{}
	opts := testOptions(t, NewStageSet(StageTest))

	if _, err := Run(context.Background(), runtime.NewWithInvoker(fake), opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// No build stages requested: verification targets whatever image exists
	// at the coordinate, with no implicit build dependency.
	image := "registry.altlinux.org/alt/archive:p10-2024-01-15-amd64"
	want := []string{
		"podman run --rm " + image + " grep -q p10 /etc/apt/sources.list.d/alt.list",
		"podman run --rm " + image + " grep -q x86_64 /etc/apt/sources.list.d/alt.list",
		"podman run --rm " + image + " grep -q 2024/01/15 /etc/apt/sources.list.d/alt.list",
		"podman run --rm " + image + " sh -c apt-get update && apt-get install -y ncdu",
	}
	if got := fake.commandLines(); !slices.Equal(got, want) {
		t.Fatalf("command lines =\n%s\nwant\n%s",
			strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestPushOncePerBranchDatePair(t *testing.T) {
	fake := &fakeInvoker{}
	opts := testOptions(t, NewStageSet(StageBuildImage, StagePush))
	opts.Arches = []string{"amd64", "arm64"}
	opts.Dates = []repo.Date{mustDate(t, "2024-01-15"), mustDate(t, "2024-02-20")}

	result, err := Run(context.Background(), runtime.NewWithInvoker(fake), opts)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Cells != 4 {
		t.Fatalf("Cells = %d, want 4", result.Cells)
	}
	if result.Pushed != 2 {
		t.Fatalf("Pushed = %d, want 2", result.Pushed)
	}
	if got := fake.count("podman manifest push"); got != 2 {
		t.Fatalf("push ran %d times, want 2", got)
	}

	// Each push follows the commits of both architectures for its pair.
	lines := fake.commandLines()
	for _, date := range []string{"2024-01-15", "2024-02-20"} {
		pushIdx := slices.IndexFunc(lines, func(line string) bool {
			return strings.Contains(line, "manifest push") && strings.Contains(line, date)
		})
		for _, arch := range []string{"amd64", "arm64"} {
			commitIdx := slices.IndexFunc(lines, func(line string) bool {
				return strings.Contains(line, "commit") && strings.Contains(line, date+"-"+arch)
			})
			if commitIdx < 0 || pushIdx < commitIdx {
				t.Fatalf("push for %s precedes commit for %s:\n%s", date, arch, strings.Join(lines, "\n"))
			}
		}
	}
}

func TestCleanRunsOnceAfterWholeMatrix(t *testing.T) {
	fake := &fakeInvoker{}
	opts := testOptions(t, NewStageSet(StageBuildTarball, StageClean))
	opts.Arches = []string{"amd64", "arm64"}
	opts.Branches = []string{"p10", "sisyphus"}

	if _, err := Run(context.Background(), runtime.NewWithInvoker(fake), opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if got := fake.count("podman system prune"); got != 1 {
		t.Fatalf("prune ran %d times, want 1", got)
	}
	lines := fake.commandLines()
	if !strings.Contains(lines[len(lines)-1], "podman system prune") {
		t.Fatal("prune did not run after the matrix")
	}
}

func TestFailFastHaltsMatrix(t *testing.T) {
	fake := &fakeInvoker{failOn: "buildah from"}
	opts := testOptions(t, NewStageSet(StageBuildImage, StagePush, StageClean))
	opts.Arches = []string{"amd64", "arm64"}

	_, err := Run(context.Background(), runtime.NewWithInvoker(fake), opts)
	if !errors.Is(err, ErrBuild) {
		t.Fatalf("error = %v, want ErrBuild", err)
	}
	if !errors.Is(err, runtime.ErrExternalTool) {
		t.Fatalf("error = %v, want ErrExternalTool in chain", err)
	}

	// The failing call is the last one: no further cells, no push, no clean.
	lines := fake.commandLines()
	if !strings.Contains(lines[len(lines)-1], "buildah from") {
		t.Fatalf("invocations continued past the failure:\n%s", strings.Join(lines, "\n"))
	}
	if fake.count("arm64") != 0 {
		t.Fatal("second cell ran after the first cell failed")
	}
	if fake.count("manifest push") != 0 || fake.count("system prune") != 0 {
		t.Fatal("push or clean ran after a failure")
	}
}

func TestPackagesInstalled(t *testing.T) {
	fake := &fakeInvoker{}
	opts := testOptions(t, NewStageSet(StageBuildImage))
	opts.Packages = []string{"vim-console", "git"}

	if _, err := Run(context.Background(), runtime.NewWithInvoker(fake), opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	lines := fake.commandLines()
	landmarks := []string{
		"buildah run archivebuild-amd64 apt-get update",
		"buildah run archivebuild-amd64 apt-get install -y vim-console git",
		"buildah run archivebuild-amd64 sh -c rm -f /var/cache/apt/archives/*.rpm /var/cache/apt/*.bin /var/lib/apt/lists/*.*",
	}
	last := -1
	for _, landmark := range landmarks {
		idx := slices.Index(lines, landmark)
		if idx < 0 {
			t.Fatalf("missing invocation %q in:\n%s", landmark, strings.Join(lines, "\n"))
		}
		if idx <= last {
			t.Fatalf("invocation %q out of order", landmark)
		}
		last = idx
	}

	// The cache purge precedes the commit.
	commitIdx := slices.IndexFunc(lines, func(line string) bool {
		return strings.Contains(line, "buildah commit")
	})
	if commitIdx < last {
		t.Fatal("commit ran before the package cache purge")
	}
}

func TestNoPackagesSkipsInstall(t *testing.T) {
	fake := &fakeInvoker{}
	opts := testOptions(t, NewStageSet(StageBuildImage))

	if _, err := Run(context.Background(), runtime.NewWithInvoker(fake), opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if got := fake.count("apt-get"); got != 0 {
		t.Fatalf("apt-get ran %d times without a package list", got)
	}
}

func TestRerunRepeatsRemoveThenRecreate(t *testing.T) {
	opts := testOptions(t, NewStageSet(StageBuildTarball, StageBuildImage))

	first := &fakeInvoker{}
	if _, err := Run(context.Background(), runtime.NewWithInvoker(first), opts); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}

	second := &fakeInvoker{}
	if _, err := Run(context.Background(), runtime.NewWithInvoker(second), opts); err != nil {
		t.Fatalf("second Run() error: %v", err)
	}

	// Idempotence: a re-run issues exactly the same removal-then-recreate
	// sequence, so the final image and manifest state cannot differ.
	if !slices.Equal(first.commandLines(), second.commandLines()) {
		t.Fatal("re-run produced a different invocation sequence")
	}
}
