package batch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/unipack/internal/batch"
	"github.com/vmunix/unipack/internal/descriptor"
	"github.com/vmunix/unipack/internal/export"
	exportmocks "github.com/vmunix/unipack/internal/export/mocks"
	"github.com/vmunix/unipack/internal/history"
	"github.com/vmunix/unipack/internal/host"
	"github.com/vmunix/unipack/internal/versioninfo"
	versionmocks "github.com/vmunix/unipack/internal/versioninfo/mocks"
)

const (
	alphaID = "0d4c7a3e-1b2f-4f0a-9c55-6a1f3f0e2a01"
	betaID  = "7e9b1c22-8d3a-4c6e-b1f0-2f4e5d6c7b02"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// fixture is a project with two packages. Alpha mirrors cleanly; beta points
// at a source that does not exist, so its mirror fails.
type fixture struct {
	root    string
	out     string
	project *host.Project
	history *history.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tmp := t.TempDir()
	root := filepath.Join(tmp, "Game")
	out := filepath.Join(tmp, "out")

	writeFile(t, filepath.Join(root, "Assets", "Alpha", "Runtime", "Alpha.cs"), "class Alpha {}")

	alpha := descriptor.New("com.example.alpha")
	alpha.ID = alphaID
	alpha.DisplayName = "Alpha"
	alpha.SourcePaths = []string{"Assets/Alpha/Runtime"}
	alpha.DestinationPath = "../out/alpha"
	alpha.VersionConstantsPath = "Assets/Alpha/Runtime"
	require.NoError(t, alpha.Save(filepath.Join(root, "Assets", "Alpha", "alpha.upkg.toml")))

	beta := descriptor.New("com.example.beta")
	beta.ID = betaID
	beta.DisplayName = "Beta"
	beta.SourcePaths = []string{"Assets/Beta/Missing"}
	beta.DestinationPath = "../out/beta"
	require.NoError(t, beta.Save(filepath.Join(root, "Assets", "Beta", "beta.upkg.toml")))

	p, err := host.NewProject(root, testLogger())
	require.NoError(t, err)

	db, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &fixture{root: root, out: out, project: p, history: history.NewStore(db)}
}

func (f *fixture) driver(archive export.ArchiveWriter, generator *versioninfo.Generator) *batch.Driver {
	store := descriptor.NewStore(f.project, testLogger())
	exp := export.NewExporter(f.project, archive, export.Options{}, testLogger())
	return batch.NewDriver(store, exp, generator, f.history, testLogger())
}

func (f *fixture) steps(t *testing.T, id string) map[string]string {
	t.Helper()
	entries, err := f.history.List(history.Filter{DescriptorID: &id})
	require.NoError(t, err)
	steps := make(map[string]string)
	for _, e := range entries {
		steps[e.Step] = e.Status
	}
	return steps
}

func TestRun_AllDescriptors(t *testing.T) {
	f := newFixture(t)

	report, err := f.driver(nil, nil).Run(context.Background(), batch.ParseArgs(nil))

	var batchErr *batch.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, []string{betaID}, batchErr.IDs())
	assert.ErrorIs(t, err, export.ErrIOFailure)

	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, alphaID, report.Outcomes[0].ID)
	assert.True(t, report.Outcomes[0].Found)

	_, err = os.Stat(filepath.Join(f.out, "alpha", "Alpha.cs"))
	assert.NoError(t, err, "alpha is mirrored even though beta fails")

	assert.Equal(t, map[string]string{
		history.StepLegacy: history.StatusSkipped,
		history.StepMirror: history.StatusOK,
	}, f.steps(t, alphaID))
	assert.Equal(t, map[string]string{
		history.StepLegacy: history.StatusSkipped,
		history.StepMirror: history.StatusFailed,
	}, f.steps(t, betaID))
}

func TestRun_FailureDoesNotStopLaterPackages(t *testing.T) {
	f := newFixture(t)

	args := batch.ParseArgs([]string{"id=" + betaID + "," + alphaID})
	_, err := f.driver(nil, nil).Run(context.Background(), args)

	var batchErr *batch.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, []string{betaID}, batchErr.IDs())

	_, err = os.Stat(filepath.Join(f.out, "alpha", "package.json"))
	assert.NoError(t, err)
}

func TestRun_UnknownIDSkipped(t *testing.T) {
	f := newFixture(t)

	args := batch.ParseArgs([]string{"id=no-such-package," + strings.ToUpper(alphaID)})
	report, err := f.driver(nil, nil).Run(context.Background(), args)
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 2)
	assert.False(t, report.Outcomes[0].Found)
	assert.Empty(t, report.Outcomes[0].Steps)
	assert.True(t, report.Outcomes[1].Found)
	assert.Equal(t, "com.example.alpha", report.Outcomes[1].PackageName)

	assert.Empty(t, f.steps(t, betaID), "beta was not selected")
}

func TestRun_VersionOverride(t *testing.T) {
	f := newFixture(t)

	args := batch.ParseArgs([]string{"id=" + alphaID, "version=9.9.9"})
	_, err := f.driver(nil, nil).Run(context.Background(), args)
	require.NoError(t, err)

	manifest, err := os.ReadFile(filepath.Join(f.out, "alpha", "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `"version":"9.9.9"`)

	// The override is not saved to the descriptor file.
	d, err := descriptor.Load(filepath.Join(f.root, "Assets", "Alpha", "alpha.upkg.toml"))
	require.NoError(t, err)
	assert.Equal(t, descriptor.DefaultVersion, d.Version)
}

func TestRun_GenerateVersionConstants(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	provider := versionmocks.NewMockProvider(ctrl)
	provider.EXPECT().Branch(gomock.Any()).Return("main", nil)
	provider.EXPECT().Commit(gomock.Any()).Return("57aec574ed19746de42ffa5032358562fb041ebf", nil)

	gen := versioninfo.NewGenerator(f.project, provider, versioninfo.Options{}, testLogger())
	args := batch.ParseArgs([]string{"generateversionconstants", "version=3.1.4"})
	_, err := f.driver(nil, gen).Run(context.Background(), args)

	var batchErr *batch.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, []string{betaID}, batchErr.IDs())

	data, err := os.ReadFile(filepath.Join(f.root, "Assets", "Alpha", "Runtime", versioninfo.DefaultFilename))
	require.NoError(t, err)
	assert.Contains(t, string(data), "3.1.4")

	// The generated file lands in the mirrored source.
	_, err = os.Stat(filepath.Join(f.out, "alpha", versioninfo.DefaultFilename))
	assert.NoError(t, err)

	assert.Equal(t, history.StatusOK, f.steps(t, alphaID)[history.StepCodegen])
	assert.Equal(t, history.StatusSkipped, f.steps(t, betaID)[history.StepCodegen], "beta has no constants path")
}

func TestRun_GenerateVersionConstantsWithoutGenerator(t *testing.T) {
	f := newFixture(t)

	args := batch.ParseArgs([]string{"id=" + alphaID, "generateversionconstants=true"})
	_, err := f.driver(nil, nil).Run(context.Background(), args)

	var batchErr *batch.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, []string{alphaID}, batchErr.IDs())
	assert.Equal(t, history.StatusFailed, f.steps(t, alphaID)[history.StepCodegen])
}

func TestRun_LegacyExport(t *testing.T) {
	f := newFixture(t)
	d, err := descriptor.Load(filepath.Join(f.root, "Assets", "Alpha", "alpha.upkg.toml"))
	require.NoError(t, err)
	d.LegacyDestinationPath = "Builds"
	require.NoError(t, d.Save(d.Path()))

	ctrl := gomock.NewController(t)
	archive := exportmocks.NewMockArchiveWriter(ctrl)
	archive.EXPECT().Extension().Return("zip")
	archive.EXPECT().
		Write(gomock.Any(), f.root, gomock.Any(), filepath.Join(f.root, "Builds", "Alpha_v1.0.0.zip")).
		Return(nil)

	report, err := f.driver(archive, nil).Run(context.Background(), batch.ParseArgs([]string{"id=" + alphaID}))
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)

	steps := report.Outcomes[0].Steps
	require.Len(t, steps, 2)
	assert.Equal(t, history.StepLegacy, steps[0].Step)
	assert.Equal(t, history.StatusOK, steps[0].Status)
	assert.Equal(t, history.StepMirror, steps[1].Step)
}

func TestRun_LegacyFailureSkipsMirror(t *testing.T) {
	f := newFixture(t)
	d, err := descriptor.Load(filepath.Join(f.root, "Assets", "Alpha", "alpha.upkg.toml"))
	require.NoError(t, err)
	d.LegacyDestinationPath = "Builds"
	require.NoError(t, d.Save(d.Path()))

	ctrl := gomock.NewController(t)
	archive := exportmocks.NewMockArchiveWriter(ctrl)
	archive.EXPECT().Extension().Return("zip")
	archive.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err = f.driver(archive, nil).Run(context.Background(), batch.ParseArgs([]string{"id=" + alphaID}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), alphaID)

	steps := f.steps(t, alphaID)
	assert.Equal(t, history.StatusFailed, steps[history.StepLegacy])
	assert.NotContains(t, steps, history.StepMirror)
}

func TestRun_InvalidArgument(t *testing.T) {
	f := newFixture(t)

	_, err := f.driver(nil, nil).Run(context.Background(), batch.ParseArgs([]string{"generateversionconstants=sometimes"}))
	require.Error(t, err)
	var batchErr *batch.BatchError
	assert.False(t, errors.As(err, &batchErr))
}

func TestRun_EnumerationFailureAborts(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.root, "Assets", "Broken", "broken.upkg.toml"), "id = [")

	report, err := f.driver(nil, nil).Run(context.Background(), batch.ParseArgs(nil))
	require.Error(t, err)
	assert.Nil(t, report)
	var batchErr *batch.BatchError
	assert.False(t, errors.As(err, &batchErr))
}

func TestRun_NoDestinationsLeavesProjectUntouched(t *testing.T) {
	f := newFixture(t)

	draft := descriptor.New("com.example.draft")
	draft.SourcePaths = []string{"Assets/Draft/Runtime"}
	require.NoError(t, draft.Save(filepath.Join(f.root, "Assets", "Draft", "draft.upkg.toml")))

	report, err := f.driver(nil, nil).Run(context.Background(), batch.ParseArgs([]string{"id=" + draft.ID}))
	require.NoError(t, err, "a draft without outputs is skipped, not validated")

	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, []batch.StepResult{
		{Step: history.StepLegacy, Status: history.StatusSkipped, Error: descriptor.ErrMissingOutputPath.Error()},
		{Step: history.StepMirror, Status: history.StatusSkipped, Error: descriptor.ErrMissingOutputPath.Error()},
	}, report.Outcomes[0].Steps)

	_, err = os.Stat(filepath.Join(f.root, "Assets", "Draft", export.GeneratedDir))
	assert.True(t, os.IsNotExist(err), "no manifest is generated")
}
