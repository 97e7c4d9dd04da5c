package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vmunix/unipack/internal/descriptor"
	"github.com/vmunix/unipack/internal/export"
	"github.com/vmunix/unipack/internal/history"
	"github.com/vmunix/unipack/internal/versioninfo"
)

// Recorder stores the outcome of each export step.
type Recorder interface {
	Add(e *history.Entry) error
}

// Driver runs codegen, legacy and mirror exports for a set of descriptors.
type Driver struct {
	store     *descriptor.Store
	exporter  *export.Exporter
	generator *versioninfo.Generator
	recorder  Recorder
	log       *slog.Logger
}

// NewDriver creates a batch driver. generator and recorder may be nil.
func NewDriver(store *descriptor.Store, exporter *export.Exporter, generator *versioninfo.Generator, recorder Recorder, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		store:     store,
		exporter:  exporter,
		generator: generator,
		recorder:  recorder,
		log:       logger.With("component", "batch"),
	}
}

// StepResult is the outcome of a single step for one descriptor.
type StepResult struct {
	Step        string `json:"step"`
	Status      string `json:"status"`
	Destination string `json:"destination,omitempty"`
	Files       int    `json:"files,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Outcome collects the step results for one requested ID.
type Outcome struct {
	ID          string       `json:"id"`
	PackageName string       `json:"package_name,omitempty"`
	Found       bool         `json:"found"`
	Steps       []StepResult `json:"steps,omitempty"`
}

// Report summarizes a batch run.
type Report struct {
	Outcomes []*Outcome `json:"outcomes"`
}

// Run processes every descriptor selected by args.
//
// Unknown IDs are logged and skipped. A failure in one descriptor is logged and
// processing continues; the failed IDs are returned in a *BatchError. Errors that
// keep the batch from starting, such as a bad argument or a descriptor that
// cannot be loaded, are returned directly.
func (d *Driver) Run(ctx context.Context, args Args) (*Report, error) {
	d.log.Info("starting batch")
	d.log.Info("parsed command line args", "args", args.String())

	genConstants, err := args.GenerateVersionConstants()
	if err != nil {
		return nil, err
	}
	version := args.Version()

	all, err := d.store.All(ctx)
	if err != nil {
		return nil, err
	}
	d.log.Info("found descriptors in project", "count", len(all))

	ids := args.IDs()
	if args.Has(KeyID) {
		d.log.Info("using descriptors matching the id argument", "ids", ids)
	} else {
		d.log.Info("using all descriptors in project")
		for _, desc := range all {
			ids = append(ids, desc.ID)
		}
	}

	report := &Report{}
	var failed []Failure
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		out := &Outcome{ID: id}
		report.Outcomes = append(report.Outcomes, out)

		desc := d.store.Find(all, id)
		if desc == nil {
			if hint := d.store.Suggest(all, id); hint != "" {
				d.log.Warn("could not find a package for id, skipping it", "id", id, "suggestion", hint)
			} else {
				d.log.Warn("could not find a package for id, skipping it", "id", id)
			}
			continue
		}
		out.Found = true
		out.PackageName = desc.PackageName

		log := d.log.With("package", desc.PackageName, "id", desc.ID)
		log.Info("package found")

		if version != "" {
			desc.Version = version
		}

		if err := d.process(ctx, desc, genConstants, out); err != nil {
			log.Error("package failed", "error", err)
			failed = append(failed, Failure{ID: desc.ID, Err: err})
		}
	}

	d.log.Info("batch complete", "packages", len(report.Outcomes), "failed", len(failed))
	if len(failed) > 0 {
		return report, &BatchError{Failed: failed}
	}
	return report, nil
}

// process runs the steps for one descriptor, stopping at the first failure.
func (d *Driver) process(ctx context.Context, desc *descriptor.Descriptor, genConstants bool, out *Outcome) error {
	if genConstants {
		if err := d.codegen(ctx, desc, out); err != nil {
			return err
		}
	}

	res, err := d.exporter.ExportLegacy(ctx, desc)
	d.record(desc, history.StepLegacy, res, err, out)
	if err != nil {
		return fmt.Errorf("legacy: %w", err)
	}

	if desc.DestinationPath == "" {
		d.log.Info("skipping package source, no output path set", "package", desc.PackageName, "id", desc.ID)
		d.record(desc, history.StepMirror, &export.Result{Skipped: true, Reason: descriptor.ErrMissingOutputPath}, nil, out)
		return nil
	}

	res, err = d.exporter.Mirror(ctx, desc)
	d.record(desc, history.StepMirror, res, err, out)
	if err != nil {
		return fmt.Errorf("mirror: %w", err)
	}
	return nil
}

func (d *Driver) codegen(ctx context.Context, desc *descriptor.Descriptor, out *Outcome) error {
	if d.generator == nil {
		err := errors.New("version constants generation is not configured")
		d.record(desc, history.StepCodegen, nil, err, out)
		return fmt.Errorf("codegen: %w", err)
	}

	path, err := d.generator.Generate(ctx, desc)
	switch {
	case errors.Is(err, descriptor.ErrMissingOutputPath):
		d.record(desc, history.StepCodegen, &export.Result{Skipped: true, Reason: err}, nil, out)
		return nil
	case err != nil:
		d.record(desc, history.StepCodegen, nil, err, out)
		return fmt.Errorf("codegen: %w", err)
	}
	d.record(desc, history.StepCodegen, &export.Result{Destination: path, Files: 1}, nil, out)
	return nil
}

// record appends a step result to out and stores it in the history, if enabled.
func (d *Driver) record(desc *descriptor.Descriptor, step string, res *export.Result, stepErr error, out *Outcome) {
	entry := &history.Entry{
		DescriptorID: desc.ID,
		PackageName:  desc.PackageName,
		Version:      desc.Version,
		Step:         step,
		Status:       history.StatusOK,
	}
	switch {
	case stepErr != nil:
		entry.Status = history.StatusFailed
		entry.Error = stepErr.Error()
	case res != nil && res.Skipped:
		entry.Status = history.StatusSkipped
		if res.Reason != nil {
			entry.Error = res.Reason.Error()
		}
	case res != nil:
		entry.Destination = res.Destination
		entry.Files = res.Files
		entry.Bytes = res.Bytes
	}

	out.Steps = append(out.Steps, StepResult{
		Step:        step,
		Status:      entry.Status,
		Destination: entry.Destination,
		Files:       entry.Files,
		Error:       entry.Error,
	})

	if d.recorder == nil {
		return
	}
	if err := d.recorder.Add(entry); err != nil {
		d.log.Warn("failed to record history", "package", desc.PackageName, "id", desc.ID, "step", step, "error", err)
	}
}
