package reconcile

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

type JobArgs struct{}

func (JobArgs) Kind() string { return "xp_reconcile" }

// Auditor runs one audit pass.
type Auditor interface {
	Run(ctx context.Context) (Report, error)
}

// Worker runs the periodic ledger/membership audit as a River job.
type Worker struct {
	river.WorkerDefaults[JobArgs]
	auditor Auditor
	log     *slog.Logger
}

func NewWorker(auditor Auditor, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	return &Worker{auditor: auditor, log: log}
}

func (w *Worker) Work(ctx context.Context, _ *river.Job[JobArgs]) error {
	report, err := w.auditor.Run(ctx)
	if err != nil {
		return err
	}
	if report.Clean() {
		w.log.Info("xp reconcile clean", "users_checked", report.UsersChecked)
		return nil
	}
	w.log.Warn("xp reconcile found inconsistencies",
		"users_checked", report.UsersChecked,
		"mismatches", len(report.Mismatches),
		"duplicate_pairs", len(report.Duplicates))
	return nil
}
