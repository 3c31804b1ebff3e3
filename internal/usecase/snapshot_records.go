package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/gantt/internal/domain"
)

// SnapshotRecordsInput contains the parameters for taking a snapshot.
type SnapshotRecordsInput struct{}

// SnapshotRecordsOutput reports how many rows were saved per collection.
type SnapshotRecordsOutput struct {
	Counts map[domain.Mode]int
}

// SnapshotRecords copies both collections from a data source into a snapshot
// store. Each collection is normalized first so a broken batch is never saved.
type SnapshotRecords struct {
	source domain.DataSource
	store  domain.SnapshotStore
	logger domain.Logger
}

// NewSnapshotRecords creates a new SnapshotRecords use case.
func NewSnapshotRecords(source domain.DataSource, store domain.SnapshotStore, logger domain.Logger) *SnapshotRecords {
	return &SnapshotRecords{
		source: source,
		store:  store,
		logger: logger,
	}
}

// Execute reads every collection, then writes them all.
func (uc *SnapshotRecords) Execute(ctx context.Context, _ SnapshotRecordsInput) (*SnapshotRecordsOutput, error) {
	modes := []domain.Mode{domain.ModeTasks, domain.ModeProjects}
	rows := make(map[domain.Mode][]domain.RawRecord, len(modes))

	for _, mode := range modes {
		raws, err := uc.source.List(ctx, mode)
		if err != nil {
			return nil, &domain.FetchFailure{Mode: mode, Err: err}
		}
		if _, err := domain.NormalizeRecords(raws); err != nil {
			return nil, &domain.FetchFailure{Mode: mode, Err: err}
		}
		rows[mode] = raws
	}

	if err := uc.store.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize snapshot: %w", err)
	}

	out := &SnapshotRecordsOutput{Counts: make(map[domain.Mode]int, len(modes))}
	for _, mode := range modes {
		if err := uc.store.Replace(mode, rows[mode]); err != nil {
			return nil, fmt.Errorf("save %s: %w", mode.Display(), err)
		}
		out.Counts[mode] = len(rows[mode])
		if uc.logger != nil {
			uc.logger.Info(mode, "snapshot", fmt.Sprintf("saved %d rows", len(rows[mode])))
		}
	}
	return out, nil
}
