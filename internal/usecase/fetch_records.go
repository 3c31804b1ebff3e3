package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/gantt/internal/domain"
)

// FetchRecordsInput contains the parameters for fetching records.
type FetchRecordsInput struct {
	Mode domain.Mode // Which collection to load
}

// FetchRecordsOutput contains the normalized collection.
type FetchRecordsOutput struct {
	Records []*domain.Record // Full collection, never nil on success
	Mode    domain.Mode      // Mode the records belong to
}

// FetchRecords loads raw rows from the data source and normalizes them.
// Any failure, including one malformed row, yields a *domain.FetchFailure.
type FetchRecords struct {
	source domain.DataSource
	logger domain.Logger
}

// NewFetchRecords creates a new FetchRecords use case.
func NewFetchRecords(source domain.DataSource, logger domain.Logger) *FetchRecords {
	return &FetchRecords{
		source: source,
		logger: logger,
	}
}

// Execute fetches and normalizes the collection for in.Mode.
func (uc *FetchRecords) Execute(ctx context.Context, in FetchRecordsInput) (*FetchRecordsOutput, error) {
	mode := domain.ParseMode(string(in.Mode))

	raws, err := uc.source.List(ctx, mode)
	if err != nil {
		uc.logError(mode, "list", err)
		return nil, &domain.FetchFailure{Mode: mode, Err: err}
	}

	records, err := domain.NormalizeRecords(raws)
	if err != nil {
		uc.logError(mode, "normalize", err)
		return nil, &domain.FetchFailure{Mode: mode, Err: err}
	}

	if uc.logger != nil {
		uc.logger.Debug(mode, "fetch", fmt.Sprintf("loaded %d records", len(records)))
	}
	return &FetchRecordsOutput{Records: records, Mode: mode}, nil
}

func (uc *FetchRecords) logError(mode domain.Mode, stage string, err error) {
	if uc.logger == nil {
		return
	}
	uc.logger.Error(mode, "fetch", fmt.Sprintf("%s failed: %v", stage, err))
}
