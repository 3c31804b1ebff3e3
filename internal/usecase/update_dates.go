package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/gantt/internal/domain"
)

// UpdateDatesInput contains the parameters for an edit submission.
type UpdateDatesInput struct {
	ID        string      // Record ID (required)
	Mode      domain.Mode // Decides which date pair is written
	StartDate string      // YYYY-MM-DD, empty clears the date
	EndDate   string      // YYYY-MM-DD, empty clears the date
	ReadOnly  bool        // Reject the edit without contacting the source
}

// UpdateDatesOutput contains the values sent to the data source.
type UpdateDatesOutput struct {
	StartDate string // YYYY-MM-DD 00:00:00, or empty
	EndDate   string // YYYY-MM-DD 00:00:00, or empty
}

// UpdateDates validates an edit and sends it to the data source.
// Validation happens before any call, so a rejected edit never reaches the network.
type UpdateDates struct {
	source domain.DataSource
	logger domain.Logger
}

// NewUpdateDates creates a new UpdateDates use case.
func NewUpdateDates(source domain.DataSource, logger domain.Logger) *UpdateDates {
	return &UpdateDates{
		source: source,
		logger: logger,
	}
}

// Execute validates and submits the edit.
func (uc *UpdateDates) Execute(ctx context.Context, in UpdateDatesInput) (*UpdateDatesOutput, error) {
	if in.ReadOnly {
		return nil, domain.ErrReadOnly
	}
	mode := domain.ParseMode(string(in.Mode))

	start, end, err := ValidateDates(in.ID, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	out := &UpdateDatesOutput{
		StartDate: domain.FormatForUpdate(start),
		EndDate:   domain.FormatForUpdate(end),
	}

	if err := uc.source.Update(ctx, in.ID, mode, out.StartDate, out.EndDate); err != nil {
		if uc.logger != nil {
			uc.logger.Error(mode, "update", fmt.Sprintf("record %s: %v", in.ID, err))
		}
		var uf *domain.UpdateFailure
		if errors.As(err, &uf) {
			return nil, uf
		}
		return nil, &domain.UpdateFailure{Message: err.Error()}
	}

	if uc.logger != nil {
		uc.logger.Info(mode, "update", fmt.Sprintf("record %s: %s to %s", in.ID, out.StartDate, out.EndDate))
	}
	return out, nil
}

// ValidateDates checks an edit form locally. An empty date is returned as
// the zero time and clears that cell; the order check applies only when
// both dates are given.
func ValidateDates(id, startDate, endDate string) (start, end time.Time, err error) {
	if strings.TrimSpace(id) == "" {
		return start, end, &domain.ValidationError{Message: "Record ID is required."}
	}
	if strings.TrimSpace(startDate) != "" {
		start, err = domain.ParseInputDate(startDate)
		if err != nil {
			return start, end, &domain.ValidationError{Message: "Start date: " + err.Error()}
		}
	}
	if strings.TrimSpace(endDate) != "" {
		end, err = domain.ParseInputDate(endDate)
		if err != nil {
			return start, end, &domain.ValidationError{Message: "End date: " + err.Error()}
		}
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return start, end, &domain.ValidationError{Message: "The start date cannot be after the end date."}
	}
	return start, end, nil
}
