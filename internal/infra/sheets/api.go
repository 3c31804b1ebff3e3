package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// APIValues implements Values with the Google Sheets v4 service.
type APIValues struct {
	srv *sheetsapi.Service
}

// NewAPIValues wraps an existing Sheets service.
func NewAPIValues(srv *sheetsapi.Service) *APIValues {
	return &APIValues{srv: srv}
}

// NewAPIValuesFromCredentials authenticates with a service account key file.
// ctx must outlive the returned value; it scopes token refreshes.
func NewAPIValuesFromCredentials(ctx context.Context, credentialsFile string) (*APIValues, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", credentialsFile, err)
	}

	conf, err := google.JWTConfigFromJSON(b, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file: %w", err)
	}

	srv, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return NewAPIValues(srv), nil
}

// Get reads every cell of sheet as formatted text. The API omits trailing
// empty cells, so every row is padded to the width of the widest one.
func (v *APIValues) Get(ctx context.Context, spreadsheetID, sheet string) ([][]string, error) {
	resp, err := v.srv.Spreadsheets.Values.Get(spreadsheetID, sheetRef(sheet)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	width := 0
	for _, row := range resp.Values {
		width = max(width, len(row))
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, width)
		for j, c := range row {
			if c != nil {
				cells[j] = fmt.Sprint(c)
			}
		}
		rows[i] = cells
	}
	return rows, nil
}

// BatchUpdate writes all updates in one request with USER_ENTERED input.
func (v *APIValues) BatchUpdate(ctx context.Context, spreadsheetID string, updates []CellUpdate) error {
	data := make([]*sheetsapi.ValueRange, 0, len(updates))
	for _, u := range updates {
		data = append(data, &sheetsapi.ValueRange{
			Range:  u.Range,
			Values: [][]interface{}{{u.Value}},
		})
	}

	_, err := v.srv.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}).Context(ctx).Do()
	return err
}

var _ Values = (*APIValues)(nil)
