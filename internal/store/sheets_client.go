package store

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheet is a Tabular backed by one tab of a Google spreadsheet.
type GoogleSheet struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewGoogleSheet(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*GoogleSheet, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service failed: %w", err)
	}
	return &GoogleSheet{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func (g *GoogleSheet) AppendRow(ctx context.Context, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	_, err := g.service.Spreadsheets.Values.
		Append(g.spreadsheetID, g.sheetName, &sheets.ValueRange{Values: [][]interface{}{cells}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row failed: %w", err)
	}
	return nil
}

func (g *GoogleSheet) ReadAllRows(ctx context.Context) ([][]string, error) {
	resp, err := g.service.Spreadsheets.Values.
		Get(g.spreadsheetID, g.sheetName).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read rows failed: %w", err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = fmt.Sprint(cell)
		}
	}
	return rows, nil
}
