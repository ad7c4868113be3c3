// Package sheetstore implements the record store contract on top of a
// hosted Google Spreadsheet, using the Sheets API for cell data and the
// Drive API for spreadsheet discovery and sharing.
package sheetstore

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/errors"
	"github.com/akkino69/crypto-scraper/pkg/logging"
	"github.com/akkino69/crypto-scraper/pkg/store"
)

// Compile-time interface checks.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Sharer = (*Store)(nil)
)

// Worksheet titles inside the spreadsheet.
const (
	Sheet2025     = "Conferences 2025"
	Sheet2026     = "Conferences 2026"
	SheetDash     = "Dashboard"
	dashStampCell = SheetDash + "!B2"
)

const spreadsheetMIME = "application/vnd.google-apps.spreadsheet"

// Store reads and writes conference data in a Google Spreadsheet.
// Construct with New, then call Ensure once to create or open the
// spreadsheet before any Load/Save.
type Store struct {
	sheets *sheets.Service
	drive  *drive.Service

	title         string
	spreadsheetID string

	now func() time.Time
}

// New creates a sheet store. title is the spreadsheet name to open or
// create. credentialsFile is a service account JSON key path; when empty,
// application default credentials are used.
func New(ctx context.Context, title, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope, drive.DriveScope))

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.NewConfigError("sheets", "failed to create Sheets client", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.NewConfigError("sheets", "failed to create Drive client", err)
	}

	return &Store{
		sheets: sheetsSvc,
		drive:  driveSvc,
		title:  title,
		now:    time.Now,
	}, nil
}

// Ensure opens the spreadsheet by title, creating it with the standard
// worksheets when it does not exist yet.
func (s *Store) Ensure(ctx context.Context) error {
	if s.spreadsheetID != "" {
		return nil
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", s.title, spreadsheetMIME)
	list, err := s.drive.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return errors.WrapAPI("drive", err)
	}
	if len(list.Files) > 0 {
		s.spreadsheetID = list.Files[0].Id
		logging.Info().Str("title", s.title).Msg("Opened existing spreadsheet")
		return nil
	}

	created, err := s.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: s.title},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: Sheet2025}},
			{Properties: &sheets.SheetProperties{Title: Sheet2026}},
			{Properties: &sheets.SheetProperties{Title: SheetDash}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return errors.WrapAPI("sheets", err)
	}
	s.spreadsheetID = created.SpreadsheetId

	// Seed the dashboard labels; B2 is rewritten after every persist.
	_, err = s.sheets.Spreadsheets.Values.Update(s.spreadsheetID, SheetDash+"!A1:B2", &sheets.ValueRange{
		Values: [][]any{
			{"Crypto Conference Scraper", ""},
			{"Last Updated:", ""},
		},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to seed dashboard sheet")
	}

	logging.Info().Str("title", s.title).Str("id", s.spreadsheetID).Msg("Created new spreadsheet")
	return nil
}

// URL returns the browser URL of the spreadsheet, or "" before Ensure.
func (s *Store) URL() string {
	if s.spreadsheetID == "" {
		return ""
	}
	return "https://docs.google.com/spreadsheets/d/" + s.spreadsheetID
}

// Load reads the 2026 worksheet into a table.
func (s *Store) Load(ctx context.Context) (*conferences.Table, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	resp, err := s.sheets.Spreadsheets.Values.Get(s.spreadsheetID, Sheet2026).Context(ctx).Do()
	if err != nil {
		return nil, errors.WrapAPI("sheets", err)
	}
	if len(resp.Values) < 2 {
		return nil, errors.ErrNoData
	}

	header := toStrings(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		rows = append(rows, toStrings(raw))
	}

	table := conferences.NewTable(header, rows)
	logging.Info().Int("rows", table.Len()).Msg("Loaded conference records from Google Sheets")
	return table, nil
}

// Save replaces the 2026 worksheet contents with the table and stamps the
// dashboard.
func (s *Store) Save(ctx context.Context, table *conferences.Table) error {
	if err := s.Ensure(ctx); err != nil {
		return err
	}

	if _, err := s.sheets.Spreadsheets.Values.Clear(s.spreadsheetID, Sheet2026, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return errors.WrapAPI("sheets", err)
	}
	if err := s.writeSheet(ctx, Sheet2026, table); err != nil {
		return err
	}
	s.stampDashboard(ctx)

	logging.Info().Int("rows", table.Len()).Msg("Saved conference records to Google Sheets")
	return nil
}

// UpdateRow rewrites a single sheet row. Sheet rows are 1-based and the
// first row is the header, so table row N lives at sheet row N+2.
func (s *Store) UpdateRow(ctx context.Context, rowIndex int, fields map[conferences.Field]string) error {
	table, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := table.SetFields(rowIndex, fields); err != nil {
		return err
	}

	row := table.Row(rowIndex)
	rng := fmt.Sprintf("%s!A%d", Sheet2026, rowIndex+2)
	_, err = s.sheets.Spreadsheets.Values.Update(s.spreadsheetID, rng, &sheets.ValueRange{
		Values: [][]any{toAnys(row)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return errors.WrapAPI("sheets", err)
	}
	s.stampDashboard(ctx)
	return nil
}

// Upload writes initial data into a worksheet (used by init to seed both
// the 2025 reference sheet and the 2026 working sheet).
func (s *Store) Upload(ctx context.Context, worksheet string, table *conferences.Table) error {
	if err := s.Ensure(ctx); err != nil {
		return err
	}
	if _, err := s.sheets.Spreadsheets.Values.Clear(s.spreadsheetID, worksheet, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return errors.WrapAPI("sheets", err)
	}
	return s.writeSheet(ctx, worksheet, table)
}

// Share grants the given email access to the spreadsheet. role is one of
// reader, writer, or owner.
func (s *Store) Share(ctx context.Context, email, role string) error {
	if err := s.Ensure(ctx); err != nil {
		return err
	}
	_, err := s.drive.Permissions.Create(s.spreadsheetID, &drive.Permission{
		Type:         "user",
		Role:         role,
		EmailAddress: email,
	}).SendNotificationEmail(false).Context(ctx).Do()
	if err != nil {
		return errors.WrapAPI("drive", err)
	}
	logging.Info().Str("email", email).Str("role", role).Msg("Shared spreadsheet")
	return nil
}

func (s *Store) writeSheet(ctx context.Context, worksheet string, table *conferences.Table) error {
	values := make([][]any, 0, table.Len()+1)
	values = append(values, toAnys(table.Header()))
	for _, row := range table.Rows() {
		values = append(values, toAnys(row))
	}

	_, err := s.sheets.Spreadsheets.Values.Update(s.spreadsheetID, worksheet+"!A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return errors.WrapAPI("sheets", err)
	}
	return nil
}

// stampDashboard records the last persist time. Best effort: a dashboard
// write failure never fails the cycle.
func (s *Store) stampDashboard(ctx context.Context) {
	_, err := s.sheets.Spreadsheets.Values.Update(s.spreadsheetID, dashStampCell, &sheets.ValueRange{
		Values: [][]any{{s.now().Format("2006-01-02 15:04:05")}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to update dashboard timestamp")
	}
}

func toStrings(raw []any) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

func toAnys(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
