// Package sheets implementa o armazenamento tabular sobre o Google Sheets.
// Uma tabela é uma planilha (localizada pelo ID configurado ou pelo nome no Drive) e cada aba é uma seção.
package sheets

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/config"
	"github.com/vfg2006/desossa-api/internal/domain"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Store acessa planilhas do Google Sheets
type Store struct {
	sheets   *gsheets.Service
	drive    *drive.Service
	tableIDs map[string]string
}

// NewStore cria o cliente do Sheets. Sem opções explícitas, usa o arquivo de credenciais configurado.
func NewStore(ctx context.Context, cfg config.Sheets, opts ...option.ClientOption) (*Store, error) {
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(gsheets.SpreadsheetsScope, drive.DriveReadonlyScope),
		}
	}

	sheetsService, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar cliente do Google Sheets")
	}

	var driveService *drive.Service
	if cfg.LookupByName {
		driveService, err = drive.NewService(ctx, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao criar cliente do Google Drive")
		}
	}

	return &Store{
		sheets:   sheetsService,
		drive:    driveService,
		tableIDs: cfg.TableIDs,
	}, nil
}

// Verify interface compliance
var _ tabular.Store = (*Store)(nil)

func (s *Store) OpenTable(ctx context.Context, name string) (tabular.Table, error) {
	id, err := s.resolveID(ctx, name)
	if err != nil {
		return nil, err
	}

	spreadsheet, err := s.sheets.Spreadsheets.Get(id).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewTableNotFoundError(name)
		}
		return nil, domain.NewStoreUnavailableError(name, "", errors.Wrap(err, "erro ao consultar planilha"))
	}

	titles := make(map[string]bool, len(spreadsheet.Sheets))
	for _, sh := range spreadsheet.Sheets {
		if sh.Properties != nil {
			titles[sh.Properties.Title] = true
		}
	}

	return &table{store: s, name: name, id: id, titles: titles}, nil
}

// resolveID usa o ID configurado para a tabela ou procura a planilha pelo nome no Drive
func (s *Store) resolveID(ctx context.Context, name string) (string, error) {
	if id, ok := s.tableIDs[name]; ok && id != "" {
		return id, nil
	}

	if s.drive == nil {
		return "", domain.NewTableNotFoundError(name)
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", "\\'"), spreadsheetMimeType)

	list, err := s.drive.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", domain.NewStoreUnavailableError(name, "", errors.Wrap(err, "erro ao procurar planilha no Drive"))
	}

	if len(list.Files) == 0 {
		return "", domain.NewTableNotFoundError(name)
	}

	logrus.WithFields(logrus.Fields{
		"table": name,
		"id":    list.Files[0].Id,
	}).Debug("Planilha localizada pelo nome")

	return list.Files[0].Id, nil
}

type table struct {
	store  *Store
	name   string
	id     string
	titles map[string]bool
}

func (t *table) Name() string {
	return t.name
}

func (t *table) OpenSection(_ context.Context, name string) (tabular.Section, error) {
	if !t.titles[name] {
		return nil, domain.NewSectionNotFoundError(t.name, name)
	}
	return &section{table: t, name: name}, nil
}

type section struct {
	table *table
	name  string
}

func (s *section) Name() string {
	return s.name
}

// a1Range referencia a aba inteira
func (s *section) a1Range() string {
	return "'" + strings.ReplaceAll(s.name, "'", "''") + "'"
}

// grid lê datas como número de série para não depender da localidade da planilha
func (s *section) grid(ctx context.Context) ([][]any, error) {
	values, err := s.table.store.sheets.Spreadsheets.Values.Get(s.table.id, s.a1Range()).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewSectionNotFoundError(s.table.name, s.name)
		}
		return nil, domain.NewStoreUnavailableError(s.table.name, s.name, errors.Wrap(err, "erro ao ler valores"))
	}

	grid := make([][]any, 0, len(values.Values))
	for _, line := range values.Values {
		grid = append(grid, line)
	}
	return grid, nil
}

func (s *section) Header(ctx context.Context) ([]string, error) {
	grid, err := s.grid(ctx)
	if err != nil {
		return nil, err
	}
	header, _ := tabular.RowsFromGrid(grid)
	return header, nil
}

func (s *section) ReadRows(ctx context.Context) ([]domain.RawTableRow, error) {
	grid, err := s.grid(ctx)
	if err != nil {
		return nil, err
	}
	_, rows := tabular.RowsFromGrid(grid)
	return rows, nil
}

func (s *section) AppendRow(ctx context.Context, values []any) error {
	body := &gsheets.ValueRange{
		Values: [][]any{values},
	}

	resp, err := s.table.store.sheets.Spreadsheets.Values.Append(s.table.id, s.a1Range(), body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return domain.NewPersistenceError(s.table.name, s.name, errors.Wrap(err, "erro ao gravar linha"))
	}

	if resp.Updates != nil {
		logrus.WithFields(logrus.Fields{
			"table":   s.table.name,
			"section": s.name,
			"range":   resp.Updates.UpdatedRange,
		}).Debug("Linha gravada na planilha")
	}

	return nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}
