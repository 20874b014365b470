package storage

import (
	"datajournal/internal/models"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/daos"
	"github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/migrations/logs"
	pbModels "github.com/pocketbase/pocketbase/models"
	"github.com/pocketbase/pocketbase/models/schema"
	"github.com/pocketbase/pocketbase/tools/migrate"
)

const (
	rowsCollection     = "state_rows"
	specialValuesField = "special_values"
)

// ErrRowNotFound is returned when no stored row matches a lookup
var ErrRowNotFound = errors.New("row not found")

type PocketBaseStore struct {
	app *pocketbase.PocketBase
}

// NewPocketBaseStore bootstraps PocketBase in dataDir. A non-empty httpAddr
// also serves the PocketBase admin UI on that address.
func NewPocketBaseStore(dataDir, httpAddr string) (*PocketBaseStore, error) {
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir:  dataDir,
		HideStartBanner: true,
	})

	if err := app.Bootstrap(); err != nil {
		return nil, fmt.Errorf("failed to bootstrap PocketBase: %w", err)
	}

	if err := runMigrations(app); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := ensureCollection(app); err != nil {
		return nil, fmt.Errorf("failed to ensure collection exists: %w", err)
	}

	if httpAddr != "" {
		go func() {
			log.Printf("PocketBase admin UI on http://%s/_/", httpAddr)
			if _, err := apis.Serve(app, apis.ServeConfig{HttpAddr: httpAddr}); err != nil {
				log.Printf("Failed to start PocketBase: %v", err)
			}
		}()
	}

	return &PocketBaseStore{app: app}, nil
}

// runMigrations creates the system tables. Without the serve command nothing
// else applies them; apis.Serve later finds them already applied.
func runMigrations(app *pocketbase.PocketBase) error {
	connections := []struct {
		db   *dbx.DB
		list migrate.MigrationsList
	}{
		{db: app.DB(), list: migrations.AppMigrations},
		{db: app.LogsDB(), list: logs.LogsMigrations},
	}
	for _, c := range connections {
		runner, err := migrate.NewRunner(c.db, c.list)
		if err != nil {
			return err
		}
		if _, err := runner.Up(); err != nil {
			return err
		}
	}
	return nil
}

func ensureCollection(app *pocketbase.PocketBase) error {
	if _, err := app.Dao().FindCollectionByNameOrId(rowsCollection); err == nil {
		return nil
	}

	fields := []*schema.SchemaField{
		{Name: "position", Type: schema.FieldTypeNumber},
		{Name: "state", Type: schema.FieldTypeText, Required: true},
		{Name: "abbr", Type: schema.FieldTypeText, Required: true},
	}
	for _, f := range models.AllFields() {
		fields = append(fields, &schema.SchemaField{Name: string(f), Type: schema.FieldTypeNumber})
	}
	// non-finite numeric fields by name; number columns cannot hold them
	fields = append(fields, &schema.SchemaField{
		Name:    specialValuesField,
		Type:    schema.FieldTypeJson,
		Options: &schema.JsonOptions{MaxSize: 1024},
	})

	collection := &pbModels.Collection{
		Name:       rowsCollection,
		Type:       pbModels.CollectionTypeBase,
		CreateRule: nil,
		Schema:     schema.NewSchema(fields...),
	}

	if err := app.Dao().SaveCollection(collection); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	log.Printf("Created collection %s", rowsCollection)
	return nil
}

// ReplaceRows swaps the stored dataset for rows in a single transaction
func (s *PocketBaseStore) ReplaceRows(rows []models.Row) error {
	return s.app.Dao().RunInTransaction(func(txDao *daos.Dao) error {
		collection, err := txDao.FindCollectionByNameOrId(rowsCollection)
		if err != nil {
			return fmt.Errorf("failed to find collection: %w", err)
		}

		existing, err := txDao.FindRecordsByExpr(rowsCollection)
		if err != nil {
			return fmt.Errorf("failed to fetch rows: %w", err)
		}
		for _, record := range existing {
			if err := txDao.DeleteRecord(record); err != nil {
				return fmt.Errorf("failed to delete record: %w", err)
			}
		}

		for i, row := range rows {
			record := pbModels.NewRecord(collection)
			record.Set("position", i)
			record.Set("state", row.State)
			record.Set("abbr", row.Abbr)

			special := map[string]string{}
			for _, f := range models.AllFields() {
				v := row.Value(f)
				if text, ok := specialValue(v); ok {
					special[string(f)] = text
					continue
				}
				record.Set(string(f), v)
			}
			record.Set(specialValuesField, special)

			if err := txDao.SaveRecord(record); err != nil {
				return fmt.Errorf("failed to save row %d (%s): %w", i, row.State, err)
			}
		}

		log.Printf("Stored %d rows (replaced %d)", len(rows), len(existing))
		return nil
	})
}

// GetAllRows returns the stored dataset in its original order
func (s *PocketBaseStore) GetAllRows() ([]models.Row, error) {
	collection, err := s.app.Dao().FindCollectionByNameOrId(rowsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to find collection: %w", err)
	}

	var records []*pbModels.Record
	if err := s.app.Dao().RecordQuery(collection).OrderBy("position ASC").All(&records); err != nil {
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}

	rows := make([]models.Row, len(records))
	for i, record := range records {
		rows[i] = recordToRow(record)
	}
	return rows, nil
}

// FindRowByAbbr looks up one state by its abbreviation, case-insensitively
func (s *PocketBaseStore) FindRowByAbbr(abbr string) (*models.Row, error) {
	collection, err := s.app.Dao().FindCollectionByNameOrId(rowsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to find collection: %w", err)
	}

	var records []*pbModels.Record
	query := s.app.Dao().RecordQuery(collection).
		AndWhere(dbx.HashExp{"abbr": strings.ToUpper(strings.TrimSpace(abbr))}).
		Limit(1)
	if err := query.All(&records); err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRowNotFound, abbr)
	}

	row := recordToRow(records[0])
	return &row, nil
}

func recordToRow(record *pbModels.Record) models.Row {
	row := models.Row{
		State:      record.GetString("state"),
		Abbr:       record.GetString("abbr"),
		Poverty:    record.GetFloat(string(models.FieldPoverty)),
		Age:        record.GetFloat(string(models.FieldAge)),
		Income:     record.GetFloat(string(models.FieldIncome)),
		Healthcare: record.GetFloat(string(models.FieldHealthcare)),
		Smokes:     record.GetFloat(string(models.FieldSmokes)),
		Obesity:    record.GetFloat(string(models.FieldObesity)),
	}

	special := map[string]string{}
	if err := record.UnmarshalJSONField(specialValuesField, &special); err != nil {
		log.Printf("Warning: unreadable %s on %s: %v", specialValuesField, record.Id, err)
	}
	for name, text := range special {
		v := parseSpecialValue(text)
		switch models.Field(name) {
		case models.FieldPoverty:
			row.Poverty = v
		case models.FieldAge:
			row.Age = v
		case models.FieldIncome:
			row.Income = v
		case models.FieldHealthcare:
			row.Healthcare = v
		case models.FieldSmokes:
			row.Smokes = v
		case models.FieldObesity:
			row.Obesity = v
		}
	}
	return row
}

func specialValue(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "Infinity", true
	case math.IsInf(v, -1):
		return "-Infinity", true
	}
	return "", false
}

func parseSpecialValue(text string) float64 {
	switch text {
	case "Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	return math.NaN()
}

// Close releases the database handles
func (s *PocketBaseStore) Close() error {
	return s.app.ResetBootstrapState()
}

func (s *PocketBaseStore) GetPocketBase() *pocketbase.PocketBase {
	return s.app
}
