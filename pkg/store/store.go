package store

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/sabriduruk/football-prediction/internal/logger"
	_ "modernc.org/sqlite"
)

// Record is a struct persistable through the tag-driven SQLite layer.
// Columns come from `column`/`dbtype` tags; `primary:"true"` marks key
// fields and `index:"true"` requests a secondary index.
type Record interface {
	TableName() string
	PrimaryKey() map[string]any
}

// Store wraps the SQLite database holding fetched statistics
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the statistics database and its tables
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single pooled connection: an in-memory database exists only on the
	// connection that created it, and SQLite serializes writers anyway
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	for _, rec := range []Record{&TeamSeasonRow{}, &FixtureRow{}, &LeagueRow{}} {
		if err := s.CreateTable(rec); err != nil {
			db.Close()
			return nil, err
		}
	}
	logger.Debug("Statistics database ready", path)
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTable creates the table and indexes for a record type if needed
func (s *Store) CreateTable(rec Record) error {
	createSQL := generateCreateTableSQL(rec)
	if _, err := s.db.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", rec.TableName(), err)
	}
	for _, query := range generateIndexSQL(rec) {
		if _, err := s.db.Exec(query); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}
	return nil
}

// execer abstracts the database handle so writes can run either on the
// pool or inside a transaction
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Save inserts the record or updates it when its primary key already exists
func (s *Store) Save(rec Record) error {
	return save(s.db, rec)
}

// BulkSave saves multiple records inside one transaction. All statements
// run on the transaction's connection, so nothing persists if any record
// fails.
func (s *Store) BulkSave(records []Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		if err := save(tx, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Exists reports whether a record with the same primary key is stored
func (s *Store) Exists(rec Record) (bool, error) {
	return exists(s.db, rec)
}

func save(e execer, rec Record) error {
	found, err := exists(e, rec)
	if err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}
	if found {
		return update(e, rec)
	}
	return insert(e, rec)
}

func exists(e execer, rec Record) (bool, error) {
	whereClause, values := buildWhereClause(rec.PrimaryKey())
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", rec.TableName(), whereClause)

	var count int
	if err := e.QueryRow(query, values...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check existence in %s: %w", rec.TableName(), err)
	}
	return count > 0, nil
}

// FindByKey loads the record matching the given primary key into rec
func (s *Store) FindByKey(rec Record, key map[string]any) error {
	columns, destinations := getSelectData(rec)
	whereClause, values := buildWhereClause(key)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(columns, ", "), rec.TableName(), whereClause)

	err := s.db.QueryRow(query, values...).Scan(destinations...)
	if err == sql.ErrNoRows {
		return fmt.Errorf("record not found in %s", rec.TableName())
	}
	if err != nil {
		return fmt.Errorf("failed to scan row from %s: %w", rec.TableName(), err)
	}
	return nil
}

// FindWhere runs a custom WHERE query and returns matching records.
// rec is only used as the type template.
func (s *Store) FindWhere(rec Record, whereClause string, args ...any) ([]any, error) {
	columns, _ := getSelectData(rec)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(columns, ", "), rec.TableName(), whereClause)
	logger.Debug("FindWhere SQL", query)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", rec.TableName(), err)
	}
	defer rows.Close()

	objType := reflect.TypeOf(rec)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var results []any
	for rows.Next() {
		newObj := reflect.New(objType).Interface()
		_, destinations := getSelectData(newObj)
		if err := rows.Scan(destinations...); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", rec.TableName(), err)
		}
		results = append(results, newObj)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows from %s: %w", rec.TableName(), err)
	}
	return results, nil
}

func insert(e execer, rec Record) error {
	columns, placeholders, values := getInsertData(rec)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		rec.TableName(), strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	if _, err := e.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", rec.TableName(), err)
	}
	return nil
}

func update(e execer, rec Record) error {
	setPairs, values := getUpdateData(rec)
	whereClause, whereValues := buildWhereClause(rec.PrimaryKey())
	values = append(values, whereValues...)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		rec.TableName(), strings.Join(setPairs, ", "), whereClause)

	if _, err := e.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to update %s: %w", rec.TableName(), err)
	}
	return nil
}

// generateCreateTableSQL builds CREATE TABLE SQL from struct tags
func generateCreateTableSQL(rec Record) string {
	objType := reflect.TypeOf(rec)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var columns []string
	var primaryKeys []string

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() {
			continue
		}
		dbType := field.Tag.Get("dbtype")
		if dbType == "" {
			continue
		}
		columnName := columnNameFor(field)

		if field.Tag.Get("primary") == "true" {
			primaryKeys = append(primaryKeys, columnName)
		}
		columns = append(columns, fmt.Sprintf("%s %s", columnName, dbType))
	}

	if len(primaryKeys) > 0 {
		columns = append(columns, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", rec.TableName(), strings.Join(columns, ", "))
}

// generateIndexSQL builds index creation SQL from struct tags
func generateIndexSQL(rec Record) []string {
	objType := reflect.TypeOf(rec)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var indexSQL []string
	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if field.Tag.Get("index") == "" || field.Tag.Get("dbtype") == "" {
			continue
		}
		columnName := columnNameFor(field)
		indexName := fmt.Sprintf("idx_%s_%s", rec.TableName(), columnName)
		indexSQL = append(indexSQL,
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", indexName, rec.TableName(), columnName))
	}
	return indexSQL
}

func getInsertData(obj any) ([]string, []string, []any) {
	objValue, objType := derefValue(obj)

	var columns []string
	var placeholders []string
	var values []any

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}
		columns = append(columns, columnNameFor(field))
		placeholders = append(placeholders, "?")
		values = append(values, objValue.Field(i).Interface())
	}
	return columns, placeholders, values
}

func getUpdateData(obj any) ([]string, []any) {
	objValue, objType := derefValue(obj)

	var setPairs []string
	var values []any

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}
		// Primary key fields never change in an update
		if field.Tag.Get("primary") == "true" {
			continue
		}
		setPairs = append(setPairs, fmt.Sprintf("%s = ?", columnNameFor(field)))
		values = append(values, objValue.Field(i).Interface())
	}
	return setPairs, values
}

func getSelectData(obj any) ([]string, []any) {
	objValue, objType := derefValue(obj)

	var columns []string
	var destinations []any

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}
		columns = append(columns, columnNameFor(field))
		destinations = append(destinations, objValue.Field(i).Addr().Interface())
	}
	return columns, destinations
}

func buildWhereClause(key map[string]any) (string, []any) {
	var conditions []string
	var values []any
	for column, value := range key {
		conditions = append(conditions, fmt.Sprintf("%s = ?", column))
		values = append(values, value)
	}
	return strings.Join(conditions, " AND "), values
}

func columnNameFor(field reflect.StructField) string {
	if name := field.Tag.Get("column"); name != "" {
		return name
	}
	return strings.ToLower(field.Name)
}

func derefValue(obj any) (reflect.Value, reflect.Type) {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)
	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}
	return objValue, objType
}
