// Package sqldb implements interfaces.DBClient over database/sql. Documents
// are map[string]interface{} keyed by column name; the driver specific parts
// (placeholders, unique violations) come from a Dialect.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/interfaces"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second

	// NoLifetimeLimit keeps connections open regardless of age.
	NoLifetimeLimit time.Duration = -1

	IDFIELD = "id"
)

// Dialect captures what differs between SQL drivers.
type Dialect struct {
	// DriverName is the database/sql driver name.
	DriverName string
	// Placeholder renders the n-th (1 based) bind parameter.
	Placeholder func(n int) string
	// IsDuplicateKey reports whether err is a unique constraint violation.
	IsDuplicateKey func(err error) bool
	// InsertionOrder names an implicit column that grows with every insert.
	// FindMany sorts on it after sortField so equal keys keep insertion order.
	// Empty leaves ties in the order the database returns them.
	InsertionOrder string
}

// PoolOptions bounds the connection pool.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Client implements the DBClient interface for SQL databases.
type Client struct {
	db          *sql.DB
	dialect     Dialect
	pool        PoolOptions
	validTables map[string]bool
	validFields map[string]bool
	logger      interfaces.Logger
}

// NewClient returns an unconnected client. Table and column names outside
// validTables and validFields are rejected before any query is built.
func NewClient(dialect Dialect, pool PoolOptions, validTables, validFields []string, logger interfaces.Logger) *Client {
	if pool.MaxOpenConns <= 0 {
		pool.MaxOpenConns = DefaultMaxOpenConns
	}
	if pool.MaxIdleConns <= 0 {
		pool.MaxIdleConns = DefaultMaxIdleConns
	}
	if pool.ConnMaxLifetime == 0 {
		pool.ConnMaxLifetime = DefaultConnMaxLifetime
	}

	return &Client{
		dialect:     dialect,
		pool:        pool,
		validTables: config.ListToMap(validTables),
		validFields: config.ListToMap(validFields),
		logger:      logger,
	}
}

// Connect opens the database and verifies it with a ping.
func (c *Client) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("%s: DSN is empty", c.dialect.DriverName)
	}

	db, err := sql.Open(c.dialect.DriverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", c.dialect.DriverName, err)
	}

	db.SetMaxOpenConns(c.pool.MaxOpenConns)
	db.SetMaxIdleConns(c.pool.MaxIdleConns)
	db.SetConnMaxLifetime(c.pool.ConnMaxLifetime)
	c.db = db

	return c.Ping(ctx)
}

// Disconnect closes the database connection.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// InsertOne inserts a single row. 'document' is expected to be a
// map[string]interface{}; an "id" is generated when absent.
func (c *Client) InsertOne(ctx context.Context, tableName string, document interfaces.Document) (interface{}, error) {
	if err := c.checkConnected(tableName); err != nil {
		return nil, err
	}
	docMap, ok := document.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("InsertOne expects document to be map[string]interface{}")
	}

	row := make(map[string]interface{}, len(docMap)+1)
	for k, v := range docMap {
		row[k] = v
	}
	if _, exists := row[IDFIELD]; !exists {
		row[IDFIELD] = uuid.NewString()
	}

	columns, err := c.sortedColumns(row)
	if err != nil {
		return nil, err
	}

	placeholders := make([]string, len(columns))
	values := make([]interface{}, len(columns))
	for i, col := range columns {
		placeholders[i] = c.dialect.Placeholder(i + 1)
		values[i] = row[col]
	}

	// table and column names are checked against the configured whitelist
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		tableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	) // #nosec G201

	c.logger.Debug("Inserting one", "table", tableName)

	var insertedID string
	if err := c.db.QueryRowContext(ctx, query, values...).Scan(&insertedID); err != nil {
		if c.dialect.IsDuplicateKey != nil && c.dialect.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: %v", interfaces.ErrDuplicateKey, err)
		}
		return nil, err
	}
	return insertedID, nil
}

// FindOne scans the first matching row into 'result', a pointer to a struct
// whose fields carry `db` tags naming the columns to select.
func (c *Client) FindOne(ctx context.Context, tableName string, filter interfaces.Document, result interfaces.Document) error {
	if err := c.checkConnected(tableName); err != nil {
		return err
	}

	resultValue := reflect.ValueOf(result)
	if resultValue.Kind() != reflect.Ptr || resultValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("result must be a pointer to a struct")
	}
	elem := resultValue.Elem()

	columns := make([]string, 0, elem.NumField())
	fieldPointers := make([]interface{}, 0, elem.NumField())
	for i := 0; i < elem.NumField(); i++ {
		col := elem.Type().Field(i).Tag.Get("db")
		if col == "" || col == "-" {
			continue
		}
		columns = append(columns, col)
		fieldPointers = append(fieldPointers, elem.Field(i).Addr().Interface())
	}
	if len(columns) == 0 {
		return fmt.Errorf("result struct has no db tagged fields")
	}

	where, args, err := c.whereClause(filter, 1)
	if err != nil {
		return err
	}
	if where == "" {
		return fmt.Errorf("FindOne requires a non-empty filter")
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1",
		strings.Join(columns, ", "),
		tableName,
		where,
	) // #nosec G201

	err = c.db.QueryRowContext(ctx, query, args...).Scan(fieldPointers...)
	if errors.Is(err, sql.ErrNoRows) {
		return interfaces.ErrNoDocuments
	}
	return err
}

// FindMany returns every matching row as a map[string]interface{}, ordered
// ascending by sortField when it is set, then by the dialect's InsertionOrder.
func (c *Client) FindMany(ctx context.Context, tableName string, filter interfaces.Document, sortField string) ([]interfaces.Document, error) {
	if err := c.checkConnected(tableName); err != nil {
		return nil, err
	}

	where, args, err := c.whereClause(filter, 1)
	if err != nil {
		return nil, err
	}

	orderBy := ""
	if sortField != "" {
		if !c.validFields[sortField] {
			return nil, fmt.Errorf("invalid sort field: %s", sortField)
		}
		orderBy = " ORDER BY " + sortField + " ASC"
		if c.dialect.InsertionOrder != "" {
			orderBy += ", " + c.dialect.InsertionOrder + " ASC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM %s%s%s", tableName, where, orderBy) // #nosec G201

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			c.logger.Warn("Failed to close rows", "error", cerr)
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := make([]interfaces.Document, 0)
	for rows.Next() {
		columnPointers := make([]interface{}, len(columns))
		columnValues := make([]interface{}, len(columns))
		for i := range columns {
			columnPointers[i] = &columnValues[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		rowMap := make(map[string]interface{}, len(columns))
		for i, colName := range columns {
			if b, ok := columnValues[i].([]byte); ok {
				rowMap[colName] = string(b)
			} else {
				rowMap[colName] = columnValues[i]
			}
		}
		results = append(results, rowMap)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteOne deletes the rows matching a non-empty filter. Callers filter on
// a unique key, so at most one row is affected.
func (c *Client) DeleteOne(ctx context.Context, tableName string, filter interfaces.Document) (int64, error) {
	where, args, err := c.whereClause(filter, 1)
	if err != nil {
		return 0, err
	}
	if where == "" {
		return 0, fmt.Errorf("DeleteOne requires a non-empty filter")
	}
	return c.exec(ctx, tableName, "DELETE FROM "+tableName+where, args)
}

// DeleteMany deletes every row matching the filter.
func (c *Client) DeleteMany(ctx context.Context, tableName string, filter interfaces.Document) (int64, error) {
	where, args, err := c.whereClause(filter, 1)
	if err != nil {
		return 0, err
	}
	return c.exec(ctx, tableName, "DELETE FROM "+tableName+where, args)
}

// Ping checks the health of the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("%s client is not connected to a database", c.dialect.DriverName)
	}
	return c.db.PingContext(ctx)
}

// EnsureSchema executes DDL. 'schema' is a statement string or a []string
// of statements run in order; each must be idempotent (IF NOT EXISTS).
func (c *Client) EnsureSchema(ctx context.Context, tableName string, schema interfaces.Document) error {
	if err := c.checkConnected(tableName); err != nil {
		return err
	}

	var statements []string
	switch s := schema.(type) {
	case string:
		statements = []string{s}
	case []string:
		statements = s
	default:
		return fmt.Errorf("EnsureSchema expects schema to be a DDL string or []string")
	}

	for _, stmt := range statements {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema for %s: %w", tableName, err)
		}
	}
	return nil
}

func (c *Client) exec(ctx context.Context, tableName, query string, args []interface{}) (int64, error) {
	if err := c.checkConnected(tableName); err != nil {
		return 0, err
	}
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *Client) checkConnected(tableName string) error {
	if c.db == nil {
		return fmt.Errorf("%s client is not connected to a database", c.dialect.DriverName)
	}
	if !c.validTables[tableName] {
		return fmt.Errorf("invalid table name: %s", tableName)
	}
	return nil
}

// whereClause renders " WHERE a = $1 AND b = $2" with columns in sorted order.
// An empty or nil filter yields an empty clause.
func (c *Client) whereClause(filter interfaces.Document, start int) (string, []interface{}, error) {
	if filter == nil {
		return "", nil, nil
	}
	filterMap, ok := filter.(map[string]interface{})
	if !ok {
		return "", nil, fmt.Errorf("filter must be map[string]interface{}")
	}
	if len(filterMap) == 0 {
		return "", nil, nil
	}

	columns, err := c.sortedColumns(filterMap)
	if err != nil {
		return "", nil, err
	}

	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = col + " = " + c.dialect.Placeholder(start+i)
		args[i] = filterMap[col]
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func (c *Client) sortedColumns(doc map[string]interface{}) ([]string, error) {
	columns := make([]string, 0, len(doc))
	for col := range doc {
		if !c.validFields[col] {
			return nil, fmt.Errorf("invalid field name: %s", col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns, nil
}
