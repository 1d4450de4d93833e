package catalog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Parameter is one stored procedure parameter record.
//
// Flags arrive from the export as "Yes"/"No" strings and default values use
// "None" for absent; both are normalized here so no stringly-typed
// comparison leaks past the load boundary.
type Parameter struct {
	// Procedure is the owning procedure name.
	Procedure string `json:"procedure"`

	// Name is the parameter name without the leading '@'.
	Name string `json:"name"`

	// Type is the declared SQL type (e.g. "nvarchar", "int").
	Type string `json:"type"`

	// Size is the declared size: a number, "MAX"/"-1" for unbounded,
	// or "" when the type is unsized.
	Size string `json:"size,omitempty"`

	// Required is true when the parameter has no default and must be passed.
	Required bool `json:"required"`

	// Output is true for OUTPUT parameters.
	Output bool `json:"output"`

	// Default is the documented default value, nil when there is none.
	Default *string `json:"default,omitempty"`
}

// Catalog is an in-memory index over a stored procedure signature export.
// Safe for concurrent readers. Close releases the index.
type Catalog struct {
	db *sql.DB
}

// Open loads the CSV export at path into a fresh in-memory index.
func Open(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog export: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog export %s: %w", path, err)
	}
	return c, nil
}

// Load reads CSV records from r into a fresh in-memory index.
func Load(r io.Reader) (*Catalog, error) {
	params, err := readExport(r)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	// An in-memory database exists per connection; a second connection
	// would see an empty database. Pin the pool to one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := insertParameters(db, params); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{db: db}, nil
}

// Close releases the in-memory index.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// insertParameters writes all records in a single transaction, preserving
// export order through the autoincrement row id.
func insertParameters(db *sql.DB, params []Parameter) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO parameters (procedure, name, type, size, required, output, default_value)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range params {
		var def sql.NullString
		if p.Default != nil {
			def = sql.NullString{String: *p.Default, Valid: true}
		}
		if _, err := stmt.Exec(p.Procedure, p.Name, p.Type, p.Size, p.Required, p.Output, def); err != nil {
			return fmt.Errorf("insert parameter %s.%s: %w", p.Procedure, p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load transaction: %w", err)
	}
	return nil
}
