package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// FindByExactName returns all parameter records for the named procedure,
// in export order. The match is case-insensitive.
//
// An empty slice (never nil) means the procedure is not in the catalog;
// that is a result, not an error.
func (c *Catalog) FindByExactName(ctx context.Context, name string) ([]Parameter, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT procedure, name, type, size, required, output, default_value
		FROM parameters
		WHERE procedure = ? COLLATE NOCASE
		ORDER BY id ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query procedure %q: %w", name, err)
	}
	defer rows.Close()

	params := []Parameter{}
	for rows.Next() {
		p, err := scanParameter(rows)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate procedure %q: %w", name, err)
	}

	return params, nil
}

// FindByNameContains returns the distinct procedure names containing
// substring, case-insensitively, sorted. An empty slice means no matches.
func (c *Catalog) FindByNameContains(ctx context.Context, substring string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT procedure
		FROM parameters
		WHERE instr(lower(procedure), lower(?)) > 0
		ORDER BY procedure COLLATE BINARY ASC
	`, substring)
	if err != nil {
		return nil, fmt.Errorf("search procedures %q: %w", substring, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan procedure name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search %q: %w", substring, err)
	}

	return names, nil
}

// Count returns the number of parameter records in the index.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM parameters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count parameters: %w", err)
	}
	return n, nil
}

// scanParameter reads one parameter row.
func scanParameter(rows *sql.Rows) (Parameter, error) {
	var p Parameter
	var def sql.NullString
	if err := rows.Scan(&p.Procedure, &p.Name, &p.Type, &p.Size, &p.Required, &p.Output, &def); err != nil {
		return Parameter{}, fmt.Errorf("scan parameter: %w", err)
	}
	if def.Valid {
		p.Default = &def.String
	}
	return p, nil
}
