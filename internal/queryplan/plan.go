// Package queryplan derives the ordered lookup statements needed to
// resolve a decoded navigator URL against the platform metadata tables.
//
// Derivation is pure and never fails: absent intent fields simply produce
// fewer statements. The statement order is fixed because later templates
// carry placeholders that only earlier statements' results can fill:
//
//	1. card (child card preferred over parent card)
//	2. sort fields, in ord order
//	3. named filter (references the card id from statement 1)
//	4. selected record (references the table name from statement 1)
//	5. parent record (references a parent table name this package never
//	   resolves - resolving it would require deriving the parent card)
//
// Templates are descriptive, not runnable: placeholder tokens and embedded
// names are left for a separate execution layer to resolve and bind.
package queryplan

import (
	"fmt"
	"strings"

	"github.com/tsqlapp/navigator/internal/metadata"
	"github.com/tsqlapp/navigator/internal/urlparse"
)

// Statement is one derived lookup: a human-readable description and a
// query template that may carry unresolved placeholder tokens.
type Statement struct {
	Description string `json:"description"`
	Template    string `json:"template"`
}

// Deriver derives lookup statements using a metadata dictionary for table
// and column names. The zero value is not usable; construct with
// NewDeriver or NewDeriverWith.
type Deriver struct {
	meta *metadata.Dictionary
}

// NewDeriver returns a Deriver bound to the embedded default dictionary.
func NewDeriver() *Deriver {
	return &Deriver{meta: metadata.Default()}
}

// NewDeriverWith returns a Deriver bound to a custom dictionary.
func NewDeriverWith(dict *metadata.Dictionary) *Deriver {
	return &Deriver{meta: dict}
}

// Derive is a convenience wrapper around NewDeriver().Derive.
func Derive(parsed *urlparse.ParsedURL) []Statement {
	return NewDeriver().Derive(parsed)
}

// Derive produces the lookup statements for a decoded URL, in dependency
// order. Statement presence is driven by field presence, never by value:
// a selected or parent id of 0 still produces its statement. Statements
// with identical templates are emitted once.
func (d *Deriver) Derive(parsed *urlparse.ParsedURL) []Statement {
	statements := []Statement{}
	seen := make(map[string]bool)
	add := func(s Statement) {
		if seen[s.Template] {
			return
		}
		seen[s.Template] = true
		statements = append(statements, s)
	}

	if name := effectiveCard(parsed); name != "" {
		add(d.cardStatement(name))
	}

	for _, field := range parsed.SortFields {
		add(d.sortFieldStatement(field))
	}

	if parsed.Filter != "" {
		add(d.filterStatement(parsed.Filter))
	}

	if parsed.SelectedID != nil {
		add(d.selectedStatement(*parsed.SelectedID))
	}

	if parsed.ParentID != nil {
		add(d.parentStatement(*parsed.ParentID))
	}

	return statements
}

// effectiveCard returns the card whose metadata resolves the view:
// the child card when a parent/child context is present, the addressed
// card otherwise.
func effectiveCard(parsed *urlparse.ParsedURL) string {
	if parsed.ChildCard != "" {
		return parsed.ChildCard
	}
	return parsed.Card
}

func (d *Deriver) cardStatement(name string) Statement {
	t := d.meta.Tables.Cards
	return Statement{
		Description: fmt.Sprintf("Get card '%s'", name),
		Template: fmt.Sprintf("SELECT %s FROM %s WHERE name = N'%s'",
			strings.Join(t.Columns, ", "), t.Name, quoteName(name)),
	}
}

func (d *Deriver) sortFieldStatement(field urlparse.SortField) Statement {
	t := d.meta.Tables.Fields
	return Statement{
		Description: fmt.Sprintf("Get sort field %d (%s)", field.FieldID, field.Direction),
		Template: fmt.Sprintf("SELECT %s FROM %s WHERE id = %d",
			strings.Join(t.Columns, ", "), t.Name, field.FieldID),
	}
}

func (d *Deriver) filterStatement(name string) Statement {
	t := d.meta.Tables.Actions
	return Statement{
		Description: fmt.Sprintf("Get filter '%s'", name),
		Template: fmt.Sprintf("SELECT %s FROM %s WHERE card_id = %s AND name = N'%s' AND action = '%s'",
			strings.Join(t.Columns, ", "), t.Name,
			d.meta.Placeholders.CardID, quoteName(name), d.meta.ReducerAction),
	}
}

func (d *Deriver) selectedStatement(id int64) Statement {
	return Statement{
		Description: fmt.Sprintf("Get selected record %d", id),
		Template: fmt.Sprintf("SELECT * FROM %s WHERE id = %d",
			d.meta.Placeholders.TableName, id),
	}
}

func (d *Deriver) parentStatement(id int64) Statement {
	return Statement{
		Description: fmt.Sprintf("Get parent record %d", id),
		Template: fmt.Sprintf("SELECT * FROM %s WHERE id = %d",
			d.meta.Placeholders.ParentTableName, id),
	}
}

// quoteName doubles single quotes so an embedded name keeps the template
// well-formed. Templates are never executed here; this only protects the
// textual form.
func quoteName(name string) string {
	return strings.ReplaceAll(name, "'", "''")
}
