// Package metadata declares the TSQL.APP platform tables that derived
// lookups resolve against.
//
// The dictionary is authored in CUE (metadata.cue, embedded at build time)
// and validated on load. Consumers read table and column names from the
// decoded Dictionary instead of hardcoding them.
package metadata

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue/cuecontext"
)

//go:embed metadata.cue
var metadataCUE []byte

// TableSpec names one platform metadata table and the columns a navigator
// lookup selects from it.
type TableSpec struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// Tables groups the metadata tables by role.
type Tables struct {
	Cards   TableSpec `json:"cards"`
	Fields  TableSpec `json:"fields"`
	Actions TableSpec `json:"actions"`
}

// Placeholders are the unresolved tokens derived templates carry.
// The execution layer substitutes them from earlier statement results.
type Placeholders struct {
	CardID          string `json:"cardID"`
	TableName       string `json:"tableName"`
	ParentTableName string `json:"parentTableName"`
}

// Dictionary is the decoded metadata dictionary.
type Dictionary struct {
	Tables        Tables       `json:"tables"`
	ReducerAction string       `json:"reducerAction"`
	Placeholders  Placeholders `json:"placeholders"`
}

// Load compiles a CUE dictionary source and decodes it into a validated
// Dictionary.
func Load(src []byte) (*Dictionary, error) {
	ctx := cuecontext.New()

	value := ctx.CompileBytes(src)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compiling metadata dictionary: %w", err)
	}

	var dict Dictionary
	if err := value.Decode(&dict); err != nil {
		return nil, fmt.Errorf("decoding metadata dictionary: %w", err)
	}

	if err := dict.validate(); err != nil {
		return nil, err
	}
	return &dict, nil
}

// MustLoad loads the embedded dictionary and panics on failure.
// The embedded source is fixed at build time, so a failure here is a
// build defect, not an input error.
func MustLoad() *Dictionary {
	dict, err := Load(metadataCUE)
	if err != nil {
		panic("metadata: " + err.Error())
	}
	return dict
}

var defaultDict = MustLoad()

// Default returns the dictionary decoded from the embedded CUE source.
// The returned value is shared; callers must not mutate it.
func Default() *Dictionary {
	return defaultDict
}

// validate rejects dictionaries that would produce unusable templates.
func (d *Dictionary) validate() error {
	tables := []struct {
		role string
		spec TableSpec
	}{
		{"cards", d.Tables.Cards},
		{"fields", d.Tables.Fields},
		{"actions", d.Tables.Actions},
	}
	for _, t := range tables {
		if t.spec.Name == "" {
			return fmt.Errorf("metadata dictionary: %s table has no name", t.role)
		}
		if len(t.spec.Columns) == 0 {
			return fmt.Errorf("metadata dictionary: %s table %q has no columns", t.role, t.spec.Name)
		}
		for i, col := range t.spec.Columns {
			if col == "" {
				return fmt.Errorf("metadata dictionary: %s table %q column %d is empty", t.role, t.spec.Name, i)
			}
		}
	}

	if d.ReducerAction == "" {
		return fmt.Errorf("metadata dictionary: reducer action kind is empty")
	}
	if d.Placeholders.CardID == "" || d.Placeholders.TableName == "" || d.Placeholders.ParentTableName == "" {
		return fmt.Errorf("metadata dictionary: placeholder tokens must all be set")
	}
	return nil
}
