package queryplan

import (
	"fmt"
	"io"
)

// Render writes the numbered statement listing:
//
//	1. Get card 'incoming_invoice'
//	   SELECT id, name, tablename, basetable, reducer FROM api_card WHERE name = N'incoming_invoice'
func Render(w io.Writer, statements []Statement) {
	for i, s := range statements {
		fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, s.Description, s.Template)
	}
}
