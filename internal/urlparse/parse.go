package urlparse

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Direction is the sort direction of a result ordering field.
type Direction string

const (
	// Ascending is the default direction for an ord token.
	Ascending Direction = "ASC"

	// Descending is selected by the 'd' suffix on an ord token.
	Descending Direction = "DESC"
)

// SortField is one entry of a result ordering specification. Entries are
// significant in order: downstream result ordering ties break left to right.
type SortField struct {
	FieldID   int64     `json:"field_id"`
	Direction Direction `json:"direction"`
}

// ParsedURL is the structured intent decoded from a navigator URL.
//
// Card is the only required field: it is set whenever the path has at least
// one segment. ParentID and ChildCard are either both set or both unset;
// only a three-segment path produces them. Optional string fields use ""
// for absent, optional ids use nil.
type ParsedURL struct {
	// Domain is the network location component of the URL.
	Domain string `json:"domain"`

	// Card is the primary addressed card name (first path segment).
	Card string `json:"card,omitempty"`

	// ParentID is the parent record id in a /parent/<id>/child path.
	ParentID *int64 `json:"parent_id,omitempty"`

	// ChildCard is the child card name in a /parent/<id>/child path.
	ChildCard string `json:"child_card,omitempty"`

	// SortFields holds the ord parameter entries in parameter order.
	// Empty, never nil, when no ord parameter is present.
	SortFields []SortField `json:"sort_fields"`

	// Filter is the decoded name of a named filter (reducer), NFC-normalized
	// so metadata name matching does not depend on input normalization.
	Filter string `json:"filter,omitempty"`

	// SelectedID is the id of a record to additionally resolve.
	SelectedID *int64 `json:"selected_id,omitempty"`
}

// Query parameter keys of the navigator URL grammar.
const (
	paramOrder    = "ord" // result ordering
	paramReducer  = "red" // named filter (reducer)
	paramSelected = "id"  // selected record
)

// Decode parses a raw navigator URL into structured intent.
//
// Decoding is all-or-nothing: any failure returns a *MalformedURLError and
// no partial result. Path semantics:
//
//	1 segment  → Card
//	3 segments → Card, ParentID, ChildCard
//	any other  → Card from the first segment if present, parent/child unset
//
// The two-segment form is not part of the grammar; its second segment is
// dropped without error, exactly as the platform's own navigation does.
// Do not infer a two-segment semantic here without product clarification.
func Decode(raw string) (*ParsedURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &MalformedURLError{Token: raw, Reason: "invalid URL syntax", Err: err}
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, &MalformedURLError{Token: u.RawQuery, Reason: "invalid query string", Err: err}
	}

	parsed := &ParsedURL{
		Domain:     u.Host,
		SortFields: []SortField{},
	}

	segments := splitPath(u.Path)
	if len(segments) >= 1 {
		parsed.Card = segments[0]
	}
	if len(segments) == 3 {
		id, err := parseID(segments[1])
		if err != nil {
			return nil, err
		}
		parsed.ParentID = &id
		parsed.ChildCard = segments[2]
	}

	if ord, ok := firstValue(query, paramOrder); ok {
		for _, token := range strings.Split(ord, ",") {
			field, err := parseSortToken(strings.TrimSpace(token))
			if err != nil {
				return nil, err
			}
			parsed.SortFields = append(parsed.SortFields, field)
		}
	}

	if red, ok := firstValue(query, paramReducer); ok {
		parsed.Filter = norm.NFC.String(red)
	}

	if sel, ok := firstValue(query, paramSelected); ok {
		id, err := parseID(sel)
		if err != nil {
			return nil, err
		}
		parsed.SelectedID = &id
	}

	return parsed, nil
}

// splitPath splits a URL path into its non-empty segments.
// Consecutive and trailing slashes collapse.
func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// firstValue returns the first non-blank occurrence of key in query.
// Blank values count as absent, matching the platform's query handling
// which drops empty parameters.
func firstValue(query url.Values, key string) (string, bool) {
	for _, v := range query[key] {
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// parseSortToken parses one comma-separated ord token. A trailing 'd'
// selects descending order; the remainder must be a strictly numeric
// field id.
func parseSortToken(token string) (SortField, error) {
	value, direction := token, Ascending
	if strings.HasSuffix(token, "d") {
		value, direction = strings.TrimSuffix(token, "d"), Descending
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return SortField{}, &MalformedURLError{Token: token, Reason: "invalid sort field", Err: err}
	}
	return SortField{FieldID: id, Direction: direction}, nil
}

// parseID parses a strictly numeric token into an id.
// Non-numeric content is an error, never a silent zero.
func parseID(token string) (int64, error) {
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, &MalformedURLError{Token: token, Reason: "not an integer", Err: err}
	}
	return id, nil
}
