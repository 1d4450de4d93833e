package urlparse

import (
	"net/url"
	"strconv"
	"strings"
)

// Encode rebuilds a canonical navigator URL from the parsed intent.
//
// The result uses the https scheme and percent-encodes the filter name.
// Encode is the inverse of Decode for any ParsedURL that Decode can
// produce: Decode(p.Encode()) yields a value equal to p.
func (p *ParsedURL) Encode() string {
	u := url.URL{Scheme: "https", Host: p.Domain}

	var segments []string
	if p.Card != "" {
		segments = append(segments, p.Card)
	}
	if p.ParentID != nil && p.ChildCard != "" {
		segments = append(segments, strconv.FormatInt(*p.ParentID, 10), p.ChildCard)
	}
	u.Path = "/" + strings.Join(segments, "/")

	query := url.Values{}
	if len(p.SortFields) > 0 {
		tokens := make([]string, len(p.SortFields))
		for i, field := range p.SortFields {
			tokens[i] = strconv.FormatInt(field.FieldID, 10)
			if field.Direction == Descending {
				tokens[i] += "d"
			}
		}
		query.Set(paramOrder, strings.Join(tokens, ","))
	}
	if p.Filter != "" {
		query.Set(paramReducer, p.Filter)
	}
	if p.SelectedID != nil {
		query.Set(paramSelected, strconv.FormatInt(*p.SelectedID, 10))
	}
	u.RawQuery = query.Encode()

	return u.String()
}
