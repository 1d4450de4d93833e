// Package urlparse decodes TSQL.APP navigator URLs into structured query
// intent.
//
// A navigator URL addresses a card (and optionally a parent/child card
// context) through its path, and carries result ordering, a named filter,
// and a selected record id through query parameters:
//
//	scheme://domain/card
//	scheme://domain/parent/<parent-id>/child
//	?ord=<field-id>[d][,<field-id>[d]...]   result ordering, 'd' suffix = DESC
//	?red=<urlencoded-name>                  named filter (reducer)
//	?id=<integer>                           selected record
//
// Decoding is all-or-nothing: any malformed component aborts the whole
// decode with a *MalformedURLError carrying the offending token. Decode is
// a pure function with no I/O, safe for concurrent use.
package urlparse
