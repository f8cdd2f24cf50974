package model

import "strings"

// ValidationIssue describes one problem found in a request field.
type ValidationIssue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeMalformedBody = "MALFORMED_BODY"
	CodeRequired      = "REQUIRED"
	CodeNotNumeric    = "NOT_NUMERIC"
	CodeNotFinite     = "NOT_FINITE"
	CodeNotString     = "NOT_STRING"
)

func (i ValidationIssue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// JoinIssues renders issues as the single error string of an Envelope.
func JoinIssues(issues []ValidationIssue) string {
	parts := make([]string, 0, len(issues))
	for _, is := range issues {
		parts = append(parts, is.String())
	}
	return strings.Join(parts, "; ")
}
