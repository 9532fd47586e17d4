package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	richPolicy   = bluemonday.UGCPolicy()
)

// plainText strips all markup from user input.
func plainText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// richText keeps safe formatting markup such as lists and links.
func richText(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}
