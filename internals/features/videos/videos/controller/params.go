package controller

import (
	"net/url"
	"strings"
)

// Status labels carry accents and spaces, so the path segment arrives
// percent-encoded.
func unescapeParam(raw string) (string, error) {
	s, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
