package utils

import (
	"regexp"
	"strings"
)

var linkValuePattern = regexp.MustCompile(`<([^>]+)>;\s*rel="(\w+)"`)

// ParseLinkHeader extracts rel -> URL pairs from an RFC 8288 Link header, e.g. the pagination links on a
// manifest response.
func ParseLinkHeader(raw string) map[string]string {
	links := map[string]string{}

	for _, part := range strings.Split(raw, ",") {
		matches := linkValuePattern.FindStringSubmatch(strings.TrimSpace(part))
		if matches != nil {
			links[matches[2]] = matches[1]
		}
	}

	return links
}
