package nmi

import "strings"

// ParseResponse converts the legacy gateway's newline separated key=value
// body into a map. Only the first '=' on a line splits key from value, so
// values keep any '=' they contain. A line with no '=' maps the whole line
// to an empty value. Both \n and \r\n line endings are accepted.
//
// The parser is deliberately generic: it validates nothing and preserves
// unknown keys, so new gateway fields flow through without code changes.
func ParseResponse(body string) map[string]string {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	fields := make(map[string]string)
	for _, line := range strings.Split(normalized, "\n") {
		key, value, _ := strings.Cut(line, "=")
		fields[key] = value
	}
	return fields
}
