package expand

import (
	"encoding/json"
	"strings"
)

// linesFromStdin splits raw stdin text into trimmed, non-blank lines.
// Blank and whitespace-only lines are discarded before any further
// processing, per the empty-line-filtering invariant.
func linesFromStdin(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// expandStdin builds one record per stdin line. A line that parses as a
// JSON object contributes its string-valued fields as template vars;
// input is always the raw (trimmed) line text, JSON or not.
func expandStdin(baseName string, lines []string) []Record {
	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		vars := jsonObjectStringFields(line)
		records = append(records, Record{
			BaseName: baseName,
			Index:    i + 1,
			Input:    line,
			Vars:     vars,
		})
	}
	return records
}

func jsonObjectStringFields(line string) map[string]string {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil
	}
	vars := make(map[string]string)
	for k, v := range raw {
		if s, ok := v.(string); ok {
			vars[k] = s
		}
	}
	return vars
}
