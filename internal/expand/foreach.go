package expand

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type axis struct {
	name   string
	values []string
}

// ValidateForeachSyntax checks spec without building records, so the cli
// layer's --foreach flag.Value can reject malformed syntax at parse time
// rather than deferring the error to Expand.
func ValidateForeachSyntax(spec string) error {
	_, err := parseForeach(spec)
	return err
}

// parseForeach parses "AXIS:v1,v2;AXIS2:v3,v4" into an ordered list of
// axes, preserving both axis order and value order so expansion is
// deterministic.
func parseForeach(spec string) ([]axis, error) {
	var axes []axis
	for _, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, valuesStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("--foreach axis %q is missing a ':'", part)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("--foreach axis name is empty in %q", part)
		}
		var values []string
		for _, v := range strings.Split(valuesStr, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("--foreach axis %q has no values", name)
		}
		axes = append(axes, axis{name: name, values: values})
	}
	if len(axes) == 0 {
		return nil, fmt.Errorf("--foreach value %q did not define any axes", spec)
	}
	return axes, nil
}

// axesFromMap builds axes from a frontmatter-style foreach map. Go map
// iteration order is random, so axis names are sorted alphabetically here
// for reproducible handles.
func axesFromMap(m map[string][]string) []axis {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	axes := make([]axis, 0, len(names))
	for _, name := range names {
		axes = append(axes, axis{name: name, values: m[name]})
	}
	return axes
}

// expandForeach produces the Cartesian product of the given axes.
func expandForeach(baseName string, axes []axis) []Record {
	combos := cartesian(axes)
	records := make([]Record, 0, len(combos))
	for i, combo := range combos {
		vars := make(map[string]string, len(combo))
		parts := make([]string, 0, len(combo))
		for _, a := range axes {
			vars[a.name] = combo[a.name]
			parts = append(parts, combo[a.name])
		}
		records = append(records, Record{
			BaseName: baseName,
			Index:    i + 1,
			Input:    strings.Join(parts, "-"),
			Vars:     vars,
		})
	}
	return records
}

func cartesian(axes []axis) []map[string]string {
	combos := []map[string]string{{}}
	for _, a := range axes {
		var next []map[string]string
		for _, combo := range combos {
			for _, v := range a.values {
				merged := make(map[string]string, len(combo)+1)
				for k, val := range combo {
					merged[k] = val
				}
				merged[a.name] = v
				next = append(next, merged)
			}
		}
		combos = next
	}
	return combos
}

// expandCount produces N records, input set to the 1-based ordinal.
func expandCount(baseName string, n int) []Record {
	records := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, Record{
			BaseName: baseName,
			Index:    i,
			Input:    strconv.Itoa(i),
			Vars:     map[string]string{"count": strconv.Itoa(n)},
		})
	}
	return records
}
