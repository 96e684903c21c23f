package utils

import (
	"strconv"
	"strings"
)

// OrderField is one column of an ORDER BY clause.
type OrderField struct {
	Column string
	Desc   bool
}

// ParseOrdering parses an `ordering` query value such as "-created_at,title".
// Fields outside of allowed are dropped.
func ParseOrdering(raw string, allowed []string) []OrderField {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	permitted := make(map[string]struct{}, len(allowed))
	for _, field := range allowed {
		permitted[field] = struct{}{}
	}

	var fields []OrderField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if _, ok := permitted[name]; !ok {
			continue
		}
		fields = append(fields, OrderField{Column: name, Desc: desc})
	}

	return fields
}

// ParseID parses a positive numeric identifier.
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
