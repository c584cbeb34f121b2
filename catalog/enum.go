package catalog

import "strings"

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
