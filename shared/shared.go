package shared

import (
	"strings"
)

func BuildCacheKey(prefix string, keys ...string) string {
	return strings.Join(append([]string{prefix}, keys...), ":")
}
