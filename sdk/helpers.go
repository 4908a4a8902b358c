package sdk

import "strings"

func coalesce(strings ...string) string {
	for _, s := range strings {
		if s != "" {
			return s
		}
	}

	return ""
}

func hasProvider(a, provider string) bool {
	return strings.EqualFold(a, provider)
}
