package helpers_test

import (
	"testing"

	"github.com/deckops/deck/pkg/helpers"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	names := []string{"app1-prod-v001", "app1-staging-v002", "app2-prod-v001"}
	id := func(s string) string { return s }

	testData := []struct {
		pattern string
		expect  []string
	}{
		{pattern: "", expect: names},
		{pattern: "app1-*", expect: []string{"app1-prod-v001", "app1-staging-v002"}},
		{pattern: "*-prod-*", expect: []string{"app1-prod-v001", "app2-prod-v001"}},
		{pattern: "nothing", expect: []string{}},
	}

	for _, td := range testData {
		got, err := helpers.Filter(names, td.pattern, id)
		require.NoError(t, err)
		require.Equal(t, td.expect, got, td.pattern)
	}
}

func TestFilterInvalid(t *testing.T) {
	_, err := helpers.Filter([]string{"a"}, "[", func(s string) string { return s })
	require.Error(t, err)
}
