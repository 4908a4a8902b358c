package helpers_test

import (
	"testing"

	"github.com/deckops/deck/pkg/helpers"
	"github.com/stretchr/testify/require"
)

func TestClusterName(t *testing.T) {
	require.Equal(t, "app", helpers.ClusterName("app", "", ""))
	require.Equal(t, "app-prod", helpers.ClusterName("app", "prod", ""))
	require.Equal(t, "app-prod-canary", helpers.ClusterName("app", "prod", "canary"))
	require.Equal(t, "app--canary", helpers.ClusterName("app", "", "canary"))
}

func TestParseServerGroupName(t *testing.T) {
	testData := []struct {
		name   string
		expect helpers.ServerGroupName
	}{
		{
			name:   "app-prod-canary-v003",
			expect: helpers.ServerGroupName{Application: "app", Stack: "prod", Detail: "canary", Cluster: "app-prod-canary", Sequence: "003"},
		},
		{
			name:   "app-prod-v010",
			expect: helpers.ServerGroupName{Application: "app", Stack: "prod", Cluster: "app-prod", Sequence: "010"},
		},
		{
			name:   "app",
			expect: helpers.ServerGroupName{Application: "app", Cluster: "app"},
		},
		{
			name:   "app--a-b",
			expect: helpers.ServerGroupName{Application: "app", Detail: "a-b", Cluster: "app--a-b"},
		},
	}

	for _, td := range testData {
		require.Equal(t, td.expect, helpers.ParseServerGroupName(td.name), td.name)
	}
}
