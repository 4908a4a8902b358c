package helpers_test

import (
	"testing"

	"github.com/deckops/deck/pkg/helpers"
	"github.com/stretchr/testify/require"
)

func TestParseGigabytes(t *testing.T) {
	testData := []struct {
		given  string
		expect int64
		err    bool
	}{
		{given: "", expect: 0},
		{given: "20", expect: 20},
		{given: "20G", expect: 20},
		{given: "20GB", expect: 20},
		{given: "2GiB", expect: 2},
		{given: "big", err: true},
	}

	for _, td := range testData {
		got, err := helpers.ParseGigabytes(td.given)
		if td.err {
			require.Error(t, err, td.given)
			continue
		}
		require.NoError(t, err, td.given)
		require.Equal(t, td.expect, got, td.given)
	}
}

func TestGigabytes(t *testing.T) {
	require.Equal(t, "10GiB", helpers.Gigabytes(10))
}
