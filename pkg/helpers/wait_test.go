package helpers_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/deckops/deck/pkg/helpers"
	"github.com/stretchr/testify/require"
)

func TestWaitContext(t *testing.T) {
	testData := []struct {
		errUntil   int
		times      int
		timoutMili int
		expectErr  bool
	}{
		{
			errUntil:   8,
			times:      10,
			timoutMili: 150,
			expectErr:  false,
		},
		{
			errUntil:   0,
			times:      10,
			timoutMili: 150,
			expectErr:  false,
		},
		{
			errUntil:   30,
			times:      10,
			timoutMili: 150,
			expectErr:  true,
		},
		{
			errUntil:   10,
			times:      10,
			timoutMili: 1,
			expectErr:  true,
		},
	}

	for _, td := range testData {
		cnt := 0
		err := helpers.WaitContext(context.Background(), 1*time.Millisecond, time.Duration(td.timoutMili)*time.Millisecond, td.times, func() (bool, error) {
			if cnt >= td.errUntil {
				return true, nil
			}
			cnt++
			return false, fmt.Errorf("error")
		})
		if td.expectErr {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
		}
	}
}

func TestWaitContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := helpers.WaitContext(ctx, 1*time.Millisecond, time.Second, 1, func() (bool, error) {
		return false, nil
	})
	require.Equal(t, context.Canceled, err)
}
