package cli_test

import (
	"fmt"
	"testing"

	"github.com/deckops/deck/pkg/cli"
	"github.com/deckops/deck/pkg/structs"
	"github.com/stretchr/testify/require"
)

func fxTask() *structs.Task {
	return &structs.Task{
		Id:          "task1",
		Name:        "Resize server group",
		Application: "app",
		Status:      structs.TaskStatusRunning,
		Steps: []structs.TaskStep{
			{Name: "createServerGroup", Status: structs.TaskStatusSucceeded},
			{Name: "waitForUpInstances", Status: structs.TaskStatusRunning},
		},
	}
}

func TestTasksInfo(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("TaskGet", "task1").Return(fxTask(), nil)

		res, err := testExecute(e, "tasks info task1", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		require.Contains(t, res.Stdout, "Resize server group")
		require.Contains(t, res.Stdout, "STEP                STATUS     DURATION\n")
		require.Contains(t, res.Stdout, "createServerGroup   SUCCEEDED\n")
		require.Contains(t, res.Stdout, "waitForUpInstances  RUNNING\n")
		require.NotContains(t, res.Stdout, "Failure")
	})
}

func TestTasksInfoFailed(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("TaskGet", "task1").Return(&structs.Task{
			Id:        "task1",
			Status:    structs.TaskStatusTerminal,
			StartTime: 1000,
			EndTime:   61000,
			Variables: []structs.TaskVariable{
				{Key: "exception", Value: map[string]interface{}{"details": map[string]interface{}{"error": "quota exceeded"}}},
			},
		}, nil)

		res, err := testExecute(e, "tasks info task1", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		require.Contains(t, res.Stdout, "Failure")
		require.Contains(t, res.Stdout, "quota exceeded")
		require.Contains(t, res.Stdout, "Duration")
		require.NotContains(t, res.Stdout, "STEP")
	})
}

func TestTasksInfoError(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("TaskGet", "task1").Return(nil, fmt.Errorf("err1"))

		res, err := testExecute(e, "tasks info task1", nil)
		require.NoError(t, err)
		require.Equal(t, 1, res.Code)
		res.RequireStderr(t, []string{"ERROR: err1"})
		res.RequireStdout(t, []string{""})
	})
}

func TestTasksWait(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("TaskGet", "task1").Return(fxTask(), nil).Once()
		p.On("TaskGet", "task1").Return(&structs.Task{Id: "task1", Status: structs.TaskStatusSucceeded}, nil)

		res, err := testExecute(e, "tasks wait task1", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		res.RequireStdout(t, []string{"Waiting for task1... OK"})
	})
}

func TestTasksWaitFailed(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("TaskGet", "task1").Return(&structs.Task{
			Id:        "task1",
			Status:    structs.TaskStatusCanceled,
			Variables: []structs.TaskVariable{{Key: "exception", Value: "cancelled by user"}},
		}, nil)

		res, err := testExecute(e, "tasks wait task1", nil)
		require.NoError(t, err)
		require.Equal(t, 1, res.Code)
		res.RequireStderr(t, []string{"ERROR: task failed: cancelled by user"})
		res.RequireStdout(t, []string{"Waiting for task1... "})
	})
}
