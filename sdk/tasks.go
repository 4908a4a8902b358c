package sdk

import (
	"encoding/json"
	"fmt"

	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/pkg/errors"
)

func (c *Client) taskCreate(app, description string, job structs.TaskJob) (*structs.Task, error) {
	tc := structs.TaskCreate{
		Application: app,
		Description: description,
		Job:         []structs.TaskJob{job},
	}

	var ref structs.TaskRef

	if err := c.post(fmt.Sprintf("/applications/%s/tasks", app), tc, &ref); err != nil {
		return nil, err
	}

	if ref.Ref == "" {
		return nil, errors.Errorf("no task reference returned for: %s", description)
	}

	t := &structs.Task{
		Id:          ref.Id(),
		Name:        description,
		Application: app,
		Status:      structs.TaskStatusNotStarted,
	}

	return t, nil
}

// jobFrom flattens v into a job of the given type.
func jobFrom(typ string, v interface{}) (structs.TaskJob, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	job := structs.TaskJob{}

	if err := json.Unmarshal(data, &job); err != nil {
		return nil, errors.WithStack(err)
	}

	job["type"] = typ

	return job, nil
}

func serverGroupJob(typ string, sg structs.ServerGroup, opts interface{}) (structs.TaskJob, error) {
	job, err := jobFrom(typ, opts)
	if err != nil {
		return nil, err
	}

	job["serverGroupName"] = sg.Name
	job["asgName"] = sg.Name
	job["region"] = sg.Region
	job["regions"] = []string{sg.Region}
	job["zones"] = sg.Zones
	job["credentials"] = sg.Account
	job["cloudProvider"] = coalesce(sg.CloudProvider, sg.Type, "yandex")

	return job, nil
}

func clusterOf(cfg structs.DeployConfiguration) string {
	return helpers.ClusterName(cfg.Application, cfg.Stack, cfg.FreeFormDetails)
}
