package cli_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/deckops/deck/pkg/cli"
	"github.com/deckops/deck/pkg/drafts"
	"github.com/deckops/deck/pkg/structs"
	"github.com/stretchr/testify/require"
)

func TestStages(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		res, err := testExecute(e, "stages", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		res.RequireStdout(t, []string{
			"TYPE                LABEL                 CLUSTER FIELD",
			"bake                Bake",
			"findImageFromTags   Find Image from Tags",
			"resizeServerGroup   Resize Server Group   cluster",
			"cloneServerGroup    Clone Server Group    targetCluster",
			"destroyServerGroup  Destroy Server Group  cluster",
			"disableServerGroup  Disable Server Group  cluster",
			"enableServerGroup   Enable Server Group   cluster",
		})
	})
}

func TestStagesBaseOs(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("BaseOsList", "yandex").Return(&structs.BaseOsOptions{
			CloudProvider: "yandex",
			BaseImages: []structs.BaseOs{
				{Id: "ubuntu", ShortDescription: "Ubuntu", DetailedDescription: "Ubuntu 20.04"},
				{Id: "centos", ShortDescription: "CentOS", DetailedDescription: "CentOS 8"},
			},
		}, nil)

		res, err := testExecute(e, "stages baseos", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		res.RequireStdout(t, []string{
			"ID      NAME    DESCRIPTION",
			"ubuntu  Ubuntu  Ubuntu 20.04",
			"centos  CentOS  CentOS 8",
		})
	})
}

func TestStagesBaseOsError(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("BaseOsList", "yandex").Return(nil, fmt.Errorf("err1"))

		res, err := testExecute(e, "stages baseos", nil)
		require.NoError(t, err)
		require.Equal(t, 1, res.Code)
		res.RequireStderr(t, []string{"ERROR: err1"})
	})
}

func TestStagesDeployAdd(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("ApplicationGet", "app").Return(fxApplication(), nil)
		expectForm(p, "default")

		res, err := testExecute(e, "stages deploy add pipe1 deploy1 -a app --stack web --zones ru-central1-a", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		require.True(t, strings.HasPrefix(res.Stdout, "Adding app-web to pipe1/deploy1... OK, "))

		s, err := drafts.Open(e.Config.Drafts)
		require.NoError(t, err)
		defer s.Close()

		ds, err := s.List("pipe1", "deploy1")
		require.NoError(t, err)
		require.Len(t, ds, 1)
		require.Equal(t, "web", ds[0].Configuration.Stack)
		require.Equal(t, "priorStage", ds[0].Configuration.ImageSource)
		require.Contains(t, res.Stdout, ds[0].Id)
	})
}

func TestStagesDeployAddInvalid(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("ApplicationGet", "app").Return(fxApplication(), nil)
		expectForm(p, "default")

		res, err := testExecute(e, "stages deploy add pipe1 deploy1 -a app --stack web", nil)
		require.NoError(t, err)
		require.Equal(t, 1, res.Code)
		res.RequireStderr(t, []string{"ERROR: zones: At least one availability zone is required."})
		res.RequireStdout(t, []string{""})
	})
}

func TestStagesDeployListRemove(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		s, err := drafts.Open(e.Config.Drafts)
		require.NoError(t, err)

		d, err := s.Add("pipe1", "deploy1", structs.DeployConfiguration{
			Application: "app",
			Stack:       "web",
			Credentials: "prod",
			Zones:       []string{"ru-central1-a", "ru-central1-b"},
			Capacity:    structs.Capacity{Min: 2, Max: 2, Desired: 2},
		})
		require.NoError(t, err)
		require.NoError(t, s.Close())

		res, err := testExecute(e, "stages deploy list pipe1 deploy1", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})

		lines := strings.Split(strings.TrimSuffix(res.Stdout, "\n"), "\n")
		require.Len(t, lines, 2)
		require.True(t, strings.HasPrefix(lines[0], "ID"))
		require.Equal(t, []string{d.Id, "app-web", "prod", "ru-central1-a,ru-central1-b", "2"}, strings.Fields(lines[1])[0:5])

		res, err = testExecute(e, fmt.Sprintf("stages deploy remove pipe1 deploy1 %s", d.Id), nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		res.RequireStdout(t, []string{fmt.Sprintf("Removing %s... OK", d.Id)})

		res, err = testExecute(e, "stages deploy list pipe1 deploy1", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStdout(t, []string{"ID  CLUSTER  ACCOUNT  ZONES  SIZE  UPDATED"})
	})
}
