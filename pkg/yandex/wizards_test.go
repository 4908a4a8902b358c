package yandex_test

import (
	"context"
	"testing"
	"time"

	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/wizard"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func wizardOptions(p structs.Provider) yandex.WizardOptions {
	return yandex.WizardOptions{
		Provider:    p,
		Application: "app",
		Interval:    5 * time.Millisecond,
		Timeout:     time.Second,
		Logger:      logger.Discard,
	}
}

func TestServerGroupWizardSubmit(t *testing.T) {
	testProvider(t, func(p *structs.MockProvider) {
		p.On("ServerGroupClone", "app", mock.MatchedBy(func(conf structs.DeployConfiguration) bool {
			return conf.Account == "prod" && conf.Provider == "yandex" && conf.Source == nil && len(conf.Zones) == 2
		})).Return(&structs.Task{Id: "t1", Status: structs.TaskStatusRunning}, nil)
		p.On("TaskGet", "t1").Return(&structs.Task{Id: "t1", Status: structs.TaskStatusSucceeded}, nil)

		completed := []string{}

		opts := wizardOptions(p)
		opts.OnComplete = func(t *structs.Task) { completed = append(completed, t.Id) }

		w := yandex.NewServerGroupWizard(yandex.NewServerGroupCommand(fxApplication, structs.ModeCreate), opts)

		require.Equal(t, yandex.TitleCreateServerGroup, w.Title())
		require.Equal(t, wizard.StateEditing, w.State())

		_, err := w.Submit(context.Background())
		require.ErrorIs(t, err, wizard.ErrInvalid)
		require.Equal(t, 0, w.Page())

		require.NoError(t, w.Dispatch(yandex.SetZones("ru-central1-a", "ru-central1-b")))
		require.NoError(t, w.Dispatch(yandex.SetImage("img1")))

		_, err = w.Submit(context.Background())
		require.NoError(t, err)
		require.Equal(t, wizard.StateClosed, w.State())
		require.Equal(t, []string{"t1"}, completed)
	})
}

func TestServerGroupWizardPipeline(t *testing.T) {
	testProvider(t, func(p *structs.MockProvider) {
		base := yandex.NewServerGroupCommandForPipeline(&structs.Stage{RefId: "1"}, &structs.Pipeline{Id: "p1", Application: "app"})

		w := yandex.NewServerGroupWizard(base, wizardOptions(p))

		require.Equal(t, wizard.StateTemplateSelection, w.State())

		tmpl := yandex.ServerGroupCommandFromTemplate(fxApplication, base, fxServerGroup())
		require.NoError(t, w.SelectTemplate(tmpl))

		_, err := w.Submit(context.Background())
		require.NoError(t, err)

		c, ok := w.Result()
		require.True(t, ok)
		require.Equal(t, "web", c.Stack)
		require.Equal(t, yandex.ImageSourcePriorStage, c.ImageSource)

		conf := yandex.ServerGroupCommandToDeployConfiguration(&c)
		require.Equal(t, "prod", conf.Account)
	})
}

func TestLoadBalancerWizardCreate(t *testing.T) {
	testProvider(t, func(p *structs.MockProvider) {
		p.On("LoadBalancerUpsert", "app", mock.MatchedBy(func(c structs.LoadBalancerUpsertCommand) bool {
			return c.Name == "app-web" && c.CloudProvider == "yandex" && c.Region == "ru-central1"
		}), "Create").Return(&structs.Task{Id: "t2"}, nil)
		p.On("TaskGet", "t2").Return(&structs.Task{Id: "t2", Status: structs.TaskStatusSucceeded}, nil)

		w := yandex.NewLoadBalancerWizard(yandex.NewLoadBalancerTemplate(fxApplication), nil, false, wizardOptions(p))

		require.Equal(t, yandex.TitleCreateLoadBalancer, w.Title())

		require.NoError(t, w.Dispatch(yandex.SetLoadBalancerAccount("prod")))
		require.NoError(t, w.Dispatch(yandex.SetLoadBalancerStack("web")))
		require.NoError(t, w.Dispatch(yandex.AddListener()))

		_, err := w.Submit(context.Background())
		require.NoError(t, err)
		require.Equal(t, wizard.StateClosed, w.State())
	})
}

func TestLoadBalancerWizardUpdateFailure(t *testing.T) {
	testProvider(t, func(p *structs.MockProvider) {
		p.On("LoadBalancerUpsert", "app", mock.Anything, "Update").Return(&structs.Task{Id: "t3"}, nil)
		p.On("TaskGet", "t3").Return(&structs.Task{
			Id:     "t3",
			Status: structs.TaskStatusTerminal,
			Variables: []structs.TaskVariable{
				{Key: "exception", Value: map[string]interface{}{"details": map[string]interface{}{"error": "listener port in use"}}},
			},
		}, nil)

		lb := &structs.LoadBalancer{Id: "lb-1", Name: "app-web", Account: "prod", Region: "ru-central1"}

		w := yandex.NewLoadBalancerWizard(yandex.LoadBalancerToUpsertCommand(lb), func(string) []string { return []string{"app-web"} }, false, wizardOptions(p))

		require.Equal(t, yandex.TitleUpdateLoadBalancer, w.Title())

		_, err := w.Submit(context.Background())
		require.EqualError(t, err, "task failed: listener port in use")
		require.Equal(t, wizard.StateEditing, w.State())
	})
}
