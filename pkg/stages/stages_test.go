package stages_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/application"
	"github.com/deckops/deck/pkg/options"
	"github.com/deckops/deck/pkg/stages"
	"github.com/deckops/deck/pkg/structs"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fxApplication = &structs.Application{
	Name: "app",
	Attributes: structs.ApplicationAttributes{
		PlatformHealthOnly:             true,
		PlatformHealthOnlyShowOverride: true,
	},
}

func lookup(t *testing.T, typ string) *stages.Config {
	c, err := stages.Lookup(typ)
	require.NoError(t, err)
	return c
}

func TestLookupUnknown(t *testing.T) {
	_, err := stages.Lookup("jenkins")
	require.True(t, structs.IsNotFound(err))

	for _, typ := range stages.Types() {
		require.Equal(t, typ, lookup(t, typ).Type)
	}
}

func TestInitializeBake(t *testing.T) {
	s := &structs.Stage{}

	lookup(t, stages.TypeBake).Initialize(fxApplication, s)

	require.Equal(t, "bake", s.Type)
	require.Equal(t, "yandex", s.CloudProvider)
	require.Equal(t, "ru-central1", s.Region)
	require.True(t, lookup(t, stages.TypeBake).Validate(s).Empty())
}

func TestInitializeResize(t *testing.T) {
	s := &structs.Stage{IsNew: true}

	lookup(t, stages.TypeResizeServerGroup).Initialize(fxApplication, s)

	require.Equal(t, "scale_exact", s.Action)
	require.Equal(t, &structs.Capacity{Min: 1, Max: 1, Desired: 1}, s.Capacity)
	require.Equal(t, []string{"Yandex"}, s.InterestingHealthProviderNames)

	s = &structs.Stage{Capacity: &structs.Capacity{Min: 2, Max: 4, Desired: 3}}

	lookup(t, stages.TypeResizeServerGroup).Initialize(fxApplication, s)

	require.Equal(t, &structs.Capacity{Min: 2, Max: 4, Desired: 3}, s.Capacity)
	require.Nil(t, s.InterestingHealthProviderNames)

	stages.SetInstanceCount(s, 5)
	require.Equal(t, &structs.Capacity{Min: 5, Max: 5, Desired: 5}, s.Capacity)
}

func TestInitializeClone(t *testing.T) {
	s := &structs.Stage{IsNew: true}

	lookup(t, stages.TypeCloneServerGroup).Initialize(fxApplication, s)

	require.Equal(t, "app", s.Application)
	require.Equal(t, "current_asg_dynamic", s.Target)
	require.Equal(t, options.Bool(true), s.UseSourceCapacity)
	require.Equal(t, options.Bool(true), s.EnableTraffic)
	require.Equal(t, []string{"Yandex"}, s.InterestingHealthProviderNames)

	s = &structs.Stage{Target: "oldest_asg_dynamic"}

	lookup(t, stages.TypeCloneServerGroup).Initialize(&structs.Application{Name: "app"}, s)

	require.Equal(t, "oldest_asg_dynamic", s.Target)
	require.Nil(t, s.UseSourceCapacity)
	require.Nil(t, s.EnableTraffic)
	require.Nil(t, s.InterestingHealthProviderNames)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		Type   string
		Stage  structs.Stage
		Errors structs.Errors
	}{
		{
			stages.TypeFindImageFromTags,
			structs.Stage{},
			structs.Errors{
				"packageName": "packageName is a required field for Find Image from Tags stages",
				"tags":        "tags is a required field for Find Image from Tags stages",
				"credentials": "account is a required field for Find Image from Tags stages",
			},
		},
		{
			stages.TypeFindImageFromTags,
			structs.Stage{PackageName: "app", Tags: map[string]string{"stable": "true"}, Credentials: "prod"},
			structs.Errors{},
		},
		{
			stages.TypeCloneServerGroup,
			structs.Stage{Target: "current_asg_dynamic", Credentials: "prod"},
			structs.Errors{"targetCluster": "cluster is a required field for Clone Server Group stages"},
		},
		{
			stages.TypeDestroyServerGroup,
			structs.Stage{Cluster: "app-web", Credentials: "prod"},
			structs.Errors{"target": "target is a required field for Destroy Server Group stages"},
		},
		{
			stages.TypeEnableServerGroup,
			structs.Stage{Cluster: "app-web", Target: "current_asg_dynamic", Credentials: "prod"},
			structs.Errors{},
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.Type, tt.Stage), func(t *testing.T) {
			require.Equal(t, tt.Errors, lookup(t, tt.Type).Validate(&tt.Stage))
		})
	}
}

func TestBaseOsOptions(t *testing.T) {
	p := &structs.MockProvider{}
	p.On("WithContext", mock.Anything).Return(p).Maybe()
	p.On("BaseOsList", "yandex").Return(&structs.BaseOsOptions{
		CloudProvider: "yandex",
		BaseImages: []structs.BaseOs{
			{Id: "ubuntu", DetailedDescription: "Ubuntu 20.04"},
			{Id: "centos", DetailedDescription: "CentOS 8"},
		},
	}, nil).Once()

	os, err := stages.BaseOsOptions(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, os, 2)
	require.Equal(t, "ubuntu", os[0].Id)
	require.True(t, os[0].IsImageFamily)
	require.True(t, os[1].IsImageFamily)

	p.On("BaseOsList", "yandex").Return(nil, fmt.Errorf("err1")).Once()

	_, err = stages.BaseOsOptions(context.Background(), p)
	require.EqualError(t, err, "err1")

	p.AssertExpectations(t)
}

func testSelector(t *testing.T, typ string, fn func(*stages.ClusterSelector)) {
	p := &structs.MockProvider{}
	p.On("WithContext", mock.Anything).Return(p).Maybe()
	p.On("ServerGroupList", "app").Return(structs.ServerGroups{
		{Name: "app-web-v001", Account: "prod", Region: "ru-central1"},
		{Name: "app-api-canary-v000", Account: "prod", Region: "ru-central1"},
		{Name: "app-v000", Account: "staging", Region: "ru-central1"},
	}, nil).Once()
	p.On("LoadBalancerList", "app").Return(structs.LoadBalancers{}, nil).Once()

	a := application.New(p, "app")
	a.ServerGroups.Logger = logger.Discard
	a.LoadBalancers.Logger = logger.Discard

	fn(stages.NewClusterSelector(a, lookup(t, typ)))

	p.AssertExpectations(t)
}

func TestClusterSelectorClusters(t *testing.T) {
	testSelector(t, stages.TypeDisableServerGroup, func(cs *stages.ClusterSelector) {
		s := &structs.Stage{Credentials: "prod", Cluster: "app-old"}

		clusters, err := cs.Clusters(context.Background(), s)
		require.NoError(t, err)
		require.Equal(t, []string{"app-api-canary", "app-web", "app-old"}, clusters)

		s.Credentials = "staging"
		s.Cluster = "app"

		clusters, err = cs.Clusters(context.Background(), s)
		require.NoError(t, err)
		require.Equal(t, []string{"app"}, clusters)
	})
}

func TestClusterSelectorSelect(t *testing.T) {
	testSelector(t, stages.TypeCloneServerGroup, func(cs *stages.ClusterSelector) {
		s := &structs.Stage{Credentials: "prod", TargetCluster: "app-web"}

		_, err := cs.Clusters(context.Background(), s)
		require.NoError(t, err)

		cs.SelectAccount(s, "staging")
		require.Equal(t, "staging", s.Credentials)
		require.Equal(t, "", s.TargetCluster)
		require.Equal(t, []string{"ru-central1"}, s.Regions)
		require.Equal(t, "ru-central1", s.Region)

		cs.SelectCluster(s, "app-api-canary")
		require.Equal(t, "app-api-canary", s.TargetCluster)
		require.Equal(t, &structs.Moniker{App: "app", Stack: "api", Detail: "canary", Cluster: "app-api-canary"}, s.Moniker)

		cs.SelectCluster(s, "app-new")
		require.Equal(t, "app-new", s.TargetCluster)
		require.Nil(t, s.Moniker)
	})
}
