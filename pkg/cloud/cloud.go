package cloud

import (
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/pkg/errors"
)

type ServerGroupBuilder struct {
	New          func(app *structs.Application, mode structs.Mode) *structs.ServerGroupCommand
	FromExisting func(app *structs.Application, sg *structs.ServerGroup, mode structs.Mode) *structs.ServerGroupCommand
	ForPipeline  func(stage *structs.Stage, pipeline *structs.Pipeline) *structs.ServerGroupCommand
	FromPipeline func(app *structs.Application, conf *structs.DeployConfiguration, stage *structs.Stage, pipeline *structs.Pipeline) *structs.ServerGroupCommand
	FromTemplate func(app *structs.Application, base *structs.ServerGroupCommand, sg *structs.ServerGroup) *structs.ServerGroupCommand
}

type ServerGroupTransformer struct {
	Normalize             func(sg *structs.ServerGroup) *structs.ServerGroup
	ToDeployConfiguration func(cmd *structs.ServerGroupCommand) *structs.DeployConfiguration
}

type ServerGroupCapability struct {
	Builder        ServerGroupBuilder
	DetailSections func(sg *structs.ServerGroup) []yandex.DetailSection
	Transformer    ServerGroupTransformer
}

type LoadBalancerTransformer struct {
	Normalize       func(lb *structs.LoadBalancer) *structs.LoadBalancer
	NewTemplate     func(app *structs.Application) *structs.LoadBalancerUpsertCommand
	ToUpsertCommand func(lb *structs.LoadBalancer) *structs.LoadBalancerUpsertCommand
}

type LoadBalancerCapability struct {
	DetailSections func(lb *structs.LoadBalancer) []yandex.DetailSection
	Transformer    LoadBalancerTransformer
}

// Provider is everything the console knows about one cloud provider.
type Provider struct {
	DeploymentStrategies []yandex.Strategy
	InstanceDetails      func(in *structs.Instance) []yandex.DetailSection
	Key                  string
	LoadBalancer         LoadBalancerCapability
	Name                 string
	Regions              []string
	ServerGroup          ServerGroupCapability
	Zones                []string
}

var providers = map[string]Provider{
	yandex.CloudProvider: {
		DeploymentStrategies: yandex.Strategies,
		InstanceDetails:      yandex.InstanceDetails,
		Key:                  yandex.CloudProvider,
		LoadBalancer: LoadBalancerCapability{
			DetailSections: yandex.LoadBalancerDetails,
			Transformer: LoadBalancerTransformer{
				Normalize:       yandex.NormalizeLoadBalancer,
				NewTemplate:     yandex.NewLoadBalancerTemplate,
				ToUpsertCommand: yandex.LoadBalancerToUpsertCommand,
			},
		},
		Name:    "Yandex.Cloud",
		Regions: []string{yandex.Region},
		ServerGroup: ServerGroupCapability{
			Builder: ServerGroupBuilder{
				New:          yandex.NewServerGroupCommand,
				FromExisting: yandex.ServerGroupCommandFromExisting,
				ForPipeline:  yandex.NewServerGroupCommandForPipeline,
				FromPipeline: yandex.ServerGroupCommandFromPipeline,
				FromTemplate: yandex.ServerGroupCommandFromTemplate,
			},
			DetailSections: yandex.ServerGroupDetails,
			Transformer: ServerGroupTransformer{
				Normalize:             yandex.NormalizeServerGroup,
				ToDeployConfiguration: yandex.ServerGroupCommandToDeployConfiguration,
			},
		},
		Zones: yandex.Zones,
	},
}

// Lookup returns the provider registered under key.
func Lookup(key string) (*Provider, error) {
	p, ok := providers[key]
	if !ok {
		return nil, errors.WithStack(structs.ErrNotFound("cloud provider", key))
	}

	return &p, nil
}

// Keys lists the registered provider keys.
func Keys() []string {
	return []string{yandex.CloudProvider}
}
