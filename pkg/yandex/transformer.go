package yandex

import (
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
)

// NormalizeServerGroup returns a copy of sg with its provider filled in,
// detached instances merged into the instance list and instance counts
// recomputed. Normalizing twice gives the same result.
func NormalizeServerGroup(sg *structs.ServerGroup) *structs.ServerGroup {
	out := sg.DeepCopy()
	if out == nil {
		return nil
	}

	out.CloudProvider = helpers.CoalesceString(out.CloudProvider, CloudProvider)
	out.Type = helpers.CoalesceString(out.Type, CloudProvider)

	if out.Cluster == "" {
		out.Cluster = helpers.ParseServerGroupName(out.Name).Cluster
	}

	out.Instances = mergeDetached(out.Instances, out.DetachedInstances)

	detached := idSet(out.DetachedInstances)

	out.InstanceCounts = structs.InstanceCounts{}

	for i := range out.Instances {
		in := &out.Instances[i]

		in.Provider = helpers.CoalesceString(in.Provider, out.CloudProvider)
		in.Account = helpers.CoalesceString(in.Account, out.Account)
		in.Region = helpers.CoalesceString(in.Region, out.Region)
		in.ServerGroup = out.Name

		if detached[in.Id] && in.State() == "" {
			in.HealthState = structs.HealthStateOutOfService
		}

		if s := in.State(); s != "" {
			out.InstanceCounts.Add(s)
		}
	}

	return out
}

// NormalizeLoadBalancer returns a copy of lb shaped for display: its server
// groups carry its account, region and provider, detached instances appear
// once as out of service instances and the instance counts and active
// instance list are recomputed. Normalizing twice gives the same result.
func NormalizeLoadBalancer(lb *structs.LoadBalancer) *structs.LoadBalancer {
	out := lb.DeepCopy()
	if out == nil {
		return nil
	}

	out.Provider = helpers.CoalesceString(out.Type, out.Provider, CloudProvider)
	out.CloudProvider = helpers.CoalesceString(out.CloudProvider, out.Provider)
	out.InstanceCounts = structs.InstanceCounts{}
	out.Instances = []structs.Instance{}

	for i := range out.ServerGroups {
		sg := &out.ServerGroups[i]

		sg.Account = out.Account
		sg.Region = out.Region
		sg.CloudProvider = out.Provider

		detached := idSet(sg.DetachedInstances)

		sg.Instances = mergeDetached(sg.Instances, sg.DetachedInstances)

		for j := range sg.Instances {
			in := &sg.Instances[j]

			reported := len(in.Health) > 0 && in.Health[0].State != ""

			normalizeLoadBalancerInstance(in, out)

			switch {
			case reported:
				out.InstanceCounts.Add(in.HealthState)
			case detached[in.Id]:
				out.InstanceCounts.Add(structs.HealthStateOutOfService)
			}
		}

		if !sg.IsDisabled {
			out.Instances = append(out.Instances, sg.Instances...)
		}
	}

	return out
}

func normalizeLoadBalancerInstance(in *structs.Instance, lb *structs.LoadBalancer) {
	in.Provider = lb.Provider
	in.Account = lb.Account
	in.Region = lb.Region
	in.LoadBalancers = []string{lb.Name}

	health := structs.InstanceHealth{}
	if len(in.Health) > 0 {
		health = in.Health[0]
	}

	in.HealthState = helpers.CoalesceString(health.State, structs.HealthStateOutOfService)
	in.Health = []structs.InstanceHealth{health}
}

func mergeDetached(instances []structs.Instance, detached []string) []structs.Instance {
	if len(detached) == 0 {
		return instances
	}

	seen := map[string]bool{}

	for _, in := range instances {
		seen[in.Id] = true
	}

	for _, id := range detached {
		if seen[id] {
			continue
		}

		seen[id] = true

		instances = append(instances, structs.Instance{Id: id})
	}

	return instances
}

func idSet(ids []string) map[string]bool {
	set := map[string]bool{}

	for _, id := range ids {
		set[id] = true
	}

	return set
}

// ServerGroupCommandToDeployConfiguration converts an edited command into the
// configuration posted to the orchestrator. The clone source only survives in
// clone mode.
func ServerGroupCommandToDeployConfiguration(cmd *structs.ServerGroupCommand) *structs.DeployConfiguration {
	c := cmd.DeepCopy()

	conf := &structs.DeployConfiguration{
		Account:                 c.Credentials,
		Application:             c.Application,
		CloudProvider:           CloudProvider,
		Provider:                CloudProvider,
		Credentials:             c.Credentials,
		Region:                  c.Region,
		Stack:                   c.Stack,
		FreeFormDetails:         c.FreeFormDetails,
		Strategy:                c.Strategy,
		Termination:             c.Termination,
		Reason:                  c.Reason,
		Zones:                   c.Zones,
		GroupSize:               c.GroupSize,
		Capacity:                c.Capacity,
		ServiceAccountId:        c.ServiceAccountId,
		ImageSource:             c.ImageSource,
		ImageId:                 c.ImageId,
		ApplicationArtifact:     c.ApplicationArtifact,
		AutoScalePolicy:         c.AutoScalePolicy,
		DeployPolicy:            c.DeployPolicy,
		InstanceTemplate:        c.InstanceTemplate,
		LoadBalancerIntegration: c.LoadBalancerIntegration,
		HealthCheckSpecs:        c.HealthCheckSpecs,
		Labels:                  c.Labels,
		EnableTraffic:           c.EnableTraffic,
		Balancers:               c.Balancers,
	}

	if c.ViewState.Mode == structs.ModeClone {
		conf.Source = c.Source
	}

	return conf
}

// NewLoadBalancerTemplate builds the command for a new external load
// balancer named after the application.
func NewLoadBalancerTemplate(app *structs.Application) *structs.LoadBalancerUpsertCommand {
	name := appName(app)

	return &structs.LoadBalancerUpsertCommand{
		Name:          name,
		Moniker:       &structs.Moniker{App: name, Cluster: name},
		Region:        Region,
		CloudProvider: CloudProvider,
		LbType:        structs.LoadBalancerExternal,
		Listeners:     []structs.Listener{},
		ServerGroups:  []structs.LoadBalancerServerGroup{},
	}
}

// LoadBalancerToUpsertCommand builds the editable command for an existing
// load balancer.
func LoadBalancerToUpsertCommand(lb *structs.LoadBalancer) *structs.LoadBalancerUpsertCommand {
	c := lb.DeepCopy()

	n := helpers.ParseServerGroupName(c.Name)

	cmd := &structs.LoadBalancerUpsertCommand{
		Id:            c.Id,
		Name:          c.Name,
		Region:        c.Region,
		CloudProvider: helpers.CoalesceString(c.CloudProvider, CloudProvider),
		Credentials:   c.Account,
		LbType:        helpers.CoalesceString(c.BalancerType, structs.LoadBalancerExternal),
		Stack:         helpers.CoalesceString(c.Stack, n.Stack),
		Detail:        helpers.CoalesceString(c.Detail, n.Detail),
		Listeners:     c.Listeners,
		ServerGroups:  c.ServerGroups,
	}

	cmd.Moniker = &structs.Moniker{
		App:     n.Application,
		Stack:   cmd.Stack,
		Detail:  cmd.Detail,
		Cluster: c.Name,
	}

	if cmd.Listeners == nil {
		cmd.Listeners = []structs.Listener{}
	}

	if cmd.ServerGroups == nil {
		cmd.ServerGroups = []structs.LoadBalancerServerGroup{}
	}

	return cmd
}

// LoadBalancerUpsertDescription returns the command as it is posted to the
// orchestrator with the provider and region filled in.
func LoadBalancerUpsertDescription(cmd *structs.LoadBalancerUpsertCommand) *structs.LoadBalancerUpsertCommand {
	out := cmd.DeepCopy()

	out.CloudProvider = helpers.CoalesceString(out.CloudProvider, CloudProvider)
	out.Region = helpers.CoalesceString(out.Region, Region)

	if out.Listeners == nil {
		out.Listeners = []structs.Listener{}
	}

	if out.ServerGroups == nil {
		out.ServerGroups = []structs.LoadBalancerServerGroup{}
	}

	return out
}
