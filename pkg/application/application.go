package application

import (
	"context"
	"sort"

	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/yandex"
	"golang.org/x/sync/errgroup"
)

// Application caches the server groups and load balancers of one
// application.
type Application struct {
	LoadBalancers *DataSource[structs.LoadBalancer]
	Logger        *logger.Logger
	Name          string
	ServerGroups  *DataSource[structs.ServerGroup]

	provider structs.Provider
}

func New(p structs.Provider, name string) *Application {
	a := &Application{
		Logger:   logger.New("ns=application").Namespace("app=%s", name),
		Name:     name,
		provider: p,
	}

	a.ServerGroups = NewDataSource("serverGroup", a.fetchServerGroups, yandex.NormalizeServerGroup, (*structs.ServerGroup).DeepCopy)
	a.LoadBalancers = NewDataSource("loadBalancer", a.fetchLoadBalancers, yandex.NormalizeLoadBalancer, (*structs.LoadBalancer).DeepCopy)

	return a
}

func (a *Application) fetchServerGroups(ctx context.Context) ([]structs.ServerGroup, error) {
	return a.provider.WithContext(ctx).ServerGroupList(a.Name)
}

func (a *Application) fetchLoadBalancers(ctx context.Context) ([]structs.LoadBalancer, error) {
	return a.provider.WithContext(ctx).LoadBalancerList(a.Name)
}

// Ready loads both data sources if they have not been loaded yet.
func (a *Application) Ready(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return a.ServerGroups.Ready(ctx) })
	eg.Go(func() error { return a.LoadBalancers.Ready(ctx) })

	return eg.Wait()
}

// Refresh reloads both data sources.
func (a *Application) Refresh(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return a.ServerGroups.Refresh(ctx) })
	eg.Go(func() error { return a.LoadBalancers.Refresh(ctx) })

	return eg.Wait()
}

func (a *Application) ServerGroup(account, region, name string) (*structs.ServerGroup, error) {
	return a.ServerGroups.Find(name, func(sg structs.ServerGroup) bool {
		return sg.Name == name && matches(sg.Account, account) && matches(sg.Region, region)
	})
}

func (a *Application) LoadBalancer(account, region, name string) (*structs.LoadBalancer, error) {
	return a.LoadBalancers.Find(name, func(lb structs.LoadBalancer) bool {
		return lb.Name == name && matches(lb.Account, account) && matches(lb.Region, region)
	})
}

// Clusters lists the cluster names with server groups in account and region.
// An empty region matches every region.
func (a *Application) Clusters(account, region string) []string {
	seen := map[string]bool{}
	names := []string{}

	for _, sg := range a.ServerGroups.Data() {
		if sg.Account != account || !matches(sg.Region, region) || seen[sg.Cluster] {
			continue
		}

		seen[sg.Cluster] = true
		names = append(names, sg.Cluster)
	}

	sort.Strings(names)

	return names
}

// ClustersByAccount groups cluster names by account.
func (a *Application) ClustersByAccount(region string) map[string][]string {
	out := map[string][]string{}
	seen := map[string]bool{}

	for _, sg := range a.ServerGroups.Data() {
		key := sg.Account + "/" + sg.Cluster

		if !matches(sg.Region, region) || seen[key] {
			continue
		}

		seen[key] = true
		out[sg.Account] = append(out[sg.Account], sg.Cluster)
	}

	for _, names := range out {
		sort.Strings(names)
	}

	return out
}

func (a *Application) ServerGroupsInCluster(account, region, cluster string) structs.ServerGroups {
	sgs := structs.ServerGroups{}

	for _, sg := range a.ServerGroups.Data() {
		if sg.Cluster == cluster && sg.Account == account && matches(sg.Region, region) {
			sgs = append(sgs, sg)
		}
	}

	sort.Slice(sgs, sgs.Less)

	return sgs
}

func matches(value, filter string) bool {
	return filter == "" || value == filter
}
