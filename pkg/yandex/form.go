package yandex

import (
	"context"
	"sort"
	"sync"

	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/loader"
	"github.com/deckops/deck/pkg/options"
	"github.com/deckops/deck/pkg/structs"
	"golang.org/x/sync/errgroup"
)

// ServerGroupForm loads the option lists the server group wizard offers.
// Lists that fail to load are empty.
type ServerGroupForm struct {
	Logger *logger.Logger

	account         string
	accounts        structs.Accounts
	images          structs.Images
	loader          *loader.Loader
	lock            sync.Mutex
	provider        structs.Provider
	serviceAccounts structs.ServiceAccounts
	subnets         structs.Subnets
}

func NewServerGroupForm(ctx context.Context, p structs.Provider) *ServerGroupForm {
	return &ServerGroupForm{
		Logger:   logger.New("ns=form.servergroup"),
		loader:   loader.New(ctx),
		provider: p,
	}
}

// Preload fetches the accounts and subnets in parallel and starts loading the
// options of account. Nothing is applied once the form is closed.
func (f *ServerGroupForm) Preload(ctx context.Context, account string) error {
	log := f.Logger.At("preload").Start()

	var g errgroup.Group

	g.Go(func() error {
		return loader.Run(ctx, f.loader, "accounts", func(ctx context.Context) (structs.Accounts, error) {
			return f.provider.WithContext(ctx).AccountList(CloudProvider)
		}, func(as structs.Accounts) {
			if as == nil {
				as = structs.Accounts{}
			}
			sort.Slice(as, as.Less)
			f.lock.Lock()
			f.accounts = as
			f.lock.Unlock()
		})
	})

	g.Go(func() error {
		return loader.Run(ctx, f.loader, "subnets", func(ctx context.Context) (structs.Subnets, error) {
			return f.provider.WithContext(ctx).SubnetList(CloudProvider)
		}, func(ss structs.Subnets) {
			if ss == nil {
				ss = structs.Subnets{}
			}
			sort.Slice(ss, ss.Less)
			f.lock.Lock()
			f.subnets = ss
			f.lock.Unlock()
		})
	})

	if err := g.Wait(); err != nil {
		return log.Error(err)
	}

	f.AccountChanged(account)

	log.Success()

	return nil
}

// AccountChanged reloads the service accounts and images of account. Loads
// for a previous account are cancelled and never applied.
func (f *ServerGroupForm) AccountChanged(account string) {
	reset := f.loader.Do(func() {
		f.lock.Lock()
		f.account = account
		f.serviceAccounts = nil
		f.images = nil
		f.lock.Unlock()
	})

	if !reset || account == "" {
		return
	}

	loader.Load(f.loader, "serviceAccounts", func(ctx context.Context) (structs.ServiceAccounts, error) {
		return f.provider.WithContext(ctx).ServiceAccountList(account)
	}, func(sas structs.ServiceAccounts) {
		if sas == nil {
			sas = structs.ServiceAccounts{}
		}
		sort.Slice(sas, sas.Less)
		f.lock.Lock()
		f.serviceAccounts = sas
		f.lock.Unlock()
	})

	loader.Load(f.loader, "images", func(ctx context.Context) (structs.Images, error) {
		return f.provider.WithContext(ctx).ImageFind(structs.ImageFindOptions{
			Account:  options.String(account),
			Provider: options.String(CloudProvider),
			Query:    options.String("*"),
		})
	}, func(is structs.Images) {
		if is == nil {
			is = structs.Images{}
		}
		sort.Slice(is, is.Less)
		f.lock.Lock()
		f.images = is
		f.lock.Unlock()
	})
}

// Loading reports whether service accounts or images are still loading.
func (f *ServerGroupForm) Loading() bool {
	return f.loader.Current("serviceAccounts") || f.loader.Current("images")
}

func (f *ServerGroupForm) Accounts() []string {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.accounts.Names()
}

func (f *ServerGroupForm) Images() structs.Images {
	f.lock.Lock()
	defer f.lock.Unlock()

	return append(structs.Images(nil), f.images...)
}

func (f *ServerGroupForm) ServiceAccounts() structs.ServiceAccounts {
	f.lock.Lock()
	defer f.lock.Unlock()

	return append(structs.ServiceAccounts(nil), f.serviceAccounts...)
}

// Subnets returns the subnets of the current account in zones.
func (f *ServerGroupForm) Subnets(zones []string) structs.Subnets {
	f.lock.Lock()
	defer f.lock.Unlock()

	return SubnetsFor(f.subnets, f.account, zones)
}

// BackingData snapshots the loaded lists for the command.
func (f *ServerGroupForm) BackingData() structs.BackingData {
	f.lock.Lock()
	defer f.lock.Unlock()

	b := structs.BackingData{
		Accounts: f.accounts.Names(),
		Images:   append([]structs.Image(nil), f.images...),
		Subnets:  append([]structs.Subnet(nil), f.subnets...),
	}

	if f.serviceAccounts != nil {
		b.ServiceAccounts = append([]structs.ServiceAccount{}, f.serviceAccounts...)
	}

	return b
}

// Close cancels outstanding loads. Nothing is applied after Close returns.
func (f *ServerGroupForm) Close() {
	f.loader.Close()
}

func (f *ServerGroupForm) Closed() bool {
	return f.loader.Closed()
}

// ClusterPreview describes the cluster a command will deploy into.
type ClusterPreview struct {
	Name              string
	CreatesNewCluster bool
	ShowAsWarning     bool
	LatestServerGroup *structs.ServerGroup
}

// PreviewCluster names the cluster of cmd. The preview is a warning when a
// create targets an existing cluster or any other mode starts a new one.
func PreviewCluster(cmd Command, existing structs.ServerGroups) ClusterPreview {
	p := ClusterPreview{
		Name:              helpers.ClusterName(cmd.Application, cmd.Stack, cmd.FreeFormDetails),
		CreatesNewCluster: true,
	}

	for i := range existing {
		sg := existing[i]

		if helpers.CoalesceString(sg.Cluster, helpers.ParseServerGroupName(sg.Name).Cluster) != p.Name {
			continue
		}

		p.CreatesNewCluster = false

		if sg.Account != cmd.Credentials {
			continue
		}

		if p.LatestServerGroup == nil || sg.CreatedTime >= p.LatestServerGroup.CreatedTime {
			p.LatestServerGroup = sg.DeepCopy()
		}
	}

	create := cmd.ViewState.Mode == structs.ModeCreate

	p.ShowAsWarning = (create && !p.CreatesNewCluster) || (!create && p.CreatesNewCluster)

	return p
}

// LoadBalancerForm loads the accounts and existing load balancer names the
// load balancer wizard checks against.
type LoadBalancerForm struct {
	Logger *logger.Logger

	accounts structs.Accounts
	app      string
	loader   *loader.Loader
	lock     sync.Mutex
	names    map[string][]string
	provider structs.Provider
}

func NewLoadBalancerForm(ctx context.Context, p structs.Provider, app string) *LoadBalancerForm {
	return &LoadBalancerForm{
		Logger:   logger.New("ns=form.loadbalancer"),
		app:      app,
		loader:   loader.New(ctx),
		names:    map[string][]string{},
		provider: p,
	}
}

// Preload fetches accounts and the application's load balancers in parallel.
// Nothing is applied once the form is closed.
func (f *LoadBalancerForm) Preload(ctx context.Context) error {
	log := f.Logger.At("preload").Start()

	var g errgroup.Group

	g.Go(func() error {
		return loader.Run(ctx, f.loader, "accounts", func(ctx context.Context) (structs.Accounts, error) {
			return f.provider.WithContext(ctx).AccountList(CloudProvider)
		}, func(as structs.Accounts) {
			if as == nil {
				as = structs.Accounts{}
			}
			sort.Slice(as, as.Less)
			f.lock.Lock()
			f.accounts = as
			f.lock.Unlock()
		})
	})

	g.Go(func() error {
		return loader.Run(ctx, f.loader, "loadBalancers", func(ctx context.Context) (structs.LoadBalancers, error) {
			return f.provider.WithContext(ctx).LoadBalancerList(f.app)
		}, func(lbs structs.LoadBalancers) {
			f.setLoadBalancers(lbs)
		})
	})

	if err := g.Wait(); err != nil {
		return log.Error(err)
	}

	log.Success()

	return nil
}

// Refresh reloads the existing load balancer names in the background.
func (f *LoadBalancerForm) Refresh() {
	loader.Load(f.loader, "loadBalancers", func(ctx context.Context) (structs.LoadBalancers, error) {
		return f.provider.WithContext(ctx).LoadBalancerList(f.app)
	}, func(lbs structs.LoadBalancers) {
		if lbs != nil {
			f.setLoadBalancers(lbs)
		}
	})
}

func (f *LoadBalancerForm) setLoadBalancers(lbs structs.LoadBalancers) {
	names := map[string][]string{}

	for _, lb := range lbs {
		names[lb.Account] = append(names[lb.Account], lb.Name)
	}

	f.lock.Lock()
	f.names = names
	f.lock.Unlock()
}

func (f *LoadBalancerForm) Accounts() []string {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.accounts.Names()
}

// Names returns the load balancer names that exist in account.
func (f *LoadBalancerForm) Names(account string) []string {
	f.lock.Lock()
	defer f.lock.Unlock()

	return append([]string(nil), f.names[account]...)
}

func (f *LoadBalancerForm) Close() {
	f.loader.Close()
}
