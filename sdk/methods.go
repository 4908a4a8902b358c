package sdk

import (
	"fmt"
	"net/url"

	"github.com/convox/stdsdk"
	"github.com/deckops/deck/pkg/structs"
)

func (c *Client) AccountList(provider string) (structs.Accounts, error) {
	var v structs.Accounts

	if err := c.get("/credentials", stdsdk.RequestOptions{Query: stdsdk.Query{"expand": "true"}}, &v); err != nil {
		return nil, err
	}

	as := structs.Accounts{}

	for _, a := range v {
		if provider == "" || hasProvider(coalesce(a.CloudProvider, a.Type), provider) {
			as = append(as, a)
		}
	}

	return as, nil
}

func (c *Client) ApplicationGet(name string) (*structs.Application, error) {
	var v *structs.Application

	err := c.get(fmt.Sprintf("/applications/%s", url.PathEscape(name)), stdsdk.RequestOptions{}, &v)

	return v, err
}

func (c *Client) BaseOsList(provider string) (*structs.BaseOsOptions, error) {
	var v *structs.BaseOsOptions

	err := c.get(fmt.Sprintf("/bakery/options/%s", provider), stdsdk.RequestOptions{}, &v)

	return v, err
}

// ImageFind searches images. Lookup failures yield an empty list.
func (c *Client) ImageFind(opts structs.ImageFindOptions) (structs.Images, error) {
	ro, err := stdsdk.MarshalOptions(opts)
	if err != nil {
		return nil, err
	}

	var v structs.Images

	if err := c.get("/images/find", ro, &v); err != nil {
		return structs.Images{}, nil
	}

	if v == nil {
		v = structs.Images{}
	}

	return v, nil
}

func (c *Client) LoadBalancerDelete(app string, cmd structs.LoadBalancerDeleteCommand) (*structs.Task, error) {
	job := structs.TaskJob{
		"type":             "deleteLoadBalancer",
		"cloudProvider":    cmd.CloudProvider,
		"credentials":      cmd.Credentials,
		"regions":          cmd.Regions,
		"loadBalancerName": cmd.LoadBalancerName,
	}

	region := ""
	if len(cmd.Regions) > 0 {
		region = cmd.Regions[0]
	}

	return c.taskCreate(app, fmt.Sprintf("Delete load balancer: %s in %s:%s", cmd.LoadBalancerName, cmd.Credentials, region), job)
}

func (c *Client) LoadBalancerList(app string) (structs.LoadBalancers, error) {
	var v structs.LoadBalancers

	err := c.get(fmt.Sprintf("/applications/%s/loadBalancers", url.PathEscape(app)), stdsdk.RequestOptions{}, &v)

	return v, err
}

func (c *Client) LoadBalancerUpsert(app string, cmd structs.LoadBalancerUpsertCommand, descriptor string) (*structs.Task, error) {
	job, err := jobFrom("upsertLoadBalancer", cmd)
	if err != nil {
		return nil, err
	}

	job["loadBalancerName"] = cmd.Name

	return c.taskCreate(app, fmt.Sprintf("%s Load Balancer: %s", descriptor, cmd.Name), job)
}

func (c *Client) ServerGroupClone(app string, cfg structs.DeployConfiguration) (*structs.Task, error) {
	typ := "createServerGroup"
	desc := fmt.Sprintf("Create New Server Group in cluster %s", clusterOf(cfg))

	if cfg.Source != nil {
		typ = "cloneServerGroup"
		desc = fmt.Sprintf("Create Cloned Server Group from %s", cfg.Source.AsgName)
	}

	job, err := jobFrom(typ, cfg)
	if err != nil {
		return nil, err
	}

	return c.taskCreate(app, desc, job)
}

func (c *Client) ServerGroupDestroy(app string, sg structs.ServerGroup, opts structs.ServerGroupActionOptions) (*structs.Task, error) {
	job, err := serverGroupJob("destroyServerGroup", sg, opts)
	if err != nil {
		return nil, err
	}

	return c.taskCreate(app, fmt.Sprintf("Destroy Server Group: %s", sg.Name), job)
}

func (c *Client) ServerGroupDisable(app string, sg structs.ServerGroup, opts structs.ServerGroupActionOptions) (*structs.Task, error) {
	job, err := serverGroupJob("disableServerGroup", sg, opts)
	if err != nil {
		return nil, err
	}

	return c.taskCreate(app, fmt.Sprintf("Disable Server Group: %s", sg.Name), job)
}

func (c *Client) ServerGroupEnable(app string, sg structs.ServerGroup, opts structs.ServerGroupActionOptions) (*structs.Task, error) {
	job, err := serverGroupJob("enableServerGroup", sg, opts)
	if err != nil {
		return nil, err
	}

	return c.taskCreate(app, fmt.Sprintf("Enable Server Group: %s", sg.Name), job)
}

func (c *Client) ServerGroupGet(app, account, region, name string) (*structs.ServerGroup, error) {
	var v *structs.ServerGroup

	err := c.get(fmt.Sprintf("/applications/%s/serverGroups/%s/%s/%s", url.PathEscape(app), url.PathEscape(account), url.PathEscape(region), url.PathEscape(name)), stdsdk.RequestOptions{}, &v)

	return v, err
}

func (c *Client) ServerGroupList(app string) (structs.ServerGroups, error) {
	var v structs.ServerGroups

	err := c.get(fmt.Sprintf("/applications/%s/serverGroups", url.PathEscape(app)), stdsdk.RequestOptions{}, &v)

	return v, err
}

func (c *Client) ServerGroupResize(app string, sg structs.ServerGroup, opts structs.ServerGroupResizeOptions) (*structs.Task, error) {
	job, err := serverGroupJob("resizeServerGroup", sg, opts)
	if err != nil {
		return nil, err
	}

	cp := opts.Capacity

	return c.taskCreate(app, fmt.Sprintf("Resize Server Group: %s to %d/%d/%d", sg.Name, cp.Min, cp.Desired, cp.Max), job)
}

func (c *Client) ServerGroupRollback(app string, sg structs.ServerGroup, opts structs.ServerGroupRollbackOptions) (*structs.Task, error) {
	job, err := serverGroupJob("rollbackServerGroup", sg, opts)
	if err != nil {
		return nil, err
	}

	return c.taskCreate(app, fmt.Sprintf("Rollback Server Group: %s", sg.Name), job)
}

func (c *Client) ServiceAccountList(account string) (structs.ServiceAccounts, error) {
	var v structs.ServiceAccounts

	err := c.get(fmt.Sprintf("/yandex/serviceAccounts/%s", url.PathEscape(account)), stdsdk.RequestOptions{}, &v)

	return v, err
}

func (c *Client) SubnetList(provider string) (structs.Subnets, error) {
	var v structs.Subnets

	err := c.get(fmt.Sprintf("/subnets/%s", provider), stdsdk.RequestOptions{}, &v)

	return v, err
}

func (c *Client) TaskGet(id string) (*structs.Task, error) {
	var v *structs.Task

	err := c.get(fmt.Sprintf("/tasks/%s", url.PathEscape(id)), stdsdk.RequestOptions{}, &v)

	return v, err
}
