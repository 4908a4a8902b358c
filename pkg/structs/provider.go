package structs

import "context"

type Provider interface {
	AccountList(provider string) (Accounts, error)
	ApplicationGet(name string) (*Application, error)
	BaseOsList(provider string) (*BaseOsOptions, error)
	ImageFind(opts ImageFindOptions) (Images, error)
	ServiceAccountList(account string) (ServiceAccounts, error)
	SubnetList(provider string) (Subnets, error)

	LoadBalancerDelete(app string, cmd LoadBalancerDeleteCommand) (*Task, error)
	LoadBalancerList(app string) (LoadBalancers, error)
	LoadBalancerUpsert(app string, cmd LoadBalancerUpsertCommand, descriptor string) (*Task, error)

	ServerGroupClone(app string, cfg DeployConfiguration) (*Task, error)
	ServerGroupDestroy(app string, sg ServerGroup, opts ServerGroupActionOptions) (*Task, error)
	ServerGroupDisable(app string, sg ServerGroup, opts ServerGroupActionOptions) (*Task, error)
	ServerGroupEnable(app string, sg ServerGroup, opts ServerGroupActionOptions) (*Task, error)
	ServerGroupGet(app, account, region, name string) (*ServerGroup, error)
	ServerGroupList(app string) (ServerGroups, error)
	ServerGroupResize(app string, sg ServerGroup, opts ServerGroupResizeOptions) (*Task, error)
	ServerGroupRollback(app string, sg ServerGroup, opts ServerGroupRollbackOptions) (*Task, error)

	TaskGet(id string) (*Task, error)

	WithContext(ctx context.Context) Provider
}

type ServerGroupActionOptions struct {
	Reason                         string   `json:"reason,omitempty"`
	InterestingHealthProviderNames []string `json:"interestingHealthProviderNames,omitempty"`
}

type ServerGroupResizeOptions struct {
	Capacity                       Capacity `json:"capacity"`
	Reason                         string   `json:"reason,omitempty"`
	InterestingHealthProviderNames []string `json:"interestingHealthProviderNames,omitempty"`
}

type RollbackContext struct {
	RollbackServerGroupName         string `json:"rollbackServerGroupName"`
	RestoreServerGroupName          string `json:"restoreServerGroupName"`
	TargetHealthyRollbackPercentage int    `json:"targetHealthyRollbackPercentage"`
}

type ServerGroupRollbackOptions struct {
	RollbackType                   string          `json:"rollbackType"`
	RollbackContext                RollbackContext `json:"rollbackContext"`
	Reason                         string          `json:"reason,omitempty"`
	InterestingHealthProviderNames []string        `json:"interestingHealthProviderNames,omitempty"`
}
