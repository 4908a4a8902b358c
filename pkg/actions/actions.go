package actions

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/task"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/pkg/errors"
)

const (
	ActionClone    = "clone"
	ActionDelete   = "delete"
	ActionDestroy  = "destroy"
	ActionDisable  = "disable"
	ActionEdit     = "edit"
	ActionEnable   = "enable"
	ActionResize   = "resize"
	ActionRollback = "rollback"
)

const (
	RollbackExplicit             = "EXPLICIT"
	RollbackTargetHealthyPercent = 100

	TitleResize = "Resizing your server group"

	stageResizeServerGroup = "resizeServerGroup"
)

var (
	ErrCancelled    = errors.New("confirmation cancelled")
	ErrConfirmed    = errors.New("confirmation already submitted")
	ErrEnableLocked = errors.New("server group is being resized")
)

// Refresher reloads a cached application list after a write completes.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Controller builds confirmations for the write actions on server groups and
// load balancers of one application.
type Controller struct {
	Application   *structs.Application
	Interval      time.Duration
	LoadBalancers Refresher
	Logger        *logger.Logger
	OnComplete    func(*structs.Task)
	Provider      structs.Provider
	ServerGroups  Refresher
	Timeout       time.Duration
}

func New(p structs.Provider, app *structs.Application) *Controller {
	return &Controller{
		Application: app,
		Logger:      logger.New("ns=actions"),
		Provider:    p,
	}
}

// Available lists the actions a server group offers in menu order.
func Available(sg *structs.ServerGroup) []string {
	if sg.IsDisabled {
		return []string{ActionEnable, ActionDestroy, ActionClone}
	}

	return []string{ActionRollback, ActionResize, ActionDisable, ActionDestroy, ActionClone}
}

// LoadBalancerActions lists the actions every load balancer offers.
func LoadBalancerActions() []string {
	return []string{ActionDelete, ActionEdit}
}

// IsAvailable reports whether action is offered for sg.
func IsAvailable(sg *structs.ServerGroup, action string) bool {
	for _, a := range Available(sg) {
		if a == action {
			return true
		}
	}

	return false
}

// EnableLocked reports whether enabling sg must wait for a running resize.
func EnableLocked(sg *structs.ServerGroup) bool {
	if !sg.IsDisabled {
		return false
	}

	for i := range sg.RunningTasks {
		if sg.RunningTasks[i].HasRunningStage(stageResizeServerGroup) {
			return true
		}
	}

	return false
}

func (c *Controller) app() string {
	if c.Application == nil {
		return ""
	}

	return c.Application.Name
}

func (c *Controller) healthProviders() []string {
	if c.Application.PlatformHealthOverride() {
		return []string{yandex.HealthProvider}
	}

	return nil
}

func (c *Controller) check(sg *structs.ServerGroup, action string) error {
	if sg == nil {
		return errors.Errorf("no server group")
	}

	if !IsAvailable(sg, action) {
		return errors.Errorf("%s is not available for %s", action, sg.Name)
	}

	return nil
}

// Resize sets the fixed size of sg. Min, max and desired all become desired.
func (c *Controller) Resize(sg *structs.ServerGroup, desired int) (*Confirmation, error) {
	if err := c.check(sg, ActionResize); err != nil {
		return nil, err
	}

	if desired < 0 {
		return nil, errors.Errorf("invalid size: %d", desired)
	}

	target := *sg.DeepCopy()
	health := c.healthProviders()

	cf := c.confirmation(ActionResize, TitleResize, c.ServerGroups, func(ctx context.Context, reason string) (*structs.Task, error) {
		return c.Provider.WithContext(ctx).ServerGroupResize(c.app(), target, structs.ServerGroupResizeOptions{
			Capacity:                       structs.Capacity{Min: desired, Max: desired, Desired: desired},
			Reason:                         reason,
			InterestingHealthProviderNames: health,
		})
	})

	cf.Account = sg.Account
	cf.AskForReason = true
	cf.ButtonText = "Submit"
	cf.Header = fmt.Sprintf("Resize %s", sg.Name)
	cf.InterestingHealthProviderNames = health

	return cf, nil
}

// Rollback enables restore and disables the server group of plan. An empty
// restore uses the plan's default.
func (c *Controller) Rollback(plan *RollbackPlan, restore string) (*Confirmation, error) {
	if plan == nil {
		return nil, errors.Errorf("no rollback plan")
	}

	sg := plan.ServerGroup

	if err := c.check(&sg, ActionRollback); err != nil {
		return nil, err
	}

	restore = helpers.CoalesceString(restore, plan.Restore)

	if restore == "" {
		return nil, errors.Errorf("restore server group is required")
	}

	if !contains(plan.Candidates, restore) {
		return nil, errors.WithStack(structs.NotFoundError{Kind: "server group", Name: restore})
	}

	target := *sg.DeepCopy()
	health := c.healthProviders()

	cf := c.confirmation(ActionRollback, fmt.Sprintf("Rollback %s", sg.Name), c.ServerGroups, func(ctx context.Context, reason string) (*structs.Task, error) {
		return c.Provider.WithContext(ctx).ServerGroupRollback(c.app(), target, structs.ServerGroupRollbackOptions{
			RollbackType: RollbackExplicit,
			RollbackContext: structs.RollbackContext{
				RollbackServerGroupName:         target.Name,
				RestoreServerGroupName:          restore,
				TargetHealthyRollbackPercentage: RollbackTargetHealthyPercent,
			},
			Reason:                         reason,
			InterestingHealthProviderNames: health,
		})
	})

	cf.Account = sg.Account
	cf.AskForReason = true
	cf.ButtonText = "Submit"
	cf.Header = fmt.Sprintf("Rollback %s", sg.Name)
	cf.InterestingHealthProviderNames = health
	cf.Operations = []string{
		fmt.Sprintf("Enable %s", restore),
		fmt.Sprintf("Disable %s", sg.Name),
	}

	return cf, nil
}

func (c *Controller) Destroy(sg *structs.ServerGroup) (*Confirmation, error) {
	return c.serverGroupAction(sg, ActionDestroy, "Destroy", "Destroying", func(p structs.Provider, target structs.ServerGroup, opts structs.ServerGroupActionOptions) (*structs.Task, error) {
		return p.ServerGroupDestroy(c.app(), target, opts)
	})
}

func (c *Controller) Disable(sg *structs.ServerGroup) (*Confirmation, error) {
	return c.serverGroupAction(sg, ActionDisable, "Disable", "Disabling", func(p structs.Provider, target structs.ServerGroup, opts structs.ServerGroupActionOptions) (*structs.Task, error) {
		return p.ServerGroupDisable(c.app(), target, opts)
	})
}

// Enable fails with ErrEnableLocked while a resize of sg is running.
func (c *Controller) Enable(sg *structs.ServerGroup) (*Confirmation, error) {
	if sg != nil && EnableLocked(sg) {
		return nil, errors.WithStack(ErrEnableLocked)
	}

	return c.serverGroupAction(sg, ActionEnable, "Enable", "Enabling", func(p structs.Provider, target structs.ServerGroup, opts structs.ServerGroupActionOptions) (*structs.Task, error) {
		return p.ServerGroupEnable(c.app(), target, opts)
	})
}

type serverGroupWrite func(p structs.Provider, sg structs.ServerGroup, opts structs.ServerGroupActionOptions) (*structs.Task, error)

func (c *Controller) serverGroupAction(sg *structs.ServerGroup, action, verb, progress string, write serverGroupWrite) (*Confirmation, error) {
	if err := c.check(sg, action); err != nil {
		return nil, err
	}

	target := *sg.DeepCopy()
	health := c.healthProviders()

	cf := c.confirmation(action, fmt.Sprintf("%s %s", progress, sg.Name), c.ServerGroups, func(ctx context.Context, reason string) (*structs.Task, error) {
		return write(c.Provider.WithContext(ctx), target, structs.ServerGroupActionOptions{
			Reason:                         reason,
			InterestingHealthProviderNames: health,
		})
	})

	cf.Account = sg.Account
	cf.AskForReason = true
	cf.ButtonText = fmt.Sprintf("%s %s", verb, sg.Name)
	cf.Header = fmt.Sprintf("Really %s %s?", strings.ToLower(verb), sg.Name)
	cf.InterestingHealthProviderNames = health

	return cf, nil
}

// Clone builds the wizard command and title that clone sg.
func (c *Controller) Clone(sg *structs.ServerGroup) (*structs.ServerGroupCommand, string, error) {
	if err := c.check(sg, ActionClone); err != nil {
		return nil, "", err
	}

	return yandex.ServerGroupCommandFromExisting(c.Application, sg, structs.ModeClone), fmt.Sprintf("Clone %s", sg.Name), nil
}

// DeleteLoadBalancer removes lb from its account and region.
func (c *Controller) DeleteLoadBalancer(lb *structs.LoadBalancer) (*Confirmation, error) {
	if lb == nil {
		return nil, errors.Errorf("no load balancer")
	}

	cmd := structs.LoadBalancerDeleteCommand{
		CloudProvider:    helpers.CoalesceString(lb.CloudProvider, yandex.CloudProvider),
		Credentials:      lb.Account,
		Regions:          []string{helpers.CoalesceString(lb.Region, yandex.Region)},
		LoadBalancerName: lb.Name,
	}

	cf := c.confirmation(ActionDelete, fmt.Sprintf("Deleting %s", lb.Name), c.LoadBalancers, func(ctx context.Context, reason string) (*structs.Task, error) {
		return c.Provider.WithContext(ctx).LoadBalancerDelete(c.app(), cmd)
	})

	cf.Account = lb.Account
	cf.ButtonText = fmt.Sprintf("Delete %s", lb.Name)
	cf.Header = fmt.Sprintf("Really delete %s?", lb.Name)

	return cf, nil
}

// EditLoadBalancer builds the wizard command that updates lb.
func (c *Controller) EditLoadBalancer(lb *structs.LoadBalancer) (*structs.LoadBalancerUpsertCommand, error) {
	if lb == nil {
		return nil, errors.Errorf("no load balancer")
	}

	return yandex.LoadBalancerToUpsertCommand(lb), nil
}

func (c *Controller) confirmation(action, title string, refresh Refresher, submit submitFunc) *Confirmation {
	m := task.New(c.Provider, title)

	if c.Interval > 0 {
		m.Interval = c.Interval
	}

	if c.Timeout > 0 {
		m.Timeout = c.Timeout
	}

	if c.Logger != nil {
		m.Logger = c.Logger
	}

	m.OnComplete = c.OnComplete

	return &Confirmation{
		Action:  action,
		Title:   title,
		logger:  c.Logger,
		monitor: m,
		refresh: refresh,
		submit:  submit,
	}
}

// RollbackPlan is the server group a rollback disables and the server groups
// it may restore.
type RollbackPlan struct {
	ServerGroup structs.ServerGroup
	Restore     string
	Candidates  []string
	Disabled    []string
}

// PlanRollback works out a rollback of selected within its cluster, account
// and region. A disabled selection is the server group to restore and the
// largest enabled server group is rolled back instead. With exactly one other
// server group in the cluster it becomes the default restore target.
func PlanRollback(all structs.ServerGroups, selected *structs.ServerGroup) (*RollbackPlan, error) {
	if selected == nil {
		return nil, errors.Errorf("no server group")
	}

	cluster := clusterOf(selected)

	peers := structs.ServerGroups{}

	for _, sg := range all {
		if clusterOf(&sg) == cluster && sg.Region == selected.Region && sg.Account == selected.Account {
			peers = append(peers, sg)
		}
	}

	target := *selected
	restore := ""

	if selected.IsDisabled {
		restore = selected.Name

		enabled := structs.ServerGroups{}

		for _, sg := range peers {
			if sg.Name != selected.Name && !sg.IsDisabled {
				enabled = append(enabled, sg)
			}
		}

		if len(enabled) == 0 {
			return nil, errors.Errorf("no enabled server group to roll back")
		}

		sort.SliceStable(enabled, func(i, j int) bool {
			if enabled[i].InstanceCounts.Total != enabled[j].InstanceCounts.Total {
				return enabled[i].InstanceCounts.Total > enabled[j].InstanceCounts.Total
			}
			return enabled[i].CreatedTime > enabled[j].CreatedTime
		})

		target = enabled[0]
	}

	plan := &RollbackPlan{
		ServerGroup: *target.DeepCopy(),
		Candidates:  []string{},
		Disabled:    []string{},
	}

	for _, sg := range peers {
		if sg.Name == target.Name {
			continue
		}

		plan.Candidates = append(plan.Candidates, sg.Name)

		if sg.IsDisabled {
			plan.Disabled = append(plan.Disabled, sg.Name)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(plan.Candidates)))
	sort.Sort(sort.Reverse(sort.StringSlice(plan.Disabled)))

	if restore == "" && len(plan.Candidates) == 1 {
		restore = plan.Candidates[0]
	}

	plan.Restore = restore

	return plan, nil
}

func clusterOf(sg *structs.ServerGroup) string {
	return helpers.CoalesceString(sg.Cluster, helpers.ParseServerGroupName(sg.Name).Cluster)
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}

	return false
}

type submitFunc func(ctx context.Context, reason string) (*structs.Task, error)

// Confirmation is a pending write waiting for the user to confirm it. It
// issues at most one write.
type Confirmation struct {
	Account                        string
	Action                         string
	AskForReason                   bool
	ButtonText                     string
	Header                         string
	InterestingHealthProviderNames []string
	Operations                     []string
	Title                          string

	cancelled bool
	confirmed bool
	lock      sync.Mutex
	logger    *logger.Logger
	monitor   *task.Monitor
	refresh   Refresher
	submit    submitFunc
}

// Confirm issues the write and follows its task. A successful task refreshes
// the affected application list before Confirm returns.
func (cf *Confirmation) Confirm(ctx context.Context, reason string) error {
	cf.lock.Lock()

	switch {
	case cf.cancelled:
		cf.lock.Unlock()
		return errors.WithStack(ErrCancelled)
	case cf.confirmed:
		cf.lock.Unlock()
		return errors.WithStack(ErrConfirmed)
	}

	cf.confirmed = true
	cf.lock.Unlock()

	if !cf.AskForReason {
		reason = ""
	}

	err := cf.monitor.Submit(ctx, func(ctx context.Context) (*structs.Task, error) {
		return cf.submit(ctx, reason)
	})
	if err != nil {
		return err
	}

	if cf.refresh != nil {
		if err := cf.refresh.Refresh(ctx); err != nil {
			cf.log().At("refresh").Logf("action=%s state=error error=%q", cf.Action, err)
		}
	}

	return nil
}

// Cancel dismisses the confirmation without writing anything.
func (cf *Confirmation) Cancel() {
	cf.lock.Lock()
	defer cf.lock.Unlock()

	if !cf.confirmed {
		cf.cancelled = true
	}
}

func (cf *Confirmation) Monitor() *task.Monitor {
	return cf.monitor
}

func (cf *Confirmation) log() *logger.Logger {
	if cf.logger == nil {
		return logger.New("ns=actions")
	}

	return cf.logger
}
