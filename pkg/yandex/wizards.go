package yandex

import (
	"context"
	"time"

	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/wizard"
)

const (
	TitleCreateServerGroup  = "Creating your server group"
	TitleCreateLoadBalancer = "Creating your load balancer"
	TitleUpdateLoadBalancer = "Updating your load balancer"
)

type WizardOptions struct {
	Provider    structs.Provider
	Application string
	OnComplete  func(*structs.Task)

	Interval time.Duration
	Timeout  time.Duration
	Logger   *logger.Logger
}

// NewServerGroupWizard opens the server group wizard on cmd. Pipeline modes
// close with the edited command; the other modes deploy it.
func NewServerGroupWizard(cmd *Command, opts WizardOptions) *wizard.Wizard[Command] {
	return wizard.New(*cmd, wizard.Options[Command]{
		Title:                     TitleCreateServerGroup,
		Sections:                  ServerGroupSections(cmd),
		Copy:                      CopyCommand,
		Pipeline:                  cmd.ViewState.Mode.IsPipeline(),
		RequiresTemplateSelection: cmd.ViewState.RequiresTemplateSelection,
		Provider:                  opts.Provider,
		Submit:                    submitServerGroup(opts.Application),
		OnComplete:                opts.OnComplete,
		Interval:                  opts.Interval,
		Timeout:                   opts.Timeout,
		Logger:                    opts.Logger,
	})
}

func submitServerGroup(app string) wizard.SubmitFunc[Command] {
	return func(ctx context.Context, p structs.Provider, cmd Command) (*structs.Task, error) {
		cmd.SelectedProvider = CloudProvider

		conf := ServerGroupCommandToDeployConfiguration(&cmd)

		return p.WithContext(ctx).ServerGroupClone(app, *conf)
	}
}

// NewLoadBalancerWizard opens the load balancer wizard. A command without an
// id creates a new load balancer. Pipeline wizards close with the command.
func NewLoadBalancerWizard(cmd *LoadBalancerCommand, names func(string) []string, pipeline bool, opts WizardOptions) *wizard.Wizard[LoadBalancerCommand] {
	title := TitleUpdateLoadBalancer
	descriptor := "Update"

	if cmd.Id == "" {
		title = TitleCreateLoadBalancer
		descriptor = "Create"
	}

	return wizard.New(*cmd, wizard.Options[LoadBalancerCommand]{
		Title:      title,
		Sections:   LoadBalancerSections(names),
		Copy:       CopyLoadBalancerCommand,
		Pipeline:   pipeline,
		Provider:   opts.Provider,
		OnComplete: opts.OnComplete,
		Submit: func(ctx context.Context, p structs.Provider, cmd LoadBalancerCommand) (*structs.Task, error) {
			return p.WithContext(ctx).LoadBalancerUpsert(opts.Application, *LoadBalancerUpsertDescription(&cmd), descriptor)
		},
		Interval: opts.Interval,
		Timeout:  opts.Timeout,
		Logger:   opts.Logger,
	})
}
