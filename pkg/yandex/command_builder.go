package yandex

import (
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
)

const (
	ImageSourceArtifact   = "artifact"
	ImageSourcePriorStage = "priorStage"
)

// SubmitButtonLabel names the submit button of a server group wizard opened
// in mode.
func SubmitButtonLabel(mode structs.Mode) string {
	switch mode {
	case structs.ModeCreatePipeline:
		return "Add"
	case structs.ModeEditPipeline, structs.ModeEditClonePipeline:
		return "Done"
	case structs.ModeClone:
		return "Clone"
	default:
		return "Create"
	}
}

// NewServerGroupCommand builds the command for a brand new server group.
func NewServerGroupCommand(app *structs.Application, mode structs.Mode) *structs.ServerGroupCommand {
	if mode == "" {
		mode = structs.ModeCreate
	}

	return &structs.ServerGroupCommand{
		Application:      appName(app),
		SelectedProvider: CloudProvider,
		Credentials:      app.DefaultCredential(CloudProvider, Defaults.Account),
		Region:           Region,
		GroupSize:        1,
		Capacity:         structs.Capacity{Min: 0, Max: 0, Desired: 1},
		DeployPolicy:     &structs.DeployPolicy{MaxUnavailable: 1, StartupDuration: 0},
		Labels:           map[string]string{},
		InstanceTemplate: &structs.InstanceTemplate{
			PlatformId: "standard-v2",
			Labels:     map[string]string{},
			Metadata:   map[string]string{},
			ResourcesSpec: structs.ResourcesSpec{
				Cores:        1,
				Memory:       2,
				CoreFraction: 100,
			},
			BootDiskSpec: structs.AttachedDiskSpec{
				Mode:     "READ_WRITE",
				DiskSpec: structs.DiskSpec{TypeId: "network-hdd", Size: 10},
			},
			NetworkInterfaceSpecs: []structs.NetworkInterfaceSpec{
				{PrimaryV4AddressSpec: &structs.PrimaryAddressSpec{}},
			},
		},
		ViewState: structs.ViewState{
			Mode:                     mode,
			SubmitButtonLabel:        SubmitButtonLabel(mode),
			DisableStrategySelection: true,
		},
	}
}

// ServerGroupCommandFromExisting builds a command that clones sg. Nothing in
// the result shares memory with sg.
func ServerGroupCommandFromExisting(app *structs.Application, sg *structs.ServerGroup, mode structs.Mode) *structs.ServerGroupCommand {
	if mode == "" {
		mode = structs.ModeClone
	}

	c := sg.DeepCopy()

	return &structs.ServerGroupCommand{
		Source:                  &structs.Source{AsgName: sg.Name},
		Application:             appName(app),
		SelectedProvider:        CloudProvider,
		Stack:                   sg.Stack,
		FreeFormDetails:         sg.Detail,
		Region:                  Region,
		GroupSize:               sg.Capacity.Desired,
		Credentials:             app.DefaultCredential(CloudProvider, Defaults.Account),
		ServiceAccountId:        sg.ServiceAccountId,
		Capacity:                c.Capacity,
		DeployPolicy:            c.DeployPolicy,
		Labels:                  c.Labels,
		InstanceTemplate:        c.InstanceTemplate,
		HealthCheckSpecs:        c.HealthCheckSpecs,
		LoadBalancerIntegration: c.LoadBalancerIntegration,
		AutoScalePolicy:         c.AutoScalePolicy,
		Zones:                   c.Zones,
		ViewState: structs.ViewState{
			Mode:              mode,
			SubmitButtonLabel: SubmitButtonLabel(mode),
		},
	}
}

// NewServerGroupCommandForPipeline builds the command for a cluster added to a
// deploy stage. The user picks a template before editing it.
func NewServerGroupCommandForPipeline(stage *structs.Stage, pipeline *structs.Pipeline) *structs.ServerGroupCommand {
	app := &structs.Application{}
	if pipeline != nil {
		app.Name = pipeline.Application
	}

	c := NewServerGroupCommand(app, structs.ModeEditPipeline)

	c.ImageSource = ImageSourcePriorStage
	c.ViewState.DisableStrategySelection = false
	c.ViewState.Pipeline = pipeline
	c.ViewState.RequiresTemplateSelection = true
	c.ViewState.Stage = stage

	return c
}

// ServerGroupCommandFromPipeline rebuilds an editable command from a cluster
// saved in a deploy stage.
func ServerGroupCommandFromPipeline(app *structs.Application, conf *structs.DeployConfiguration, stage *structs.Stage, pipeline *structs.Pipeline) *structs.ServerGroupCommand {
	c := conf.DeepCopy()

	return &structs.ServerGroupCommand{
		Application:      appName(app),
		SelectedProvider: CloudProvider,
		Stack:            conf.Stack,
		FreeFormDetails:  conf.FreeFormDetails,
		Region:           conf.Region,
		GroupSize:        conf.GroupSize,
		Capacity:         conf.Capacity,
		Strategy:         conf.Strategy,
		Termination:      c.Termination,
		Credentials:      helpers.CoalesceString(conf.Account, conf.Credentials),
		ImageSource:      ImageSourcePriorStage,
		ViewState: structs.ViewState{
			Pipeline:                pipeline,
			Stage:                   stage,
			Mode:                    structs.ModeEditPipeline,
			SubmitButtonLabel:       SubmitButtonLabel(structs.ModeEditPipeline),
			DisableImageSelection:   true,
			ShowImageSourceSelector: true,
		},
		ServiceAccountId:        conf.ServiceAccountId,
		ApplicationArtifact:     c.ApplicationArtifact,
		DeployPolicy:            c.DeployPolicy,
		Labels:                  c.Labels,
		InstanceTemplate:        c.InstanceTemplate,
		HealthCheckSpecs:        c.HealthCheckSpecs,
		LoadBalancerIntegration: c.LoadBalancerIntegration,
		AutoScalePolicy:         c.AutoScalePolicy,
		Zones:                   c.Zones,
		EnableTraffic:           conf.EnableTraffic,
		Balancers:               c.Balancers,
	}
}

func appName(app *structs.Application) string {
	if app == nil {
		return ""
	}

	return app.Name
}

// TemplateCopied lists what a template server group contributes to a new
// pipeline cluster.
var TemplateCopied = []string{
	"network, subnets, cluster name (stack, details)",
	"load balancers",
	"instance template",
	"all fields on the Advanced Settings page",
}

// ServerGroupCommandFromTemplate finishes template selection for a pipeline
// command. With no template the base command is kept as is; otherwise the
// template server group's settings replace it while the pipeline view state
// of the base command is preserved.
func ServerGroupCommandFromTemplate(app *structs.Application, base *structs.ServerGroupCommand, sg *structs.ServerGroup) *structs.ServerGroupCommand {
	if sg == nil {
		c := base.DeepCopy()
		c.ViewState.RequiresTemplateSelection = false
		return c
	}

	c := ServerGroupCommandFromExisting(app, sg, base.ViewState.Mode)

	c.Source = nil
	c.Credentials = helpers.CoalesceString(sg.Account, c.Credentials)
	c.ImageSource = ImageSourcePriorStage
	c.ViewState = base.ViewState
	c.ViewState.RequiresTemplateSelection = false
	c.ViewState.DisableImageSelection = true
	c.ViewState.ShowImageSourceSelector = true

	return c
}
