package yandex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/wizard"
)

var (
	reStack  = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
	reDetail = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)
)

const (
	MessageStack  = "Stack can only contain letters and numbers."
	MessageDetail = "Detail can only contain letters, numbers, and dashes."
)

const (
	fieldImage   = "instanceTemplate.bootDiskSpec.diskSpec.imageId"
	fieldSubnets = "instanceTemplate.networkInterfaceSpecs[0].subnetIds"
)

type Command = structs.ServerGroupCommand

// ServerGroupSections returns the wizard pages for cmd. The artifact page is
// only shown when the command lets the user pick an image source, which a
// template may turn on.
func ServerGroupSections(cmd *Command) []wizard.Section[Command] {
	ss := []wizard.Section[Command]{BasicSettings{}}

	if cmd.ViewState.ShowImageSourceSelector || cmd.ViewState.RequiresTemplateSelection {
		ss = append(ss, ArtifactSettings{})
	}

	return append(ss,
		DeployPolicySettings{},
		InstanceTemplateSettings{},
		HealthCheckSettings{},
		LoadBalancerSettings{},
		AdvancedSettings{},
	)
}

type BasicSettings struct{}

func (BasicSettings) Label() string {
	return "Basic Settings"
}

func (BasicSettings) Validate(c Command) structs.Errors {
	errs := structs.Errors{}

	if c.Credentials == "" {
		errs.Add("credentials", "Account is required.")
	}

	if len(c.Zones) == 0 {
		errs.Add("zones", "At least one availability zone is required.")
	}

	for _, z := range c.Zones {
		if !contains(Zones, z) {
			errs.Add("zones", fmt.Sprintf("Unknown availability zone: %s", z))
		}
	}

	if c.GroupSize < 0 || c.GroupSize > 100 {
		errs.Add("groupSize", "Group size must be between 0 and 100.")
	}

	if !reStack.MatchString(c.Stack) {
		errs.Add("stack", MessageStack)
	}

	if !reDetail.MatchString(c.FreeFormDetails) {
		errs.Add("freeFormDetails", MessageDetail)
	}

	if requiresImage(c) && (c.InstanceTemplate == nil || c.InstanceTemplate.BootDiskSpec.DiskSpec.ImageId == "") {
		errs.Add(fieldImage, "Image is required.")
	}

	if b := c.BackingData; b != nil {
		if b.Subnets != nil {
			allowed := map[string]bool{}
			for _, s := range SubnetsFor(b.Subnets, c.Credentials, c.Zones) {
				allowed[s.Id] = true
			}
			for _, id := range subnetIds(c) {
				if !allowed[id] {
					errs.Add(fieldSubnets, fmt.Sprintf("Subnet %s is not available in the selected zones.", id))
				}
			}
		}

		if b.ServiceAccounts != nil && c.ServiceAccountId != "" {
			found := false
			for _, sa := range b.ServiceAccounts {
				if sa.Id == c.ServiceAccountId {
					found = true
				}
			}
			if !found {
				errs.Add("serviceAccountId", fmt.Sprintf("Unknown service account: %s", c.ServiceAccountId))
			}
		}
	}

	return errs
}

func requiresImage(c Command) bool {
	if c.ViewState.DisableImageSelection {
		return false
	}

	switch c.ImageSource {
	case ImageSourceArtifact, ImageSourcePriorStage:
		return false
	}

	return true
}

func subnetIds(c Command) []string {
	if c.InstanceTemplate == nil || len(c.InstanceTemplate.NetworkInterfaceSpecs) == 0 {
		return nil
	}

	return c.InstanceTemplate.NetworkInterfaceSpecs[0].SubnetIds
}

// SubnetsFor returns the subnets of account that lie in one of zones.
func SubnetsFor(subnets []structs.Subnet, account string, zones []string) structs.Subnets {
	out := structs.Subnets{}

	for _, s := range subnets {
		if s.Account == account && contains(zones, s.Zone) {
			out = append(out, s)
		}
	}

	return out
}

type ArtifactSettings struct{}

func (ArtifactSettings) Label() string {
	return "Artifact"
}

func (ArtifactSettings) Validate(c Command) structs.Errors {
	errs := structs.Errors{}

	if !c.ViewState.ShowImageSourceSelector || c.ImageSource != ImageSourceArtifact {
		return errs
	}

	a := c.ApplicationArtifact

	if a == nil || !((a.Artifact != nil && a.Artifact.Type != "" && a.Artifact.Reference != "") || a.ArtifactId != "") {
		errs.Add("applicationArtifact", "Application artifact information is required")
	}

	return errs
}

type DeployPolicySettings struct{}

func (DeployPolicySettings) Label() string {
	return "Deploy policy"
}

func (DeployPolicySettings) Validate(c Command) structs.Errors {
	errs := structs.Errors{}

	p := c.DeployPolicy
	if p == nil {
		errs.Add("deployPolicy", "Deploy policy is required.")
		return errs
	}

	between(errs, "deployPolicy.maxUnavailable", p.MaxUnavailable, 0, 100)
	between(errs, "deployPolicy.maxExpansion", p.MaxExpansion, 0, 100)
	between(errs, "deployPolicy.maxDeleting", p.MaxDeleting, 0, 100)
	between(errs, "deployPolicy.maxCreating", p.MaxCreating, 0, 100)
	between(errs, "deployPolicy.startupDuration", p.StartupDuration, 0, 60)

	if p.MaxUnavailable == 0 && p.MaxExpansion == 0 {
		errs.Add("deployPolicy.maxUnavailable", "Either max unavailable or max expansion must be greater than 0.")
	}

	return errs
}

type InstanceTemplateSettings struct{}

func (InstanceTemplateSettings) Label() string {
	return "Instance template"
}

func (InstanceTemplateSettings) Validate(c Command) structs.Errors {
	errs := structs.Errors{}

	t := c.InstanceTemplate
	if t == nil {
		errs.Add("instanceTemplate", "Instance template is required.")
		return errs
	}

	if !contains(Platforms, t.PlatformId) {
		errs.Add("instanceTemplate.platformId", fmt.Sprintf("Platform must be one of: %s", strings.Join(Platforms, ", ")))
	}

	if t.ResourcesSpec.Memory < 1 {
		errs.Add("instanceTemplate.resourcesSpec.memory", "Memory must be at least 1 GB.")
	}

	if t.ResourcesSpec.Cores < 1 {
		errs.Add("instanceTemplate.resourcesSpec.cores", "At least one core is required.")
	}

	between(errs, "instanceTemplate.resourcesSpec.coreFraction", t.ResourcesSpec.CoreFraction, 0, 100)

	if t.ResourcesSpec.Gpus < 0 {
		errs.Add("instanceTemplate.resourcesSpec.gpus", "GPUs cannot be negative.")
	}

	return errs
}

type HealthCheckSettings struct{}

func (HealthCheckSettings) Label() string {
	return "Autohealing policy"
}

func (HealthCheckSettings) Validate(c Command) structs.Errors {
	errs := structs.Errors{}

	for i, hc := range c.HealthCheckSpecs {
		validateHealthCheck(errs, fmt.Sprintf("healthCheckSpecs[%d]", i), hc)
	}

	return errs
}

func validateHealthCheck(errs structs.Errors, field string, hc structs.HealthCheckSpec) {
	switch hc.Type {
	case "HTTP":
		if hc.Path == "" {
			errs.Add(field+".path", "Path is required for HTTP health checks.")
		}
	case "TCP":
	default:
		errs.Add(field+".type", "Type must be HTTP or TCP.")
	}

	port(errs, field+".port", hc.Port)

	if hc.Interval < 1 {
		errs.Add(field+".interval", "Interval must be positive.")
	}

	if hc.Timeout < 1 {
		errs.Add(field+".timeout", "Timeout must be positive.")
	} else if hc.Timeout > hc.Interval {
		errs.Add(field+".timeout", "Timeout cannot exceed the interval.")
	}

	if hc.UnhealthyThreshold < 1 {
		errs.Add(field+".unhealthyThreshold", "Unhealthy threshold must be at least 1.")
	}

	if hc.HealthyThreshold < 1 {
		errs.Add(field+".healthyThreshold", "Healthy threshold must be at least 1.")
	}
}

type LoadBalancerSettings struct{}

func (LoadBalancerSettings) Label() string {
	return "Load Balancer"
}

func (LoadBalancerSettings) Validate(c Command) structs.Errors {
	errs := structs.Errors{}

	if !c.EnableTraffic {
		return errs
	}

	for id, hcs := range c.Balancers {
		for i, hc := range hcs {
			validateHealthCheck(errs, fmt.Sprintf("balancers[%s][%d]", id, i), hc)
		}
	}

	return errs
}

type AdvancedSettings struct{}

func (AdvancedSettings) Label() string {
	return "Advanced settings"
}

func (AdvancedSettings) Validate(c Command) structs.Errors {
	errs := structs.Errors{}

	for k := range c.Labels {
		if strings.TrimSpace(k) == "" {
			errs.Add("labels", "Label keys cannot be empty.")
		}
	}

	t := c.InstanceTemplate
	if t == nil {
		return errs
	}

	if t.BootDiskSpec.DiskSpec.Size <= 0 {
		errs.Add("instanceTemplate.bootDiskSpec.diskSpec.size", "Disk size must be positive.")
	}

	for i, d := range t.SecondaryDiskSpecs {
		if d.DiskSpec.Size <= 0 {
			errs.Add(fmt.Sprintf("instanceTemplate.secondaryDiskSpecs[%d].diskSpec.size", i), "Disk size must be positive.")
		}
	}

	for k := range t.Labels {
		if strings.TrimSpace(k) == "" {
			errs.Add("instanceTemplate.labels", "Label keys cannot be empty.")
		}
	}

	for k := range t.Metadata {
		if strings.TrimSpace(k) == "" {
			errs.Add("instanceTemplate.metadata", "Metadata keys cannot be empty.")
		}
	}

	return errs
}

func between(errs structs.Errors, field string, v, min, max int) {
	if v < min || v > max {
		errs.Add(field, fmt.Sprintf("Must be between %d and %d.", min, max))
	}
}

func port(errs structs.Errors, field string, v int) {
	if v < 1 || v > 65535 {
		errs.Add(field, "Port must be between 1 and 65535.")
	}
}
