package yandex

import (
	"fmt"
	"sort"

	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/wizard"
	"github.com/pkg/errors"
)

// DefaultHealthCheck is added by the autohealing policy editor.
func DefaultHealthCheck() structs.HealthCheckSpec {
	return structs.HealthCheckSpec{
		Type:               "HTTP",
		Port:               80,
		Path:               "/ping",
		Interval:           5,
		Timeout:            5,
		UnhealthyThreshold: 6,
		HealthyThreshold:   2,
	}
}

// DefaultBalancerHealthCheck is added when a server group joins a load
// balancer.
func DefaultBalancerHealthCheck() structs.HealthCheckSpec {
	hc := DefaultHealthCheck()
	hc.Timeout = 4
	return hc
}

func DefaultSecondaryDisk() structs.AttachedDiskSpec {
	return structs.AttachedDiskSpec{
		Mode:     "READ_WRITE",
		DiskSpec: structs.DiskSpec{TypeId: "network-hdd", Size: 10},
	}
}

func DefaultListener() structs.Listener {
	return structs.Listener{
		Name:       "http",
		Port:       80,
		TargetPort: 80,
		Protocol:   "TCP",
		IpVersion:  "IPV4",
	}
}

// CopyCommand deep copies a server group command for the wizard.
func CopyCommand(c Command) Command {
	return *c.DeepCopy()
}

func template(c *Command) *structs.InstanceTemplate {
	if c.InstanceTemplate == nil {
		c.InstanceTemplate = &structs.InstanceTemplate{}
	}

	return c.InstanceTemplate
}

func networkInterface(c *Command) *structs.NetworkInterfaceSpec {
	t := template(c)

	if len(t.NetworkInterfaceSpecs) == 0 {
		t.NetworkInterfaceSpecs = []structs.NetworkInterfaceSpec{{PrimaryV4AddressSpec: &structs.PrimaryAddressSpec{}}}
	}

	return &t.NetworkInterfaceSpecs[0]
}

// SetAccount switches the command to another account. Subnets and service
// accounts belong to an account so they are cleared.
func SetAccount(account string) wizard.Action[Command] {
	return wizard.Do("setAccount", func(c *Command) error {
		if c.Credentials == account {
			return nil
		}

		c.Credentials = account
		c.ServiceAccountId = ""

		if c.InstanceTemplate != nil {
			c.InstanceTemplate.ServiceAccountId = ""
			if len(c.InstanceTemplate.NetworkInterfaceSpecs) > 0 {
				c.InstanceTemplate.NetworkInterfaceSpecs[0].SubnetIds = nil
			}
		}

		return nil
	})
}

// SetZones selects availability zones and drops chosen subnets that are
// known to lie outside them.
func SetZones(zones ...string) wizard.Action[Command] {
	return wizard.Do("setZones", func(c *Command) error {
		for _, z := range zones {
			if !contains(Zones, z) {
				return errors.Errorf("unknown zone: %s", z)
			}
		}

		c.Zones = append([]string{}, zones...)

		if c.BackingData == nil || c.BackingData.Subnets == nil || c.InstanceTemplate == nil || len(c.InstanceTemplate.NetworkInterfaceSpecs) == 0 {
			return nil
		}

		allowed := map[string]bool{}
		for _, s := range SubnetsFor(c.BackingData.Subnets, c.Credentials, c.Zones) {
			allowed[s.Id] = true
		}

		ni := &c.InstanceTemplate.NetworkInterfaceSpecs[0]

		ids := []string{}
		for _, id := range ni.SubnetIds {
			if allowed[id] {
				ids = append(ids, id)
			}
		}
		ni.SubnetIds = ids

		return nil
	})
}

func SetSubnets(ids ...string) wizard.Action[Command] {
	return wizard.Do("setSubnets", func(c *Command) error {
		networkInterface(c).SubnetIds = append([]string{}, ids...)
		return nil
	})
}

func SetImage(id string) wizard.Action[Command] {
	return wizard.Do("setImage", func(c *Command) error {
		if c.ViewState.DisableImageSelection {
			return errors.Errorf("image selection is disabled")
		}

		template(c).BootDiskSpec.DiskSpec.ImageId = id
		c.ImageId = id

		return nil
	})
}

func SetImageSource(source string) wizard.Action[Command] {
	return wizard.Do("setImageSource", func(c *Command) error {
		switch source {
		case ImageSourceArtifact, ImageSourcePriorStage:
		default:
			return errors.Errorf("unknown image source: %s", source)
		}

		c.ImageSource = source

		return nil
	})
}

// SetArtifact sets the application artifact, either inline or by the id of
// an expected artifact.
func SetArtifact(artifact *structs.Artifact, id string) wizard.Action[Command] {
	return wizard.Do("setArtifact", func(c *Command) error {
		a := &structs.ApplicationArtifact{ArtifactId: id}

		if artifact != nil {
			x := *artifact
			a.Artifact = &x
		}

		c.ApplicationArtifact = a

		return nil
	})
}

func SetGroupSize(size int) wizard.Action[Command] {
	return wizard.Do("setGroupSize", func(c *Command) error {
		c.GroupSize = size
		return nil
	})
}

func SetCapacity(capacity structs.Capacity) wizard.Action[Command] {
	return wizard.Do("setCapacity", func(c *Command) error {
		c.Capacity = capacity
		return nil
	})
}

func SetStack(stack string) wizard.Action[Command] {
	return wizard.Do("setStack", func(c *Command) error {
		c.Stack = stack
		return nil
	})
}

func SetDetail(detail string) wizard.Action[Command] {
	return wizard.Do("setDetail", func(c *Command) error {
		c.FreeFormDetails = detail
		return nil
	})
}

func SetStrategy(key string) wizard.Action[Command] {
	return wizard.Do("setStrategy", func(c *Command) error {
		if c.ViewState.DisableStrategySelection {
			return errors.Errorf("strategy selection is disabled")
		}

		return SelectStrategy(c, key)
	})
}

func SetServiceAccount(id string) wizard.Action[Command] {
	return wizard.Do("setServiceAccount", func(c *Command) error {
		c.ServiceAccountId = id
		return nil
	})
}

func SetTemplateServiceAccount(id string) wizard.Action[Command] {
	return wizard.Do("setTemplateServiceAccount", func(c *Command) error {
		template(c).ServiceAccountId = id
		return nil
	})
}

func SetPlatform(platform string) wizard.Action[Command] {
	return wizard.Do("setPlatform", func(c *Command) error {
		template(c).PlatformId = platform
		return nil
	})
}

func SetResources(resources structs.ResourcesSpec) wizard.Action[Command] {
	return wizard.Do("setResources", func(c *Command) error {
		template(c).ResourcesSpec = resources
		return nil
	})
}

func SetDeployPolicy(policy structs.DeployPolicy) wizard.Action[Command] {
	return wizard.Do("setDeployPolicy", func(c *Command) error {
		p := policy
		c.DeployPolicy = &p
		return nil
	})
}

func SetReason(reason string) wizard.Action[Command] {
	return wizard.Do("setReason", func(c *Command) error {
		c.Reason = reason
		return nil
	})
}

func SetDescription(description string) wizard.Action[Command] {
	return wizard.Do("setDescription", func(c *Command) error {
		template(c).Description = description
		return nil
	})
}

func SetPreemptible(preemptible bool) wizard.Action[Command] {
	return wizard.Do("setPreemptible", func(c *Command) error {
		template(c).SchedulingPolicy.Preemptible = preemptible
		return nil
	})
}

// SetPublicIp toggles a one to one NAT address on the primary interface.
func SetPublicIp(public bool) wizard.Action[Command] {
	return wizard.Do("setPublicIp", func(c *Command) error {
		ni := networkInterface(c)

		if ni.PrimaryV4AddressSpec == nil {
			ni.PrimaryV4AddressSpec = &structs.PrimaryAddressSpec{}
		}

		ni.PrimaryV4AddressSpec.OneToOneNat = public

		return nil
	})
}

func SetBootDisk(typeId string, size int64) wizard.Action[Command] {
	return wizard.Do("setBootDisk", func(c *Command) error {
		d := &template(c).BootDiskSpec.DiskSpec
		d.TypeId = typeId
		d.Size = size
		return nil
	})
}

func SetLabels(labels map[string]string) wizard.Action[Command] {
	return wizard.Do("setLabels", func(c *Command) error {
		c.Labels = copyMap(labels)
		return nil
	})
}

func SetTemplateLabels(labels map[string]string) wizard.Action[Command] {
	return wizard.Do("setTemplateLabels", func(c *Command) error {
		template(c).Labels = copyMap(labels)
		return nil
	})
}

func SetMetadata(metadata map[string]string) wizard.Action[Command] {
	return wizard.Do("setMetadata", func(c *Command) error {
		template(c).Metadata = copyMap(metadata)
		return nil
	})
}

func AddHealthCheck() wizard.Action[Command] {
	return wizard.Do("addHealthCheck", func(c *Command) error {
		c.HealthCheckSpecs = append(c.HealthCheckSpecs, DefaultHealthCheck())
		return nil
	})
}

func UpdateHealthCheck(index int, hc structs.HealthCheckSpec) wizard.Action[Command] {
	return wizard.Do("updateHealthCheck", func(c *Command) error {
		if index < 0 || index >= len(c.HealthCheckSpecs) {
			return errors.Errorf("no health check at index %d", index)
		}

		c.HealthCheckSpecs[index] = hc

		return nil
	})
}

func RemoveHealthCheck(index int) wizard.Action[Command] {
	return wizard.Do("removeHealthCheck", func(c *Command) error {
		if index < 0 || index >= len(c.HealthCheckSpecs) {
			return errors.Errorf("no health check at index %d", index)
		}

		c.HealthCheckSpecs = append(c.HealthCheckSpecs[:index], c.HealthCheckSpecs[index+1:]...)

		return nil
	})
}

func AddSecondaryDisk() wizard.Action[Command] {
	return wizard.Do("addSecondaryDisk", func(c *Command) error {
		t := template(c)
		t.SecondaryDiskSpecs = append(t.SecondaryDiskSpecs, DefaultSecondaryDisk())
		return nil
	})
}

func RemoveSecondaryDisk(index int) wizard.Action[Command] {
	return wizard.Do("removeSecondaryDisk", func(c *Command) error {
		t := template(c)

		if index < 0 || index >= len(t.SecondaryDiskSpecs) {
			return errors.Errorf("no secondary disk at index %d", index)
		}

		t.SecondaryDiskSpecs = append(t.SecondaryDiskSpecs[:index], t.SecondaryDiskSpecs[index+1:]...)

		return nil
	})
}

func SetEnableTraffic(enabled bool) wizard.Action[Command] {
	return wizard.Do("setEnableTraffic", func(c *Command) error {
		c.EnableTraffic = enabled
		return nil
	})
}

// AddBalancer attaches the server group to the load balancer with id using
// the default balancer health check.
func AddBalancer(id string) wizard.Action[Command] {
	return wizard.Do("addBalancer", func(c *Command) error {
		if c.Balancers == nil {
			c.Balancers = map[string][]structs.HealthCheckSpec{}
		}

		if _, ok := c.Balancers[id]; ok {
			return errors.Errorf("already attached to load balancer: %s", id)
		}

		c.Balancers[id] = []structs.HealthCheckSpec{DefaultBalancerHealthCheck()}

		return nil
	})
}

func RemoveBalancer(id string) wizard.Action[Command] {
	return wizard.Do("removeBalancer", func(c *Command) error {
		delete(c.Balancers, id)
		return nil
	})
}

// UseBackingData records option lists the form loaded so validation and zone
// changes can check against them.
func UseBackingData(b structs.BackingData) wizard.Action[Command] {
	return wizard.Do("useBackingData", func(c *Command) error {
		c.BackingData = &b
		return nil
	})
}

// Balancers lists the load balancer ids a command attaches to in order.
func Balancers(c Command) []string {
	ids := make([]string, 0, len(c.Balancers))

	for id := range c.Balancers {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// BalancerLabel names a load balancer as the attach list shows it.
func BalancerLabel(lb structs.LoadBalancer) string {
	return fmt.Sprintf("%s (%s)", lb.Name, lb.Id)
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))

	for k, v := range m {
		out[k] = v
	}

	return out
}
