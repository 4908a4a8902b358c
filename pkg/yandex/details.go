package yandex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
)

type DetailRow struct {
	Key   string
	Value string
}

// DetailSection is a titled group of rows on a details page.
type DetailSection struct {
	Heading string
	Rows    []DetailRow
}

func (s *DetailSection) add(key, value string) {
	s.Rows = append(s.Rows, DetailRow{Key: key, Value: value})
}

func (s *DetailSection) addf(key, format string, args ...interface{}) {
	s.add(key, fmt.Sprintf(format, args...))
}

// ServerGroupDetails lays out the details page of a server group. Sections
// without data are left out.
func ServerGroupDetails(sg *structs.ServerGroup) []DetailSection {
	ss := []DetailSection{
		serverGroupInformation(sg),
		serverGroupCapacity(sg),
		serverGroupHealth(sg),
	}

	if sg.InstanceTemplate != nil {
		ss = append(ss, launchConfiguration(sg.InstanceTemplate))
	}

	if sg.DeployPolicy != nil || sg.AutoScalePolicy != nil {
		ss = append(ss, scalingPolicies(sg))
	}

	if sg.BuildInfo != nil {
		ss = append(ss, packageDetails(sg.BuildInfo))
	}

	if len(sg.Labels) > 0 {
		ss = append(ss, labels("Labels", sg.Labels))
	}

	return ss
}

func serverGroupInformation(sg *structs.ServerGroup) DetailSection {
	s := DetailSection{Heading: "Server Group Information"}

	s.add("Id", sg.Id)
	s.add("Name", sg.Name)
	s.add("Description", sg.Description)
	s.add("Created", helpers.TimestampMillis(sg.CreatedTime))
	s.add("Account", sg.Account)
	s.add("Zones", strings.Join(sg.Zones, ", "))

	if sg.IsDisabled {
		s.add("Status", "disabled")
	}

	return s
}

func serverGroupCapacity(sg *structs.ServerGroup) DetailSection {
	s := DetailSection{Heading: "Capacity"}

	c := sg.Capacity

	if c.Min == c.Max {
		s.addf("Min/Max", "%d", c.Desired)
	} else {
		s.addf("Min", "%d", c.Min)
		s.addf("Desired", "%d", c.Desired)
		s.addf("Max", "%d", c.Max)
	}

	s.addf("Current", "%d", len(sg.Instances))

	return s
}

func serverGroupHealth(sg *structs.ServerGroup) DetailSection {
	s := DetailSection{Heading: "Health"}

	s.add("Instances", InstanceCountsSummary(sg.InstanceCounts))

	for i, hc := range sg.HealthCheckSpecs {
		prefix := fmt.Sprintf("Health check #%d ", i+1)
		s.add(prefix+"type", hc.Type)
		s.addf(prefix+"port", "%d", hc.Port)
		if hc.Path != "" {
			s.add(prefix+"path", hc.Path)
		}
		s.addf(prefix+"interval", "%ds", hc.Interval)
		s.addf(prefix+"timeout", "%ds", hc.Timeout)
		s.addf(prefix+"healthy threshold", "%d", hc.HealthyThreshold)
		s.addf(prefix+"unhealthy threshold", "%d", hc.UnhealthyThreshold)
	}

	return s
}

// InstanceCountsSummary renders the non-zero instance counts.
func InstanceCountsSummary(ic structs.InstanceCounts) string {
	parts := []string{}

	for _, c := range []struct {
		name  string
		count int
	}{
		{"up", ic.Up},
		{"down", ic.Down},
		{"out of service", ic.OutOfService},
		{"starting", ic.Starting},
		{"succeeded", ic.Succeeded},
		{"failed", ic.Failed},
		{"unknown", ic.Unknown},
	} {
		if c.count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.count, c.name))
		}
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, ", ")
}

func launchConfiguration(t *structs.InstanceTemplate) DetailSection {
	s := DetailSection{Heading: "Launch Configuration"}

	s.add("VM description", t.Description)
	s.add("Platform id", t.PlatformId)
	s.addf("Preemptible", "%t", t.SchedulingPolicy.Preemptible)
	s.add("Service account id", t.ServiceAccountId)
	s.addf("CPU", "%d cores, %d%%", t.ResourcesSpec.Cores, t.ResourcesSpec.CoreFraction)
	s.addf("GPU", "%d", t.ResourcesSpec.Gpus)
	s.add("Memory", helpers.Gigabytes(t.ResourcesSpec.Memory))

	disks := append([]structs.AttachedDiskSpec{t.BootDiskSpec}, t.SecondaryDiskSpecs...)

	for i, d := range disks {
		prefix := fmt.Sprintf("Disk #%d ", i)
		if d.DeviceName != "" {
			s.add(prefix+"device name", d.DeviceName)
		}
		s.addf(prefix+"disk", "%s %s", d.DiskSpec.TypeId, helpers.Gigabytes(d.DiskSpec.Size))
		if d.DiskSpec.ImageId != "" {
			s.add(prefix+"image", d.DiskSpec.ImageId)
		}
		if d.DiskSpec.SnapshotId != "" {
			s.add(prefix+"snapshot", d.DiskSpec.SnapshotId)
		}
	}

	for i, n := range t.NetworkInterfaceSpecs {
		prefix := fmt.Sprintf("eth%d ", i)
		s.add(prefix+"network", n.NetworkId)
		s.add(prefix+"subnets", strings.Join(n.SubnetIds, ", "))
		if n.PrimaryV4AddressSpec != nil {
			s.add(prefix+"IPV4", addressScope(n.PrimaryV4AddressSpec))
		}
		if n.PrimaryV6AddressSpec != nil {
			s.add(prefix+"IPV6", addressScope(n.PrimaryV6AddressSpec))
		}
	}

	return s
}

func addressScope(a *structs.PrimaryAddressSpec) string {
	if a.OneToOneNat {
		return "internal + external"
	}

	return "internal"
}

func scalingPolicies(sg *structs.ServerGroup) DetailSection {
	s := DetailSection{Heading: "Scaling Policies"}

	if p := sg.DeployPolicy; p != nil {
		s.addf("Deploy policy", "max unavailable %d, max expansion %d, max deleting %d, max creating %d, startup %ds",
			p.MaxUnavailable, p.MaxExpansion, p.MaxDeleting, p.MaxCreating, p.StartupDuration)
	}

	p := sg.AutoScalePolicy

	if p == nil {
		s.add("Scale type", "fixed")
		s.addf("Size", "%d", sg.Capacity.Desired)
		return s
	}

	s.add("Scale type", "auto")
	s.addf("Min zone size", "%d", p.MinZoneSize)
	s.addf("Max group size", "%d", p.MaxSize)
	s.addf("Measurement duration", "%ds", p.MeasurementDuration)
	s.addf("Warmup duration", "%ds", p.WarmupDuration)
	s.addf("Stabilization duration", "%ds", p.StabilizationDuration)

	if p.CpuUtilizationRule != nil {
		s.addf("Cpu utilization target", "%g", p.CpuUtilizationRule.UtilizationTarget)
	}

	for _, r := range p.CustomRules {
		s.addf("Custom rule", "%s %s %s %g", r.RuleType, r.MetricType, r.MetricName, r.Target)
	}

	return s
}

func packageDetails(b *structs.BuildInfo) DetailSection {
	s := DetailSection{Heading: "Package"}

	if b.Jenkins != nil {
		s.add("Job", b.Jenkins["name"])
	}

	s.add("Package", b.PackageName)

	if b.Jenkins != nil {
		s.add("Build", b.Jenkins["number"])
	}

	if b.Commit != "" {
		commit := b.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		s.add("Commit", commit)
	}

	s.add("Version", b.Version)

	if b.Jenkins != nil && b.Jenkins["host"] != "" {
		s.addf("Build Link", "%sjob/%s/%s", b.Jenkins["host"], b.Jenkins["name"], b.Jenkins["number"])
	}

	return s
}

func labels(heading string, m map[string]string) DetailSection {
	s := DetailSection{Heading: heading}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		s.add(k, m[k])
	}

	return s
}

// InstanceDetails lays out the details page of an instance.
func InstanceDetails(in *structs.Instance) []DetailSection {
	info := DetailSection{Heading: "Instance Information"}

	info.add("Launched", helpers.TimestampMillis(in.LaunchTime))
	info.add("In", in.Account)
	info.add("Availability zone", in.Zone)

	status := DetailSection{Heading: "Status"}

	status.add("Health", helpers.CoalesceString(in.State(), structs.HealthStateUnknown))

	ss := []DetailSection{info, status}

	if len(in.Labels) > 0 {
		ss = append(ss, labels("Labels", in.Labels))
	}

	return ss
}

// LoadBalancerDetails lays out the details page of a load balancer.
func LoadBalancerDetails(lb *structs.LoadBalancer) []DetailSection {
	info := DetailSection{Heading: "Load Balancer Details"}

	info.add("In", lb.Account)
	info.add("Name", lb.Name)
	info.add("Type", lb.BalancerType)

	names := []string{}
	for _, sg := range lb.ServerGroups {
		names = append(names, sg.Name)
	}

	info.add("Server Groups", strings.Join(names, ", "))

	listeners := DetailSection{Heading: "Listeners"}

	for _, l := range lb.Listeners {
		listeners.addf(fmt.Sprintf("%s(%s)", l.Name, l.Protocol), "%s:%d → %d", l.Address, l.Port, l.TargetPort)
	}

	return []DetailSection{info, listeners}
}
