package structs

type Capacity struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Desired int `json:"desired"`
}

type CpuUtilizationRule struct {
	UtilizationTarget float64 `json:"utilizationTarget"`
}

type CustomRule struct {
	MetricName string  `json:"metricName"`
	Target     float64 `json:"target"`
	MetricType string  `json:"metricType,omitempty"`
	RuleType   string  `json:"ruleType,omitempty"`
}

type AutoScalePolicy struct {
	MinZoneSize           int                 `json:"minZoneSize"`
	MaxSize               int                 `json:"maxSize"`
	MeasurementDuration   int                 `json:"measurementDuration"`
	WarmupDuration        int                 `json:"warmupDuration"`
	StabilizationDuration int                 `json:"stabilizationDuration"`
	InitialSize           int                 `json:"initialSize"`
	CpuUtilizationRule    *CpuUtilizationRule `json:"cpuUtilizationRule,omitempty"`
	CustomRules           []CustomRule        `json:"customRules,omitempty"`
}

type DeployPolicy struct {
	MaxUnavailable  int `json:"maxUnavailable"`
	MaxExpansion    int `json:"maxExpansion"`
	MaxDeleting     int `json:"maxDeleting"`
	MaxCreating     int `json:"maxCreating"`
	StartupDuration int `json:"startupDuration"`
}

type SchedulingPolicy struct {
	Preemptible bool `json:"preemptible"`
}

// ResourcesSpec sizes an instance. Memory is in gigabytes.
type ResourcesSpec struct {
	Memory       int64 `json:"memory"`
	Cores        int   `json:"cores"`
	CoreFraction int   `json:"coreFraction"`
	Gpus         int   `json:"gpus"`
}

// DiskSpec describes a disk to create. Size is in gigabytes.
type DiskSpec struct {
	Description string `json:"description,omitempty"`
	TypeId      string `json:"typeId"`
	Size        int64  `json:"size"`
	ImageId     string `json:"imageId,omitempty"`
	SnapshotId  string `json:"snapshotId,omitempty"`
}

type AttachedDiskSpec struct {
	Mode       string   `json:"mode"`
	DeviceName string   `json:"deviceName,omitempty"`
	DiskSpec   DiskSpec `json:"diskSpec"`
}

type PrimaryAddressSpec struct {
	OneToOneNat bool `json:"oneToOneNat"`
}

type NetworkInterfaceSpec struct {
	NetworkId            string              `json:"networkId,omitempty"`
	SubnetIds            []string            `json:"subnetIds,omitempty"`
	PrimaryV4AddressSpec *PrimaryAddressSpec `json:"primaryV4AddressSpec,omitempty"`
	PrimaryV6AddressSpec *PrimaryAddressSpec `json:"primaryV6AddressSpec,omitempty"`
}

type InstanceTemplate struct {
	Description           string                 `json:"description,omitempty"`
	Labels                map[string]string      `json:"labels,omitempty"`
	PlatformId            string                 `json:"platformId"`
	ResourcesSpec         ResourcesSpec          `json:"resourcesSpec"`
	Metadata              map[string]string      `json:"metadata,omitempty"`
	BootDiskSpec          AttachedDiskSpec       `json:"bootDiskSpec"`
	SecondaryDiskSpecs    []AttachedDiskSpec     `json:"secondaryDiskSpecs,omitempty"`
	NetworkInterfaceSpecs []NetworkInterfaceSpec `json:"networkInterfaceSpecs,omitempty"`
	SchedulingPolicy      SchedulingPolicy       `json:"schedulingPolicy"`
	ServiceAccountId      string                 `json:"serviceAccountId,omitempty"`
}

type TargetGroupSpec struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

type LoadBalancerIntegration struct {
	TargetGroupId   string           `json:"targetGroupId,omitempty"`
	StatusMessage   string           `json:"statusMessage,omitempty"`
	TargetGroupSpec *TargetGroupSpec `json:"targetGroupSpec,omitempty"`
	Balancers       []LoadBalancer   `json:"balancers,omitempty"`
}

type HealthCheckSpec struct {
	Type               string `json:"type"`
	Port               int    `json:"port"`
	Path               string `json:"path,omitempty"`
	Interval           int    `json:"interval"`
	Timeout            int    `json:"timeout"`
	UnhealthyThreshold int    `json:"unhealthyThreshold"`
	HealthyThreshold   int    `json:"healthyThreshold"`
}

type BuildInfo struct {
	PackageName string            `json:"package_name,omitempty"`
	Version     string            `json:"version,omitempty"`
	Commit      string            `json:"commit,omitempty"`
	Jenkins     map[string]string `json:"jenkins,omitempty"`
}

// ServerGroup is a read-only projection of backend state. It is owned by the
// application data source and only read by this module.
type ServerGroup struct {
	Name          string   `json:"name"`
	Id            string   `json:"id,omitempty"`
	Folder        string   `json:"folder,omitempty"`
	Account       string   `json:"account"`
	Region        string   `json:"region"`
	Cluster       string   `json:"cluster,omitempty"`
	Stack         string   `json:"stack,omitempty"`
	Detail        string   `json:"detail,omitempty"`
	Type          string   `json:"type,omitempty"`
	CloudProvider string   `json:"cloudProvider,omitempty"`
	Zones         []string `json:"zones,omitempty"`
	Description   string   `json:"description,omitempty"`
	Status        string   `json:"status,omitempty"`
	IsDisabled    bool     `json:"isDisabled"`
	CreatedTime   int64    `json:"createdTime,omitempty"`

	ServiceAccountId              string                       `json:"serviceAccountId,omitempty"`
	Capacity                      Capacity                     `json:"capacity"`
	AutoScalePolicy               *AutoScalePolicy             `json:"autoScalePolicy,omitempty"`
	DeployPolicy                  *DeployPolicy                `json:"deployPolicy,omitempty"`
	InstanceTemplate              *InstanceTemplate            `json:"instanceTemplate,omitempty"`
	LoadBalancerIntegration       *LoadBalancerIntegration     `json:"loadBalancerIntegration,omitempty"`
	LoadBalancersWithHealthChecks map[string][]HealthCheckSpec `json:"loadBalancersWithHealthChecks,omitempty"`
	HealthCheckSpecs              []HealthCheckSpec            `json:"healthCheckSpecs,omitempty"`
	Labels                        map[string]string            `json:"labels,omitempty"`
	BuildInfo                     *BuildInfo                   `json:"buildInfo,omitempty"`

	Instances         []Instance     `json:"instances"`
	DetachedInstances []string       `json:"detachedInstances,omitempty"`
	InstanceCounts    InstanceCounts `json:"instanceCounts"`
	RunningTasks      []Task         `json:"runningTasks,omitempty"`
}

type ServerGroups []ServerGroup

func (sgs ServerGroups) Less(i, j int) bool {
	if sgs[i].Cluster != sgs[j].Cluster {
		return sgs[i].Cluster < sgs[j].Cluster
	}

	return sgs[i].Name < sgs[j].Name
}

func (p *AutoScalePolicy) DeepCopy() *AutoScalePolicy {
	if p == nil {
		return nil
	}

	out := *p

	if p.CpuUtilizationRule != nil {
		r := *p.CpuUtilizationRule
		out.CpuUtilizationRule = &r
	}

	if p.CustomRules != nil {
		out.CustomRules = append([]CustomRule{}, p.CustomRules...)
	}

	return &out
}

func (p *DeployPolicy) DeepCopy() *DeployPolicy {
	if p == nil {
		return nil
	}

	out := *p

	return &out
}

func (s NetworkInterfaceSpec) DeepCopy() NetworkInterfaceSpec {
	out := s

	out.SubnetIds = copyStrings(s.SubnetIds)

	if s.PrimaryV4AddressSpec != nil {
		a := *s.PrimaryV4AddressSpec
		out.PrimaryV4AddressSpec = &a
	}

	if s.PrimaryV6AddressSpec != nil {
		a := *s.PrimaryV6AddressSpec
		out.PrimaryV6AddressSpec = &a
	}

	return out
}

func (t *InstanceTemplate) DeepCopy() *InstanceTemplate {
	if t == nil {
		return nil
	}

	out := *t

	out.Labels = copyStringMap(t.Labels)
	out.Metadata = copyStringMap(t.Metadata)

	if t.SecondaryDiskSpecs != nil {
		out.SecondaryDiskSpecs = append([]AttachedDiskSpec{}, t.SecondaryDiskSpecs...)
	}

	if t.NetworkInterfaceSpecs != nil {
		out.NetworkInterfaceSpecs = make([]NetworkInterfaceSpec, len(t.NetworkInterfaceSpecs))
		for i, n := range t.NetworkInterfaceSpecs {
			out.NetworkInterfaceSpecs[i] = n.DeepCopy()
		}
	}

	return &out
}

func (i *LoadBalancerIntegration) DeepCopy() *LoadBalancerIntegration {
	if i == nil {
		return nil
	}

	out := *i

	if i.TargetGroupSpec != nil {
		s := *i.TargetGroupSpec
		s.Labels = copyStringMap(i.TargetGroupSpec.Labels)
		out.TargetGroupSpec = &s
	}

	if i.Balancers != nil {
		out.Balancers = make([]LoadBalancer, len(i.Balancers))
		for j, b := range i.Balancers {
			out.Balancers[j] = *b.DeepCopy()
		}
	}

	return &out
}

func (sg *ServerGroup) DeepCopy() *ServerGroup {
	if sg == nil {
		return nil
	}

	out := *sg

	out.Zones = copyStrings(sg.Zones)
	out.AutoScalePolicy = sg.AutoScalePolicy.DeepCopy()
	out.DeployPolicy = sg.DeployPolicy.DeepCopy()
	out.InstanceTemplate = sg.InstanceTemplate.DeepCopy()
	out.LoadBalancerIntegration = sg.LoadBalancerIntegration.DeepCopy()
	out.HealthCheckSpecs = copyHealthChecks(sg.HealthCheckSpecs)
	out.Labels = copyStringMap(sg.Labels)
	out.DetachedInstances = copyStrings(sg.DetachedInstances)

	if sg.LoadBalancersWithHealthChecks != nil {
		out.LoadBalancersWithHealthChecks = map[string][]HealthCheckSpec{}
		for k, v := range sg.LoadBalancersWithHealthChecks {
			out.LoadBalancersWithHealthChecks[k] = copyHealthChecks(v)
		}
	}

	if sg.BuildInfo != nil {
		b := *sg.BuildInfo
		b.Jenkins = copyStringMap(sg.BuildInfo.Jenkins)
		out.BuildInfo = &b
	}

	if sg.Instances != nil {
		out.Instances = make([]Instance, len(sg.Instances))
		for i, in := range sg.Instances {
			out.Instances[i] = in.DeepCopy()
		}
	}

	if sg.RunningTasks != nil {
		out.RunningTasks = append([]Task{}, sg.RunningTasks...)
	}

	return &out
}

func copyHealthChecks(hcs []HealthCheckSpec) []HealthCheckSpec {
	if hcs == nil {
		return nil
	}

	return append([]HealthCheckSpec{}, hcs...)
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}

	out := make(map[string]string, len(m))

	for k, v := range m {
		out[k] = v
	}

	return out
}

func copyStrings(ss []string) []string {
	if ss == nil {
		return nil
	}

	return append([]string{}, ss...)
}
