package structs

type Mode string

const (
	ModeCreate            Mode = "create"
	ModeClone             Mode = "clone"
	ModeCreatePipeline    Mode = "createPipeline"
	ModeEditPipeline      Mode = "editPipeline"
	ModeEditClonePipeline Mode = "editClonePipeline"
)

// IsPipeline reports whether a command in this mode is edited inside a
// pipeline stage rather than submitted directly.
func (m Mode) IsPipeline() bool {
	switch m {
	case ModeCreatePipeline, ModeEditPipeline, ModeEditClonePipeline:
		return true
	}

	return false
}

type Artifact struct {
	Id              string `json:"id,omitempty"`
	Type            string `json:"type,omitempty"`
	Name            string `json:"name,omitempty"`
	Reference       string `json:"reference,omitempty"`
	Version         string `json:"version,omitempty"`
	ArtifactAccount string `json:"artifactAccount,omitempty"`
}

// ApplicationArtifact requires either an inline artifact or an artifact id.
type ApplicationArtifact struct {
	Artifact   *Artifact `json:"artifact,omitempty"`
	ArtifactId string    `json:"artifactId,omitempty"`
}

type Source struct {
	AsgName string `json:"asgName"`
	Account string `json:"account,omitempty"`
	Region  string `json:"region,omitempty"`
}

type ViewState struct {
	Mode                      Mode      `json:"mode"`
	SubmitButtonLabel         string    `json:"submitButtonLabel"`
	DisableStrategySelection  bool      `json:"disableStrategySelection"`
	DisableImageSelection     bool      `json:"disableImageSelection,omitempty"`
	ShowImageSourceSelector   bool      `json:"showImageSourceSelector,omitempty"`
	RequiresTemplateSelection bool      `json:"requiresTemplateSelection,omitempty"`
	Pipeline                  *Pipeline `json:"pipeline,omitempty"`
	Stage                     *Stage    `json:"stage,omitempty"`
}

// BackingData holds the option lists the form loaded for this command.
type BackingData struct {
	Accounts        []string         `json:"accounts,omitempty"`
	Images          []Image          `json:"images,omitempty"`
	Subnets         []Subnet         `json:"subnets,omitempty"`
	ServiceAccounts []ServiceAccount `json:"serviceAccounts,omitempty"`
}

type Termination struct {
	Order                string `json:"order,omitempty"`
	RelaunchAllInstances bool   `json:"relaunchAllInstances"`
	TotalRelaunches      int    `json:"totalRelaunches,omitempty"`
	ConcurrentRelaunches int    `json:"concurrentRelaunches,omitempty"`
}

// ServerGroupCommand is an in-progress description of a server group deploy.
type ServerGroupCommand struct {
	Application      string       `json:"application"`
	SelectedProvider string       `json:"selectedProvider,omitempty"`
	Credentials      string       `json:"credentials"`
	Region           string       `json:"region"`
	Stack            string       `json:"stack"`
	FreeFormDetails  string       `json:"freeFormDetails"`
	Strategy         string       `json:"strategy"`
	Termination      *Termination `json:"termination,omitempty"`
	Reason           string       `json:"reason,omitempty"`
	Zones            []string     `json:"zones,omitempty"`
	GroupSize        int          `json:"groupSize"`
	Capacity         Capacity     `json:"capacity"`
	ServiceAccountId string       `json:"serviceAccountId,omitempty"`
	ImageSource      string       `json:"imageSource,omitempty"`
	ImageId          string       `json:"imageId,omitempty"`

	ApplicationArtifact     *ApplicationArtifact     `json:"applicationArtifact,omitempty"`
	AutoScalePolicy         *AutoScalePolicy         `json:"autoScalePolicy,omitempty"`
	DeployPolicy            *DeployPolicy            `json:"deployPolicy,omitempty"`
	InstanceTemplate        *InstanceTemplate        `json:"instanceTemplate,omitempty"`
	LoadBalancerIntegration *LoadBalancerIntegration `json:"loadBalancerIntegration,omitempty"`
	HealthCheckSpecs        []HealthCheckSpec        `json:"healthCheckSpecs,omitempty"`
	Labels                  map[string]string        `json:"labels,omitempty"`

	EnableTraffic bool                         `json:"enableTraffic,omitempty"`
	Balancers     map[string][]HealthCheckSpec `json:"balancers,omitempty"`

	Source      *Source      `json:"source,omitempty"`
	ViewState   ViewState    `json:"viewState"`
	BackingData *BackingData `json:"backingData,omitempty"`
}

// DeployConfiguration is the wire shape of a server group deploy.
type DeployConfiguration struct {
	Account          string       `json:"account"`
	Application      string       `json:"application"`
	CloudProvider    string       `json:"cloudProvider"`
	Provider         string       `json:"provider"`
	Credentials      string       `json:"credentials"`
	Region           string       `json:"region"`
	Stack            string       `json:"stack,omitempty"`
	FreeFormDetails  string       `json:"freeFormDetails,omitempty"`
	Strategy         string       `json:"strategy,omitempty"`
	Termination      *Termination `json:"termination,omitempty"`
	Reason           string       `json:"reason,omitempty"`
	Zones            []string     `json:"zones,omitempty"`
	GroupSize        int          `json:"groupSize"`
	Capacity         Capacity     `json:"capacity"`
	ServiceAccountId string       `json:"serviceAccountId,omitempty"`
	ImageSource      string       `json:"imageSource,omitempty"`
	ImageId          string       `json:"imageId,omitempty"`

	ApplicationArtifact     *ApplicationArtifact     `json:"applicationArtifact,omitempty"`
	AutoScalePolicy         *AutoScalePolicy         `json:"autoScalePolicy,omitempty"`
	DeployPolicy            *DeployPolicy            `json:"deployPolicy,omitempty"`
	InstanceTemplate        *InstanceTemplate        `json:"instanceTemplate,omitempty"`
	LoadBalancerIntegration *LoadBalancerIntegration `json:"loadBalancerIntegration,omitempty"`
	HealthCheckSpecs        []HealthCheckSpec        `json:"healthCheckSpecs,omitempty"`
	Labels                  map[string]string        `json:"labels,omitempty"`

	EnableTraffic bool                         `json:"enableTraffic,omitempty"`
	Balancers     map[string][]HealthCheckSpec `json:"balancers,omitempty"`

	Source *Source `json:"source,omitempty"`
}

func (a *ApplicationArtifact) DeepCopy() *ApplicationArtifact {
	if a == nil {
		return nil
	}

	out := *a

	if a.Artifact != nil {
		x := *a.Artifact
		out.Artifact = &x
	}

	return &out
}

func (c *ServerGroupCommand) DeepCopy() *ServerGroupCommand {
	if c == nil {
		return nil
	}

	out := *c

	out.Zones = copyStrings(c.Zones)
	out.ApplicationArtifact = c.ApplicationArtifact.DeepCopy()
	out.AutoScalePolicy = c.AutoScalePolicy.DeepCopy()
	out.DeployPolicy = c.DeployPolicy.DeepCopy()
	out.InstanceTemplate = c.InstanceTemplate.DeepCopy()
	out.LoadBalancerIntegration = c.LoadBalancerIntegration.DeepCopy()
	out.HealthCheckSpecs = copyHealthChecks(c.HealthCheckSpecs)
	out.Labels = copyStringMap(c.Labels)
	out.Balancers = copyBalancers(c.Balancers)

	if c.Termination != nil {
		t := *c.Termination
		out.Termination = &t
	}

	if c.Source != nil {
		s := *c.Source
		out.Source = &s
	}

	if c.BackingData != nil {
		b := *c.BackingData
		b.Accounts = copyStrings(c.BackingData.Accounts)
		if c.BackingData.Images != nil {
			b.Images = append([]Image{}, c.BackingData.Images...)
		}
		if c.BackingData.Subnets != nil {
			b.Subnets = append([]Subnet{}, c.BackingData.Subnets...)
		}
		if c.BackingData.ServiceAccounts != nil {
			b.ServiceAccounts = append([]ServiceAccount{}, c.BackingData.ServiceAccounts...)
		}
		out.BackingData = &b
	}

	return &out
}

func (c *DeployConfiguration) DeepCopy() *DeployConfiguration {
	if c == nil {
		return nil
	}

	out := *c

	out.Zones = copyStrings(c.Zones)
	out.ApplicationArtifact = c.ApplicationArtifact.DeepCopy()
	out.AutoScalePolicy = c.AutoScalePolicy.DeepCopy()
	out.DeployPolicy = c.DeployPolicy.DeepCopy()
	out.InstanceTemplate = c.InstanceTemplate.DeepCopy()
	out.LoadBalancerIntegration = c.LoadBalancerIntegration.DeepCopy()
	out.HealthCheckSpecs = copyHealthChecks(c.HealthCheckSpecs)
	out.Labels = copyStringMap(c.Labels)
	out.Balancers = copyBalancers(c.Balancers)

	if c.Termination != nil {
		t := *c.Termination
		out.Termination = &t
	}

	if c.Source != nil {
		s := *c.Source
		out.Source = &s
	}

	return &out
}

func copyBalancers(bs map[string][]HealthCheckSpec) map[string][]HealthCheckSpec {
	if bs == nil {
		return nil
	}

	out := make(map[string][]HealthCheckSpec, len(bs))

	for k, v := range bs {
		out[k] = copyHealthChecks(v)
	}

	return out
}
