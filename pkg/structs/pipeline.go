package structs

// Moniker names a server group by its application, stack and detail.
type Moniker struct {
	App      string `json:"app"`
	Stack    string `json:"stack,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Cluster  string `json:"cluster,omitempty"`
	Sequence *int   `json:"sequence,omitempty"`
}

type Pipeline struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Application string  `json:"application"`
	Strategy    bool    `json:"strategy,omitempty"`
	Stages      []Stage `json:"stages"`
}

// Stage carries the configuration fields of the stage types this module
// configures. Fields unused by a stage type stay empty.
type Stage struct {
	RefId         string   `json:"refId"`
	Type          string   `json:"type"`
	Name          string   `json:"name,omitempty"`
	IsNew         bool     `json:"isNew,omitempty"`
	CloudProvider string   `json:"cloudProvider,omitempty"`
	Application   string   `json:"application,omitempty"`
	Credentials   string   `json:"credentials,omitempty"`
	Region        string   `json:"region,omitempty"`
	Regions       []string `json:"regions,omitempty"`
	Cluster       string   `json:"cluster,omitempty"`
	TargetCluster string   `json:"targetCluster,omitempty"`
	Moniker       *Moniker `json:"moniker,omitempty"`
	Target        string   `json:"target,omitempty"`

	BaseOs             string            `json:"baseOs,omitempty"`
	Package            string            `json:"package,omitempty"`
	PackageArtifactIds []string          `json:"packageArtifactIds,omitempty"`
	Rebake             bool              `json:"rebake,omitempty"`
	TemplateFileName   string            `json:"templateFileName,omitempty"`
	ExtendedAttributes map[string]string `json:"extendedAttributes,omitempty"`

	PackageName string            `json:"packageName,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`

	Action   string    `json:"action,omitempty"`
	Capacity *Capacity `json:"capacity,omitempty"`

	UseSourceCapacity *bool  `json:"useSourceCapacity,omitempty"`
	EnableTraffic     *bool  `json:"enableTraffic,omitempty"`
	TargetSize        *int   `json:"targetSize,omitempty"`
	Stack             string `json:"stack,omitempty"`
	FreeFormDetails   string `json:"freeFormDetails,omitempty"`
	Strategy          string `json:"strategy,omitempty"`

	InterestingHealthProviderNames []string `json:"interestingHealthProviderNames,omitempty"`

	Clusters []DeployConfiguration `json:"clusters,omitempty"`
}
