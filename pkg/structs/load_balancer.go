package structs

const (
	LoadBalancerExternal = "EXTERNAL"
	LoadBalancerInternal = "INTERNAL"
)

type Listener struct {
	Name       string `json:"name"`
	Port       int    `json:"port"`
	TargetPort int    `json:"targetPort"`
	Protocol   string `json:"protocol"`
	IpVersion  string `json:"ipVersion"`
	Address    string `json:"address"`
	SubnetId   string `json:"subnetId"`
}

// LoadBalancerServerGroup is a server group as reported inside a load
// balancer snapshot.
type LoadBalancerServerGroup struct {
	Name              string     `json:"name"`
	Account           string     `json:"account,omitempty"`
	Region            string     `json:"region,omitempty"`
	CloudProvider     string     `json:"cloudProvider,omitempty"`
	IsDisabled        bool       `json:"isDisabled"`
	Instances         []Instance `json:"instances"`
	DetachedInstances []string   `json:"detachedInstances,omitempty"`
}

type LoadBalancer struct {
	Id            string                    `json:"id,omitempty"`
	Name          string                    `json:"name"`
	Account       string                    `json:"account"`
	Region        string                    `json:"region"`
	Type          string                    `json:"type,omitempty"`
	Provider      string                    `json:"provider,omitempty"`
	CloudProvider string                    `json:"cloudProvider,omitempty"`
	BalancerType  string                    `json:"balancerType,omitempty"`
	Stack         string                    `json:"stack,omitempty"`
	Detail        string                    `json:"detail,omitempty"`
	Listeners     []Listener                `json:"listeners"`
	ServerGroups  []LoadBalancerServerGroup `json:"serverGroups"`

	InstanceCounts InstanceCounts `json:"instanceCounts"`
	Instances      []Instance     `json:"instances"`
}

type LoadBalancers []LoadBalancer

// LoadBalancerUpsertCommand is the editable shape of a load balancer create
// or update.
type LoadBalancerUpsertCommand struct {
	Id            string                    `json:"id,omitempty"`
	Name          string                    `json:"name"`
	Region        string                    `json:"region"`
	CloudProvider string                    `json:"cloudProvider"`
	Credentials   string                    `json:"credentials"`
	LbType        string                    `json:"lbType"`
	Stack         string                    `json:"stack,omitempty"`
	Detail        string                    `json:"detail,omitempty"`
	Moniker       *Moniker                  `json:"moniker,omitempty"`
	Listeners     []Listener                `json:"listeners"`
	ServerGroups  []LoadBalancerServerGroup `json:"serverGroups"`
}

type LoadBalancerDeleteCommand struct {
	CloudProvider    string   `json:"cloudProvider"`
	Credentials      string   `json:"credentials"`
	Regions          []string `json:"regions"`
	LoadBalancerName string   `json:"loadBalancerName"`
}

func (lb *LoadBalancer) DeepCopy() *LoadBalancer {
	if lb == nil {
		return nil
	}

	out := *lb

	if lb.Listeners != nil {
		out.Listeners = append([]Listener{}, lb.Listeners...)
	}

	if lb.ServerGroups != nil {
		out.ServerGroups = make([]LoadBalancerServerGroup, len(lb.ServerGroups))
		for i, sg := range lb.ServerGroups {
			out.ServerGroups[i] = sg.DeepCopy()
		}
	}

	out.Instances = copyInstances(lb.Instances)

	return &out
}

func (sg LoadBalancerServerGroup) DeepCopy() LoadBalancerServerGroup {
	out := sg

	out.Instances = copyInstances(sg.Instances)
	out.DetachedInstances = copyStrings(sg.DetachedInstances)

	return out
}

func (c *LoadBalancerUpsertCommand) DeepCopy() *LoadBalancerUpsertCommand {
	if c == nil {
		return nil
	}

	out := *c

	if c.Moniker != nil {
		m := *c.Moniker
		out.Moniker = &m
	}

	if c.Listeners != nil {
		out.Listeners = append([]Listener{}, c.Listeners...)
	}

	if c.ServerGroups != nil {
		out.ServerGroups = make([]LoadBalancerServerGroup, len(c.ServerGroups))
		for i, sg := range c.ServerGroups {
			out.ServerGroups[i] = sg.DeepCopy()
		}
	}

	return &out
}

func (lbs LoadBalancers) Less(i, j int) bool {
	return lbs[i].Name < lbs[j].Name
}

func copyInstances(is []Instance) []Instance {
	if is == nil {
		return nil
	}

	out := make([]Instance, len(is))

	for i, in := range is {
		out[i] = in.DeepCopy()
	}

	return out
}
