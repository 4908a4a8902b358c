package structs

const (
	HealthStateUp           = "Up"
	HealthStateDown         = "Down"
	HealthStateOutOfService = "OutOfService"
	HealthStateSucceeded    = "Succeeded"
	HealthStateFailed       = "Failed"
	HealthStateStarting     = "Starting"
	HealthStateUnknown      = "Unknown"
)

type InstanceHealth struct {
	Type  string `json:"type,omitempty"`
	State string `json:"state,omitempty"`
}

type Instance struct {
	Id            string            `json:"id"`
	Name          string            `json:"name,omitempty"`
	Zone          string            `json:"zone,omitempty"`
	Provider      string            `json:"provider,omitempty"`
	Account       string            `json:"account,omitempty"`
	Region        string            `json:"region,omitempty"`
	LaunchTime    int64             `json:"launchTime,omitempty"`
	Labels        map[string]string `json:"labels,omitempty"`
	Health        []InstanceHealth  `json:"health,omitempty"`
	HealthState   string            `json:"healthState,omitempty"`
	LoadBalancers []string          `json:"loadBalancers,omitempty"`
	ServerGroup   string            `json:"serverGroup,omitempty"`
}

type Instances []Instance

// InstanceCounts buckets instances by health state.
type InstanceCounts struct {
	Total        int `json:"total"`
	Up           int `json:"up"`
	Down         int `json:"down"`
	OutOfService int `json:"outOfService"`
	Succeeded    int `json:"succeeded"`
	Failed       int `json:"failed"`
	Starting     int `json:"starting"`
	Unknown      int `json:"unknown"`
}

// Add counts one instance in the bucket for state. Unrecognized states count
// as unknown.
func (ic *InstanceCounts) Add(state string) {
	switch state {
	case HealthStateUp:
		ic.Up++
	case HealthStateDown:
		ic.Down++
	case HealthStateOutOfService:
		ic.OutOfService++
	case HealthStateSucceeded:
		ic.Succeeded++
	case HealthStateFailed:
		ic.Failed++
	case HealthStateStarting:
		ic.Starting++
	default:
		ic.Unknown++
	}

	ic.Total++
}

// State returns the first reported health state of the instance, or an empty
// string when no health has been reported.
func (i Instance) State() string {
	if i.HealthState != "" {
		return i.HealthState
	}

	for _, h := range i.Health {
		if h.State != "" {
			return h.State
		}
	}

	return ""
}

func (i Instance) DeepCopy() Instance {
	out := i

	out.Labels = copyStringMap(i.Labels)
	out.LoadBalancers = copyStrings(i.LoadBalancers)

	if i.Health != nil {
		out.Health = append([]InstanceHealth{}, i.Health...)
	}

	return out
}

func (is Instances) Less(i, j int) bool {
	return is[i].Id < is[j].Id
}
