package structs

type Application struct {
	Name               string            `json:"name"`
	DefaultCredentials map[string]string `json:"defaultCredentials,omitempty"`
	DefaultRegions     map[string]string `json:"defaultRegions,omitempty"`

	Attributes ApplicationAttributes `json:"attributes"`
}

type ApplicationAttributes struct {
	Email                          string `json:"email,omitempty"`
	PlatformHealthOnly             bool   `json:"platformHealthOnly,omitempty"`
	PlatformHealthOnlyShowOverride bool   `json:"platformHealthOnlyShowOverride,omitempty"`
}

type Applications []Application

// DefaultCredential returns the application's default account for a cloud
// provider, or def if none is configured.
func (a *Application) DefaultCredential(provider, def string) string {
	if a == nil || a.DefaultCredentials == nil {
		return def
	}

	if c := a.DefaultCredentials[provider]; c != "" {
		return c
	}

	return def
}

// PlatformHealthOverride reports whether new stages and actions should only
// consider platform health for this application.
func (a *Application) PlatformHealthOverride() bool {
	return a != nil && a.Attributes.PlatformHealthOnlyShowOverride && a.Attributes.PlatformHealthOnly
}

func (aa Applications) Less(i, j int) bool {
	return aa[i].Name < aa[j].Name
}
