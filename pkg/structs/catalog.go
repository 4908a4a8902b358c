package structs

type Account struct {
	Name          string   `json:"name"`
	Type          string   `json:"type,omitempty"`
	CloudProvider string   `json:"cloudProvider,omitempty"`
	Environment   string   `json:"environment,omitempty"`
	Regions       []string `json:"regions,omitempty"`
}

type Accounts []Account

func (as Accounts) Less(i, j int) bool {
	return as[i].Name < as[j].Name
}

// Names returns the account names in order.
func (as Accounts) Names() []string {
	names := make([]string, len(as))

	for i, a := range as {
		names[i] = a.Name
	}

	return names
}

type Image struct {
	ImageId     string            `json:"imageId"`
	ImageName   string            `json:"imageName"`
	Description string            `json:"description,omitempty"`
	Account     string            `json:"account,omitempty"`
	Region      string            `json:"region,omitempty"`
	CreatedAt   int64             `json:"createdAt,omitempty"`
	Size        int64             `json:"size,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

type Images []Image

func (is Images) Less(i, j int) bool {
	return is[i].ImageName < is[j].ImageName
}

type ImageFindOptions struct {
	Account  *string `query:"account"`
	Provider *string `query:"provider"`
	Query    *string `query:"q"`
}

type Subnet struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Account   string `json:"account"`
	Zone      string `json:"availabilityZone"`
	NetworkId string `json:"networkId,omitempty"`
	Type      string `json:"type,omitempty"`
}

type Subnets []Subnet

func (ss Subnets) Less(i, j int) bool {
	return ss[i].Name < ss[j].Name
}

type ServiceAccount struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Account string `json:"account,omitempty"`
}

type ServiceAccounts []ServiceAccount

func (sas ServiceAccounts) Less(i, j int) bool {
	return sas[i].Name < sas[j].Name
}

type BaseOs struct {
	Id                  string `json:"id"`
	ShortDescription    string `json:"shortDescription"`
	DetailedDescription string `json:"detailedDescription"`
	DisplayName         string `json:"displayName,omitempty"`
	IsImageFamily       bool   `json:"isImageFamily"`
}

type BaseOsOptions struct {
	CloudProvider string   `json:"cloudProvider"`
	BaseImages    []BaseOs `json:"baseImages"`
}
