package yandex

import (
	"fmt"

	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/wizard"
)

const MaxLoadBalancerName = 32

var (
	Protocols  = []string{"TCP", "UDP"}
	IpVersions = []string{"IPV4", "IPV6"}
)

type LoadBalancerCommand = structs.LoadBalancerUpsertCommand

// LoadBalancerSections returns the wizard pages of the load balancer wizard.
// names lists the load balancers that already exist in an account.
func LoadBalancerSections(names func(account string) []string) []wizard.Section[LoadBalancerCommand] {
	return []wizard.Section[LoadBalancerCommand]{
		LoadBalancerLocation{Names: names},
		LoadBalancerListeners{},
	}
}

type LoadBalancerLocation struct {
	Names func(account string) []string
}

func (LoadBalancerLocation) Label() string {
	return "Location"
}

func (l LoadBalancerLocation) Validate(c LoadBalancerCommand) structs.Errors {
	errs := structs.Errors{}

	if c.Credentials == "" {
		errs.Add("credentials", "Account is required.")
	}

	if len(c.Name) > MaxLoadBalancerName {
		errs.Add("name", fmt.Sprintf("Load balancer names cannot exceed %d characters in length", MaxLoadBalancerName))
	}

	if c.Id == "" && l.Names != nil && contains(l.Names(c.Credentials), c.Name) {
		errs.Add("name", fmt.Sprintf("There is already a load balancer in %s:%s with that name.", c.Credentials, c.Region))
	}

	if !reStack.MatchString(c.Stack) {
		errs.Add("stack", MessageStack)
	}

	if !reDetail.MatchString(c.Detail) {
		errs.Add("detail", MessageDetail)
	}

	return errs
}

type LoadBalancerListeners struct{}

func (LoadBalancerListeners) Label() string {
	return "Listeners"
}

func (LoadBalancerListeners) Validate(c LoadBalancerCommand) structs.Errors {
	errs := structs.Errors{}

	for i, l := range c.Listeners {
		field := fmt.Sprintf("listeners[%d]", i)

		if !contains(Protocols, l.Protocol) {
			errs.Add(field+".protocol", "Protocol must be TCP or UDP.")
		}

		if !contains(IpVersions, l.IpVersion) {
			errs.Add(field+".ipVersion", "IP version must be IPV4 or IPV6.")
		}

		port(errs, field+".port", l.Port)
		port(errs, field+".targetPort", l.TargetPort)

		if c.LbType == structs.LoadBalancerInternal && l.SubnetId == "" {
			errs.Add(field+".subnetId", "Subnet is required for internal load balancers.")
		}
	}

	return errs
}
