package yandex

import (
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/wizard"
	"github.com/pkg/errors"
)

func CopyLoadBalancerCommand(c LoadBalancerCommand) LoadBalancerCommand {
	return *c.DeepCopy()
}

// rename derives the moniker and name of a load balancer from its
// application, stack and detail.
func rename(c *LoadBalancerCommand) {
	app := ""
	if c.Moniker != nil {
		app = c.Moniker.App
	}

	if app == "" {
		app = helpers.ParseServerGroupName(c.Name).Application
	}

	cluster := helpers.ClusterName(app, c.Stack, c.Detail)

	c.Moniker = &structs.Moniker{App: app, Stack: c.Stack, Detail: c.Detail, Cluster: cluster}
	c.Name = cluster
}

func SetLoadBalancerAccount(account string) wizard.Action[LoadBalancerCommand] {
	return wizard.Do("setAccount", func(c *LoadBalancerCommand) error {
		c.Credentials = account
		return nil
	})
}

func SetLoadBalancerStack(stack string) wizard.Action[LoadBalancerCommand] {
	return wizard.Do("setStack", func(c *LoadBalancerCommand) error {
		c.Stack = stack
		rename(c)
		return nil
	})
}

func SetLoadBalancerDetail(detail string) wizard.Action[LoadBalancerCommand] {
	return wizard.Do("setDetail", func(c *LoadBalancerCommand) error {
		c.Detail = detail
		rename(c)
		return nil
	})
}

func SetInternal(internal bool) wizard.Action[LoadBalancerCommand] {
	return wizard.Do("setInternal", func(c *LoadBalancerCommand) error {
		if internal {
			c.LbType = structs.LoadBalancerInternal
		} else {
			c.LbType = structs.LoadBalancerExternal
		}
		return nil
	})
}

func AddListener() wizard.Action[LoadBalancerCommand] {
	return wizard.Do("addListener", func(c *LoadBalancerCommand) error {
		c.Listeners = append(c.Listeners, DefaultListener())
		return nil
	})
}

func UpdateListener(index int, l structs.Listener) wizard.Action[LoadBalancerCommand] {
	return wizard.Do("updateListener", func(c *LoadBalancerCommand) error {
		if index < 0 || index >= len(c.Listeners) {
			return errors.Errorf("no listener at index %d", index)
		}

		c.Listeners[index] = l

		return nil
	})
}

func RemoveListener(index int) wizard.Action[LoadBalancerCommand] {
	return wizard.Do("removeListener", func(c *LoadBalancerCommand) error {
		if index < 0 || index >= len(c.Listeners) {
			return errors.Errorf("no listener at index %d", index)
		}

		c.Listeners = append(c.Listeners[:index], c.Listeners[index+1:]...)

		return nil
	})
}
