package cli

import (
	"github.com/convox/stdcli"
)

func init() {
	registerWithoutProvider("version", "display version information", Version, stdcli.CommandOptions{
		Validate: stdcli.Args(0),
	})
}

func Version(deck *Client, c *stdcli.Context) error {
	i := c.Info()

	i.Add("Client", c.Version())
	i.Add("Endpoint", deck.Config.Endpoint)
	i.Add("Account", deck.Config.Account)

	return i.Print()
}
