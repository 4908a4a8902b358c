package cli

import (
	"github.com/convox/stdcli"
)

func init() {
	registerWithoutProvider("switch", "switch current application", Switch, stdcli.CommandOptions{
		Usage:    "[app]",
		Validate: stdcli.ArgsMax(1),
	})
}

func Switch(deck *Client, c *stdcli.Context) error {
	if len(c.Args) == 0 {
		c.Writef("%s\n", app(c))
		return nil
	}

	name := c.Arg(0)

	if err := c.SettingWrite("app", name); err != nil {
		return err
	}

	c.Writef("Switched to <id>%s</id>\n", name)

	return nil
}
