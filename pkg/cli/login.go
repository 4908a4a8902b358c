package cli

import (
	"net/url"
	"os"

	"github.com/convox/stdcli"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/deckops/deck/sdk"
	"github.com/pkg/errors"
)

func init() {
	registerWithoutProvider("login", "authenticate with a deck api", Login, stdcli.CommandOptions{
		Flags: []stdcli.Flag{
			stdcli.StringFlag("password", "p", "password"),
		},
		Usage:    "<endpoint>",
		Validate: stdcli.Args(1),
	})
}

func Login(deck *Client, c *stdcli.Context) error {
	endpoint := c.Arg(0)

	sc, err := sdk.New(endpoint)
	if err != nil {
		return err
	}

	sc.Version = c.Version()

	password := c.String("password")

	if password != "" {
		sc.Endpoint.User = url.UserPassword("deck", password)
	}

	c.Startf("Authenticating with <id>%s</id>", sc.Endpoint.Host)

	if _, err := sc.AccountList(yandex.CloudProvider); err != nil {
		return errors.Wrap(err, "invalid login")
	}

	if err := c.SettingWrite("endpoint", endpoint); err != nil {
		return err
	}

	if password != "" {
		deck.Config.Password = password

		if err := deck.Config.Save(os.Getenv("DECK_CONFIG")); err != nil {
			return err
		}
	}

	return c.OK()
}
