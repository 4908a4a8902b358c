package cli

import (
	"sort"
	"strings"

	"github.com/convox/stdcli"
	"github.com/deckops/deck/pkg/yandex"
)

func init() {
	register("accounts", "list accounts", Accounts, stdcli.CommandOptions{
		Validate: stdcli.Args(0),
	})
}

func Accounts(deck *Client, c *stdcli.Context) error {
	as, err := deck.AccountList(yandex.CloudProvider)
	if err != nil {
		return err
	}

	sort.Slice(as, as.Less)

	t := c.Table("NAME", "ENVIRONMENT", "REGIONS")

	for _, a := range as {
		t.AddRow(a.Name, a.Environment, strings.Join(a.Regions, ","))
	}

	return t.Print()
}
