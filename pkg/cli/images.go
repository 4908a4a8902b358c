package cli

import (
	"sort"

	"github.com/convox/stdcli"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/options"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/yandex"
	humanize "github.com/dustin/go-humanize"
)

func init() {
	register("images", "list images", Images, stdcli.CommandOptions{
		Flags: []stdcli.Flag{
			flagAccount,
			flagFilter,
			stdcli.StringFlag("query", "q", "search query"),
		},
		Validate: stdcli.Args(0),
	})
}

func Images(deck *Client, c *stdcli.Context) error {
	opts := structs.ImageFindOptions{
		Provider: options.String(yandex.CloudProvider),
	}

	if a := c.String("account"); a != "" {
		opts.Account = options.String(a)
	}

	if q := c.String("query"); q != "" {
		opts.Query = options.String(q)
	}

	is, err := deck.ImageFind(opts)
	if err != nil {
		return err
	}

	is, err = helpers.Filter(is, c.String("filter"), func(i structs.Image) string { return i.ImageName })
	if err != nil {
		return err
	}

	sort.Slice(is, structs.Images(is).Less)

	t := c.Table("ID", "NAME", "ACCOUNT", "SIZE", "CREATED")

	for _, i := range is {
		size := ""
		if i.Size > 0 {
			size = humanize.IBytes(uint64(i.Size))
		}

		t.AddRow(i.ImageId, i.ImageName, i.Account, size, helpers.AgoMillis(i.CreatedAt))
	}

	return t.Print()
}
