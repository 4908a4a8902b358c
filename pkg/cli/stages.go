package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/convox/stdcli"
	"github.com/deckops/deck/pkg/drafts"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/stages"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/yandex"
)

func init() {
	register("stages", "list stage types", Stages, stdcli.CommandOptions{
		Validate: stdcli.Args(0),
	})

	register("stages baseos", "list base images for bake stages", StagesBaseOs, stdcli.CommandOptions{
		Validate: stdcli.Args(0),
	})

	register("stages deploy add", "add a cluster to a deploy stage", StagesDeployAdd, stdcli.CommandOptions{
		Flags:    append([]stdcli.Flag{stdcli.StringFlag("template", "t", "server group to copy settings from")}, serverGroupFlags...),
		Usage:    "<pipeline> <stage>",
		Validate: stdcli.Args(2),
	})

	registerWithoutProvider("stages deploy list", "list the clusters of a deploy stage", StagesDeployList, stdcli.CommandOptions{
		Usage:    "<pipeline> <stage>",
		Validate: stdcli.Args(2),
	})

	registerWithoutProvider("stages deploy remove", "remove a cluster from a deploy stage", StagesDeployRemove, stdcli.CommandOptions{
		Usage:    "<pipeline> <stage> <id>",
		Validate: stdcli.Args(3),
	})
}

func Stages(deck *Client, c *stdcli.Context) error {
	t := c.Table("TYPE", "LABEL", "CLUSTER FIELD")

	for _, typ := range stages.Types() {
		sc, err := stages.Lookup(typ)
		if err != nil {
			return err
		}

		t.AddRow(sc.Type, sc.Label, sc.ClusterField)
	}

	return t.Print()
}

func StagesBaseOs(deck *Client, c *stdcli.Context) error {
	os, err := stages.BaseOsOptions(context.Background(), deck.Provider)
	if err != nil {
		return err
	}

	t := c.Table("ID", "NAME", "DESCRIPTION")

	for _, o := range os {
		t.AddRow(o.Id, o.ShortDescription, o.DetailedDescription)
	}

	return t.Print()
}

// StagesDeployAdd builds a cluster for a deploy stage and keeps it as a draft
// until the pipeline is saved.
func StagesDeployAdd(deck *Client, c *stdcli.Context) error {
	ctx := context.Background()

	ap, err := applicationGet(deck, app(c))
	if err != nil {
		return err
	}

	pipeline := &structs.Pipeline{Id: c.Arg(0), Application: ap.Name}
	stage := &structs.Stage{RefId: c.Arg(1), Type: stages.TypeDeploy}

	base := yandex.NewServerGroupCommandForPipeline(stage, pipeline)

	var template *structs.ServerGroup

	if name := c.String("template"); name != "" {
		a, err := loadApplication(ctx, deck, ap.Name)
		if err != nil {
			return err
		}

		template, err = a.ServerGroup(c.String("account"), c.String("region"), name)
		if err != nil {
			return err
		}
	}

	cmd := yandex.ServerGroupCommandFromTemplate(ap, base, template)

	conf, err := buildServerGroup(deck, c, cmd)
	if err != nil {
		return err
	}

	s, err := drafts.Open(deck.Config.Drafts)
	if err != nil {
		return err
	}
	defer s.Close()

	s.Logger = deck.Logger

	d, err := s.Add(pipeline.Id, stage.RefId, *conf)
	if err != nil {
		return err
	}

	c.Writef("Adding <id>%s</id> to <id>%s/%s</id>... ", helpers.ClusterName(conf.Application, conf.Stack, conf.FreeFormDetails), pipeline.Id, stage.RefId)

	return c.OK(d.Id)
}

func StagesDeployList(deck *Client, c *stdcli.Context) error {
	s, err := drafts.Open(deck.Config.Drafts)
	if err != nil {
		return err
	}
	defer s.Close()

	ds, err := s.List(c.Arg(0), c.Arg(1))
	if err != nil {
		return err
	}

	t := c.Table("ID", "CLUSTER", "ACCOUNT", "ZONES", "SIZE", "UPDATED")

	for _, d := range ds {
		conf := d.Configuration
		t.AddRow(d.Id, helpers.ClusterName(conf.Application, conf.Stack, conf.FreeFormDetails), helpers.CoalesceString(conf.Account, conf.Credentials), strings.Join(conf.Zones, ","), strconv.Itoa(conf.Capacity.Desired), helpers.Ago(d.Updated))
	}

	return t.Print()
}

func StagesDeployRemove(deck *Client, c *stdcli.Context) error {
	s, err := drafts.Open(deck.Config.Drafts)
	if err != nil {
		return err
	}
	defer s.Close()

	c.Startf("Removing <id>%s</id>", c.Arg(2))

	if err := s.Remove(c.Arg(0), c.Arg(1), c.Arg(2)); err != nil {
		return err
	}

	return c.OK()
}
