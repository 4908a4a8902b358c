package cli

import (
	"context"

	"github.com/convox/stdcli"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
)

func init() {
	register("tasks info", "get information about a task", TasksInfo, stdcli.CommandOptions{
		Usage:    "<id>",
		Validate: stdcli.Args(1),
	})

	register("tasks wait", "wait for a task to finish", TasksWait, stdcli.CommandOptions{
		Usage:    "<id>",
		Validate: stdcli.Args(1),
	})
}

func TasksInfo(deck *Client, c *stdcli.Context) error {
	t, err := deck.TaskGet(c.Arg(0))
	if err != nil {
		return err
	}

	i := c.Info()

	i.Add("Id", t.Id)
	i.Add("Name", t.Name)
	i.Add("Application", t.Application)
	i.Add("Status", t.Status)
	i.Add("Started", helpers.TimestampMillis(t.StartTime))

	if t.EndTime > 0 {
		i.Add("Duration", helpers.DurationMillis(t.StartTime, t.EndTime))
	}

	if f := t.Failure(); f != "" {
		i.Add("Failure", f)
	}

	if err := i.Print(); err != nil {
		return err
	}

	if len(t.Steps) == 0 {
		return nil
	}

	c.Writef("\n")

	tt := c.Table("STEP", "STATUS", "DURATION")

	for _, s := range t.Steps {
		d := ""
		if s.StartTime > 0 && s.EndTime > 0 {
			d = helpers.DurationMillis(s.StartTime, s.EndTime)
		}

		tt.AddRow(s.Name, s.Status, d)
	}

	return tt.Print()
}

func TasksWait(deck *Client, c *stdcli.Context) error {
	id := c.Arg(0)

	c.Startf("Waiting for <id>%s</id>", id)

	m := monitor(deck, "Waiting for "+id)

	done := follow(c, m)

	err := m.Submit(context.Background(), func(ctx context.Context) (*structs.Task, error) {
		return deck.WithContext(ctx).TaskGet(id)
	})

	done()

	if err != nil {
		return err
	}

	return c.OK()
}
