package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/convox/stdcli"
	"github.com/deckops/deck/pkg/application"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/task"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
)

func app(c *stdcli.Context) string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	s, _ := c.SettingRead("app")

	return helpers.CoalesceString(c.String("app"), c.LocalSetting("app"), s, filepath.Base(wd))
}

// applicationGet loads the application settings. Applications the backend does
// not know yet get empty settings.
func applicationGet(deck *Client, name string) (*structs.Application, error) {
	a, err := deck.ApplicationGet(name)
	if err != nil {
		if structs.IsNotFound(err) {
			return &structs.Application{Name: name}, nil
		}
		return nil, err
	}

	if a == nil {
		return &structs.Application{Name: name}, nil
	}

	return a, nil
}

func loadApplication(ctx context.Context, deck *Client, name string) (*application.Application, error) {
	a := application.New(deck.Provider, name)
	a.Logger = deck.Logger
	a.ServerGroups.Logger = deck.Logger
	a.LoadBalancers.Logger = deck.Logger

	if err := a.Ready(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// confirm asks before a destructive write unless --force is given. Without a
// terminal --force is required.
func confirm(c *stdcli.Context, prompt string) error {
	if c.Bool("force") {
		return nil
	}

	if !c.Reader().IsTerminal() {
		return errors.Errorf("must use --force for non-interactive %s", strings.ToLower(prompt))
	}

	c.Writef("%s? [y/N] ", prompt)

	line, err := bufio.NewReader(c.Reader()).ReadString('\n')
	if err != nil {
		return errors.WithStack(err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	}

	return errors.Errorf("cancelled")
}

// follow shows task progress on m while it runs. The returned function stops
// the display.
func follow(c *stdcli.Context, m *task.Monitor) func() {
	if !c.Writer().IsTerminal() {
		return func() {}
	}

	var bar *pb.ProgressBar

	m.OnUpdate = func(t *structs.Task) {
		if t == nil || len(t.Steps) == 0 {
			return
		}

		if bar == nil {
			bar = pb.New(len(t.Steps))
			bar.Output = c.Writer().Stderr
			bar.Prefix(m.Title)
			bar.ShowCounters = true
			bar.ShowTimeLeft = false
			bar.ShowSpeed = false
			bar.Start()
		}

		bar.SetTotal(len(t.Steps))
		bar.Set(completedSteps(t))
	}

	return func() {
		if bar != nil {
			bar.Finish()
		}
	}
}

func completedSteps(t *structs.Task) int {
	n := 0

	for _, s := range t.Steps {
		if s.Status == structs.TaskStatusSucceeded {
			n++
		}
	}

	return n
}

func monitor(deck *Client, title string) *task.Monitor {
	m := task.New(deck.Provider, title)
	m.Interval = deck.Config.PollInterval
	m.Logger = deck.Logger
	m.Timeout = deck.Config.TaskTimeout

	return m
}

// submit starts a task. With --wait it follows the task to completion.
func submit(deck *Client, c *stdcli.Context, title string, fn task.SubmitFunc) error {
	c.Startf(title)

	if !c.Bool("wait") {
		t, err := fn(context.Background())
		if err != nil {
			return err
		}

		if t == nil || t.Id == "" {
			return errors.Errorf("no task returned")
		}

		return c.OK(t.Id)
	}

	m := monitor(deck, title)

	done := follow(c, m)

	err := m.Submit(context.Background(), fn)

	done()

	if err != nil {
		return err
	}

	return c.OK(m.Task().Id)
}

func healthSummary(ic structs.InstanceCounts, colored bool) string {
	if !colored {
		return yandex.InstanceCountsSummary(ic)
	}

	parts := []string{}

	add := func(n int, label string, c *color.Color) {
		if n > 0 {
			parts = append(parts, c.Sprintf("%d %s", n, label))
		}
	}

	add(ic.Up, "up", color.New(color.FgGreen))
	add(ic.Starting, "starting", color.New(color.FgCyan))
	add(ic.OutOfService, "out of service", color.New(color.FgYellow))
	add(ic.Down, "down", color.New(color.FgRed))
	add(ic.Failed, "failed", color.New(color.FgRed, color.Bold))
	add(ic.Succeeded, "succeeded", color.New(color.FgGreen))
	add(ic.Unknown, "unknown", color.New(color.FgWhite))

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, ", ")
}

func printSections(c *stdcli.Context, ss []yandex.DetailSection) error {
	for i, s := range ss {
		if i > 0 {
			c.Writef("\n")
		}

		c.Writef("<h2>%s</h2>\n", s.Heading)

		info := c.Info()

		for _, r := range s.Rows {
			info.Add(r.Key, r.Value)
		}

		if err := info.Print(); err != nil {
			return err
		}
	}

	return nil
}

func invalid(errs structs.Errors) error {
	return errors.New(errs.String())
}

func enabled(sg structs.ServerGroup) string {
	if sg.IsDisabled {
		return "disabled"
	}

	return "enabled"
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	out := []string{}

	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func parseLabels(s string) (map[string]string, error) {
	labels := map[string]string{}

	for _, p := range splitList(s) {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, errors.Errorf("invalid label: %s", p)
		}

		labels[kv[0]] = kv[1]
	}

	return labels, nil
}
