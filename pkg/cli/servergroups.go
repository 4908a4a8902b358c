package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/convox/stdcli"
	"github.com/deckops/deck/pkg/actions"
	"github.com/deckops/deck/pkg/application"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/wizard"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

const formTimeout = 30 * time.Second

var serverGroupFlags = []stdcli.Flag{
	flagAccount,
	flagApp,
	flagWait,
	stdcli.IntFlag("cores", "", "cores per instance"),
	stdcli.StringFlag("detail", "", "free form detail"),
	stdcli.StringFlag("disk-size", "", "boot disk size"),
	stdcli.StringFlag("disk-type", "", "boot disk type"),
	stdcli.StringFlag("file", "", "yaml file with command overrides"),
	stdcli.StringFlag("image", "i", "image id"),
	stdcli.StringFlag("labels", "", "labels as key=value,..."),
	stdcli.StringFlag("memory", "", "memory per instance"),
	stdcli.StringFlag("platform", "", "instance platform"),
	stdcli.BoolFlag("public-ip", "", "assign a public address"),
	stdcli.StringFlag("service-account", "", "service account id"),
	stdcli.IntFlag("size", "", "group size"),
	stdcli.StringFlag("stack", "", "stack name"),
	stdcli.StringFlag("strategy", "", "deployment strategy"),
	stdcli.StringFlag("subnets", "", "subnet ids"),
	stdcli.StringFlag("zones", "z", "availability zones"),
}

func init() {
	register("servergroups", "list server groups", ServerGroups, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp, flagFilter, flagRegion},
		Validate: stdcli.Args(0),
	})

	register("servergroups info", "get information about a server group", ServerGroupsInfo, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp, flagRegion},
		Usage:    "<name>",
		Validate: stdcli.Args(1),
	})

	register("servergroups create", "create a server group", ServerGroupsCreate, stdcli.CommandOptions{
		Flags:    serverGroupFlags,
		Validate: stdcli.Args(0),
	})

	register("servergroups clone", "clone a server group", ServerGroupsClone, stdcli.CommandOptions{
		Flags:    serverGroupFlags,
		Usage:    "<name>",
		Validate: stdcli.Args(1),
	})

	register("servergroups resize", "resize a server group", ServerGroupsResize, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp, flagForce, flagReason, flagRegion},
		Usage:    "<name> <count>",
		Validate: stdcli.Args(2),
	})

	register("servergroups rollback", "roll back a server group", ServerGroupsRollback, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp, flagForce, flagReason, flagRegion},
		Usage:    "<name> [restore]",
		Validate: stdcli.ArgsBetween(1, 2),
	})

	register("servergroups enable", "enable a server group", ServerGroupsEnable, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp, flagForce, flagReason, flagRegion},
		Usage:    "<name>",
		Validate: stdcli.Args(1),
	})

	register("servergroups disable", "disable a server group", ServerGroupsDisable, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp, flagForce, flagReason, flagRegion},
		Usage:    "<name>",
		Validate: stdcli.Args(1),
	})

	register("servergroups destroy", "destroy a server group", ServerGroupsDestroy, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp, flagForce, flagReason, flagRegion},
		Usage:    "<name>",
		Validate: stdcli.Args(1),
	})
}

func ServerGroups(deck *Client, c *stdcli.Context) error {
	a, err := loadApplication(context.Background(), deck, app(c))
	if err != nil {
		return err
	}

	sgs := structs.ServerGroups{}

	for _, sg := range a.ServerGroups.Data() {
		if acct := c.String("account"); acct != "" && sg.Account != acct {
			continue
		}

		if r := c.String("region"); r != "" && sg.Region != r {
			continue
		}

		sgs = append(sgs, sg)
	}

	sgs, err = helpers.Filter(sgs, c.String("filter"), func(sg structs.ServerGroup) string { return sg.Name })
	if err != nil {
		return err
	}

	sort.Slice(sgs, structs.ServerGroups(sgs).Less)

	t := c.Table("NAME", "ACCOUNT", "REGION", "STATUS", "SIZE", "HEALTH", "CREATED")

	for _, sg := range sgs {
		t.AddRow(sg.Name, sg.Account, sg.Region, enabled(sg), strconv.Itoa(sg.Capacity.Desired), healthSummary(sg.InstanceCounts, c.Writer().Color), helpers.AgoMillis(sg.CreatedTime))
	}

	return t.Print()
}

func ServerGroupsInfo(deck *Client, c *stdcli.Context) error {
	a, err := loadApplication(context.Background(), deck, app(c))
	if err != nil {
		return err
	}

	sg, err := a.ServerGroup(c.String("account"), c.String("region"), c.Arg(0))
	if err != nil {
		return err
	}

	return printSections(c, yandex.ServerGroupDetails(sg))
}

func ServerGroupsCreate(deck *Client, c *stdcli.Context) error {
	ap, err := applicationGet(deck, app(c))
	if err != nil {
		return err
	}

	cmd := yandex.NewServerGroupCommand(ap, structs.ModeCreate)

	return deployServerGroup(deck, c, cmd, "Creating server group")
}

func ServerGroupsClone(deck *Client, c *stdcli.Context) error {
	ctx := context.Background()

	ap, err := applicationGet(deck, app(c))
	if err != nil {
		return err
	}

	a, err := loadApplication(ctx, deck, ap.Name)
	if err != nil {
		return err
	}

	sg, err := a.ServerGroup(c.String("account"), c.String("region"), c.Arg(0))
	if err != nil {
		return err
	}

	cmd, _, err := controller(deck, ap, a).Clone(sg)
	if err != nil {
		return err
	}

	cmd.Credentials = sg.Account

	return deployServerGroup(deck, c, cmd, fmt.Sprintf("Cloning <id>%s</id>", sg.Name))
}

// deployServerGroup builds cmd from the command line and deploys it.
func deployServerGroup(deck *Client, c *stdcli.Context, cmd *structs.ServerGroupCommand, title string) error {
	conf, err := buildServerGroup(deck, c, cmd)
	if err != nil {
		return err
	}

	return submit(deck, c, fmt.Sprintf("%s in <id>%s</id>", title, helpers.ClusterName(conf.Application, conf.Stack, conf.FreeFormDetails)), func(ctx context.Context) (*structs.Task, error) {
		return deck.WithContext(ctx).ServerGroupClone(conf.Application, *conf)
	})
}

// buildServerGroup applies the command line to cmd through the server group
// wizard and validates every section of the result.
func buildServerGroup(deck *Client, c *stdcli.Context, cmd *structs.ServerGroupCommand) (*structs.DeployConfiguration, error) {
	ctx := context.Background()

	account := helpers.CoalesceString(c.String("account"), cmd.Credentials)

	form := yandex.NewServerGroupForm(ctx, deck.Provider)
	form.Logger = deck.Logger
	defer form.Close()

	if err := form.Preload(ctx, account); err != nil {
		return nil, err
	}

	err := helpers.WaitContext(ctx, 50*time.Millisecond, formTimeout, 1, func() (bool, error) {
		return !form.Loading(), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not load form options")
	}

	w := yandex.NewServerGroupWizard(cmd, yandex.WizardOptions{
		Application: cmd.Application,
		Logger:      deck.Logger,
		Provider:    deck.Provider,
	})
	defer w.Dismiss()

	if cmd.ViewState.RequiresTemplateSelection {
		if err := w.SelectTemplate(nil); err != nil {
			return nil, err
		}
	}

	as, err := serverGroupActions(c)
	if err != nil {
		return nil, err
	}

	as = append([]wizard.Action[yandex.Command]{
		yandex.SetAccount(account),
		yandex.UseBackingData(form.BackingData()),
	}, as...)

	for _, a := range as {
		if err := w.Dispatch(a); err != nil {
			return nil, err
		}
	}

	final := w.Command()

	errs := structs.Errors{}

	for _, s := range yandex.ServerGroupSections(&final) {
		errs.Merge(s.Validate(final))
	}

	if !errs.Empty() {
		return nil, invalid(errs)
	}

	final.SelectedProvider = yandex.CloudProvider

	return yandex.ServerGroupCommandToDeployConfiguration(&final), nil
}

// serverGroupActions turns the flags of create and clone into wizard actions.
// The file overrides apply first so flags win over it.
func serverGroupActions(c *stdcli.Context) ([]wizard.Action[yandex.Command], error) {
	as := []wizard.Action[yandex.Command]{}

	if f := c.String("file"); f != "" {
		a, err := fileOverrides(f)
		if err != nil {
			return nil, err
		}
		as = append(as, a)
	}

	if v := c.String("zones"); v != "" {
		as = append(as, yandex.SetZones(splitList(v)...))
	}

	if v := c.String("subnets"); v != "" {
		as = append(as, yandex.SetSubnets(splitList(v)...))
	}

	if v := c.String("image"); v != "" {
		as = append(as, yandex.SetImage(v))
	}

	if v, ok := c.Value("size").(int); ok {
		as = append(as, yandex.SetGroupSize(v))
	}

	if v := c.String("stack"); v != "" {
		as = append(as, yandex.SetStack(v))
	}

	if v := c.String("detail"); v != "" {
		as = append(as, yandex.SetDetail(v))
	}

	if v := c.String("strategy"); v != "" {
		as = append(as, yandex.SetStrategy(v))
	}

	if v := c.String("service-account"); v != "" {
		as = append(as, yandex.SetServiceAccount(v), yandex.SetTemplateServiceAccount(v))
	}

	if v := c.String("platform"); v != "" {
		as = append(as, yandex.SetPlatform(v))
	}

	if c.Int("cores") > 0 || c.String("memory") != "" {
		memory, err := helpers.ParseGigabytes(c.String("memory"))
		if err != nil {
			return nil, err
		}

		cores := c.Int("cores")

		as = append(as, wizard.Do("setResources", func(cmd *yandex.Command) error {
			if cmd.InstanceTemplate == nil {
				return errors.Errorf("no instance template")
			}
			r := cmd.InstanceTemplate.ResourcesSpec
			if cores > 0 {
				r.Cores = cores
			}
			if memory > 0 {
				r.Memory = memory
			}
			return yandex.SetResources(r).Reduce(cmd)
		}))
	}

	if c.String("disk-type") != "" || c.String("disk-size") != "" {
		size, err := helpers.ParseGigabytes(c.String("disk-size"))
		if err != nil {
			return nil, err
		}

		typ := c.String("disk-type")

		as = append(as, wizard.Do("setBootDisk", func(cmd *yandex.Command) error {
			if cmd.InstanceTemplate == nil {
				return errors.Errorf("no instance template")
			}
			d := cmd.InstanceTemplate.BootDiskSpec.DiskSpec
			return yandex.SetBootDisk(helpers.CoalesceString(typ, d.TypeId), helpers.CoalesceInt64(size, d.Size)).Reduce(cmd)
		}))
	}

	if v := c.String("labels"); v != "" {
		labels, err := parseLabels(v)
		if err != nil {
			return nil, err
		}
		as = append(as, yandex.SetLabels(labels))
	}

	if c.Bool("public-ip") {
		as = append(as, yandex.SetPublicIp(true))
	}

	return as, nil
}

// fileOverrides reads a yaml document shaped like a server group command and
// lays it over the command.
func fileOverrides(path string) (wizard.Action[yandex.Command], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var v interface{}

	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrapf(err, "invalid file: %s", path)
	}

	js, err := json.Marshal(stringKeys(v))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return wizard.Do("applyFile", func(cmd *yandex.Command) error {
		return errors.WithStack(json.Unmarshal(js, cmd))
	}), nil
}

func stringKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := map[string]interface{}{}
		for k, v := range t {
			m[fmt.Sprintf("%v", k)] = stringKeys(v)
		}
		return m
	case []interface{}:
		for i := range t {
			t[i] = stringKeys(t[i])
		}
		return t
	default:
		return v
	}
}

func ServerGroupsResize(deck *Client, c *stdcli.Context) error {
	size, err := strconv.Atoi(c.Arg(1))
	if err != nil {
		return errors.Errorf("invalid size: %s", c.Arg(1))
	}

	return serverGroupAction(deck, c, "Resize", func(ctl *actions.Controller, a *application.Application, sg *structs.ServerGroup) (*actions.Confirmation, error) {
		return ctl.Resize(sg, size)
	})
}

func ServerGroupsRollback(deck *Client, c *stdcli.Context) error {
	return serverGroupAction(deck, c, "Rollback", func(ctl *actions.Controller, a *application.Application, sg *structs.ServerGroup) (*actions.Confirmation, error) {
		plan, err := actions.PlanRollback(a.ServerGroups.Data(), sg)
		if err != nil {
			return nil, err
		}

		return ctl.Rollback(plan, c.Arg(1))
	})
}

func ServerGroupsEnable(deck *Client, c *stdcli.Context) error {
	return serverGroupAction(deck, c, "Enable", func(ctl *actions.Controller, a *application.Application, sg *structs.ServerGroup) (*actions.Confirmation, error) {
		return ctl.Enable(sg)
	})
}

func ServerGroupsDisable(deck *Client, c *stdcli.Context) error {
	return serverGroupAction(deck, c, "Disable", func(ctl *actions.Controller, a *application.Application, sg *structs.ServerGroup) (*actions.Confirmation, error) {
		return ctl.Disable(sg)
	})
}

func ServerGroupsDestroy(deck *Client, c *stdcli.Context) error {
	return serverGroupAction(deck, c, "Destroy", func(ctl *actions.Controller, a *application.Application, sg *structs.ServerGroup) (*actions.Confirmation, error) {
		return ctl.Destroy(sg)
	})
}

type confirmationFunc func(ctl *actions.Controller, a *application.Application, sg *structs.ServerGroup) (*actions.Confirmation, error)

func serverGroupAction(deck *Client, c *stdcli.Context, verb string, fn confirmationFunc) error {
	ctx := context.Background()

	ap, err := applicationGet(deck, app(c))
	if err != nil {
		return err
	}

	a, err := loadApplication(ctx, deck, ap.Name)
	if err != nil {
		return err
	}

	sg, err := a.ServerGroup(c.String("account"), c.String("region"), c.Arg(0))
	if err != nil {
		return err
	}

	cf, err := fn(controller(deck, ap, a), a, sg)
	if err != nil {
		return err
	}

	return runConfirmation(c, cf, fmt.Sprintf("%s %s", verb, sg.Name))
}

// runConfirmation asks for the go ahead, then issues the write and waits for
// its task.
func runConfirmation(c *stdcli.Context, cf *actions.Confirmation, prompt string) error {
	if err := confirm(c, prompt); err != nil {
		cf.Cancel()
		return err
	}

	for _, op := range cf.Operations {
		c.Writef("<info>%s</info>\n", op)
	}

	c.Startf(cf.Title)

	done := follow(c, cf.Monitor())

	err := cf.Confirm(context.Background(), c.String("reason"))

	done()

	if err != nil {
		return err
	}

	return c.OK()
}

func controller(deck *Client, ap *structs.Application, a *application.Application) *actions.Controller {
	ctl := actions.New(deck.Provider, ap)
	ctl.Interval = deck.Config.PollInterval
	ctl.LoadBalancers = a.LoadBalancers
	ctl.Logger = deck.Logger
	ctl.ServerGroups = a.ServerGroups
	ctl.Timeout = deck.Config.TaskTimeout

	return ctl
}
