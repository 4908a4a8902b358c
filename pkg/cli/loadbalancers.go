package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/convox/stdcli"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/wizard"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/pkg/errors"
)

var loadBalancerFlags = []stdcli.Flag{
	flagAccount,
	flagApp,
	flagWait,
	stdcli.StringFlag("detail", "", "free form detail"),
	stdcli.BoolFlag("internal", "", "internal load balancer"),
	stdcli.StringFlag("listeners", "l", "listeners as name=port:target[/protocol],..."),
	stdcli.StringFlag("stack", "", "stack name"),
}

func init() {
	register("loadbalancers", "list load balancers", LoadBalancers, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp, flagFilter},
		Validate: stdcli.Args(0),
	})

	register("loadbalancers info", "get information about a load balancer", LoadBalancersInfo, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp},
		Usage:    "<name>",
		Validate: stdcli.Args(1),
	})

	register("loadbalancers create", "create a load balancer", LoadBalancersCreate, stdcli.CommandOptions{
		Flags:    loadBalancerFlags,
		Validate: stdcli.Args(0),
	})

	register("loadbalancers update", "update a load balancer", LoadBalancersUpdate, stdcli.CommandOptions{
		Flags:    loadBalancerFlags,
		Usage:    "<name>",
		Validate: stdcli.Args(1),
	})

	register("loadbalancers delete", "delete a load balancer", LoadBalancersDelete, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagAccount, flagApp, flagForce},
		Usage:    "<name>",
		Validate: stdcli.Args(1),
	})
}

func LoadBalancers(deck *Client, c *stdcli.Context) error {
	a, err := loadApplication(context.Background(), deck, app(c))
	if err != nil {
		return err
	}

	lbs := structs.LoadBalancers{}

	for _, lb := range a.LoadBalancers.Data() {
		if acct := c.String("account"); acct != "" && lb.Account != acct {
			continue
		}

		lbs = append(lbs, lb)
	}

	lbs, err = helpers.Filter(lbs, c.String("filter"), func(lb structs.LoadBalancer) string { return lb.Name })
	if err != nil {
		return err
	}

	sort.Slice(lbs, structs.LoadBalancers(lbs).Less)

	t := c.Table("NAME", "ACCOUNT", "TYPE", "LISTENERS", "SERVER GROUPS", "HEALTH")

	for _, lb := range lbs {
		t.AddRow(lb.Name, lb.Account, lb.BalancerType, strconv.Itoa(len(lb.Listeners)), strconv.Itoa(len(lb.ServerGroups)), healthSummary(lb.InstanceCounts, c.Writer().Color))
	}

	return t.Print()
}

func LoadBalancersInfo(deck *Client, c *stdcli.Context) error {
	a, err := loadApplication(context.Background(), deck, app(c))
	if err != nil {
		return err
	}

	lb, err := a.LoadBalancer(c.String("account"), "", c.Arg(0))
	if err != nil {
		return err
	}

	return printSections(c, yandex.LoadBalancerDetails(lb))
}

func LoadBalancersCreate(deck *Client, c *stdcli.Context) error {
	ap, err := applicationGet(deck, app(c))
	if err != nil {
		return err
	}

	cmd := yandex.NewLoadBalancerTemplate(ap)
	cmd.Credentials = helpers.CoalesceString(c.String("account"), ap.DefaultCredential(yandex.CloudProvider, deck.Config.Account))

	return upsertLoadBalancer(deck, c, ap.Name, cmd)
}

func LoadBalancersUpdate(deck *Client, c *stdcli.Context) error {
	ctx := context.Background()

	ap, err := applicationGet(deck, app(c))
	if err != nil {
		return err
	}

	a, err := loadApplication(ctx, deck, ap.Name)
	if err != nil {
		return err
	}

	lb, err := a.LoadBalancer(c.String("account"), "", c.Arg(0))
	if err != nil {
		return err
	}

	cmd, err := controller(deck, ap, a).EditLoadBalancer(lb)
	if err != nil {
		return err
	}

	return upsertLoadBalancer(deck, c, ap.Name, cmd)
}

// upsertLoadBalancer applies the command line to cmd through the load
// balancer wizard and writes the result. Commands without an id create.
func upsertLoadBalancer(deck *Client, c *stdcli.Context, name string, cmd *structs.LoadBalancerUpsertCommand) error {
	ctx := context.Background()

	form := yandex.NewLoadBalancerForm(ctx, deck.Provider, name)
	form.Logger = deck.Logger
	defer form.Close()

	if err := form.Preload(ctx); err != nil {
		return err
	}

	w := yandex.NewLoadBalancerWizard(cmd, form.Names, false, yandex.WizardOptions{
		Application: name,
		Logger:      deck.Logger,
		Provider:    deck.Provider,
	})

	as, err := loadBalancerActions(c)
	if err != nil {
		return err
	}

	for _, a := range as {
		if err := w.Dispatch(a); err != nil {
			return err
		}
	}

	final := w.Command()

	errs := structs.Errors{}

	for _, s := range yandex.LoadBalancerSections(form.Names) {
		errs.Merge(s.Validate(final))
	}

	if !errs.Empty() {
		return invalid(errs)
	}

	w.Dismiss()

	descriptor := "Update"
	verb := "Updating"

	if final.Id == "" {
		descriptor = "Create"
		verb = "Creating"
	}

	return submit(deck, c, fmt.Sprintf("%s <id>%s</id>", verb, final.Name), func(ctx context.Context) (*structs.Task, error) {
		return deck.WithContext(ctx).LoadBalancerUpsert(name, *yandex.LoadBalancerUpsertDescription(&final), descriptor)
	})
}

func loadBalancerActions(c *stdcli.Context) ([]wizard.Action[yandex.LoadBalancerCommand], error) {
	as := []wizard.Action[yandex.LoadBalancerCommand]{}

	if v := c.String("account"); v != "" {
		as = append(as, yandex.SetLoadBalancerAccount(v))
	}

	if v := c.String("stack"); v != "" {
		as = append(as, yandex.SetLoadBalancerStack(v))
	}

	if v := c.String("detail"); v != "" {
		as = append(as, yandex.SetLoadBalancerDetail(v))
	}

	if v, ok := c.Value("internal").(bool); ok {
		as = append(as, yandex.SetInternal(v))
	}

	if v := c.String("listeners"); v != "" {
		ls := []structs.Listener{}

		for _, s := range splitList(v) {
			l, err := parseListener(s)
			if err != nil {
				return nil, err
			}
			ls = append(ls, l)
		}

		as = append(as, wizard.Do("setListeners", func(cmd *yandex.LoadBalancerCommand) error {
			for len(cmd.Listeners) > 0 {
				if err := yandex.RemoveListener(len(cmd.Listeners) - 1).Reduce(cmd); err != nil {
					return err
				}
			}

			for i, l := range ls {
				if err := yandex.AddListener().Reduce(cmd); err != nil {
					return err
				}
				if err := yandex.UpdateListener(i, l).Reduce(cmd); err != nil {
					return err
				}
			}

			return nil
		}))
	}

	return as, nil
}

// parseListener reads name=port:target[/protocol]. The name and protocol are
// optional.
func parseListener(s string) (structs.Listener, error) {
	l := yandex.DefaultListener()

	if name, rest, ok := strings.Cut(s, "="); ok {
		l.Name = name
		s = rest
	}

	if ports, protocol, ok := strings.Cut(s, "/"); ok {
		l.Protocol = strings.ToUpper(protocol)
		s = ports
	}

	port, target, ok := strings.Cut(s, ":")
	if !ok {
		target = port
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		return l, errors.Errorf("invalid listener: %s", s)
	}

	tp, err := strconv.Atoi(target)
	if err != nil {
		return l, errors.Errorf("invalid listener: %s", s)
	}

	l.Port = p
	l.TargetPort = tp

	return l, nil
}

func LoadBalancersDelete(deck *Client, c *stdcli.Context) error {
	ctx := context.Background()

	ap, err := applicationGet(deck, app(c))
	if err != nil {
		return err
	}

	a, err := loadApplication(ctx, deck, ap.Name)
	if err != nil {
		return err
	}

	lb, err := a.LoadBalancer(c.String("account"), "", c.Arg(0))
	if err != nil {
		return err
	}

	cf, err := controller(deck, ap, a).DeleteLoadBalancer(lb)
	if err != nil {
		return err
	}

	return runConfirmation(c, cf, fmt.Sprintf("Delete %s", lb.Name))
}
