package cli

import (
	"net/url"
	"os"

	"github.com/convox/logger"
	"github.com/convox/stdcli"
	"github.com/deckops/deck/pkg/config"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/sdk"
)

// Client is what a command handler works with: the orchestration API and the
// loaded configuration.
type Client struct {
	structs.Provider

	Config *config.Config
	Logger *logger.Logger
}

type Engine struct {
	*stdcli.Engine
	Client structs.Provider
	Config *config.Config
}

func (e *Engine) Command(command, description string, fn HandlerFunc, opts stdcli.CommandOptions) {
	wfn := func(c *stdcli.Context) error {
		return fn(e.currentClient(c), c)
	}

	e.Engine.Command(command, description, wfn, opts)
}

func (e *Engine) CommandWithoutProvider(command, description string, fn HandlerFunc, opts stdcli.CommandOptions) {
	wfn := func(c *stdcli.Context) error {
		return fn(&Client{Config: e.currentConfig(c), Logger: e.logger()}, c)
	}

	e.Engine.Command(command, description, wfn, opts)
}

func (e *Engine) RegisterCommands() {
	for _, c := range commands {
		if c.Provider {
			e.Command(c.Command, c.Description, c.Handler, c.Opts)
		} else {
			e.CommandWithoutProvider(c.Command, c.Description, c.Handler, c.Opts)
		}
	}
}

func (e *Engine) currentConfig(c *stdcli.Context) *config.Config {
	if e.Config != nil {
		return e.Config
	}

	cfg, err := config.Load(os.Getenv("DECK_CONFIG"))
	if err != nil {
		c.Fail(err)
	}

	e.Config = cfg

	return cfg
}

func (e *Engine) currentClient(c *stdcli.Context) *Client {
	cfg := e.currentConfig(c)

	if e.Client != nil {
		return &Client{Provider: e.Client, Config: cfg, Logger: e.logger()}
	}

	endpoint, _ := c.SettingRead("endpoint")

	sc, err := sdk.New(helpers.CoalesceString(endpoint, cfg.Endpoint))
	if err != nil {
		c.Fail(err)
	}

	sc.Version = c.Version()

	if cfg.Password != "" && sc.Endpoint.User == nil {
		sc.Endpoint.User = url.UserPassword("deck", cfg.Password)
	}

	return &Client{Provider: sc, Config: cfg, Logger: e.logger()}
}

func (e *Engine) logger() *logger.Logger {
	if os.Getenv("DECK_DEBUG") == "true" {
		return logger.NewWriter("ns=deck", os.Stderr)
	}

	return logger.Discard
}

var commands = []command{}

type command struct {
	Command     string
	Description string
	Handler     HandlerFunc
	Opts        stdcli.CommandOptions
	Provider    bool
}

func register(cmd, description string, fn HandlerFunc, opts stdcli.CommandOptions) {
	commands = append(commands, command{
		Command:     cmd,
		Description: description,
		Handler:     fn,
		Opts:        opts,
		Provider:    true,
	})
}

func registerWithoutProvider(cmd, description string, fn HandlerFunc, opts stdcli.CommandOptions) {
	commands = append(commands, command{
		Command:     cmd,
		Description: description,
		Handler:     fn,
		Opts:        opts,
		Provider:    false,
	})
}
