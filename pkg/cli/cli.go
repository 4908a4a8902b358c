package cli

import (
	"github.com/convox/stdcli"
)

type HandlerFunc func(*Client, *stdcli.Context) error

var (
	flagAccount = stdcli.StringFlag("account", "", "account name")
	flagApp     = stdcli.StringFlag("app", "a", "application name")
	flagFilter  = stdcli.StringFlag("filter", "f", "glob filter on names")
	flagForce   = stdcli.BoolFlag("force", "", "proceed without confirmation")
	flagReason  = stdcli.StringFlag("reason", "", "reason for the change")
	flagRegion  = stdcli.StringFlag("region", "", "region name")
	flagWait    = stdcli.BoolFlag("wait", "w", "wait for completion")
)

func New(name, version string) *Engine {
	e := &Engine{
		Engine: stdcli.New(name, version),
	}

	e.RegisterCommands()

	return e
}
