package yandex

import (
	"github.com/deckops/deck/pkg/structs"
	"github.com/pkg/errors"
)

const (
	FieldTermination = "termination"
)

// Strategy is a deployment strategy a server group command can use.
type Strategy struct {
	Key              string
	Label            string
	Description      string
	AdditionalFields []string

	initialize func(*Command)
}

var Strategies = []Strategy{
	{
		Key:         "",
		Label:       "None",
		Description: "Creates the next server group with no impact on existing server groups",
	},
	{
		Key:              "rollingpush",
		Label:            "Rolling update",
		Description:      "Gradually replaces all previous server group instances in the cluster as soon as new server group instances pass health checks",
		AdditionalFields: []string{FieldTermination},
		initialize: func(c *Command) {
			if c.Termination == nil {
				c.Termination = &structs.Termination{}
			}
		},
	},
}

func FindStrategy(key string) (*Strategy, error) {
	for i := range Strategies {
		if Strategies[i].Key == key {
			return &Strategies[i], nil
		}
	}

	return nil, errors.WithStack(structs.NotFoundError{Kind: "strategy", Name: key})
}

// SelectStrategy switches cmd to the strategy named key. Fields owned only by
// the previous strategy are cleared and the new strategy's fields are
// initialized.
func SelectStrategy(cmd *Command, key string) error {
	next, err := FindStrategy(key)
	if err != nil {
		return err
	}

	if prev, err := FindStrategy(cmd.Strategy); err == nil {
		for _, f := range prev.AdditionalFields {
			if !contains(next.AdditionalFields, f) {
				clearField(cmd, f)
			}
		}
	}

	if next.initialize != nil {
		next.initialize(cmd)
	}

	cmd.Strategy = key

	return nil
}

func clearField(cmd *Command, field string) {
	switch field {
	case FieldTermination:
		cmd.Termination = nil
	}
}
