package api

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/convox/stdapi"
	"github.com/deckops/deck/pkg/cloud"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/pkg/errors"
)

// application loads the settings of the app in the path. Applications the
// backend does not know get empty settings.
func (s *Server) application(c *stdapi.Context) (*structs.Application, error) {
	name := c.Var("app")

	a, err := s.provider(c).ApplicationGet(name)
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

func cloudProvider(c *stdapi.Context) (*cloud.Provider, error) {
	p, err := cloud.Lookup(helpers.CoalesceString(c.Query("provider"), yandex.CloudProvider))
	if err != nil {
		return nil, stdapi.Errorf(404, "%s", errors.Cause(err).Error())
	}

	return p, nil
}

// bodyJSON decodes the request body into v. An empty body leaves v alone
// and returns false.
func bodyJSON(c *stdapi.Context, v interface{}) (bool, error) {
	data, err := io.ReadAll(c.Body())
	if err != nil {
		return false, errors.WithStack(err)
	}

	if len(data) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, stdapi.Errorf(400, "invalid body: %s", err)
	}

	return true, nil
}

// backingData loads the option lists a command in account is validated
// against. Lists that fail to load are left empty.
func (s *Server) backingData(ctx context.Context, account string) (*structs.BackingData, error) {
	form := yandex.NewServerGroupForm(ctx, s.lookups)
	form.Logger = s.Logger.Namespace("form=servergroup")
	defer form.Close()

	if err := form.Preload(ctx, account); err != nil {
		return nil, err
	}

	timeout := s.FormTimeout
	if timeout <= 0 {
		timeout = DefaultFormTimeout
	}

	err := helpers.WaitContext(ctx, 20*time.Millisecond, timeout, 1, func() (bool, error) {
		return !form.Loading(), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not load form options")
	}

	b := form.BackingData()

	return &b, nil
}

// validate checks cmd against every form section it shows.
func (s *Server) validate(ctx context.Context, cmd *structs.ServerGroupCommand) (structs.Errors, error) {
	if cmd.BackingData == nil && cmd.Credentials != "" {
		b, err := s.backingData(ctx, cmd.Credentials)
		if err != nil {
			return nil, err
		}
		cmd.BackingData = b
	}

	errs := structs.Errors{}

	for _, section := range yandex.ServerGroupSections(cmd) {
		errs.Merge(section.Validate(*cmd))
	}

	return errs, nil
}

// renderError maps domain errors onto response codes. Other errors render
// their cause.
func renderError(err error) error {
	if err == nil {
		return nil
	}

	if structs.IsNotFound(err) {
		return stdapi.Errorf(404, "%s", errors.Cause(err).Error())
	}

	return errors.Cause(err)
}
