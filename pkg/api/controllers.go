package api

import (
	"sort"

	"github.com/convox/stdapi"
	"github.com/deckops/deck/pkg/application"
	"github.com/deckops/deck/pkg/cloud"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/stages"
	"github.com/deckops/deck/pkg/structs"
)

func (s *Server) LoadBalancerCommandNew(c *stdapi.Context) error {
	cp, err := cloudProvider(c)
	if err != nil {
		return err
	}

	a, err := s.application(c)
	if err != nil {
		return err
	}

	return c.RenderJSON(cp.LoadBalancer.Transformer.NewTemplate(a))
}

func (s *Server) LoadBalancerList(c *stdapi.Context) error {
	a := application.New(s.Provider, c.Var("app"))
	a.Logger = s.Logger.Namespace("app=%s", a.Name)

	if err := a.LoadBalancers.Ready(c.Context()); err != nil {
		return renderError(err)
	}

	v := structs.LoadBalancers(a.LoadBalancers.Data())

	sort.Slice(v, v.Less)

	return c.RenderJSON(v)
}

func (s *Server) ServerGroupCommandClone(c *stdapi.Context) error {
	if err := s.hook("ServerGroupCommandCloneValidate", c); err != nil {
		return err
	}

	cp, err := cloudProvider(c)
	if err != nil {
		return err
	}

	a, err := s.application(c)
	if err != nil {
		return err
	}

	sg, err := s.serverGroup(c, cp)
	if err != nil {
		return err
	}

	return c.RenderJSON(cp.ServerGroup.Builder.FromExisting(a, sg, structs.Mode(c.Query("mode"))))
}

// ServerGroupCommandConfiguration turns a valid command into the
// configuration a deploy submits.
func (s *Server) ServerGroupCommandConfiguration(c *stdapi.Context) error {
	cp, err := cloudProvider(c)
	if err != nil {
		return err
	}

	var cmd structs.ServerGroupCommand

	ok, err := bodyJSON(c, &cmd)
	if err != nil {
		return err
	}
	if !ok {
		return stdapi.Errorf(400, "command required")
	}

	errs, err := s.validate(c.Context(), &cmd)
	if err != nil {
		return renderError(err)
	}

	if !errs.Empty() {
		return stdapi.Errorf(422, "%s", errs.String())
	}

	cmd.SelectedProvider = cp.Key

	return c.RenderJSON(cp.ServerGroup.Transformer.ToDeployConfiguration(&cmd))
}

func (s *Server) ServerGroupCommandNew(c *stdapi.Context) error {
	if err := s.hook("ServerGroupCommandNewValidate", c); err != nil {
		return err
	}

	cp, err := cloudProvider(c)
	if err != nil {
		return err
	}

	a, err := s.application(c)
	if err != nil {
		return err
	}

	return c.RenderJSON(cp.ServerGroup.Builder.New(a, structs.Mode(c.Query("mode"))))
}

// ServerGroupCommandPipeline builds the command for a cluster of a deploy
// stage. A configuration in the body edits that cluster. A template query
// copies the settings of an existing server group.
func (s *Server) ServerGroupCommandPipeline(c *stdapi.Context) error {
	cp, err := cloudProvider(c)
	if err != nil {
		return err
	}

	a, err := s.application(c)
	if err != nil {
		return err
	}

	pipeline := &structs.Pipeline{Id: c.Var("pipeline"), Application: a.Name}
	stage := &structs.Stage{RefId: c.Var("stage"), Type: stages.TypeDeploy}

	var conf structs.DeployConfiguration

	ok, err := bodyJSON(c, &conf)
	if err != nil {
		return err
	}

	if ok {
		return c.RenderJSON(cp.ServerGroup.Builder.FromPipeline(a, &conf, stage, pipeline))
	}

	base := cp.ServerGroup.Builder.ForPipeline(stage, pipeline)

	name := c.Query("template")
	if name == "" {
		return c.RenderJSON(base)
	}

	sg, err := s.provider(c).ServerGroupGet(a.Name, c.Query("account"), helpers.CoalesceString(c.Query("region"), cp.Regions[0]), name)
	if err != nil {
		return renderError(err)
	}

	return c.RenderJSON(cp.ServerGroup.Builder.FromTemplate(a, base, cp.ServerGroup.Transformer.Normalize(sg)))
}

// ServerGroupCommandValidate reports the failing fields of a command. A
// valid command renders an empty object.
func (s *Server) ServerGroupCommandValidate(c *stdapi.Context) error {
	var cmd structs.ServerGroupCommand

	ok, err := bodyJSON(c, &cmd)
	if err != nil {
		return err
	}
	if !ok {
		return stdapi.Errorf(400, "command required")
	}

	errs, err := s.validate(c.Context(), &cmd)
	if err != nil {
		return renderError(err)
	}

	return c.RenderJSON(errs)
}

func (s *Server) ServerGroupDetails(c *stdapi.Context) error {
	cp, err := cloudProvider(c)
	if err != nil {
		return err
	}

	sg, err := s.serverGroup(c, cp)
	if err != nil {
		return err
	}

	return c.RenderJSON(cp.ServerGroup.DetailSections(sg))
}

func (s *Server) ServerGroupGet(c *stdapi.Context) error {
	cp, err := cloudProvider(c)
	if err != nil {
		return err
	}

	sg, err := s.serverGroup(c, cp)
	if err != nil {
		return err
	}

	return c.RenderJSON(sg)
}

func (s *Server) ServerGroupList(c *stdapi.Context) error {
	a := application.New(s.Provider, c.Var("app"))
	a.Logger = s.Logger.Namespace("app=%s", a.Name)

	if err := a.ServerGroups.Ready(c.Context()); err != nil {
		return renderError(err)
	}

	v := structs.ServerGroups(a.ServerGroups.Data())

	sort.Slice(v, v.Less)

	return c.RenderJSON(v)
}

// serverGroup loads the normalized server group in the path.
func (s *Server) serverGroup(c *stdapi.Context, cp *cloud.Provider) (*structs.ServerGroup, error) {
	sg, err := s.provider(c).ServerGroupGet(c.Var("app"), c.Var("account"), c.Var("region"), c.Var("name"))
	if err != nil {
		return nil, renderError(err)
	}

	if sg == nil {
		return nil, stdapi.Errorf(404, "server group not found: %s", c.Var("name"))
	}

	return cp.ServerGroup.Transformer.Normalize(sg), nil
}
