package stages

import (
	"context"
	"fmt"

	"github.com/deckops/deck/pkg/options"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/pkg/errors"
)

const (
	TypeBake                 = "bake"
	TypeCloneServerGroup     = "cloneServerGroup"
	TypeDeploy               = "deploy"
	TypeDestroyServerGroup   = "destroyServerGroup"
	TypeDisableServerGroup   = "disableServerGroup"
	TypeEnableServerGroup    = "enableServerGroup"
	TypeFindImageFromTags    = "findImageFromTags"
	TypeResizeServerGroup    = "resizeServerGroup"
	ActionScaleExact         = "scale_exact"
	TargetCurrentServerGroup = "current_asg_dynamic"
)

type Target struct {
	Label string
	Value string
}

// Targets are the dynamic server group targets a stage can act on.
var Targets = []Target{
	{Label: "Newest Server Group", Value: TargetCurrentServerGroup},
	{Label: "Previous Server Group", Value: "ancestor_asg_dynamic"},
	{Label: "Oldest Server Group", Value: "oldest_asg_dynamic"},
}

type requiredField struct {
	name  string
	label string
	get   func(s *structs.Stage) bool
}

// Config describes how one stage type is initialized and validated.
type Config struct {
	ClusterField string
	Label        string
	Type         string

	initialize func(app *structs.Application, s *structs.Stage)
	required   []requiredField
}

var (
	fieldCluster       = requiredField{"cluster", "cluster", func(s *structs.Stage) bool { return s.Cluster != "" }}
	fieldCredentials   = requiredField{"credentials", "account", func(s *structs.Stage) bool { return s.Credentials != "" }}
	fieldPackageName   = requiredField{"packageName", "packageName", func(s *structs.Stage) bool { return s.PackageName != "" }}
	fieldTags          = requiredField{"tags", "tags", func(s *structs.Stage) bool { return len(s.Tags) > 0 }}
	fieldTarget        = requiredField{"target", "target", func(s *structs.Stage) bool { return s.Target != "" }}
	fieldTargetCluster = requiredField{"targetCluster", "cluster", func(s *structs.Stage) bool { return s.TargetCluster != "" }}
)

var configs = []Config{
	{
		Type:       TypeBake,
		Label:      "Bake",
		initialize: initializeBake,
	},
	{
		Type:       TypeFindImageFromTags,
		Label:      "Find Image from Tags",
		initialize: initializeProvider,
		required:   []requiredField{fieldPackageName, fieldTags, fieldCredentials},
	},
	{
		Type:         TypeResizeServerGroup,
		Label:        "Resize Server Group",
		ClusterField: "cluster",
		initialize:   initializeResize,
		required:     []requiredField{fieldCluster, fieldTarget, fieldCredentials},
	},
	{
		Type:         TypeCloneServerGroup,
		Label:        "Clone Server Group",
		ClusterField: "targetCluster",
		initialize:   initializeClone,
		required:     []requiredField{fieldTargetCluster, fieldTarget, fieldCredentials},
	},
	{
		Type:         TypeDestroyServerGroup,
		Label:        "Destroy Server Group",
		ClusterField: "cluster",
		initialize:   initializeProvider,
		required:     []requiredField{fieldCluster, fieldTarget, fieldCredentials},
	},
	{
		Type:         TypeDisableServerGroup,
		Label:        "Disable Server Group",
		ClusterField: "cluster",
		initialize:   initializeProvider,
		required:     []requiredField{fieldCluster, fieldTarget, fieldCredentials},
	},
	{
		Type:         TypeEnableServerGroup,
		Label:        "Enable Server Group",
		ClusterField: "cluster",
		initialize:   initializeProvider,
		required:     []requiredField{fieldCluster, fieldTarget, fieldCredentials},
	},
}

func Lookup(typ string) (*Config, error) {
	for i := range configs {
		if configs[i].Type == typ {
			return &configs[i], nil
		}
	}

	return nil, errors.WithStack(structs.ErrNotFound("stage type", typ))
}

func Types() []string {
	ts := make([]string, len(configs))

	for i, c := range configs {
		ts[i] = c.Type
	}

	return ts
}

// Initialize fills in the defaults of stage s for application app.
func (c *Config) Initialize(app *structs.Application, s *structs.Stage) {
	s.Type = c.Type

	if c.initialize != nil {
		c.initialize(app, s)
	}
}

// Validate reports the required fields s is missing.
func (c *Config) Validate(s *structs.Stage) structs.Errors {
	errs := structs.Errors{}

	for _, f := range c.required {
		if !f.get(s) {
			errs.Add(f.name, fmt.Sprintf("%s is a required field for %s stages", f.label, c.Label))
		}
	}

	return errs
}

func initializeProvider(app *structs.Application, s *structs.Stage) {
	s.CloudProvider = yandex.CloudProvider
}

func initializeBake(app *structs.Application, s *structs.Stage) {
	s.CloudProvider = yandex.CloudProvider
	s.Region = yandex.Region
}

func initializeResize(app *structs.Application, s *structs.Stage) {
	s.CloudProvider = yandex.CloudProvider
	s.Action = ActionScaleExact

	if s.Capacity == nil || s.Capacity.Desired == 0 {
		s.Capacity = &structs.Capacity{Min: 1, Max: 1, Desired: 1}
	}

	overrideHealth(app, s)
}

func initializeClone(app *structs.Application, s *structs.Stage) {
	s.CloudProvider = yandex.CloudProvider

	if app != nil {
		s.Application = app.Name
	}

	if s.Target == "" {
		s.Target = Targets[0].Value
	}

	if s.IsNew {
		s.UseSourceCapacity = options.Bool(true)
		s.EnableTraffic = options.Bool(true)
	}

	overrideHealth(app, s)
}

func overrideHealth(app *structs.Application, s *structs.Stage) {
	if s.IsNew && app.PlatformHealthOverride() {
		s.InterestingHealthProviderNames = []string{yandex.HealthProvider}
	}
}

// SetInstanceCount pins a resize stage to exactly n instances.
func SetInstanceCount(s *structs.Stage, n int) {
	s.Capacity = &structs.Capacity{Min: n, Max: n, Desired: n}
}

// BaseOsOptions lists the base images a bake stage can start from.
func BaseOsOptions(ctx context.Context, p structs.Provider) ([]structs.BaseOs, error) {
	opts, err := p.WithContext(ctx).BaseOsList(yandex.CloudProvider)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if opts == nil {
		return []structs.BaseOs{}, nil
	}

	out := make([]structs.BaseOs, len(opts.BaseImages))

	for i, o := range opts.BaseImages {
		o.IsImageFamily = true
		out[i] = o
	}

	return out, nil
}
