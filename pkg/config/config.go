package config

import (
	"os"
	"time"

	"github.com/deckops/deck/pkg/helpers"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

const (
	DefaultAccount      = "default"
	DefaultEndpoint     = "http://localhost:8084"
	DefaultPath         = "~/.deck/config.yml"
	DefaultPollInterval = 2 * time.Second
	DefaultTaskTimeout  = 30 * time.Minute
)

type Config struct {
	Account      string        `yaml:"account"`
	Drafts       string        `yaml:"drafts"`
	Endpoint     string        `yaml:"endpoint"`
	Password     string        `yaml:"password"`
	PollInterval time.Duration `yaml:"-"`
	TaskTimeout  time.Duration `yaml:"-"`
}

type file struct {
	Account      string `yaml:"account"`
	Drafts       string `yaml:"drafts"`
	Endpoint     string `yaml:"endpoint"`
	Password     string `yaml:"password"`
	PollInterval string `yaml:"poll_interval"`
	TaskTimeout  string `yaml:"task_timeout"`
}

// Load reads the config file at path, if it exists, and applies DECK_*
// environment overrides on top of it.
func Load(path string) (*Config, error) {
	f := file{}

	p, err := homedir.Expand(helpers.CoalesceString(path, DefaultPath))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if helpers.FileExists(p) {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrapf(err, "invalid config: %s", p)
		}
	}

	f.Account = helpers.CoalesceString(os.Getenv("DECK_ACCOUNT"), f.Account)
	f.Drafts = helpers.CoalesceString(os.Getenv("DECK_DRAFTS"), f.Drafts)
	f.Endpoint = helpers.CoalesceString(os.Getenv("DECK_ENDPOINT"), f.Endpoint)
	f.Password = helpers.CoalesceString(os.Getenv("DECK_PASSWORD"), f.Password)
	f.PollInterval = helpers.CoalesceString(os.Getenv("DECK_POLL_INTERVAL"), f.PollInterval)
	f.TaskTimeout = helpers.CoalesceString(os.Getenv("DECK_TASK_TIMEOUT"), f.TaskTimeout)

	c := &Config{
		Account:      helpers.CoalesceString(f.Account, DefaultAccount),
		Endpoint:     helpers.CoalesceString(f.Endpoint, DefaultEndpoint),
		Password:     f.Password,
		PollInterval: DefaultPollInterval,
		TaskTimeout:  DefaultTaskTimeout,
	}

	drafts, err := homedir.Expand(helpers.CoalesceString(f.Drafts, "~/.deck/drafts.db"))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	c.Drafts = drafts

	if f.PollInterval != "" {
		d, err := time.ParseDuration(f.PollInterval)
		if err != nil {
			return nil, errors.Wrap(err, "invalid poll interval")
		}
		c.PollInterval = d
	}

	if f.TaskTimeout != "" {
		d, err := time.ParseDuration(f.TaskTimeout)
		if err != nil {
			return nil, errors.Wrap(err, "invalid task timeout")
		}
		c.TaskTimeout = d
	}

	return c, nil
}

// Save writes the file-backed settings to path.
func (c *Config) Save(path string) error {
	p, err := homedir.Expand(helpers.CoalesceString(path, DefaultPath))
	if err != nil {
		return errors.WithStack(err)
	}

	f := file{
		Account:      c.Account,
		Drafts:       c.Drafts,
		Endpoint:     c.Endpoint,
		Password:     c.Password,
		PollInterval: c.PollInterval.String(),
		TaskTimeout:  c.TaskTimeout.String(),
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.WithStack(err)
	}

	return helpers.WriteFile(p, data, 0600)
}
