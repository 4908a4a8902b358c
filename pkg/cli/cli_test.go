package cli_test

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deckops/deck/pkg/cli"
	"github.com/deckops/deck/pkg/config"
	"github.com/deckops/deck/pkg/options"
	"github.com/deckops/deck/pkg/structs"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type result struct {
	Code   int
	Stdout string
	Stderr string
}

func (r *result) RequireStderr(t *testing.T, lines []string) {
	require.Equal(t, strings.Join(lines, "\n"), strings.TrimSuffix(r.Stderr, "\n"))
}

func (r *result) RequireStdout(t *testing.T, lines []string) {
	require.Equal(t, strings.Join(lines, "\n"), strings.TrimSuffix(r.Stdout, "\n"))
}

func testClient(t *testing.T, fn func(*cli.Engine, *structs.MockProvider)) {
	p := &structs.MockProvider{}
	p.On("WithContext", mock.Anything).Return(p).Maybe()

	tmp := t.TempDir()

	e := cli.New("deck", "test")
	e.Client = p
	e.Settings = tmp
	e.Config = &config.Config{
		Account:      "default",
		Drafts:       filepath.Join(tmp, "drafts.db"),
		Endpoint:     "https://deck.example.org",
		PollInterval: 5 * time.Millisecond,
		TaskTimeout:  5 * time.Second,
	}

	fn(e, p)

	p.AssertExpectations(t)
}

func testExecute(e *cli.Engine, cmd string, stdin io.Reader) (*result, error) {
	if stdin == nil {
		stdin = &bytes.Buffer{}
	}

	stdout := bytes.Buffer{}
	stderr := bytes.Buffer{}

	e.Reader.Reader = stdin

	e.Writer.Color = false
	e.Writer.Stdout = &stdout
	e.Writer.Stderr = &stderr

	cp, err := shellquote.Split(cmd)
	if err != nil {
		return nil, err
	}

	code := e.Execute(cp)

	res := &result{
		Code:   code,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	return res, nil
}

func fxApplication() *structs.Application {
	return &structs.Application{Name: "app"}
}

func fxServerGroups() structs.ServerGroups {
	return structs.ServerGroups{
		{
			Name:         "app-web-v001",
			Account:      "prod",
			Region:       "ru-central1",
			Stack:        "web",
			Capacity:     structs.Capacity{Min: 2, Max: 2, Desired: 2},
			DeployPolicy: &structs.DeployPolicy{MaxUnavailable: 1},
			Zones:        []string{"ru-central1-a"},
			InstanceTemplate: &structs.InstanceTemplate{
				PlatformId:    "standard-v2",
				ResourcesSpec: structs.ResourcesSpec{Cores: 2, Memory: 4, CoreFraction: 100},
				BootDiskSpec: structs.AttachedDiskSpec{
					Mode:     "READ_WRITE",
					DiskSpec: structs.DiskSpec{TypeId: "network-ssd", Size: 20, ImageId: "img1"},
				},
			},
			Instances: []structs.Instance{{Id: "i1", HealthState: structs.HealthStateUp}},
		},
		{Name: "app-web-v000", Account: "prod", Region: "ru-central1", IsDisabled: true},
		{Name: "app-api-v000", Account: "staging", Region: "ru-central1", Capacity: structs.Capacity{Min: 1, Max: 1, Desired: 1}},
	}
}

func fxLoadBalancers() structs.LoadBalancers {
	return structs.LoadBalancers{
		{
			Id:           "lb1",
			Name:         "app-lb",
			Account:      "prod",
			Region:       "ru-central1",
			BalancerType: structs.LoadBalancerExternal,
			Listeners:    []structs.Listener{{Name: "http", Port: 80, TargetPort: 8080, Protocol: "TCP", IpVersion: "IPV4"}},
			ServerGroups: []structs.LoadBalancerServerGroup{{Name: "app-web-v001"}},
		},
	}
}

func expectApplication(p *structs.MockProvider) {
	p.On("ApplicationGet", "app").Return(fxApplication(), nil).Maybe()
	p.On("ServerGroupList", "app").Return(fxServerGroups(), nil)
	p.On("LoadBalancerList", "app").Return(fxLoadBalancers(), nil)
}

func expectForm(p *structs.MockProvider, account string) {
	p.On("AccountList", "yandex").Return(structs.Accounts{{Name: "default"}, {Name: "prod"}}, nil)
	p.On("SubnetList", "yandex").Return(structs.Subnets{{Id: "subnet1", Account: account, Zone: "ru-central1-a"}}, nil)
	p.On("ServiceAccountList", account).Return(structs.ServiceAccounts{{Id: "sa1", Name: "deployer"}}, nil).Maybe()
	p.On("ImageFind", mock.Anything).Return(structs.Images{{ImageId: "img1", ImageName: "base"}}, nil).Maybe()
}

func TestAccounts(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("AccountList", "yandex").Return(structs.Accounts{
			{Name: "staging", Environment: "staging", Regions: []string{"ru-central1"}},
			{Name: "prod", Environment: "production", Regions: []string{"ru-central1"}},
		}, nil)

		res, err := testExecute(e, "accounts", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		res.RequireStdout(t, []string{
			"NAME     ENVIRONMENT  REGIONS",
			"prod     production   ru-central1",
			"staging  staging      ru-central1",
		})
	})
}

func TestAccountsError(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("AccountList", "yandex").Return(nil, fmt.Errorf("err1"))

		res, err := testExecute(e, "accounts", nil)
		require.NoError(t, err)
		require.Equal(t, 1, res.Code)
		res.RequireStderr(t, []string{"ERROR: err1"})
		res.RequireStdout(t, []string{""})
	})
}

func TestImages(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		opts := structs.ImageFindOptions{
			Account:  options.String("prod"),
			Provider: options.String("yandex"),
		}

		p.On("ImageFind", opts).Return(structs.Images{
			{ImageId: "img1", ImageName: "app-web", Account: "prod"},
			{ImageId: "img2", ImageName: "base-ubuntu", Account: "prod", Size: 2 * 1024 * 1024 * 1024},
		}, nil)

		res, err := testExecute(e, "images --account prod --filter base-*", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		res.RequireStdout(t, []string{
			"ID    NAME         ACCOUNT  SIZE     CREATED",
			"img2  base-ubuntu  prod     2.0 GiB",
		})
	})
}

func TestImagesInvalidFilter(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		p.On("ImageFind", mock.Anything).Return(structs.Images{}, nil)

		res, err := testExecute(e, "images --filter [", nil)
		require.NoError(t, err)
		require.Equal(t, 1, res.Code)
		require.True(t, strings.HasPrefix(res.Stderr, "ERROR: invalid filter: ["))
	})
}

func TestSwitch(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		res, err := testExecute(e, "switch other", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		res.RequireStdout(t, []string{"Switched to other"})

		res, err = testExecute(e, "switch", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStdout(t, []string{"other"})
	})
}

func TestVersion(t *testing.T) {
	testClient(t, func(e *cli.Engine, p *structs.MockProvider) {
		res, err := testExecute(e, "version", nil)
		require.NoError(t, err)
		require.Equal(t, 0, res.Code)
		res.RequireStderr(t, []string{""})
		res.RequireStdout(t, []string{
			"Client    test",
			"Endpoint  https://deck.example.org",
			"Account   default",
		})
	})
}
