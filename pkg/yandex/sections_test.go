package yandex_test

import (
	"strings"
	"testing"

	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/wizard"
	"github.com/deckops/deck/pkg/yandex"
	"github.com/stretchr/testify/require"
)

func labels[T any](ss []wizard.Section[T]) []string {
	out := []string{}

	for _, s := range ss {
		out = append(out, s.Label())
	}

	return out
}

func validCommand() yandex.Command {
	c := yandex.NewServerGroupCommand(fxApplication, structs.ModeCreate)
	c.Zones = []string{"ru-central1-a"}
	c.InstanceTemplate.BootDiskSpec.DiskSpec.ImageId = "img1"
	return *c
}

func TestServerGroupSections(t *testing.T) {
	c := yandex.NewServerGroupCommand(fxApplication, structs.ModeCreate)

	require.Equal(t, []string{
		"Basic Settings",
		"Deploy policy",
		"Instance template",
		"Autohealing policy",
		"Load Balancer",
		"Advanced settings",
	}, labels(yandex.ServerGroupSections(c)))

	c.ViewState.ShowImageSourceSelector = true

	require.Equal(t, "Artifact", labels(yandex.ServerGroupSections(c))[1])
}

func TestServerGroupSectionsValid(t *testing.T) {
	c := validCommand()

	for _, s := range yandex.ServerGroupSections(&c) {
		require.Empty(t, s.Validate(c), s.Label())
	}
}

func TestBasicSettings(t *testing.T) {
	tests := []struct {
		Name   string
		Modify func(*yandex.Command)
		Errors structs.Errors
	}{
		{
			"new command",
			func(c *yandex.Command) {
				c.Zones = nil
				c.InstanceTemplate.BootDiskSpec.DiskSpec.ImageId = ""
			},
			structs.Errors{
				"zones": "At least one availability zone is required.",
				"instanceTemplate.bootDiskSpec.diskSpec.imageId": "Image is required.",
			},
		},
		{
			"no account",
			func(c *yandex.Command) { c.Credentials = "" },
			structs.Errors{"credentials": "Account is required."},
		},
		{
			"unknown zone",
			func(c *yandex.Command) { c.Zones = []string{"us-east-1a"} },
			structs.Errors{"zones": "Unknown availability zone: us-east-1a"},
		},
		{
			"group size",
			func(c *yandex.Command) { c.GroupSize = 101 },
			structs.Errors{"groupSize": "Group size must be between 0 and 100."},
		},
		{
			"stack",
			func(c *yandex.Command) { c.Stack = "web-1" },
			structs.Errors{"stack": yandex.MessageStack},
		},
		{
			"detail",
			func(c *yandex.Command) { c.FreeFormDetails = "a_b" },
			structs.Errors{"freeFormDetails": yandex.MessageDetail},
		},
		{
			"detail with dashes",
			func(c *yandex.Command) { c.FreeFormDetails = "canary-1" },
			structs.Errors{},
		},
		{
			"image disabled",
			func(c *yandex.Command) {
				c.InstanceTemplate.BootDiskSpec.DiskSpec.ImageId = ""
				c.ViewState.DisableImageSelection = true
			},
			structs.Errors{},
		},
		{
			"image from prior stage",
			func(c *yandex.Command) {
				c.InstanceTemplate.BootDiskSpec.DiskSpec.ImageId = ""
				c.ImageSource = yandex.ImageSourcePriorStage
			},
			structs.Errors{},
		},
		{
			"subnet outside zones",
			func(c *yandex.Command) {
				c.BackingData = &structs.BackingData{Subnets: []structs.Subnet{
					{Id: "s1", Account: "prod", Zone: "ru-central1-a"},
					{Id: "s2", Account: "prod", Zone: "ru-central1-b"},
				}}
				c.InstanceTemplate.NetworkInterfaceSpecs[0].SubnetIds = []string{"s1", "s2"}
			},
			structs.Errors{"instanceTemplate.networkInterfaceSpecs[0].subnetIds": "Subnet s2 is not available in the selected zones."},
		},
		{
			"unknown service account",
			func(c *yandex.Command) {
				c.BackingData = &structs.BackingData{ServiceAccounts: []structs.ServiceAccount{{Id: "sa1"}}}
				c.ServiceAccountId = "sa2"
			},
			structs.Errors{"serviceAccountId": "Unknown service account: sa2"},
		},
		{
			"service accounts not loaded",
			func(c *yandex.Command) {
				c.BackingData = &structs.BackingData{}
				c.ServiceAccountId = "sa2"
			},
			structs.Errors{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			c := validCommand()
			tt.Modify(&c)
			require.Equal(t, tt.Errors, yandex.BasicSettings{}.Validate(c))
		})
	}
}

func TestArtifactSettings(t *testing.T) {
	c := validCommand()
	c.ViewState.ShowImageSourceSelector = true
	c.ImageSource = yandex.ImageSourceArtifact

	require.Equal(t, structs.Errors{"applicationArtifact": "Application artifact information is required"}, yandex.ArtifactSettings{}.Validate(c))

	c.ApplicationArtifact = &structs.ApplicationArtifact{Artifact: &structs.Artifact{Type: "docker/image"}}
	require.Len(t, yandex.ArtifactSettings{}.Validate(c), 1)

	c.ApplicationArtifact.Artifact.Reference = "cr.yandex/app:1"
	require.Empty(t, yandex.ArtifactSettings{}.Validate(c))

	c.ApplicationArtifact = &structs.ApplicationArtifact{ArtifactId: "a1"}
	require.Empty(t, yandex.ArtifactSettings{}.Validate(c))

	c.ApplicationArtifact = nil
	c.ImageSource = yandex.ImageSourcePriorStage
	require.Empty(t, yandex.ArtifactSettings{}.Validate(c))
}

func TestDeployPolicySettings(t *testing.T) {
	c := validCommand()

	c.DeployPolicy = &structs.DeployPolicy{}
	require.Equal(t, structs.Errors{
		"deployPolicy.maxUnavailable": "Either max unavailable or max expansion must be greater than 0.",
	}, yandex.DeployPolicySettings{}.Validate(c))

	c.DeployPolicy = &structs.DeployPolicy{MaxExpansion: 2, StartupDuration: 61}
	require.Equal(t, structs.Errors{
		"deployPolicy.startupDuration": "Must be between 0 and 60.",
	}, yandex.DeployPolicySettings{}.Validate(c))

	c.DeployPolicy = nil
	require.Equal(t, structs.Errors{"deployPolicy": "Deploy policy is required."}, yandex.DeployPolicySettings{}.Validate(c))
}

func TestInstanceTemplateSettings(t *testing.T) {
	c := validCommand()
	c.InstanceTemplate.PlatformId = "standard-v9"
	c.InstanceTemplate.ResourcesSpec = structs.ResourcesSpec{Cores: 0, Memory: 0, CoreFraction: 120}

	errs := yandex.InstanceTemplateSettings{}.Validate(c)

	require.Equal(t, []string{
		"instanceTemplate.platformId",
		"instanceTemplate.resourcesSpec.coreFraction",
		"instanceTemplate.resourcesSpec.cores",
		"instanceTemplate.resourcesSpec.memory",
	}, errs.Fields())
	require.True(t, strings.HasPrefix(errs["instanceTemplate.platformId"], "Platform must be one of: standard-v1"))
}

func TestHealthCheckSettings(t *testing.T) {
	c := validCommand()

	tcp := yandex.DefaultHealthCheck()
	tcp.Type = "TCP"
	tcp.Path = ""

	http := yandex.DefaultHealthCheck()
	http.Path = ""
	http.Timeout = 10
	http.Port = 0

	c.HealthCheckSpecs = []structs.HealthCheckSpec{tcp, http}

	require.Equal(t, structs.Errors{
		"healthCheckSpecs[1].path":    "Path is required for HTTP health checks.",
		"healthCheckSpecs[1].port":    "Port must be between 1 and 65535.",
		"healthCheckSpecs[1].timeout": "Timeout cannot exceed the interval.",
	}, yandex.HealthCheckSettings{}.Validate(c))
}

func TestLoadBalancerSettings(t *testing.T) {
	c := validCommand()

	hc := yandex.DefaultBalancerHealthCheck()
	hc.Port = 70000

	c.Balancers = map[string][]structs.HealthCheckSpec{"lb1": {hc}}

	require.Empty(t, yandex.LoadBalancerSettings{}.Validate(c))

	c.EnableTraffic = true

	require.Equal(t, structs.Errors{
		"balancers[lb1][0].port": "Port must be between 1 and 65535.",
	}, yandex.LoadBalancerSettings{}.Validate(c))
}

func TestAdvancedSettings(t *testing.T) {
	c := validCommand()
	c.Labels = map[string]string{" ": "x"}
	c.InstanceTemplate.BootDiskSpec.DiskSpec.Size = 0
	c.InstanceTemplate.SecondaryDiskSpecs = []structs.AttachedDiskSpec{yandex.DefaultSecondaryDisk(), {}}
	c.InstanceTemplate.Metadata = map[string]string{"": "x"}

	require.Equal(t, structs.Errors{
		"labels": "Label keys cannot be empty.",
		"instanceTemplate.bootDiskSpec.diskSpec.size":          "Disk size must be positive.",
		"instanceTemplate.secondaryDiskSpecs[1].diskSpec.size": "Disk size must be positive.",
		"instanceTemplate.metadata":                            "Metadata keys cannot be empty.",
	}, yandex.AdvancedSettings{}.Validate(c))
}

func TestLoadBalancerLocation(t *testing.T) {
	names := func(account string) []string {
		if account == "prod" {
			return []string{"app-web"}
		}
		return nil
	}

	s := yandex.LoadBalancerLocation{Names: names}

	c := *yandex.NewLoadBalancerTemplate(fxApplication)
	c.Credentials = "prod"
	c.Name = "app-web"

	require.Equal(t, structs.Errors{
		"name": "There is already a load balancer in prod:ru-central1 with that name.",
	}, s.Validate(c))

	c.Id = "lb-1"
	require.Empty(t, s.Validate(c))

	c.Id = ""
	c.Credentials = "staging"
	require.Empty(t, s.Validate(c))

	c.Name = strings.Repeat("a", 33)
	c.Credentials = ""
	c.Stack = "we b"

	require.Equal(t, structs.Errors{
		"credentials": "Account is required.",
		"name":        "Load balancer names cannot exceed 32 characters in length",
		"stack":       yandex.MessageStack,
	}, s.Validate(c))
}

func TestLoadBalancerListeners(t *testing.T) {
	c := *yandex.NewLoadBalancerTemplate(fxApplication)

	l := yandex.DefaultListener()
	bad := structs.Listener{Protocol: "HTTP", IpVersion: "IPV5", Port: 0, TargetPort: 80}

	c.Listeners = []structs.Listener{l, bad}

	require.Equal(t, []string{
		"listeners[1].ipVersion",
		"listeners[1].port",
		"listeners[1].protocol",
	}, yandex.LoadBalancerListeners{}.Validate(c).Fields())

	c.LbType = structs.LoadBalancerInternal
	c.Listeners = []structs.Listener{l}

	require.Equal(t, structs.Errors{
		"listeners[0].subnetId": "Subnet is required for internal load balancers.",
	}, yandex.LoadBalancerListeners{}.Validate(c))

	require.Equal(t, []string{"Location", "Listeners"}, labels(yandex.LoadBalancerSections(nil)))
}
