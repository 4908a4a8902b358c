package structs_test

import (
	"testing"

	"github.com/deckops/deck/pkg/structs"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func fxServerGroup() *structs.ServerGroup {
	return &structs.ServerGroup{
		Name:     "app1-prod-v001",
		Account:  "acct1",
		Region:   "ru-central1",
		Zones:    []string{"ru-central1-a"},
		Capacity: structs.Capacity{Min: 1, Max: 3, Desired: 2},
		AutoScalePolicy: &structs.AutoScalePolicy{
			MaxSize:            4,
			CpuUtilizationRule: &structs.CpuUtilizationRule{UtilizationTarget: 70},
			CustomRules:        []structs.CustomRule{{MetricName: "rps", Target: 10}},
		},
		DeployPolicy: &structs.DeployPolicy{MaxUnavailable: 1},
		InstanceTemplate: &structs.InstanceTemplate{
			PlatformId:    "standard-v2",
			Labels:        map[string]string{"team": "core"},
			Metadata:      map[string]string{"user-data": "#cloud-config"},
			ResourcesSpec: structs.ResourcesSpec{Cores: 2, Memory: 4, CoreFraction: 100},
			SecondaryDiskSpecs: []structs.AttachedDiskSpec{
				{Mode: "READ_WRITE", DiskSpec: structs.DiskSpec{TypeId: "network-hdd", Size: 10}},
			},
			NetworkInterfaceSpecs: []structs.NetworkInterfaceSpec{
				{SubnetIds: []string{"subnet1"}, PrimaryV4AddressSpec: &structs.PrimaryAddressSpec{OneToOneNat: true}},
			},
		},
		LoadBalancerIntegration: &structs.LoadBalancerIntegration{
			TargetGroupSpec: &structs.TargetGroupSpec{Name: "tg1", Labels: map[string]string{"a": "b"}},
		},
		HealthCheckSpecs: []structs.HealthCheckSpec{{Type: "HTTP", Port: 80, Path: "/ping"}},
		Labels:           map[string]string{"env": "prod"},
		Instances: []structs.Instance{
			{Id: "i1", Health: []structs.InstanceHealth{{State: "Up"}}},
		},
	}
}

func TestServerGroupDeepCopy(t *testing.T) {
	sg := fxServerGroup()
	cp := sg.DeepCopy()

	require.Empty(t, cmp.Diff(sg, cp))

	cp.Zones[0] = "ru-central1-b"
	cp.AutoScalePolicy.CpuUtilizationRule.UtilizationTarget = 10
	cp.AutoScalePolicy.CustomRules[0].Target = 99
	cp.DeployPolicy.MaxUnavailable = 5
	cp.InstanceTemplate.Labels["team"] = "other"
	cp.InstanceTemplate.SecondaryDiskSpecs[0].DiskSpec.Size = 50
	cp.InstanceTemplate.NetworkInterfaceSpecs[0].SubnetIds[0] = "subnet2"
	cp.InstanceTemplate.NetworkInterfaceSpecs[0].PrimaryV4AddressSpec.OneToOneNat = false
	cp.LoadBalancerIntegration.TargetGroupSpec.Labels["a"] = "c"
	cp.HealthCheckSpecs[0].Port = 8080
	cp.Labels["env"] = "dev"
	cp.Instances[0].Health[0].State = "Down"

	require.Empty(t, cmp.Diff(fxServerGroup(), sg))
}

func TestServerGroupDeepCopyNil(t *testing.T) {
	var sg *structs.ServerGroup
	require.Nil(t, sg.DeepCopy())

	empty := &structs.ServerGroup{Name: "sg1"}
	require.Equal(t, empty, empty.DeepCopy())
}

func TestInstanceCountsAdd(t *testing.T) {
	var ic structs.InstanceCounts

	for _, s := range []string{"Up", "Up", "Down", "OutOfService", "Starting", "Succeeded", "Failed", "Unknown", "Bogus"} {
		ic.Add(s)
	}

	require.Equal(t, structs.InstanceCounts{
		Total:        9,
		Up:           2,
		Down:         1,
		OutOfService: 1,
		Succeeded:    1,
		Failed:       1,
		Starting:     1,
		Unknown:      2,
	}, ic)
}

func TestModeIsPipeline(t *testing.T) {
	require.False(t, structs.ModeCreate.IsPipeline())
	require.False(t, structs.ModeClone.IsPipeline())
	require.True(t, structs.ModeCreatePipeline.IsPipeline())
	require.True(t, structs.ModeEditPipeline.IsPipeline())
	require.True(t, structs.ModeEditClonePipeline.IsPipeline())
}
