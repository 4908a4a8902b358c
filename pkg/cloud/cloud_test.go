package cloud_test

import (
	"testing"

	"github.com/deckops/deck/pkg/cloud"
	"github.com/deckops/deck/pkg/structs"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	p, err := cloud.Lookup("yandex")
	require.NoError(t, err)
	require.Equal(t, "yandex", p.Key)
	require.Equal(t, []string{"ru-central1"}, p.Regions)
	require.Len(t, p.DeploymentStrategies, 2)

	app := &structs.Application{Name: "app"}

	cmd := p.ServerGroup.Builder.New(app, structs.ModeCreate)
	require.Equal(t, "app", cmd.Application)

	conf := p.ServerGroup.Transformer.ToDeployConfiguration(cmd)
	require.Equal(t, "app", conf.Application)

	lb := p.LoadBalancer.Transformer.NewTemplate(app)
	require.Equal(t, "yandex", lb.CloudProvider)
}

func TestLookupUnknown(t *testing.T) {
	_, err := cloud.Lookup("aws")
	require.True(t, structs.IsNotFound(err))
	require.EqualError(t, err, "cloud provider not found: aws")
}

func TestKeys(t *testing.T) {
	for _, k := range cloud.Keys() {
		_, err := cloud.Lookup(k)
		require.NoError(t, err)
	}
}
