package stages

import (
	"context"

	"github.com/deckops/deck/pkg/application"
	"github.com/deckops/deck/pkg/helpers"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/pkg/yandex"
)

// ClusterSelector edits the account and cluster of a server group stage.
type ClusterSelector struct {
	Application *application.Application
	Field       string
}

func NewClusterSelector(app *application.Application, c *Config) *ClusterSelector {
	return &ClusterSelector{
		Application: app,
		Field:       helpers.CoalesceString(c.ClusterField, "cluster"),
	}
}

func (cs *ClusterSelector) cluster(s *structs.Stage) string {
	if cs.Field == "targetCluster" {
		return s.TargetCluster
	}

	return s.Cluster
}

func (cs *ClusterSelector) setCluster(s *structs.Stage, cluster string) {
	if cs.Field == "targetCluster" {
		s.TargetCluster = cluster
	} else {
		s.Cluster = cluster
	}
}

// Clusters lists the clusters of the stage's account in the provider region.
// The stage's own cluster is kept even when no server group exists for it.
func (cs *ClusterSelector) Clusters(ctx context.Context, s *structs.Stage) ([]string, error) {
	if err := cs.Application.Ready(ctx); err != nil {
		return nil, err
	}

	clusters := cs.Application.Clusters(s.Credentials, yandex.Region)

	if c := cs.cluster(s); c != "" && !contains(clusters, c) {
		clusters = append(clusters, c)
	}

	return clusters, nil
}

// SelectAccount moves the stage to account. The cluster is cleared.
func (cs *ClusterSelector) SelectAccount(s *structs.Stage, account string) {
	s.Credentials = account
	pinRegion(s)
	cs.setCluster(s, "")
}

// SelectCluster points the stage at cluster and takes its moniker from an
// existing server group of that cluster when there is one.
func (cs *ClusterSelector) SelectCluster(s *structs.Stage, cluster string) {
	pinRegion(s)
	cs.setCluster(s, cluster)

	s.Moniker = nil

	for _, sg := range cs.Application.ServerGroups.Data() {
		if sg.Cluster != cluster {
			continue
		}

		n := helpers.ParseServerGroupName(sg.Name)

		s.Moniker = &structs.Moniker{
			App:     n.Application,
			Stack:   n.Stack,
			Detail:  n.Detail,
			Cluster: n.Cluster,
		}

		return
	}
}

func pinRegion(s *structs.Stage) {
	s.Region = yandex.Region
	s.Regions = []string{yandex.Region}
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}

	return false
}
