package helpers

import (
	"fmt"
	"regexp"
	"strings"
)

var reServerGroupSequence = regexp.MustCompile(`-v(\d{3,})$`)

// ClusterName joins an application, stack and detail into a cluster name.
// A detail without a stack keeps an empty stack slot.
func ClusterName(app, stack, detail string) string {
	switch {
	case detail != "":
		return fmt.Sprintf("%s-%s-%s", app, stack, detail)
	case stack != "":
		return fmt.Sprintf("%s-%s", app, stack)
	default:
		return app
	}
}

type ServerGroupName struct {
	Application string
	Stack       string
	Detail      string
	Cluster     string
	Sequence    string
}

// ParseServerGroupName splits app-stack-detail-v000 into its parts.
func ParseServerGroupName(name string) ServerGroupName {
	n := ServerGroupName{}

	cluster := name

	if m := reServerGroupSequence.FindStringSubmatch(name); len(m) == 2 {
		n.Sequence = m[1]
		cluster = strings.TrimSuffix(name, m[0])
	}

	n.Cluster = cluster

	parts := strings.SplitN(cluster, "-", 3)

	n.Application = parts[0]

	if len(parts) > 1 {
		n.Stack = parts[1]
	}

	if len(parts) > 2 {
		n.Detail = parts[2]
	}

	return n
}
