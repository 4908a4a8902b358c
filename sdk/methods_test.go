package sdk_test

import (
	"testing"

	"github.com/convox/stdapi"
	"github.com/deckops/deck/pkg/options"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/sdk"
	"github.com/stretchr/testify/require"
)

func TestAccountList(t *testing.T) {
	s := stdapi.New("api", "api")
	s.Route("GET", "/credentials", func(c *stdapi.Context) error {
		require.Equal(t, "true", c.Query("expand"))
		return c.RenderJSON(structs.Accounts{
			{Name: "acct1", Type: "yandex"},
			{Name: "acct2", CloudProvider: "aws"},
			{Name: "acct3", CloudProvider: "yandex"},
		})
	})

	testServer(t, s, func(c *sdk.Client) {
		as, err := c.AccountList("yandex")
		require.NoError(t, err)
		require.Equal(t, []string{"acct1", "acct3"}, as.Names())
	})
}

func TestAccountListError(t *testing.T) {
	s := stdapi.New("api", "api")
	s.Route("GET", "/credentials", func(c *stdapi.Context) error {
		return stdapi.Errorf(500, "err1")
	})

	testServer(t, s, func(c *sdk.Client) {
		as, err := c.AccountList("yandex")
		require.EqualError(t, err, "err1")
		require.Nil(t, as)
	})
}

func TestApplicationGet(t *testing.T) {
	a := &structs.Application{Name: "app1", DefaultCredentials: map[string]string{"yandex": "acct1"}}

	s := stdapi.New("api", "api")
	s.Route("GET", "/applications/{name}", func(c *stdapi.Context) error {
		require.Equal(t, "app1", c.Var("name"))
		return c.RenderJSON(a)
	})

	testServer(t, s, func(c *sdk.Client) {
		got, err := c.ApplicationGet("app1")
		require.NoError(t, err)
		require.Equal(t, a, got)
	})
}

func TestImageFind(t *testing.T) {
	is := structs.Images{{ImageId: "img1", ImageName: "base-ubuntu"}}

	s := stdapi.New("api", "api")
	s.Route("GET", "/images/find", func(c *stdapi.Context) error {
		require.Equal(t, "acct1", c.Query("account"))
		require.Equal(t, "yandex", c.Query("provider"))
		require.Equal(t, "*", c.Query("q"))
		return c.RenderJSON(is)
	})

	testServer(t, s, func(c *sdk.Client) {
		got, err := c.ImageFind(structs.ImageFindOptions{
			Account:  options.String("acct1"),
			Provider: options.String("yandex"),
			Query:    options.String("*"),
		})
		require.NoError(t, err)
		require.Equal(t, is, got)
	})
}

func TestImageFindErrorDegrades(t *testing.T) {
	s := stdapi.New("api", "api")
	s.Route("GET", "/images/find", func(c *stdapi.Context) error {
		return stdapi.Errorf(500, "err1")
	})

	testServer(t, s, func(c *sdk.Client) {
		got, err := c.ImageFind(structs.ImageFindOptions{})
		require.NoError(t, err)
		require.Equal(t, structs.Images{}, got)
	})
}

func TestServerGroupGet(t *testing.T) {
	sg := &structs.ServerGroup{Name: "app1-v001", Account: "acct1", Region: "ru-central1", Capacity: structs.Capacity{Desired: 2}}

	s := stdapi.New("api", "api")
	s.Route("GET", "/applications/{app}/serverGroups/{account}/{region}/{name}", func(c *stdapi.Context) error {
		require.Equal(t, "app1", c.Var("app"))
		require.Equal(t, "acct1", c.Var("account"))
		require.Equal(t, "ru-central1", c.Var("region"))
		require.Equal(t, "app1-v001", c.Var("name"))
		return c.RenderJSON(sg)
	})

	testServer(t, s, func(c *sdk.Client) {
		got, err := c.ServerGroupGet("app1", "acct1", "ru-central1", "app1-v001")
		require.NoError(t, err)
		require.Equal(t, sg, got)
	})
}

func TestServerGroupClone(t *testing.T) {
	s := stdapi.New("api", "api")
	s.Route("POST", "/applications/{app}/tasks", func(c *stdapi.Context) error {
		var tc structs.TaskCreate
		require.NoError(t, c.BodyJSON(&tc))
		require.Equal(t, "app1", tc.Application)
		require.Equal(t, "Create Cloned Server Group from app1-v001", tc.Description)
		require.Len(t, tc.Job, 1)
		require.Equal(t, "cloneServerGroup", tc.Job[0]["type"])
		require.Equal(t, "acct1", tc.Job[0]["account"])
		require.Equal(t, "yandex", tc.Job[0]["cloudProvider"])
		return c.RenderJSON(structs.TaskRef{Ref: "/tasks/t1"})
	})

	testServer(t, s, func(c *sdk.Client) {
		task, err := c.ServerGroupClone("app1", structs.DeployConfiguration{
			Application:   "app1",
			Account:       "acct1",
			CloudProvider: "yandex",
			Source:        &structs.Source{AsgName: "app1-v001"},
		})
		require.NoError(t, err)
		require.Equal(t, "t1", task.Id)
		require.Equal(t, structs.TaskStatusNotStarted, task.Status)
	})
}

func TestServerGroupCreate(t *testing.T) {
	s := stdapi.New("api", "api")
	s.Route("POST", "/applications/{app}/tasks", func(c *stdapi.Context) error {
		var tc structs.TaskCreate
		require.NoError(t, c.BodyJSON(&tc))
		require.Equal(t, "Create New Server Group in cluster app1-prod", tc.Description)
		require.Equal(t, "createServerGroup", tc.Job[0]["type"])
		return c.RenderJSON(structs.TaskRef{Ref: "/tasks/t2"})
	})

	testServer(t, s, func(c *sdk.Client) {
		task, err := c.ServerGroupClone("app1", structs.DeployConfiguration{Application: "app1", Stack: "prod"})
		require.NoError(t, err)
		require.Equal(t, "t2", task.Id)
	})
}

func TestServerGroupResize(t *testing.T) {
	sg := structs.ServerGroup{Name: "app1-v001", Account: "acct1", Region: "ru-central1"}

	s := stdapi.New("api", "api")
	s.Route("POST", "/applications/{app}/tasks", func(c *stdapi.Context) error {
		var tc structs.TaskCreate
		require.NoError(t, c.BodyJSON(&tc))
		require.Equal(t, "Resize Server Group: app1-v001 to 3/3/3", tc.Description)
		job := tc.Job[0]
		require.Equal(t, "resizeServerGroup", job["type"])
		require.Equal(t, "app1-v001", job["serverGroupName"])
		require.Equal(t, "acct1", job["credentials"])
		require.Equal(t, []interface{}{"ru-central1"}, job["regions"])
		require.Equal(t, map[string]interface{}{"min": 3.0, "max": 3.0, "desired": 3.0}, job["capacity"])
		return c.RenderJSON(structs.TaskRef{Ref: "/tasks/t3"})
	})

	testServer(t, s, func(c *sdk.Client) {
		task, err := c.ServerGroupResize("app1", sg, structs.ServerGroupResizeOptions{Capacity: structs.Capacity{Min: 3, Max: 3, Desired: 3}})
		require.NoError(t, err)
		require.Equal(t, "t3", task.Id)
	})
}

func TestServerGroupRollback(t *testing.T) {
	sg := structs.ServerGroup{Name: "app1-v002", Account: "acct1", Region: "ru-central1"}

	s := stdapi.New("api", "api")
	s.Route("POST", "/applications/{app}/tasks", func(c *stdapi.Context) error {
		var tc structs.TaskCreate
		require.NoError(t, c.BodyJSON(&tc))
		job := tc.Job[0]
		require.Equal(t, "rollbackServerGroup", job["type"])
		require.Equal(t, "EXPLICIT", job["rollbackType"])
		require.Equal(t, map[string]interface{}{
			"rollbackServerGroupName":         "app1-v002",
			"restoreServerGroupName":          "app1-v001",
			"targetHealthyRollbackPercentage": 100.0,
		}, job["rollbackContext"])
		return c.RenderJSON(structs.TaskRef{Ref: "/tasks/t4"})
	})

	testServer(t, s, func(c *sdk.Client) {
		_, err := c.ServerGroupRollback("app1", sg, structs.ServerGroupRollbackOptions{
			RollbackType: "EXPLICIT",
			RollbackContext: structs.RollbackContext{
				RollbackServerGroupName:         "app1-v002",
				RestoreServerGroupName:          "app1-v001",
				TargetHealthyRollbackPercentage: 100,
			},
		})
		require.NoError(t, err)
	})
}

func TestServerGroupDestroyError(t *testing.T) {
	s := stdapi.New("api", "api")
	s.Route("POST", "/applications/{app}/tasks", func(c *stdapi.Context) error {
		return stdapi.Errorf(403, "forbidden")
	})

	testServer(t, s, func(c *sdk.Client) {
		task, err := c.ServerGroupDestroy("app1", structs.ServerGroup{Name: "app1-v001"}, structs.ServerGroupActionOptions{})
		require.EqualError(t, err, "forbidden")
		require.Nil(t, task)
	})
}

func TestLoadBalancerUpsert(t *testing.T) {
	s := stdapi.New("api", "api")
	s.Route("POST", "/applications/{app}/tasks", func(c *stdapi.Context) error {
		var tc structs.TaskCreate
		require.NoError(t, c.BodyJSON(&tc))
		require.Equal(t, "Create Load Balancer: app1-lb", tc.Description)
		job := tc.Job[0]
		require.Equal(t, "upsertLoadBalancer", job["type"])
		require.Equal(t, "app1-lb", job["loadBalancerName"])
		require.Equal(t, "EXTERNAL", job["lbType"])
		return c.RenderJSON(structs.TaskRef{Ref: "/tasks/t5"})
	})

	testServer(t, s, func(c *sdk.Client) {
		task, err := c.LoadBalancerUpsert("app1", structs.LoadBalancerUpsertCommand{Name: "app1-lb", LbType: "EXTERNAL"}, "Create")
		require.NoError(t, err)
		require.Equal(t, "t5", task.Id)
	})
}

func TestLoadBalancerDelete(t *testing.T) {
	s := stdapi.New("api", "api")
	s.Route("POST", "/applications/{app}/tasks", func(c *stdapi.Context) error {
		var tc structs.TaskCreate
		require.NoError(t, c.BodyJSON(&tc))
		require.Equal(t, "Delete load balancer: app1-lb in acct1:ru-central1", tc.Description)
		require.Equal(t, "deleteLoadBalancer", tc.Job[0]["type"])
		return c.RenderJSON(structs.TaskRef{Ref: "/tasks/t6"})
	})

	testServer(t, s, func(c *sdk.Client) {
		task, err := c.LoadBalancerDelete("app1", structs.LoadBalancerDeleteCommand{
			CloudProvider:    "yandex",
			Credentials:      "acct1",
			Regions:          []string{"ru-central1"},
			LoadBalancerName: "app1-lb",
		})
		require.NoError(t, err)
		require.Equal(t, "t6", task.Id)
	})
}

func TestTaskGet(t *testing.T) {
	task := &structs.Task{Id: "t1", Status: structs.TaskStatusRunning}

	s := stdapi.New("api", "api")
	s.Route("GET", "/tasks/{id}", func(c *stdapi.Context) error {
		require.Equal(t, "t1", c.Var("id"))
		return c.RenderJSON(task)
	})

	testServer(t, s, func(c *sdk.Client) {
		got, err := c.TaskGet("t1")
		require.NoError(t, err)
		require.Equal(t, task, got)
	})
}
