package api

import (
	"github.com/convox/stdapi"
)

func (s *Server) setupRoutes(r *stdapi.Router) {
	r.Route("GET", "/apps/{app}/loadbalancers", s.LoadBalancerList)
	r.Route("POST", "/apps/{app}/loadbalancers/commands", s.LoadBalancerCommandNew)
	r.Route("GET", "/apps/{app}/servergroups", s.ServerGroupList)
	r.Route("POST", "/apps/{app}/servergroups/commands", s.ServerGroupCommandNew)
	r.Route("GET", "/apps/{app}/servergroups/{account}/{region}/{name}", s.ServerGroupGet)
	r.Route("POST", "/apps/{app}/servergroups/{account}/{region}/{name}/commands", s.ServerGroupCommandClone)
	r.Route("GET", "/apps/{app}/servergroups/{account}/{region}/{name}/details", s.ServerGroupDetails)
	r.Route("POST", "/apps/{app}/pipelines/{pipeline}/stages/{stage}/commands", s.ServerGroupCommandPipeline)
	r.Route("POST", "/servergroups/commands/configuration", s.ServerGroupCommandConfiguration)
	r.Route("POST", "/servergroups/commands/validate", s.ServerGroupCommandValidate)
}
