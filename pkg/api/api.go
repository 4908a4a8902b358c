package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"time"

	"github.com/convox/stdapi"
	"github.com/deckops/deck/pkg/cache"
	"github.com/deckops/deck/pkg/config"
	"github.com/deckops/deck/pkg/structs"
	"github.com/deckops/deck/sdk"
	uuid "github.com/satori/go.uuid"
)

const DefaultFormTimeout = 30 * time.Second

type Server struct {
	*stdapi.Server
	FormTimeout time.Duration
	Password    string
	Provider    structs.Provider

	lookups structs.Provider
}

// New serves the orchestration API configured for the deck CLI.
func New() (*Server, error) {
	cfg, err := config.Load(os.Getenv("DECK_CONFIG"))
	if err != nil {
		return nil, err
	}

	p, err := sdk.New(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	p.Version = "api"

	if cfg.Password != "" && p.Endpoint.User == nil {
		p.Endpoint.User = url.UserPassword("deck", cfg.Password)
	}

	s := NewWithProvider(p)
	s.Password = os.Getenv("DECK_API_PASSWORD")

	return s, nil
}

func NewWithProvider(p structs.Provider) *Server {
	s := &Server{
		FormTimeout: DefaultFormTimeout,
		Provider:    p,
		Server:      stdapi.New("deck", "deck-api"),
		lookups:     cache.NewProvider(p, cache.New(), cache.DefaultTTL),
	}

	s.Router.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok\n")
	})

	auth := s.Subrouter("/")

	auth.Route("GET", "/auth", func(c *stdapi.Context) error { return c.RenderOK() })

	auth.Use(s.identify)
	auth.Use(s.authenticate)

	s.setupRoutes(auth)

	return s
}

func (s *Server) authenticate(next stdapi.HandlerFunc) stdapi.HandlerFunc {
	return func(c *stdapi.Context) error {
		if _, pass, _ := c.Request().BasicAuth(); s.Password != "" && s.Password != pass {
			return stdapi.Errorf(401, "invalid authentication")
		}
		return next(c)
	}
}

// identify tags every response with a request id, keeping one the caller
// already sent.
func (s *Server) identify(next stdapi.HandlerFunc) stdapi.HandlerFunc {
	return func(c *stdapi.Context) error {
		id := c.Header("Request-Id")
		if id == "" {
			id = uuid.NewV4().String()
		}

		c.Response().Header().Set("Request-Id", id)
		c.Set("request.id", id)

		return next(c)
	}
}

func (s *Server) hook(name string, args ...interface{}) error {
	vfn, ok := reflect.TypeOf(s).MethodByName(name)
	if !ok {
		return nil
	}

	rargs := []reflect.Value{reflect.ValueOf(s)}

	for _, arg := range args {
		rargs = append(rargs, reflect.ValueOf(arg))
	}

	rvs := vfn.Func.Call(rargs)
	if len(rvs) == 0 {
		return nil
	}

	if err, ok := rvs[0].Interface().(error); ok && err != nil {
		return err
	}

	return nil
}

func (s *Server) provider(c *stdapi.Context) structs.Provider {
	return s.Provider.WithContext(c.Context())
}
