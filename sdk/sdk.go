package sdk

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/convox/stdsdk"
	"github.com/deckops/deck/pkg/structs"
	"github.com/pkg/errors"
)

type Client struct {
	*stdsdk.Client
	Debug   bool
	Version string

	ctx context.Context
}

// ensure interface parity
var _ structs.Provider = &Client{}

func New(endpoint string) (*Client, error) {
	s, err := stdsdk.New(coalesce(endpoint, "http://localhost:8084"))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	c := &Client{
		Client:  s,
		Debug:   os.Getenv("DECK_DEBUG") == "true",
		Version: "dev",
		ctx:     context.Background(),
	}

	c.Client.Headers = c.Headers

	return c, nil
}

func NewFromEnv() (*Client, error) {
	return New(os.Getenv("DECK_ENDPOINT"))
}

func (c *Client) Headers() http.Header {
	h := http.Header{}

	h.Set("User-Agent", fmt.Sprintf("deck/%s", c.Version))
	h.Set("Version", c.Version)

	if c.Endpoint.User != nil {
		h.Set("Authorization", fmt.Sprintf("Basic %s", base64.StdEncoding.EncodeToString([]byte(c.Endpoint.User.String()))))
	}

	return h
}

// WithContext returns a copy of the client whose requests are bound to ctx.
func (c *Client) WithContext(ctx context.Context) structs.Provider {
	cc := *c
	cc.ctx = ctx
	return &cc
}

func (c *Client) context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}

	return c.ctx
}

func (c *Client) get(path string, ro stdsdk.RequestOptions, out interface{}) error {
	return c.do("GET", path, ro, out)
}

func (c *Client) post(path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errors.WithStack(err)
	}

	ro := stdsdk.RequestOptions{
		Body:    bytes.NewReader(data),
		Headers: stdsdk.Headers{"Content-Type": "application/json"},
	}

	return c.do("POST", path, ro, out)
}

func (c *Client) do(method, path string, ro stdsdk.RequestOptions, out interface{}) error {
	req, err := c.Request(method, path, ro)
	if err != nil {
		return errors.WithStack(err)
	}

	if c.Debug {
		fmt.Fprintf(os.Stderr, "DEBUG: %s %s\n", method, req.URL)
	}

	res, err := c.HandleRequest(req.WithContext(c.context()))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
