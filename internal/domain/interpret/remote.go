package interpret

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/appcanvas/engine/internal/infrastructure/resilience"
	"github.com/appcanvas/engine/internal/shared/types"
)

// ErrUnavailable reports that the assistant endpoint is not
// configured, not reachable, or answered with a non-success status.
// The selector falls back to local rules and surfaces the degradation
// in the reply message.
var ErrUnavailable = errors.New("interpretation service unavailable")

// DefaultContextNodes caps how many of the active screen's nodes are
// sent with a prompt.
const DefaultContextNodes = 20

// RemoteConfig configures the assistant-backed strategy.
type RemoteConfig struct {
	URL          string
	Timeout      time.Duration
	ContextNodes int
}

// Remote delegates interpretation to an external assistant service
// over JSON/HTTP. The transport retries transient failures and a
// circuit breaker fails fast while the endpoint is down.
type Remote struct {
	client   *resty.Client
	breaker  *resilience.Breaker
	url      string
	maxNodes int
}

// NewRemote creates the remote strategy.
func NewRemote(cfg RemoteConfig) *Remote {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ContextNodes <= 0 {
		cfg.ContextNodes = DefaultContextNodes
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "appcanvas-engine/1.0")

	return &Remote{
		client:   client,
		breaker:  resilience.New("interpret-remote", 5, 30*time.Second),
		url:      cfg.URL,
		maxNodes: cfg.ContextNodes,
	}
}

type remoteRequest struct {
	Prompt  string        `json:"prompt"`
	Context remoteContext `json:"context"`
}

type remoteContext struct {
	AppName  string        `json:"app_name,omitempty"`
	Industry string        `json:"industry,omitempty"`
	Screen   *remoteScreen `json:"screen,omitempty"`
	Selected *types.Node   `json:"selected"`
}

type remoteScreen struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Components []*types.Node `json:"components"`
}

type remoteResponse struct {
	Operations []types.Operation `json:"operations"`
	Message    string            `json:"message"`
}

// Interpret implements Interpreter.
func (r *Remote) Interpret(ctx context.Context, prompt string, ec Context) (*Reply, error) {
	if r.url == "" {
		return nil, ErrUnavailable
	}

	req := remoteRequest{
		Prompt: prompt,
		Context: remoteContext{
			AppName:  ec.AppName,
			Industry: ec.Industry,
			Selected: ec.Selected,
		},
	}
	if ec.Screen != nil {
		components := ec.Screen.Nodes
		if len(components) > r.maxNodes {
			components = components[:r.maxNodes]
		}
		req.Context.Screen = &remoteScreen{
			ID:         ec.Screen.ID,
			Name:       ec.Screen.Name,
			Components: components,
		}
	}

	var body remoteResponse
	err := r.breaker.Do(func() error {
		resp, err := r.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&body).
			Post(r.url)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if resp.IsError() {
			return fmt.Errorf("%w: assistant returned %s", ErrUnavailable, resp.Status())
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, resilience.ErrOpen) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}

	// Assistant-authored props are untrusted: strip markup before the
	// operations reach the applier.
	ops := make([]types.Operation, len(body.Operations))
	for i, op := range body.Operations {
		op.Props = SanitizeProps(op.Props)
		ops[i] = op
	}

	return &Reply{Operations: ops, Message: body.Message}, nil
}
