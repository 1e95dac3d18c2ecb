package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/drover/pkg/domain/interfaces"
	"github.com/m-mizutani/drover/pkg/domain/model"
	"github.com/m-mizutani/drover/pkg/domain/types"
)

const (
	defaultBaseURL     = "https://api.github.com"
	defaultPagesBranch = "gh-pages"
	apiVersion         = "2022-11-28"
)

type client struct {
	httpClient *http.Client
	ghClient   *gh.Client
	baseURL    string

	owner        string
	repo         string
	workflowFile string
	ref          string
	token        string
	pagesBranch  string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBaseURL overrides the GitHub API base URL. Mainly for tests.
func WithBaseURL(raw string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimSuffix(raw, "/")
	}
}

// WithHTTPClient sets the HTTP client used for outbound calls
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithPagesBranch sets the branch checked by ArtifactPublished
func WithPagesBranch(branch string) Option {
	return func(c *client) {
		if branch != "" {
			c.pagesBranch = branch
		}
	}
}

// NewClient creates a GitHub API client bound to one dispatch target. The
// target (owner, repo, workflow file, ref) is fixed for the process lifetime.
func NewClient(owner, repo, workflowFile, ref, token string, opts ...Option) (interfaces.WorkflowDispatcher, error) {
	if ref == "" {
		ref = "main"
	}

	c := &client{
		httpClient:   http.DefaultClient,
		baseURL:      defaultBaseURL,
		owner:        owner,
		repo:         repo,
		workflowFile: workflowFile,
		ref:          ref,
		token:        token,
		pagesBranch:  defaultPagesBranch,
	}
	for _, opt := range opts {
		opt(c)
	}

	ghClient := gh.NewClient(c.httpClient)
	if c.token != "" {
		ghClient = ghClient.WithAuthToken(c.token)
	}
	if c.baseURL != defaultBaseURL {
		parsed, err := url.Parse(c.baseURL + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", c.baseURL))
		}
		ghClient.BaseURL = parsed
	}
	c.ghClient = ghClient

	return c, nil
}

type dispatchPayload struct {
	Ref    string            `json:"ref"`
	Inputs map[string]string `json:"inputs"`
}

// DispatchWorkflow POSTs to the workflow dispatch API. The API answers 204
// with no body when it accepts the dispatch; any other status is surfaced as
// an upstream error carrying the response body text.
func (c *client) DispatchWorkflow(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/actions/workflows/%s/dispatches",
		c.baseURL, c.owner, c.repo, c.workflowFile)

	body, err := json.Marshal(dispatchPayload{
		Ref:    c.ref,
		Inputs: map[string]string{"uuid": id},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to encode dispatch payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create dispatch request", goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", types.AppName+"/"+types.Version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call workflow dispatch API",
			goerr.T(types.ErrTagUpstream),
			goerr.V("endpoint", endpoint),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		detail, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			detail = nil
		}
		return goerr.New("workflow dispatch rejected",
			goerr.T(types.ErrTagUpstream),
			goerr.V("status_code", resp.StatusCode),
			goerr.V("detail", string(detail)),
		)
	}

	return nil
}

// ArtifactPublished checks the Contents API for the identifier's folder on
// the Pages branch. A 404 means not published; other probe failures are
// returned as errors so the caller can decide whether to dispatch anyway.
func (c *client) ArtifactPublished(ctx context.Context, id string) (bool, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: c.pagesBranch}
	_, _, resp, err := c.ghClient.Repositories.GetContents(ctx, c.owner, c.repo, id, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to check published artifact",
			goerr.T(types.ErrTagUpstream),
			goerr.V("path", id),
			goerr.V("branch", c.pagesBranch),
		)
	}

	return true, nil
}

// ArtifactURL returns the public Pages location for an identifier on the
// configured target.
func (c *client) ArtifactURL(id string) string {
	return model.PagesURL(c.owner, c.repo, id)
}
