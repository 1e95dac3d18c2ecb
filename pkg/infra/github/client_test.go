package github_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/drover/pkg/domain/types"
	githubinfra "github.com/m-mizutani/drover/pkg/infra/github"
)

func TestClient_DispatchWorkflow_Success(t *testing.T) {
	ctx := context.Background()

	var gotPath, gotAuth, gotAccept, gotAPIVersion string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotAPIVersion = r.Header.Get("X-GitHub-Api-Version")

		raw, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		gt.NoError(t, json.Unmarshal(raw, &gotBody))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := githubinfra.NewClient(
		"octo-org", "handouts", "build-handouts.yml", "main", "test-token",
		githubinfra.WithBaseURL(server.URL),
	)
	gt.NoError(t, err)

	gt.NoError(t, client.DispatchWorkflow(ctx, "1234567890abcdef"))

	gt.Value(t, gotPath).Equal("/repos/octo-org/handouts/actions/workflows/build-handouts.yml/dispatches")
	gt.Value(t, gotAuth).Equal("Bearer test-token")
	gt.Value(t, gotAccept).Equal("application/vnd.github+json")
	gt.Value(t, gotAPIVersion).Equal("2022-11-28")

	gt.Value(t, gotBody["ref"]).Equal("main")
	inputs, ok := gotBody["inputs"].(map[string]any)
	gt.Value(t, ok).Equal(true)
	gt.Value(t, inputs["uuid"]).Equal("1234567890abcdef")
}

func TestClient_DispatchWorkflow_DefaultRef(t *testing.T) {
	ctx := context.Background()

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	// Empty ref falls back to "main"
	client, err := githubinfra.NewClient(
		"octo-org", "handouts", "build-handouts.yml", "", "test-token",
		githubinfra.WithBaseURL(server.URL),
	)
	gt.NoError(t, err)

	gt.NoError(t, client.DispatchWorkflow(ctx, "1234567890abcdef"))
	gt.Value(t, gotBody["ref"]).Equal("main")
}

func TestClient_DispatchWorkflow_UpstreamRejection(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not Found"))
	}))
	defer server.Close()

	client, err := githubinfra.NewClient(
		"octo-org", "handouts", "build-handouts.yml", "main", "test-token",
		githubinfra.WithBaseURL(server.URL),
	)
	gt.NoError(t, err)

	err = client.DispatchWorkflow(ctx, "1234567890abcdef")
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagUpstream)).Equal(true)

	values := goerr.Values(err)
	gt.Value(t, values["status_code"]).Equal(http.StatusNotFound)
	gt.Value(t, values["detail"]).Equal("Not Found")
}

func TestClient_ArtifactPublished(t *testing.T) {
	ctx := context.Background()

	published := map[string]bool{
		"1234567890abcdef": true,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query().Get("ref")).Equal("gh-pages")

		// Contents API path: /repos/{owner}/{repo}/contents/{path}
		id := r.URL.Path[len("/repos/octo-org/handouts/contents/"):]
		if !published[id] {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"type":"file","name":"index.html","path":"` + id + `/index.html"}]`))
	}))
	defer server.Close()

	client, err := githubinfra.NewClient(
		"octo-org", "handouts", "build-handouts.yml", "main", "test-token",
		githubinfra.WithBaseURL(server.URL),
	)
	gt.NoError(t, err)

	t.Run("existing folder", func(t *testing.T) {
		ok, err := client.ArtifactPublished(ctx, "1234567890abcdef")
		gt.NoError(t, err)
		gt.Value(t, ok).Equal(true)
	})

	t.Run("missing folder", func(t *testing.T) {
		ok, err := client.ArtifactPublished(ctx, "fedcba0987654321")
		gt.NoError(t, err)
		gt.Value(t, ok).Equal(false)
	})
}

func TestClient_ArtifactURL(t *testing.T) {
	client, err := githubinfra.NewClient(
		"octo-org", "handouts", "build-handouts.yml", "main", "test-token",
	)
	gt.NoError(t, err)

	gt.Value(t, client.ArtifactURL("1234567890abcdef")).
		Equal("https://octo-org.github.io/handouts/1234567890abcdef/")
}

func TestClient_ArtifactPublished_ProbeError(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer server.Close()

	client, err := githubinfra.NewClient(
		"octo-org", "handouts", "build-handouts.yml", "main", "test-token",
		githubinfra.WithBaseURL(server.URL),
	)
	gt.NoError(t, err)

	ok, err := client.ArtifactPublished(ctx, "1234567890abcdef")
	gt.Value(t, ok).Equal(false)
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagUpstream)).Equal(true)
}
