package interfaces

import "context"

// WorkflowDispatcher defines outbound operations against the GitHub API
type WorkflowDispatcher interface {
	// DispatchWorkflow triggers the configured workflow with the identifier
	// as input. It returns nil only when the API accepted the dispatch
	// with status 204.
	DispatchWorkflow(ctx context.Context, id string) error

	// ArtifactPublished reports whether the artifact folder for the
	// identifier already exists on the Pages branch.
	ArtifactPublished(ctx context.Context, id string) (bool, error)

	// ArtifactURL returns the public Pages location for an identifier on
	// the configured target, so callers never re-derive owner/repo.
	ArtifactURL(id string) string
}
