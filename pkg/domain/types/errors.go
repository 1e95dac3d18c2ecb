package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagUpstream marks failures reported by the GitHub API. Errors with
	// this tag carry "status_code" and "detail" values from the upstream
	// response.
	ErrTagUpstream = goerr.NewTag("upstream")
)
