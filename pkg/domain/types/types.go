package types

const (
	// AppName identifies this service in health responses and as the
	// outbound API client label.
	AppName = "drover"

	// Version is the application version
	Version = "0.1.0"
)
