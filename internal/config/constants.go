package config

const (
	// DefaultPort is the default port for the MEP design server
	DefaultPort = ":5000"

	// TestPort is the port used for E2E tests to avoid conflicts
	TestPort = ":5001"

	// DefaultWorkers is the default design generation worker count
	DefaultWorkers = 2

	// MaxUploadBytes caps the size of one multipart upload request
	MaxUploadBytes = 16 << 20
)
