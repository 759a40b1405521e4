package config

const (
	ErrEnvNotFound string = "No .env file found"

	// MaxTake caps the page size a single list request may ask for.
	MaxTake uint64 = 1000
)
