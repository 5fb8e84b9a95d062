package app

const (
	Name = "qrgen"

	// Config
	ConfigPath = "/etc/qrgen/config.yaml"
	EnvFile    = ".env"

	// HTTP
	DefaultListen = "127.0.0.1:8000"
)
