package config

// EnvPrefix is intentionally empty: every variable names its full key in its
// envconfig tag.
const EnvPrefix = ""

const (
	AppEnvProd    = "production"
	AppEnvSandbox = "sandbox"
)
