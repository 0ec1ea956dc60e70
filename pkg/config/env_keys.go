package config

// EnvPrefix is the envconfig prefix; individual fields carry explicit
// HEAVYRENT_ keys so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "HEAVYRENT_APP_ENV"
	EnvPort      = "HEAVYRENT_APP_PORT"
	EnvJWTSecret = "HEAVYRENT_JWT_SECRET"

	EnvDBDSN  = "HEAVYRENT_DB_DSN"
	EnvDBHost = "HEAVYRENT_DB_HOST"
	EnvDBUser = "HEAVYRENT_DB_USER"
	EnvDBName = "HEAVYRENT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
