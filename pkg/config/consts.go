package config

// EnvPrefix scopes every environment variable read by envconfig.
const EnvPrefix = "INTERVIA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "INTERVIA_DB_DSN"
	EnvDBHost = "INTERVIA_DB_HOST"
	EnvDBUser = "INTERVIA_DB_USER"
	EnvDBName = "INTERVIA_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
