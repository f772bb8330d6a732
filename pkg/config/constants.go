package config

const (
	EnvPrefix = "PHONEDESK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "PHONEDESK_APP_ENV"
	EnvJWTSecret = "PHONEDESK_JWT_SECRET"

	EnvDBDSN  = "PHONEDESK_DB_DSN"
	EnvDBHost = "PHONEDESK_DB_HOST"
	EnvDBUser = "PHONEDESK_DB_USER"
	EnvDBName = "PHONEDESK_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
