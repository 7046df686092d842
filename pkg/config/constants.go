package config

const EnvPrefix = "contactdesk"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	KVBackendRedis  = "redis"
	KVBackendSQLite = "sqlite"
)

const (
	AuthSchemePlain    = "plain"
	AuthSchemeArgon2id = "argon2id"
)

const (
	EnvAppEnv     = "CONTACTDESK_APP_ENV"
	EnvPort       = "CONTACTDESK_APP_PORT"
	EnvKVBackend  = "CONTACTDESK_KV_BACKEND"
	EnvRedisURL   = "CONTACTDESK_REDIS_URL"
	EnvSQLitePath = "CONTACTDESK_SQLITE_PATH"
	EnvAuthScheme = "CONTACTDESK_AUTH_SCHEME"
)
