package env

const (
	// Prefix is the prefix for all zardian environment variables
	Prefix = "ZARDIAN"

	// DBURLSuffix is the env var holding the Postgres connection URL
	DBURLSuffix = "_DB_URL"
)
