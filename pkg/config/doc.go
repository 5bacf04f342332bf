// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads dotenv files into the
// process environment, with github.com/caarlos0/env/v11, which parses the
// environment into structs annotated with `env` tags.
//
// Load caches one parsed value per config type for the lifetime of the
// process, guarded by a sync.Once per type. Parse skips the cache. LoadEnv
// reads explicit dotenv files, typically from a --env-file flag, before the
// first Load:
//
//	if err := config.LoadEnv(envFile); err != nil {
//	    return err
//	}
//
//	var cfg uahttp.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Parse failures are joined with ErrParsingConfig, unreadable dotenv files
// with ErrLoadingEnvFile. A nil target yields ErrNilPointer. MustLoad and
// MustLoadEnv panic instead of returning.
package config
