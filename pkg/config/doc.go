// Package config loads meshkit settings with viper.
//
// Values are resolved with the precedence
//
//	defaults < YAML file (WithFile) < MESHKIT_* environment variables
//
// Environment variable names are the dotted key upper-cased with dots
// replaced by underscores: cache.redis_url is MESHKIT_CACHE_REDIS_URL.
//
//	cfg, err := config.Load(config.WithFile("meshkit.yaml"))
//	if err != nil {
//		return err
//	}
package config
