// Package config loads configuration structs from YAML files, .env files
// and environment variables using Viper.
//
// # Usage
//
//	var cfg di.Config
//	err := config.LoadConfig("scopedi", &cfg, config.WithEnvPrefix("SCOPEDI"))
//
// Lookup order for files is ./config/<name>.yml, ./<name>.yml and
// ./config.yml. Environment variables override file values; with a prefix
// SCOPEDI_MAX_DEPTH binds max_depth and SCOPEDI_LOGGING_LEVEL binds
// logging.level.
package config
