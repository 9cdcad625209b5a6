// Package config loads service configuration with viper from defaults, an
// optional config.yaml and AI_-prefixed environment variables, and validates
// it with struct tags before any component is constructed.
package config
