package common

import "os"

// EnvOrDefault reads an environment variable with a fallback.
func EnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
