package env

import (
	"os"

	"github.com/joho/godotenv"
)

// PodName example: market-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: staging
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: market
func AppName() string {
	return os.Getenv("APP_NAME")
}

// Load reads KEY=VALUE files into the process environment without overriding variables
// that are already set. Missing files are skipped; with no paths it tries ".env".
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return err
		}
	}
	return nil
}
