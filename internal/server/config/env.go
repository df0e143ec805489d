package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "TPFORUM_"

// envFile is the dotenv file read by parseEnv. Variables already present in
// the process environment win over the file.
var envFile = ".env"

// parseEnv overlays Config with TPFORUM_* environment variables. A missing
// .env file is not an error; a malformed one, or an unparsable value, panics.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString("HTTP_ADDR", &cfg.HTTPAddr)
	envString("HEALTH_ADDR", &cfg.HealthAddr)
	envString("DATABASE_DSN", &cfg.DatabaseDSN)
	envString("SECRET_KEY", &cfg.SecretKey)
	envDuration("SESSION_VALIDITY", &cfg.SessionValidity)
	envString("S3_ROOT_USER", &cfg.S3RootUser)
	envString("S3_ROOT_PASSWORD", &cfg.S3RootPassword)
	envString("S3_BUCKET", &cfg.S3Bucket)
	envString("S3_REGION", &cfg.S3Region)
	envString("S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)
	envDuration("AVATAR_URL_VALIDITY", &cfg.AvatarURLValidity)

	if v, ok := os.LookupEnv(envPrefix + "RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.RateLimit = f
	}
	if v, ok := os.LookupEnv(envPrefix + "RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RateBurst = n
	}
}

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}

func envDuration(name string, dst *time.Duration) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		*dst = d
	}
}
