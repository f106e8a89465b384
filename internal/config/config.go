package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// ProviderConfig is the static configuration of one upstream provider.
type ProviderConfig struct {
	Enabled     bool
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	Priority    int
	MaxRequests int
	Window      time.Duration
	DailyLimit  int
}

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	CORSAllowedOrigins []string
	InternalAdminToken string

	CacheBackend  string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CircuitFailureThreshold int
	CircuitCooldown         time.Duration
	LiveWorkers             int

	ESPN         ProviderConfig
	SportsDataIO ProviderConfig
	CFBD         ProviderConfig
	TheSportsDB  ProviderConfig

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	PprofEnabled bool
	PprofAddr    string

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "sportsfeed"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
	}

	cfg.ReadTimeout, err = getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.WriteTimeout, err = getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	cfg.InternalAdminToken = strings.TrimSpace(getEnv("INTERNAL_ADMIN_TOKEN", ""))

	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(getEnv("CACHE_BACKEND", CacheBackendMemory)))
	switch cfg.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return Config{}, fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", cfg.CacheBackend, CacheBackendMemory, CacheBackendRedis)
	}
	cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.RedisAddr = strings.TrimSpace(getEnv("REDIS_ADDR", "localhost:6379"))
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if cfg.CacheBackend == CacheBackendRedis && cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}

	cfg.CircuitFailureThreshold, err = getEnvAsInt("CIRCUIT_FAILURE_THRESHOLD", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse CIRCUIT_FAILURE_THRESHOLD: %w", err)
	}
	if cfg.CircuitFailureThreshold < 1 {
		return Config{}, fmt.Errorf("CIRCUIT_FAILURE_THRESHOLD must be >= 1")
	}
	cfg.CircuitCooldown, err = getEnvAsDuration("CIRCUIT_COOLDOWN", time.Minute)
	if err != nil {
		return Config{}, err
	}
	if cfg.CircuitCooldown <= 0 {
		return Config{}, fmt.Errorf("CIRCUIT_COOLDOWN must be > 0")
	}
	cfg.LiveWorkers, err = getEnvAsInt("LIVE_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_WORKERS: %w", err)
	}
	if cfg.LiveWorkers < 1 {
		return Config{}, fmt.Errorf("LIVE_WORKERS must be >= 1")
	}

	cfg.ESPN, err = loadProvider("ESPN", ProviderConfig{
		Enabled:     true,
		Priority:    1,
		MaxRequests: 120,
		Window:      time.Minute,
	})
	if err != nil {
		return Config{}, err
	}

	cfg.SportsDataIO, err = loadProvider("SPORTSDATAIO", ProviderConfig{
		Priority:    2,
		MaxRequests: 60,
		Window:      time.Minute,
		DailyLimit:  1000,
	})
	if err != nil {
		return Config{}, err
	}
	if cfg.SportsDataIO.Enabled && cfg.SportsDataIO.APIKey == "" {
		return Config{}, fmt.Errorf("SPORTSDATAIO_API_KEY is required when SPORTSDATAIO_ENABLED=true")
	}

	cfg.CFBD, err = loadProvider("CFBD", ProviderConfig{
		Priority:    3,
		MaxRequests: 30,
		Window:      time.Minute,
		DailyLimit:  500,
	})
	if err != nil {
		return Config{}, err
	}
	if cfg.CFBD.Enabled && cfg.CFBD.APIKey == "" {
		return Config{}, fmt.Errorf("CFBD_API_KEY is required when CFBD_ENABLED=true")
	}

	cfg.TheSportsDB, err = loadProvider("THESPORTSDB", ProviderConfig{
		Priority:    4,
		MaxRequests: 30,
		Window:      time.Minute,
	})
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceEnabled = uptraceEnabled
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = getEnv("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = getEnv("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofEnabled = pprofEnabled
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func loadProvider(prefix string, defaults ProviderConfig) (ProviderConfig, error) {
	out := defaults

	enabledDefault := strconv.FormatBool(defaults.Enabled)
	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", enabledDefault))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}
	out.Enabled = enabled

	out.BaseURL = strings.TrimSpace(getEnv(prefix+"_BASE_URL", defaults.BaseURL))
	out.APIKey = strings.TrimSpace(getEnv(prefix+"_API_KEY", defaults.APIKey))

	out.Timeout, err = getEnvAsDuration(prefix+"_TIMEOUT", 10*time.Second)
	if err != nil {
		return ProviderConfig{}, err
	}

	out.Priority, err = getEnvAsInt(prefix+"_PRIORITY", defaults.Priority)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_PRIORITY: %w", prefix, err)
	}
	if out.Priority < 1 {
		return ProviderConfig{}, fmt.Errorf("%s_PRIORITY must be >= 1", prefix)
	}

	out.MaxRequests, err = getEnvAsInt(prefix+"_RATE_MAX_REQUESTS", defaults.MaxRequests)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_RATE_MAX_REQUESTS: %w", prefix, err)
	}
	if out.MaxRequests < 1 {
		return ProviderConfig{}, fmt.Errorf("%s_RATE_MAX_REQUESTS must be >= 1", prefix)
	}

	out.Window, err = getEnvAsDuration(prefix+"_RATE_WINDOW", defaults.Window)
	if err != nil {
		return ProviderConfig{}, err
	}
	if out.Window <= 0 {
		return ProviderConfig{}, fmt.Errorf("%s_RATE_WINDOW must be > 0", prefix)
	}

	out.DailyLimit, err = getEnvAsInt(prefix+"_RATE_DAILY_LIMIT", defaults.DailyLimit)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_RATE_DAILY_LIMIT: %w", prefix, err)
	}
	if out.DailyLimit < 0 {
		return ProviderConfig{}, fmt.Errorf("%s_RATE_DAILY_LIMIT must be >= 0", prefix)
	}

	return out, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
