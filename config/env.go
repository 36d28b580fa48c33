package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAppPort        = "3000"
	defaultAppEnv         = "local"
	defaultAPIBaseURL     = "http://localhost:8000"
	defaultKeycloakURL    = "http://localhost:8081"
	defaultKeycloakRealm  = "food"
	defaultKeycloakClient = "food-api"
	defaultRedisAddr      = "localhost:6379"
	defaultSessionCookie  = "orderlingo_session"
	defaultSessionTTLMin  = 120
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads configuration once, merging defaults ← config/app.json ← .env.
// Missing files are fine; malformed files are not.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":               defaultAppPort,
		"APP_ENV":                defaultAppEnv,
		"API_BASE_URL":           defaultAPIBaseURL,
		"KEYCLOAK_URL":           defaultKeycloakURL,
		"KEYCLOAK_REALM":         defaultKeycloakRealm,
		"KEYCLOAK_CLIENT_ID":     defaultKeycloakClient,
		"KEYCLOAK_CLIENT_SECRET": "",
		"REDIS_ADDR":             defaultRedisAddr,
		"REDIS_PASSWORD":         "",
		"SESSION_COOKIE":         defaultSessionCookie,
		"SESSION_TTL_MIN":        strconv.Itoa(defaultSessionTTLMin),
		"MONGO_LOG_URI":          "",
		"MONGO_LOG_DB":           "orderlingo",
		"MONGO_LOG_COLLECTION":   "backoffice_logs",
		"CORS_ORIGINS":           "*",
	}
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// APIBaseURL is the platform REST API this backoffice proxies to.
func APIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("API_BASE_URL", defaultAPIBaseURL), "/")
}

// ── Identity provider ────────────────────────────────────────────────────────

func KeycloakURL() string {
	_ = Load()
	return strings.TrimRight(get("KEYCLOAK_URL", defaultKeycloakURL), "/")
}

func KeycloakRealm() string {
	_ = Load()
	return get("KEYCLOAK_REALM", defaultKeycloakRealm)
}

func KeycloakClientID() string {
	_ = Load()
	return get("KEYCLOAK_CLIENT_ID", defaultKeycloakClient)
}

// KeycloakClientSecret has no default on purpose: an empty secret is a
// configuration error the identity gateway reports as such.
func KeycloakClientSecret() string {
	_ = Load()
	return get("KEYCLOAK_CLIENT_SECRET", "")
}

// ── Session store ────────────────────────────────────────────────────────────

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func SessionCookie() string {
	_ = Load()
	return get("SESSION_COOKIE", defaultSessionCookie)
}

func SessionTTL() time.Duration {
	_ = Load()
	n, err := strconv.Atoi(get("SESSION_TTL_MIN", strconv.Itoa(defaultSessionTTLMin)))
	if err != nil || n <= 0 {
		n = defaultSessionTTLMin
	}
	return time.Duration(n) * time.Minute
}

// ── Log sink ─────────────────────────────────────────────────────────────────

func MongoLogURI() string        { _ = Load(); return get("MONGO_LOG_URI", "") }
func MongoLogDB() string         { _ = Load(); return get("MONGO_LOG_DB", "orderlingo") }
func MongoLogCollection() string { _ = Load(); return get("MONGO_LOG_COLLECTION", "backoffice_logs") }

// CORSOrigins returns the comma-separated allow-list from CORS_ORIGINS.
func CORSOrigins() []string {
	_ = Load()
	raw := get("CORS_ORIGINS", "*")
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	// Process environment wins over files.
	for key := range loaded {
		if v, ok := os.LookupEnv(key); ok {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
