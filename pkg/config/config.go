package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Estoque EstoqueConfig
	Portal  PortalConfig
	Swagger SwaggerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EstoqueConfig backend remoto de estoque y temporización de la sincronización.
type EstoqueConfig struct {
	APIURL         string // base, ej: http://localhost:3002/api
	SessionToken   string // token inicial opcional
	SessionFile    string // dónde persistir el token durante la sesión
	ProbeInterval  time.Duration
	ProbeTimeout   time.Duration
	RequestTimeout time.Duration
	SyncInterval   time.Duration
	AutoSync       bool
	MovementMode   string // "unificado" (/movimentar) o "separado" (/entrada, /saida)
}

// PortalConfig portal de login al que se envía al usuario sin sesión.
type PortalConfig struct {
	URL string
}

// SwaggerConfig UI de documentación; solo se monta si el archivo existe.
type SwaggerConfig struct {
	FilePath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, ESTOQUE_API_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la Config desde una instancia ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "estoque-sync"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8090),
		},
		Estoque: EstoqueConfig{
			APIURL:         strings.TrimRight(getString(v, "ESTOQUE_API_URL", "http://localhost:3002/api"), "/"),
			SessionToken:   getString(v, "ESTOQUE_SESSION_TOKEN", ""),
			SessionFile:    getString(v, "ESTOQUE_SESSION_FILE", ""),
			ProbeInterval:  getDuration(v, "ESTOQUE_PROBE_INTERVAL", 30*time.Second),
			ProbeTimeout:   getDuration(v, "ESTOQUE_PROBE_TIMEOUT", 10*time.Second),
			RequestTimeout: getDuration(v, "ESTOQUE_REQUEST_TIMEOUT", 15*time.Second),
			SyncInterval:   getDuration(v, "ESTOQUE_SYNC_INTERVAL", 60*time.Second),
			AutoSync:       getBool(v, "ESTOQUE_AUTO_SYNC", true),
			MovementMode:   strings.ToLower(getString(v, "ESTOQUE_MOVEMENT_MODE", "unificado")),
		},
		Portal: PortalConfig{
			URL: getString(v, "PORTAL_URL", "https://ir-comercio-portal-zcan.onrender.com"),
		},
		Swagger: SwaggerConfig{
			FilePath: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Estoque.APIURL == "" {
		return fmt.Errorf("config: ESTOQUE_API_URL vacío")
	}
	switch c.Estoque.MovementMode {
	case "unificado", "separado":
	default:
		return fmt.Errorf("config: ESTOQUE_MOVEMENT_MODE inválido %q (unificado|separado)", c.Estoque.MovementMode)
	}
	if c.Estoque.ProbeInterval <= 0 || c.Estoque.SyncInterval <= 0 {
		return fmt.Errorf("config: intervalos deben ser positivos")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return b
	}
	return v.GetBool(key)
}

// getDuration acepta "30s", "1m" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	s := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
