package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Receipt   ReceiptConfig
	Search    SearchConfig
	Metrics   MetricsConfig

	// EnvFileErr is set when .env could not be read; the environment alone
	// was used.
	EnvFileErr error
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// BackendConfig points at the store backend that owns products, customers
// and orders.
type BackendConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// PrinterConfig selects the thermal transport.
type PrinterConfig struct {
	Type         string // usb | network | none
	USBPath      string // device file or "auto"
	Address      string // host:port for network printers
	CharWidth    int
	ProbeOnStart bool
}

type ReceiptConfig struct {
	StoreName      string
	Title          string
	Currency       string
	Footer         string
	BarcodeFontURL string
}

type SearchConfig struct {
	Debounce time.Duration
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "boumia-pos")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8090")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:8080")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	v.SetDefault("BACKEND_REQUESTS_PER_SECOND", 20)
	v.SetDefault("BACKEND_BURST", 40)
	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "boumia_pos")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Africa/Casablanca")
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 12)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", []string{})
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 20)
	v.SetDefault("RATE_LIMIT_DURATION", 1)
	v.SetDefault("PRINTER_TYPE", "usb")
	v.SetDefault("PRINTER_USB_PATH", "auto")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_CHAR_WIDTH", 32)
	v.SetDefault("PRINTER_PROBE_ON_START", true)
	v.SetDefault("RECEIPT_STORE_NAME", "BOUMIA")
	v.SetDefault("RECEIPT_TITLE", "Order Receipt")
	v.SetDefault("RECEIPT_CURRENCY", "DH")
	v.SetDefault("RECEIPT_FOOTER", "Thank you for shopping!")
	v.SetDefault("RECEIPT_BARCODE_FONT_URL", "https://fonts.googleapis.com/css2?family=Libre+Barcode+128&display=swap")
	v.SetDefault("SEARCH_DEBOUNCE_MS", 400)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")
}

// Load reads .env and the process environment.
func Load() (*Config, error) {
	return load(viper.GetViper(), ".env")
}

func load(v *viper.Viper, envFile string) (*Config, error) {
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		cfg.EnvFileErr = err
	}

	cfg.App = AppConfig{
		Name:  v.GetString("APP_NAME"),
		Env:   v.GetString("APP_ENV"),
		Port:  v.GetString("APP_PORT"),
		Debug: v.GetBool("APP_DEBUG"),
	}
	cfg.Backend = BackendConfig{
		BaseURL:           strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
		Timeout:           time.Duration(v.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		RequestsPerSecond: v.GetFloat64("BACKEND_REQUESTS_PER_SECOND"),
		Burst:             v.GetInt("BACKEND_BURST"),
	}
	cfg.Database = DatabaseConfig{
		Enabled:  v.GetBool("DB_ENABLED"),
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetString("DB_PORT"),
		Name:     v.GetString("DB_NAME"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		SSLMode:  v.GetString("DB_SSL_MODE"),
		Timezone: v.GetString("DB_TIMEZONE"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
		Expiry: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
		AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
	}
	cfg.RateLimit = RateLimitConfig{
		Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
		Duration: v.GetInt("RATE_LIMIT_DURATION"),
	}
	cfg.Printer = PrinterConfig{
		Type:         strings.ToLower(v.GetString("PRINTER_TYPE")),
		USBPath:      v.GetString("PRINTER_USB_PATH"),
		Address:      v.GetString("PRINTER_ADDRESS"),
		CharWidth:    v.GetInt("PRINTER_CHAR_WIDTH"),
		ProbeOnStart: v.GetBool("PRINTER_PROBE_ON_START"),
	}
	cfg.Receipt = ReceiptConfig{
		StoreName:      v.GetString("RECEIPT_STORE_NAME"),
		Title:          v.GetString("RECEIPT_TITLE"),
		Currency:       v.GetString("RECEIPT_CURRENCY"),
		Footer:         v.GetString("RECEIPT_FOOTER"),
		BarcodeFontURL: v.GetString("RECEIPT_BARCODE_FONT_URL"),
	}
	cfg.Search = SearchConfig{
		Debounce: time.Duration(v.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond,
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("METRICS_ENABLED"),
		Path:    v.GetString("METRICS_PATH"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	switch c.Printer.Type {
	case "usb", "network", "none", "":
	default:
		return fmt.Errorf("PRINTER_TYPE must be usb, network or none, got %q", c.Printer.Type)
	}
	if c.Printer.CharWidth < 24 {
		return fmt.Errorf("PRINTER_CHAR_WIDTH must be at least 24, got %d", c.Printer.CharWidth)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE_MS cannot be negative")
	}
	return nil
}

// RatePerSecond converts RATE_LIMIT_REQUESTS per RATE_LIMIT_DURATION seconds.
func (c *RateLimitConfig) RatePerSecond() float64 {
	if c.Duration <= 0 {
		return float64(c.Requests)
	}
	return float64(c.Requests) / float64(c.Duration)
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
