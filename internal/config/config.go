package config

import (
	"encoding/xml"
	"io"
	"os"
	"sync"
)

var (
	cfg  *APIConfig
	once sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	Pagination     PaginationConfig     `xml:"PAGINATION"`
	RateLimit      RateLimitConfig      `xml:"RATE_LIMIT"`
	Logging        LoggingConfig        `xml:"LOGGING"`
	Uploads        UploadConfig         `xml:"UPLOADS"`
	DB             DBConfig             `xml:"DB"`
	THIRD_PARTY    ThirdPartyConfig     `xml:"THIRD_PARTY"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	Path     string `xml:"PATH"`
	TimeZone string `xml:"TIME_ZONE"`
}

// AuthenticationConfig holds authentication settings.
type AuthenticationConfig struct {
	JWTSecret       string `xml:"JWT_SECRET"`
	TokenExpiryDays int    `xml:"TOKEN_EXPIRY_DAYS"`
}

// PaginationConfig holds pagination settings.
type PaginationConfig struct {
	PageSize int `xml:"PAGE_SIZE"`
}

// RateLimitConfig holds request throttling settings for the /api group.
type RateLimitConfig struct {
	RequestsPerSecond float64 `xml:"REQUESTS_PER_SECOND"`
	Burst             int     `xml:"BURST"`
}

// LoggingConfig holds log file settings.
type LoggingConfig struct {
	Dir        string `xml:"DIR"`
	MaxSizeMB  int    `xml:"MAX_SIZE_MB"`
	MaxBackups int    `xml:"MAX_BACKUPS"`
	MaxAgeDays int    `xml:"MAX_AGE_DAYS"`
	Debug      bool   `xml:"DEBUG"`
}

// UploadConfig holds file upload settings.
type UploadConfig struct {
	Dir       string `xml:"DIR"`
	MaxSizeMB int    `xml:"MAX_SIZE_MB"`
}

type ThirdPartyConfig struct {
	HFToken   string     `xml:"HF_TOKEN"`
	OllamaURL string     `xml:"OLLAMA_URL"`
	SMTP      SMTPConfig `xml:"SMTP"`
}

// SMTPConfig holds outgoing mail settings. Mail is mocked when Host is empty.
type SMTPConfig struct {
	Host     string `xml:"HOST"`
	Port     int    `xml:"PORT"`
	Username string `xml:"USERNAME"`
	Password string `xml:"PASSWORD"`
	From     string `xml:"FROM"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Initialize bool         `xml:"INITIALIZE"`
	Host       string       `xml:"HOST"`
	Port       int          `xml:"PORT"`
	Driver     string       `xml:"DRIVER"`
	SSLMode    string       `xml:"SSL_MODE"`
	Names      DBNames      `xml:"NAMES"`
	Username   string       `xml:"USERNAME"`
	Password   DBPassword   `xml:"PASSWORD"`
	Pool       DBPoolConfig `xml:"POOL"`
}

// DBNames holds the names defined in the DB section.
type DBNames struct {
	LAPADOS string `xml:"LAPADOS,attr"`
}

// DBPassword holds password details.
type DBPassword struct {
	Type  string `xml:"TYPE,attr"`
	Value string `xml:",chardata"`
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"`
}

// LoadConfig loads and parses the XML configuration from the given file.
// Secrets can be overridden from the environment afterwards, see applyEnvOverrides.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		f, err := os.Open(xmlPath)
		if err != nil {
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return
		}

		var newCfg APIConfig
		if err := xml.Unmarshal(data, &newCfg); err != nil {
			return
		}

		newCfg.applyEnvOverrides()
		newCfg.applyDefaults()
		cfg = &newCfg
	})

	if cfg == nil {
		return nil, os.ErrInvalid
	}
	return cfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

// applyEnvOverrides lets deployment environments override the secrets that
// should not live in config.xml. Call godotenv.Load before LoadConfig so a
// local .env is picked up too.
func (c *APIConfig) applyEnvOverrides() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Authentication.JWTSecret = v
	}
	if v := os.Getenv("HF_TOKEN"); v != "" {
		c.THIRD_PARTY.HFToken = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.THIRD_PARTY.OllamaURL = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.DB.Password.Value = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.THIRD_PARTY.SMTP.Password = v
	}
}

func (c *APIConfig) applyDefaults() {
	if c.Pagination.PageSize <= 0 {
		c.Pagination.PageSize = 50
	}
	if c.Authentication.TokenExpiryDays <= 0 {
		c.Authentication.TokenExpiryDays = 30
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 50
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 100
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.Uploads.MaxSizeMB <= 0 {
		c.Uploads.MaxSizeMB = 10
	}
}
