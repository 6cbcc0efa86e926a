package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone    = "Asia/Seoul"
	defaultCategoryURL = "https://techcrunch.com/category/artificial-intelligence/"
	defaultSiteDomain  = "techcrunch.com"
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"

	configPathEnv  = "ARTICLE_CRAWLER_CONFIG"
	categoryURLEnv = "CATEGORY_URL"
	siteDomainEnv  = "SITE_DOMAIN"
	timezoneEnv    = "TARGET_TIMEZONE"
	logLevelEnv    = "LOG_LEVEL"
	serverAddrEnv  = "SERVER_ADDR"
)

// defaultSleep is the pause between article requests in seconds.
var defaultSleep = 0.7

// fallbackOffset is used when the named zone cannot be loaded.
const fallbackOffset = 9 * 60 * 60

// Config holds high-level settings required across the application.
type Config struct {
	Crawl    CrawlConfig   `yaml:"crawl"`
	Timezone string        `yaml:"timezone"`
	Logging  LoggingConfig `yaml:"logging"`
	Server   ServerConfig  `yaml:"server"`

	location *time.Location `yaml:"-"`
}

// CrawlConfig describes the listing page, the site and the fetch policy.
type CrawlConfig struct {
	CategoryURL  string        `yaml:"categoryUrl"`
	SiteDomain   string        `yaml:"siteDomain"`
	UserAgent    string        `yaml:"userAgent"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
	DefaultLimit int           `yaml:"defaultLimit"`
	DefaultSleep *float64      `yaml:"defaultSleep"`
}

// SleepSeconds returns the configured pause; an unset value means the default.
func (c CrawlConfig) SleepSeconds() float64 {
	if c.DefaultSleep == nil {
		return defaultSleep
	}
	return *c.DefaultSleep
}

// LoggingConfig sets the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig is used by the HTTP entry point only.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Location returns the target timezone resolved by Load.
func (c Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	return resolveLocation(c.Timezone)
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(categoryURLEnv); v != "" {
		c.Crawl.CategoryURL = v
	}

	if v := os.Getenv(siteDomainEnv); v != "" {
		c.Crawl.SiteDomain = v
	}

	if v := os.Getenv(timezoneEnv); v != "" {
		c.Timezone = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}
}

func (c *Config) bindTimezone() {
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	c.location = resolveLocation(c.Timezone)
}

// resolveLocation loads a named zone, reverting to a fixed UTC+9 offset when
// the zone database is unavailable or the name is unknown.
func resolveLocation(tz string) *time.Location {
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: cannot load timezone %s: %v (using fixed UTC+09:00)", tz, err)
		return time.FixedZone("KST", fallbackOffset)
	}
	return loc
}

func mergeConfig(base, override Config) Config {
	if override.Crawl.CategoryURL != "" {
		base.Crawl.CategoryURL = override.Crawl.CategoryURL
	}
	if override.Crawl.SiteDomain != "" {
		base.Crawl.SiteDomain = override.Crawl.SiteDomain
	}
	if override.Crawl.UserAgent != "" {
		base.Crawl.UserAgent = override.Crawl.UserAgent
	}
	if override.Crawl.Timeout > 0 {
		base.Crawl.Timeout = override.Crawl.Timeout
	}
	if override.Crawl.MaxBodyBytes > 0 {
		base.Crawl.MaxBodyBytes = override.Crawl.MaxBodyBytes
	}
	if override.Crawl.DefaultLimit > 0 {
		base.Crawl.DefaultLimit = override.Crawl.DefaultLimit
	}
	if override.Crawl.DefaultSleep != nil {
		base.Crawl.DefaultSleep = override.Crawl.DefaultSleep
	}

	if override.Timezone != "" {
		base.Timezone = override.Timezone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	return base
}

func defaultConfig() Config {
	sleep := defaultSleep
	return Config{
		Crawl: CrawlConfig{
			CategoryURL:  defaultCategoryURL,
			SiteDomain:   defaultSiteDomain,
			UserAgent:    defaultUserAgent,
			Timeout:      20 * time.Second,
			MaxBodyBytes: 10 << 20,
			DefaultLimit: 40,
			DefaultSleep: &sleep,
		},
		Timezone: defaultTimezone,
		Logging:  LoggingConfig{Level: "info"},
		Server:   ServerConfig{Addr: ":8080"},
	}
}
