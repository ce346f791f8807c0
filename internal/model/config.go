package model

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Config holds the complete PlainSpeak configuration
type Config struct {
	Features     Features           `yaml:"features" mapstructure:"features"`
	Simplify     SimplifyConfig     `yaml:"simplify" mapstructure:"simplify"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	OCR          OCRConfig          `yaml:"ocr" mapstructure:"ocr"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	History      HistoryConfig      `yaml:"history" mapstructure:"history"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Authority    AuthorityConfig    `yaml:"authority" mapstructure:"authority"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// Features toggles the classifiers that contribute to an analysis.
// Keys match the request flags: pros_cons, stakeholders, actions.
type Features struct {
	ProsCons     bool `yaml:"pros_cons" mapstructure:"pros_cons" json:"pros_cons"`
	Stakeholders bool `yaml:"stakeholders" mapstructure:"stakeholders" json:"stakeholders"`
	Actions      bool `yaml:"actions" mapstructure:"actions" json:"actions"`
}

// DefaultFeatures enables every classifier
func DefaultFeatures() Features {
	return Features{ProsCons: true, Stakeholders: true, Actions: true}
}

// FeaturesFromFlags builds Features from a request flag map.
// Missing keys default to enabled.
func FeaturesFromFlags(flags map[string]bool) Features {
	f := DefaultFeatures()
	if v, ok := flags["pros_cons"]; ok {
		f.ProsCons = v
	}
	if v, ok := flags["stakeholders"]; ok {
		f.Stakeholders = v
	}
	if v, ok := flags["actions"]; ok {
		f.Actions = v
	}
	return f
}

// SimplifyConfig holds simplification defaults
type SimplifyConfig struct {
	DefaultGrade int  `yaml:"default_grade" mapstructure:"default_grade"`
	DetectLang   bool `yaml:"detect_language" mapstructure:"detect_language"`
}

// LLMConfig configures the optional summarizer/translator
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Translate bool   `yaml:"translate" mapstructure:"translate"`
}

// OCRConfig configures the tesseract engine
type OCRConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	Tesseract   string `yaml:"tesseract" mapstructure:"tesseract"`
	Lang        string `yaml:"lang" mapstructure:"lang"`
	TessdataDir string `yaml:"tessdata_dir,omitempty" mapstructure:"tessdata_dir"`
	PSM         int    `yaml:"psm,omitempty" mapstructure:"psm"`
	MaxBytes    int64  `yaml:"max_bytes" mapstructure:"max_bytes"`
	MaxPixels   int64  `yaml:"max_pixels" mapstructure:"max_pixels"`
}

// HTTPConfig configures page fetching for URL-only analyses
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures the analysis result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
}

// HistoryConfig configures the history store
type HistoryConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"` // memory, sqlite
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// ConcurrencyConfig configures worker counts
type ConcurrencyConfig struct {
	Workers      int `yaml:"workers" mapstructure:"workers"`
	FetchWorkers int `yaml:"fetch_workers" mapstructure:"fetch_workers"`
}

// RateLimitingConfig configures per-domain fetch limits
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// AuthorityConfig configures source authority classification
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Features: DefaultFeatures(),
		Simplify: SimplifyConfig{
			DefaultGrade: 8,
			DetectLang:   true,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 160,
		},
		OCR: OCRConfig{
			Enabled:   true,
			Tesseract: "tesseract",
			Lang:      "eng",
			MaxBytes:  10 << 20,
			MaxPixels: 40_000_000,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "PlainSpeak/0.1 (+https://github.com/ppiankov/plainspeak)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
			Dir:       filepath.Join(xdg.CacheHome, "plainspeak"),
		},
		History: HistoryConfig{
			Backend: "memory",
			Dir:     filepath.Join(xdg.DataHome, "plainspeak"),
		},
		Concurrency: ConcurrencyConfig{
			Workers:      4,
			FetchWorkers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Server: ServerConfig{
			Addr:            ":5003",
			MaxUploadBytes:  10 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"gov", "mil", "europa.eu", "gov.uk", "legislation.gov.uk",
				"congress.gov", "federalregister.gov", "ecfr.gov",
			},
			SecondaryDomains: []string{
				"wikipedia.org", "ballotpedia.org", "reuters.com", "apnews.com",
				"americanimmigrationcouncil.org",
			},
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
