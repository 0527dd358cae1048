package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config carries every service endpoint the client talks to, so tests
// and self-hosted deployments can substitute their own hosts.
type Config struct {
	// DefaultServer is the conference host used when neither the
	// credential nor the caller names one.
	DefaultServer string `mapstructure:"default_server"`
	// APIURL is the nanoStream Cloud API (streams, organisation).
	APIURL string `mapstructure:"api_url"`
	// TokenURL is the room/invite token issuance service.
	TokenURL string `mapstructure:"token_url"`
	// FrontendURL is the cloud dashboard used in stream links.
	FrontendURL string `mapstructure:"frontend_url"`
	// LinkShortener is the short-link service endpoint.
	LinkShortener string `mapstructure:"link_shortener"`
	// IngestURL is the RTMP ingest base for broadcasts.
	IngestURL string `mapstructure:"ingest_url"`
	// PlayerURL is the live playback player page.
	PlayerURL string `mapstructure:"player_url"`
	// VodURL is the base for recorded playback files.
	VodURL string `mapstructure:"vod_url"`
	// WebPageURL is the hosted meeting page used in invite links.
	WebPageURL string `mapstructure:"web_page_url"`

	// APIKey authorizes provisioning calls made by meetserver.
	APIKey string `mapstructure:"api_key"`

	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("NANOMEET")
	v.AutomaticEnv()

	v.SetDefault("default_server", "nanomeet-eu.nanocosmos.de")
	v.SetDefault("api_url", "https://bintu.nanocosmos.de")
	v.SetDefault("token_url", "https://bintu-cloud-token.k8s-prod.nanocosmos.de")
	v.SetDefault("frontend_url", "https://bintu-cloud-frontend.nanocosmos.de")
	v.SetDefault("link_shortener", "https://nanomeet-linkshortener.k8s-prod.nanocosmos.de/shorturl")
	v.SetDefault("ingest_url", "rtmp://bintu-vtrans.nanocosmos.de")
	v.SetDefault("player_url", "https://demo.nanocosmos.de/nanoplayer/release/nanoplayer.html")
	v.SetDefault("vod_url", "https://bintu-vod.nanocosmos.de/vod")
	v.SetDefault("web_page_url", "https://nanomeet.pages.nanocosmos.de/nanomeet-frontend/nanomeet-sample.html")
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
