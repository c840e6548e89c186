package server

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ledgerline/filing-api/libs/go/client/hmrc"
	"github.com/ledgerline/filing-api/libs/go/helpers"
	"github.com/ledgerline/filing-api/libs/go/middleware"
	"github.com/pkg/errors"
)

const (
	defaultPort           = "8000"
	defaultProductName    = "Ledgerline Filing"
	defaultProductVersion = "1.0"
	defaultGatewayTimeout = 60 * time.Second
)

// Config is everything the API reads from its environment. Credentials are
// not part of it; they are resolved through a SecretsProvider.
type Config struct {
	Stage           string
	Port            string
	LogLevel        string
	ProductName     string
	ProductVersion  string
	GatewayTestMode bool
	GatewayTimeout  time.Duration

	HMRCSubmissionURL string
	HMRCPollURL       string
	CHGatewayURL      string
	CHPackageRef      string
	CHContactName     string
	CHContactNumber   string
	CHEmailAddress    string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxBodySize        int64
}

// LoadDotEnv loads a .env file when one exists
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return errors.Wrap(err, "failed to load .env file")
	}
	return nil
}

// LoadConfig reads and validates the API configuration using getenv
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Stage:             env("STAGE", helpers.StageLocal),
		Port:              env("API_PORT", defaultPort),
		LogLevel:          env("LOG_LEVEL", ""),
		ProductName:       env("PRODUCT_NAME", defaultProductName),
		ProductVersion:    env("PRODUCT_VERSION", defaultProductVersion),
		HMRCSubmissionURL: env("HMRC_SUBMISSION_URL", ""),
		HMRCPollURL:       env("HMRC_POLL_URL", ""),
		CHGatewayURL:      env("CH_GATEWAY_URL", ""),
		CHPackageRef:      env("CH_PACKAGE_REFERENCE", ""),
		CHContactName:     env("CH_CONTACT_NAME", ""),
		CHContactNumber:   env("CH_CONTACT_NUMBER", ""),
		CHEmailAddress:    env("CH_EMAIL_ADDRESS", ""),
		GatewayTimeout:    defaultGatewayTimeout,
	}

	if !helpers.IsValidStage(cfg.Stage) {
		return cfg, fmt.Errorf("invalid STAGE %q: must be one of %s, %s, %s",
			cfg.Stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	cfg.GatewayTestMode = helpers.GatewayTestModeDefault(cfg.Stage)
	if raw := env("GATEWAY_TEST_MODE", ""); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, errors.Wrap(err, "invalid GATEWAY_TEST_MODE")
		}
		cfg.GatewayTestMode = v
	}

	if raw := env("GATEWAY_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid GATEWAY_TIMEOUT %q", raw)
		}
		cfg.GatewayTimeout = d
	}

	rps, err := strconv.ParseFloat(env("RATE_LIMIT_RPS", strconv.Itoa(middleware.DefaultRequestsPerSecond)), 64)
	if err != nil {
		return cfg, errors.Wrap(err, "invalid RATE_LIMIT_RPS")
	}
	cfg.RateLimitRPS = rps

	burst, err := strconv.Atoi(env("RATE_LIMIT_BURST", strconv.Itoa(middleware.DefaultBurst)))
	if err != nil {
		return cfg, errors.Wrap(err, "invalid RATE_LIMIT_BURST")
	}
	cfg.RateLimitBurst = burst

	maxBody, err := strconv.ParseInt(env("MAX_BODY_BYTES", strconv.FormatInt(middleware.DefaultMaxBodySize, 10)), 10, 64)
	if err != nil {
		return cfg, errors.Wrap(err, "invalid MAX_BODY_BYTES")
	}
	cfg.MaxBodySize = maxBody

	for _, origin := range strings.Split(env("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	for name, raw := range map[string]string{
		"HMRC_SUBMISSION_URL": cfg.HMRCSubmissionURL,
		"HMRC_POLL_URL":       cfg.HMRCPollURL,
		"CH_GATEWAY_URL":      cfg.CHGatewayURL,
	} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			return cfg, fmt.Errorf("invalid %s %q", name, raw)
		}
	}

	return cfg, nil
}

// AllowedPollHosts lists the hosts a caller supplied poll URL may point at
func (c Config) AllowedPollHosts() []string {
	hosts := []string{}
	for _, raw := range []string{hmrc.LivePollURL, hmrc.TestPollURL, c.HMRCPollURL, c.HMRCSubmissionURL} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
			hosts = append(hosts, u.Hostname())
		}
	}
	return hosts
}

// IsDevelopment reports whether verbose request logging is appropriate
func (c Config) IsDevelopment() bool {
	return c.Stage == helpers.StageLocal
}
