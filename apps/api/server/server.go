package server

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ledgerline/filing-api/apps/api/handlers"
	awsclient "github.com/ledgerline/filing-api/libs/go/client/aws"
	"github.com/ledgerline/filing-api/libs/go/client/companieshouse"
	"github.com/ledgerline/filing-api/libs/go/client/hmrc"
	httpclient "github.com/ledgerline/filing-api/libs/go/client/http"
	"github.com/ledgerline/filing-api/libs/go/constants"
	"github.com/ledgerline/filing-api/libs/go/helpers"
	"github.com/ledgerline/filing-api/libs/go/interfaces"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/metrics"
	"github.com/ledgerline/filing-api/libs/go/middleware"
	"github.com/ledgerline/filing-api/libs/go/services"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server bundles the configured router with the pieces that need shutting down
type Server struct {
	Config      Config
	Router      *gin.Engine
	RateLimiter *middleware.RateLimiter
}

// Initialize loads .env and the environment, sets up logging and credentials
// and returns a ready server. It is shared by the local and Lambda entry points.
func Initialize(ctx context.Context) (*Server, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(os.Getenv)
	if err != nil {
		return nil, err
	}

	logger.InitLoggerWithConfig(logger.LoggerConfig{
		Stage:       cfg.Stage,
		Level:       cfg.LogLevel,
		EnableJSON:  cfg.Stage == helpers.StageProd,
		EnableColor: cfg.Stage == helpers.StageLocal,
	})
	logger.Info("Initializing filing API",
		zap.String("stage", cfg.Stage),
		zap.Bool("gateway_test_mode", cfg.GatewayTestMode))

	var secrets interfaces.SecretsProvider
	if cfg.Stage == helpers.StageLocal {
		secrets = awsclient.NewEnvOnlySecretsClient()
	} else {
		sm, err := awsclient.NewSecretsManagerClient(ctx)
		if err != nil {
			return nil, err
		}
		secrets = sm
	}

	m := metrics.New()
	filing, err := BuildFilingService(ctx, cfg, secrets, m)
	if err != nil {
		return nil, err
	}

	return NewServer(cfg, filing, m, prometheus.DefaultGatherer), nil
}

// BuildFilingService resolves gateway credentials and creates the filing
// service. A gateway whose credentials are absent is left unconfigured so the
// offline operations keep working.
func BuildFilingService(ctx context.Context, cfg Config, secrets interfaces.SecretsProvider, m *metrics.Metrics) (*services.FilingService, error) {
	var (
		taxGateway interfaces.TaxReturnGateway
		registrar  interfaces.RegistrarGateway
	)

	senderID := resolve(ctx, secrets, "HMRC_SENDER_ID")
	password := resolve(ctx, secrets, "HMRC_SENDER_PASSWORD")
	if senderID != "" && password != "" {
		builder := hmrc.NewEnvelopeBuilder(hmrc.Credentials{
			SenderID:       senderID,
			Password:       password,
			VendorID:       resolve(ctx, secrets, "HMRC_VENDOR_ID"),
			ProductName:    cfg.ProductName,
			ProductVersion: cfg.ProductVersion,
		})
		taxGateway = hmrc.NewClient(hmrc.Config{
			TestMode:      cfg.GatewayTestMode,
			SubmissionURL: cfg.HMRCSubmissionURL,
			PollURL:       cfg.HMRCPollURL,
			Timeout:       cfg.GatewayTimeout,
		}, builder, gatewayOptions(cfg, m, business.GatewayHMRC)...)
	} else {
		logger.Warn("HMRC credentials not configured; tax return submission disabled")
	}

	presenterID := resolve(ctx, secrets, "CH_PRESENTER_ID")
	presenterAuth := resolve(ctx, secrets, "CH_PRESENTER_AUTH")
	if presenterID != "" && presenterAuth != "" {
		builder := companieshouse.NewEnvelopeBuilder(companieshouse.Credentials{
			PresenterID:       presenterID,
			PresenterAuthCode: presenterAuth,
			EmailAddress:      cfg.CHEmailAddress,
			PackageReference:  cfg.CHPackageRef,
			ContactName:       cfg.CHContactName,
			ContactNumber:     cfg.CHContactNumber,
		})
		if !cfg.GatewayTestMode && cfg.CHPackageRef == "" {
			logger.Warn("CH_PACKAGE_REFERENCE not set; live registrar filings will be refused")
		}
		registrar = companieshouse.NewClient(companieshouse.Config{
			TestMode:   cfg.GatewayTestMode,
			GatewayURL: cfg.CHGatewayURL,
			Timeout:    cfg.GatewayTimeout,
		}, builder, gatewayOptions(cfg, m, business.GatewayCompaniesHouse)...)
	} else {
		logger.Warn("Companies House credentials not configured; registrar filing disabled")
	}

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "initialization cancelled")
	}
	return services.NewFilingService(taxGateway, registrar), nil
}

func gatewayOptions(cfg Config, m *metrics.Metrics, gateway business.Gateway) []httpclient.ClientOption {
	options := []httpclient.ClientOption{
		httpclient.WithDefaultHeader("User-Agent", userAgent(cfg)),
		httpclient.WithMiddleware(httpclient.LoggingMiddleware()),
	}
	if m != nil {
		options = append(options, httpclient.WithMetricsCollector(m.ForGateway(gateway)))
	}
	return options
}

// userAgent identifies the product to the gateways, e.g. Ledgerline-Filing/1.0
func userAgent(cfg Config) string {
	return strings.Join(strings.Fields(cfg.ProductName), "-") + "/" + cfg.ProductVersion
}

// resolve reads NAME via the NAME_ARN secret or the NAME env var. Missing
// values come back empty.
func resolve(ctx context.Context, secrets interfaces.SecretsProvider, name string) string {
	v, err := secrets.GetSecretString(ctx, name+"_ARN", name)
	if err != nil {
		return ""
	}
	return v
}

// NewServer builds the router around an already configured filing service
func NewServer(cfg Config, filing interfaces.FilingService, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	if cfg.Stage == helpers.StageProd {
		gin.SetMode(gin.ReleaseMode)
	}

	var recorder handlers.SubmissionRecorder
	if m != nil {
		recorder = m
	}

	factory := handlers.NewHandlerFactory(handlers.HandlerFactoryConfig{
		FilingService:    filing,
		Recorder:         recorder,
		Logger:           logger.L(),
		Stage:            cfg.Stage,
		Version:          cfg.ProductVersion,
		GatewayTestMode:  cfg.GatewayTestMode,
		AllowedPollHosts: cfg.AllowedPollHosts(),
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(configureCORS(cfg))
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger.L(), cfg.IsDevelopment()))
	router.Use(limiter.Middleware())
	router.Use(middleware.BodyLimitMiddleware(cfg.MaxBodySize))

	InitializeRoutes(router, factory, gatherer)

	return &Server{Config: cfg, Router: router, RateLimiter: limiter}
}

// InitializeRoutes registers every API route on router
func InitializeRoutes(router *gin.Engine, factory *handlers.HandlerFactory, gatherer prometheus.Gatherer) {
	health := factory.NewHealthHandler()
	tax := factory.NewTaxHandler()
	accounts := factory.NewAccountsHandler()

	router.GET("/health", health.Health)
	// Raw Lambda function URLs carry the stage as the first path segment.
	router.GET("/:stage/health", health.Health)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		taxGroup := v1.Group("/tax")
		{
			taxGroup.POST("/computations", tax.ComputeTax)
			taxGroup.POST("/computations/batch", tax.ComputeTaxBatch)
			taxGroup.POST("/returns", tax.BuildTaxReturn)
			taxGroup.POST("/returns/submit", tax.SubmitTaxReturn)
			taxGroup.GET("/returns/:correlation_id/status", tax.GetTaxReturnStatus)
		}

		accountsGroup := v1.Group("/accounts")
		{
			accountsGroup.POST("/documents", accounts.PrepareAccounts)
			accountsGroup.POST("/validate",
				middleware.RequireContentType(constants.ContentTypeXHTML, "text/html", constants.ContentTypeXML),
				accounts.ValidateAccounts)
			accountsGroup.POST("/submissions", accounts.SubmitAccounts)
		}

		v1.POST("/confirmation-statements/submissions", accounts.SubmitConfirmationStatement)
		v1.GET("/registrar/submissions/:submission_number/status", accounts.GetRegistrarStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Error:         "Route not found",
			CorrelationID: middleware.GetCorrelationID(c),
		})
	})
}

func configureCORS(cfg Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", middleware.CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"Retry-After",
		"X-Entity-Size",
		"X-Fact-Count",
		middleware.CorrelationIDHeader,
	}
	return cors.New(corsConfig)
}
