package handlers

import (
	"github.com/ledgerline/filing-api/libs/go/interfaces"
	"go.uber.org/zap"
)

// HandlerFactory creates handlers with proper dependency injection
type HandlerFactory struct {
	common           *CommonServices
	stage            string
	version          string
	testMode         bool
	allowedPollHosts []string
}

// HandlerFactoryConfig contains all configuration for the handler factory
type HandlerFactoryConfig struct {
	FilingService    interfaces.FilingService
	Recorder         SubmissionRecorder
	Logger           *zap.Logger
	Stage            string
	Version          string
	GatewayTestMode  bool
	AllowedPollHosts []string
}

// NewHandlerFactory creates a new handler factory
func NewHandlerFactory(cfg HandlerFactoryConfig) *HandlerFactory {
	return &HandlerFactory{
		common:           NewCommonServices(cfg.FilingService, cfg.Recorder, cfg.Logger),
		stage:            cfg.Stage,
		version:          cfg.Version,
		testMode:         cfg.GatewayTestMode,
		allowedPollHosts: cfg.AllowedPollHosts,
	}
}

func (f *HandlerFactory) NewTaxHandler() *TaxHandler {
	return NewTaxHandler(f.common, f.allowedPollHosts)
}

func (f *HandlerFactory) NewAccountsHandler() *AccountsHandler {
	return NewAccountsHandler(f.common)
}

func (f *HandlerFactory) NewHealthHandler() *HealthHandler {
	return NewHealthHandler(f.stage, f.version, f.testMode)
}
