package constants

// Common string constants used throughout the codebase
const (
	ServiceName = "filing-api"

	// Log levels
	DebugLevel = "debug"
	ErrorLevel = "error"

	// Environments
	ProdEnvironment  = "prod"
	DevEnvironment   = "dev"
	LocalEnvironment = "local"
	TestEnvironment  = "test"

	// Currencies
	GBPCurrency = "GBP"

	// Headers
	CorrelationIDHeader = "X-Correlation-ID"
	ContentTypeXML      = "application/xml"
	ContentTypeXHTML    = "application/xhtml+xml"
)
