package helpers

import "github.com/ledgerline/filing-api/libs/go/constants"

// Stage constants define the possible deployment/runtime environments.
const (
	StageProd  = constants.ProdEnvironment
	StageDev   = constants.DevEnvironment
	StageLocal = constants.LocalEnvironment
)

// IsValidStage checks if the provided stage string is one of the defined valid stages.
func IsValidStage(stage string) bool {
	switch stage {
	case StageProd, StageDev, StageLocal:
		return true
	default:
		return false
	}
}

// GatewayTestModeDefault is the gateway mode used when GATEWAY_TEST_MODE is
// not set. Only prod talks to the live gateways by default.
func GatewayTestModeDefault(stage string) bool {
	return stage != StageProd
}
