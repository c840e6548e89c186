package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockTaxReturnGatewayForTest creates a new mock TaxReturnGateway for testing
func NewMockTaxReturnGatewayForTest(t *testing.T) *MockTaxReturnGateway {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockTaxReturnGateway(ctrl)
}

// NewMockRegistrarGatewayForTest creates a new mock RegistrarGateway for testing
func NewMockRegistrarGatewayForTest(t *testing.T) *MockRegistrarGateway {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockRegistrarGateway(ctrl)
}

// NewMockFilingServiceForTest creates a new mock FilingService for testing
func NewMockFilingServiceForTest(t *testing.T) *MockFilingService {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockFilingService(ctrl)
}
