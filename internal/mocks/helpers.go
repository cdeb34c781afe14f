package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockInvoiceAPIForTest creates a new mock InvoiceAPI for testing
func NewMockInvoiceAPIForTest(t *testing.T) *MockInvoiceAPI {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockInvoiceAPI(ctrl)
}
