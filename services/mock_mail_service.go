// services/mock_mail_service.go
package services

import (
	"github.com/stretchr/testify/mock"
)

// Ensure MockMailService implements MailServiceInterface
var _ MailServiceInterface = (*MockMailService)(nil)

// MockMailService is a mock implementation for testing and extends `mock.Mock`
type MockMailService struct {
	mock.Mock
}

// SendResetEmail (Mocked)
func (m *MockMailService) SendResetEmail(toEmail, resetLink string) error {
	args := m.Called(toEmail, resetLink)
	return args.Error(0)
}
