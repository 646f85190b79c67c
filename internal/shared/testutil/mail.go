package testutil

import (
	"context"
	"sync"

	"github.com/skku-gallery/gallery/go-web-server/internal/shared/mail"
)

// MockMailer records every message instead of sending it
type MockMailer struct {
	mu       sync.Mutex
	messages []mail.Message
	Err      error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MockMailer) Messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]mail.Message(nil), m.messages...)
}

// Last returns the most recent message, or false when nothing was sent
func (m *MockMailer) Last() (mail.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.messages) == 0 {
		return mail.Message{}, false
	}
	return m.messages[len(m.messages)-1], true
}

var _ mail.Sender = (*MockMailer)(nil)
