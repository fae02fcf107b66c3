package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/logto-io/go/v2/client"
	"go.uber.org/zap"
)

// SessionStorage keeps the Logto client state in the gin session cookie.
type SessionStorage struct {
	session sessions.Session
}

func NewSessionStorage(session sessions.Session) client.Storage {
	return &SessionStorage{session: session}
}

func (s *SessionStorage) GetItem(key string) string {
	value, ok := s.session.Get(key).(string)
	if !ok {
		return ""
	}
	return value
}

func (s *SessionStorage) SetItem(key, value string) {
	s.session.Set(key, value)
	if err := s.session.Save(); err != nil {
		zap.L().Error("failed to save session", zap.String("key", key), zap.Error(err))
	}
}
