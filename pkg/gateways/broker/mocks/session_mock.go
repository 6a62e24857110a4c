package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SessionMock struct {
	mock.Mock
}

func (s *SessionMock) Connect(clientID string) error {
	args := s.Called(clientID)
	return args.Error(0)
}

func (s *SessionMock) IsConnected() bool {
	args := s.Called()
	return args.Bool(0)
}

func (s *SessionMock) Service() error {
	args := s.Called()
	return args.Error(0)
}

func (s *SessionMock) Publish(ctx context.Context, topic string, payload []byte) error {
	args := s.Called(ctx, topic, payload)
	return args.Error(0)
}

func (s *SessionMock) Close() {
	s.Called()
}
