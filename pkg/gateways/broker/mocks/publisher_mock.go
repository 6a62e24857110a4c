package mocks

import (
	"context"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/stretchr/testify/mock"
)

type PublisherMock struct {
	mock.Mock
}

func (p *PublisherMock) PublishSample(ctx context.Context, sample entities.Sample) error {
	args := p.Called(ctx, sample)
	return args.Error(0)
}
