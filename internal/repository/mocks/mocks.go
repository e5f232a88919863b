package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
	"github.com/jarda-app/jarda/internal/domain/site"
)

// SiteRepository is a mock for repository.SiteRepository.
type SiteRepository struct {
	mock.Mock
}

func (m *SiteRepository) Create(ctx context.Context, s site.Site) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SiteRepository) Get(ctx context.Context, id string) (*site.Site, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*site.Site); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SiteRepository) Update(ctx context.Context, s site.Site) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SiteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SiteRepository) List(ctx context.Context) ([]site.Site, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]site.Site); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SessionRepository is a mock for repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Update(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) List(ctx context.Context) ([]session.Session, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]session.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) ListBySite(ctx context.Context, siteID string) ([]session.Session, error) {
	args := m.Called(ctx, siteID)
	if list, ok := args.Get(0).([]session.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) UpdateSiteName(ctx context.Context, siteID, siteName string) (int, error) {
	args := m.Called(ctx, siteID, siteName)
	return args.Int(0), args.Error(1)
}

// TemplateRepository is a mock for repository.TemplateRepository.
type TemplateRepository struct {
	mock.Mock
}

func (m *TemplateRepository) List(ctx context.Context) ([]item.Item, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]item.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TemplateRepository) Add(ctx context.Context, it item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *TemplateRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
