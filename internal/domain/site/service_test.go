package site_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jarda-app/jarda/internal/domain/site"
	"github.com/jarda-app/jarda/internal/repository"
	"github.com/jarda-app/jarda/internal/repository/mocks"
)

func TestSiteService_Create(t *testing.T) {
	ctx := context.Background()
	sites := &mocks.SiteRepository{}
	sites.On("Create", ctx, mock.MatchedBy(func(s site.Site) bool {
		return s.Name == "مشروع نيوم" && s.ID != ""
	})).Return(nil)

	svc := site.NewService(sites, &mocks.SessionRepository{}, nil)
	st, err := svc.Create(ctx, "مشروع نيوم")
	require.NoError(t, err)
	require.NotEmpty(t, st.ID)
	sites.AssertExpectations(t)
}

func TestSiteService_Create_RejectsBlankName(t *testing.T) {
	svc := site.NewService(&mocks.SiteRepository{}, &mocks.SessionRepository{}, nil)
	_, err := svc.Create(context.Background(), "   ")
	require.ErrorIs(t, err, site.ErrInvalidInput)
}

func TestSiteService_Rename_CascadesIntoSessions(t *testing.T) {
	ctx := context.Background()
	sites := &mocks.SiteRepository{}
	sessions := &mocks.SessionRepository{}

	sites.On("Get", ctx, "site1").Return(&site.Site{ID: "site1", Name: "old"}, nil)
	sites.On("Update", ctx, site.Site{ID: "site1", Name: "new"}).Return(nil)
	sessions.On("UpdateSiteName", ctx, "site1", "new").Return(3, nil)

	svc := site.NewService(sites, sessions, nil)
	st, err := svc.Rename(ctx, "site1", "new")
	require.NoError(t, err)
	require.Equal(t, "new", st.Name)
	sessions.AssertExpectations(t)
}

func TestSiteService_Rename_NotFound(t *testing.T) {
	ctx := context.Background()
	sites := &mocks.SiteRepository{}
	sites.On("Get", ctx, "nope").Return(nil, repository.ErrNotFound)

	svc := site.NewService(sites, &mocks.SessionRepository{}, nil)
	_, err := svc.Rename(ctx, "nope", "name")
	require.ErrorIs(t, err, site.ErrSiteNotFound)
}

func TestSiteService_Delete(t *testing.T) {
	ctx := context.Background()
	sites := &mocks.SiteRepository{}
	sites.On("Delete", ctx, "site1").Return(nil)

	svc := site.NewService(sites, &mocks.SessionRepository{}, nil)
	require.NoError(t, svc.Delete(ctx, "site1"))
	sites.AssertExpectations(t)
}
