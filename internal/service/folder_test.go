package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"docshare/internal/access"
	"docshare/internal/domain"
	"docshare/internal/domain/models"
	"docshare/internal/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFolderFixture(t *testing.T) (*fakeBackend, *fakeViewStateRepo, *folderService) {
	t.Helper()

	roles, err := access.LoadCapabilities()
	require.NoError(t, err)

	backend := newFakeBackend()
	repo := newFakeViewStateRepo()
	viewState := NewViewStateService(repo, &fakeTxManager{}, testLogger())
	svc := NewFolderService(backend, viewState, access.NewResolver(roles), testLogger()).(*folderService)
	return backend, repo, svc
}

var employee = &models.Viewer{UserID: "u1", Role: models.RoleEmployee, Token: "tok"}

// seedRestrictedTree is the Root / Restricted / Hidden Child hierarchy
func seedRestrictedTree(b *fakeBackend) {
	b.addFolder(models.Folder{ID: "A", Name: "Root", HasAccess: boolPtr(true), CanViewContent: boolPtr(true)})
	b.addFolder(models.Folder{ID: "B", Name: "Restricted", ParentID: strPtr("A"), HasAccess: boolPtr(true), CanViewContent: boolPtr(false)})
	b.addFolder(models.Folder{ID: "C", Name: "Hidden Child", ParentID: strPtr("B"), HasAccess: boolPtr(false)})
}

func TestFolderService_GetTree(t *testing.T) {
	backend, _, svc := newFolderFixture(t)
	seedRestrictedTree(backend)

	result, err := svc.GetTree(context.Background(), employee, []string{"A", "B"})
	require.NoError(t, err)

	flat := tree.Flatten(result.Folders)
	require.Len(t, flat, 2)
	assert.Equal(t, "A", flat[0].ID)
	assert.Equal(t, 0, flat[0].Level)
	assert.Equal(t, access.Full, flat[0].Access)
	assert.True(t, flat[0].Expanded)

	assert.Equal(t, "B", flat[1].ID)
	assert.Equal(t, 1, flat[1].Level)
	assert.Equal(t, access.Locked, flat[1].Access)
	assert.False(t, flat[1].Expanded, "locked folders never expand")

	assert.Equal(t, []string{"A", "B"}, result.Expanded)
}

func TestFolderService_GetTreeUsesSavedExpansion(t *testing.T) {
	backend, repo, svc := newFolderFixture(t)
	seedRestrictedTree(backend)
	repo.states["u1"] = models.ViewState{UserID: "u1", CurrentFilter: models.FilterAll, ExpandedFolders: []string{"A"}}

	result, err := svc.GetTree(context.Background(), employee, nil)
	require.NoError(t, err)

	flat := tree.Flatten(result.Folders)
	require.Len(t, flat, 2)
	assert.Equal(t, []string{"A"}, result.Expanded)
}

func TestFolderService_GetTreeCollapsedByDefault(t *testing.T) {
	backend, _, svc := newFolderFixture(t)
	seedRestrictedTree(backend)

	result, err := svc.GetTree(context.Background(), employee, nil)
	require.NoError(t, err)

	require.Len(t, result.Folders, 1)
	assert.Empty(t, result.Folders[0].Children)
	assert.Empty(t, result.Expanded)
}

func TestFolderService_GetContents(t *testing.T) {
	t.Run("full folder lists visible children", func(t *testing.T) {
		backend, _, svc := newFolderFixture(t)
		seedRestrictedTree(backend)
		backend.addFolder(models.Folder{ID: "D", Name: "Secret", ParentID: strPtr("A"), HasAccess: boolPtr(false)})
		backend.contents["A"] = []models.Document{{ID: "doc1", Name: "report.pdf"}}

		contents, err := svc.GetContents(context.Background(), employee, "A")
		require.NoError(t, err)

		assert.False(t, contents.Restricted)
		require.Len(t, contents.Folders, 1)
		assert.Equal(t, "B", contents.Folders[0].ID, "hidden children are filtered out")
		assert.Len(t, contents.Documents, 1)
	})

	t.Run("locked folder never fetches contents", func(t *testing.T) {
		backend, _, svc := newFolderFixture(t)
		seedRestrictedTree(backend)

		contents, err := svc.GetContents(context.Background(), employee, "B")
		require.NoError(t, err)

		assert.True(t, contents.Restricted)
		assert.Empty(t, contents.Folders)
		assert.Empty(t, contents.Documents)
		require.NotNil(t, contents.Folder)
		assert.Equal(t, "B", contents.Folder.ID)
		assert.False(t, backend.called("GetFolderContents"))
	})

	t.Run("backend denial becomes restricted view", func(t *testing.T) {
		backend, _, svc := newFolderFixture(t)
		seedRestrictedTree(backend)
		backend.errs["GetFolderContents"] = forbidden("Access denied")

		contents, err := svc.GetContents(context.Background(), employee, "A")
		require.NoError(t, err)
		assert.True(t, contents.Restricted)
		assert.NotNil(t, contents.Folders)
		assert.NotNil(t, contents.Documents)
	})

	t.Run("denied folder fetch becomes restricted view", func(t *testing.T) {
		backend, _, svc := newFolderFixture(t)
		backend.errs["GetFolder"] = forbidden("Access denied")

		contents, err := svc.GetContents(context.Background(), employee, "A")
		require.NoError(t, err)
		assert.True(t, contents.Restricted)
		assert.Nil(t, contents.Folder)
	})

	t.Run("hidden folder is not found", func(t *testing.T) {
		backend, _, svc := newFolderFixture(t)
		seedRestrictedTree(backend)

		_, err := svc.GetContents(context.Background(), employee, "C")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("other failures propagate", func(t *testing.T) {
		backend, _, svc := newFolderFixture(t)
		seedRestrictedTree(backend)
		backend.errs["GetFolderContents"] = &domain.RemoteError{Kind: domain.RemoteServer, Status: 500, Message: "document service failed"}

		_, err := svc.GetContents(context.Background(), employee, "A")
		var remote *domain.RemoteError
		require.True(t, errors.As(err, &remote))
		assert.Equal(t, domain.RemoteServer, remote.Kind)
	})
}

func TestFolderService_GetFolder(t *testing.T) {
	backend, _, svc := newFolderFixture(t)
	seedRestrictedTree(backend)
	backend.folders["A"].OwnerID = "u1"

	view, err := svc.GetFolder(context.Background(), employee, "A")
	require.NoError(t, err)
	assert.Equal(t, access.Full, view.Classification)
	assert.True(t, view.CanEdit, "owner may edit")
	assert.True(t, view.CanShare, "owner may share")

	view, err = svc.GetFolder(context.Background(), employee, "B")
	require.NoError(t, err)
	assert.Equal(t, access.Locked, view.Classification)
	assert.True(t, view.CanView)
	assert.False(t, view.CanBrowseChildren)
	assert.False(t, view.CanEdit)

	_, err = svc.GetFolder(context.Background(), employee, "C")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderService_CreateFolderValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateFolderRequest
		wantErr bool
	}{
		{name: "valid", req: models.CreateFolderRequest{Name: "Reports"}},
		{name: "trimmed", req: models.CreateFolderRequest{Name: "  Q3  "}},
		{name: "empty", req: models.CreateFolderRequest{Name: "   "}, wantErr: true},
		{name: "slash", req: models.CreateFolderRequest{Name: "a/b"}, wantErr: true},
		{name: "too long", req: models.CreateFolderRequest{Name: strings.Repeat("x", 256)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, _, svc := newFolderFixture(t)

			req := tt.req
			folder, err := svc.CreateFolder(context.Background(), employee, &req)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.False(t, backend.called("CreateFolder"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.req.Name), folder.Name)
		})
	}
}

func TestFolderService_CreateFolderNormalizesParent(t *testing.T) {
	_, _, svc := newFolderFixture(t)

	folder, err := svc.CreateFolder(context.Background(), employee, &models.CreateFolderRequest{
		Name:             "Root level",
		ParentID:         strPtr(""),
		DepartmentAccess: []string{"d1", "d1", "d2"},
	})
	require.NoError(t, err)
	assert.Nil(t, folder.ParentID)
	assert.Equal(t, []string{"d1", "d2"}, folder.DepartmentAccess)
}

func TestFolderService_DeletePassesBackendError(t *testing.T) {
	backend, _, svc := newFolderFixture(t)
	backend.errs["DeleteFolder"] = forbidden("Only the owner can delete this folder")

	err := svc.DeleteFolder(context.Background(), employee, "A")
	require.Error(t, err)
	assert.Equal(t, "Only the owner can delete this folder", err.Error())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
