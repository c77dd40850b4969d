package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docshare/internal/access"
	"docshare/internal/domain"
	"docshare/internal/domain/models"
	"docshare/internal/domain/services"
	"docshare/internal/httputil"
	"docshare/internal/sharing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testViewer = &models.Viewer{UserID: "u1", Role: models.RoleEmployee, Token: "tok"}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serve routes one request through a mux so path values are populated
func serve(t *testing.T, pattern string, h http.HandlerFunc, method, target, body string, viewer *models.Viewer) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if viewer != nil {
		req = httputil.WithViewer(req, viewer)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

type stubFolderService struct {
	services.FolderService
	gotExpanded []string
	treeCalled  bool
	err         error
}

func (s *stubFolderService) GetTree(ctx context.Context, viewer *models.Viewer, expanded []string) (*services.FolderTree, error) {
	s.treeCalled = true
	s.gotExpanded = expanded
	if s.err != nil {
		return nil, s.err
	}
	return &services.FolderTree{Expanded: expanded}, nil
}

func (s *stubFolderService) GetContents(ctx context.Context, viewer *models.Viewer, folderID string) (*models.FolderContents, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.FolderContents{}, nil
}

func (s *stubFolderService) DeleteFolder(ctx context.Context, viewer *models.Viewer, folderID string) error {
	return s.err
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "backend validation keeps status and message",
			err:        &domain.RemoteError{Kind: domain.RemoteValidation, Status: 409, Message: "Folder name already exists"},
			wantStatus: http.StatusConflict,
			wantDetail: "Folder name already exists",
		},
		{
			name:       "wrapped backend denial",
			err:        fmt.Errorf("get folder: %w", &domain.RemoteError{Kind: domain.RemoteForbidden, Status: 403, Message: "Access denied"}),
			wantStatus: http.StatusForbidden,
			wantDetail: "Access denied",
		},
		{
			name:       "backend server error",
			err:        &domain.RemoteError{Kind: domain.RemoteServer, Status: 502, Message: "document service failed"},
			wantStatus: http.StatusBadGateway,
			wantDetail: "document service failed",
		},
		{
			name:       "backend unreachable",
			err:        &domain.RemoteError{Kind: domain.RemoteTransport, Message: "document service unavailable"},
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: "document service unavailable",
		},
		{
			name:       "gateway validation",
			err:        fmt.Errorf("%w: name: cannot be blank", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantDetail: "validation failed: name: cannot be blank",
		},
		{
			name:       "not found sentinel",
			err:        domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantDetail: "not found",
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			problem := decodeProblem(t, rec)
			assert.Equal(t, tt.wantDetail, problem["detail"])
			assert.Equal(t, float64(tt.wantStatus), problem["status"])
		})
	}
}

func TestFolderHandler_RequiresViewer(t *testing.T) {
	svc := &stubFolderService{}
	h := NewFolderHandler(svc, testLogger())

	rec := serve(t, "GET /api/folders/tree", h.GetTree, http.MethodGet, "/api/folders/tree", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, svc.treeCalled)
}

func TestFolderHandler_GetTreeExpandedParam(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "absent uses saved state", target: "/api/folders/tree", want: nil},
		{name: "empty collapses everything", target: "/api/folders/tree?expanded=", want: []string{}},
		{name: "list is trimmed", target: "/api/folders/tree?expanded=a,%20b,,c", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubFolderService{}
			h := NewFolderHandler(svc, testLogger())

			rec := serve(t, "GET /api/folders/tree", h.GetTree, http.MethodGet, tt.target, "", testViewer)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, svc.gotExpanded)
		})
	}
}

func TestFolderHandler_ContentsPropagatesBackendMessage(t *testing.T) {
	svc := &stubFolderService{err: &domain.RemoteError{Kind: domain.RemoteNotFound, Status: 404, Message: "Folder not found"}}
	h := NewFolderHandler(svc, testLogger())

	rec := serve(t, "GET /api/folders/{id}/contents", h.GetContents, http.MethodGet, "/api/folders/f1/contents", "", testViewer)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Folder not found", decodeProblem(t, rec)["detail"])
}

func TestFolderHandler_DeleteNoContent(t *testing.T) {
	h := NewFolderHandler(&stubFolderService{}, testLogger())

	rec := serve(t, "DELETE /api/folders/{id}", h.DeleteFolder, http.MethodDelete, "/api/folders/f1", "", testViewer)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

type stubViewStateService struct {
	services.ViewStateService
	got *models.UpdateViewStateRequest
}

func (s *stubViewStateService) UpdateViewState(ctx context.Context, userID string, req *models.UpdateViewStateRequest) (*models.ViewState, error) {
	s.got = req
	return models.DefaultViewState(userID), nil
}

func TestViewStateHandler_CurrentFolderTriState(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{name: "absent", body: `{"currentFilter":"starred"}`, wantPresent: false},
		{name: "null", body: `{"currentFolder":null}`, wantPresent: true},
		{name: "empty id returns to root", body: `{"currentFolder":""}`, wantPresent: true},
		{name: "value", body: `{"currentFolder":"f1"}`, wantPresent: true, wantValue: ptr("f1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubViewStateService{}
			h := NewViewStateHandler(svc, testLogger())

			rec := serve(t, "PATCH /api/users/me/view-state", h.UpdateViewState, http.MethodPatch, "/api/users/me/view-state", tt.body, testViewer)

			require.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, svc.got)
			assert.Equal(t, tt.wantPresent, svc.got.CurrentFolder.Present)
			assert.Equal(t, tt.wantValue, svc.got.CurrentFolder.Value)
		})
	}
}

func TestViewStateHandler_RejectsMalformedBody(t *testing.T) {
	svc := &stubViewStateService{}
	h := NewViewStateHandler(svc, testLogger())

	rec := serve(t, "PATCH /api/users/me/view-state", h.UpdateViewState, http.MethodPatch, "/api/users/me/view-state", `{"currentFolder":`, testViewer)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)
}

func ptr(s string) *string { return &s }

type stubShareService struct {
	services.ShareService
	gotDocument *sharing.DocumentShare
	gotOwner    string
	err         error
}

func (s *stubShareService) ShareDocument(ctx context.Context, viewer *models.Viewer, documentID string, req *sharing.DocumentShare) (*sharing.DocumentShare, error) {
	s.gotDocument = req
	if s.err != nil {
		return nil, s.err
	}
	return req, nil
}

func (s *stubShareService) Candidates(ctx context.Context, viewer *models.Viewer, ownerID string) ([]models.User, error) {
	s.gotOwner = ownerID
	return []models.User{{ID: "u2", Name: "Bea"}}, nil
}

func TestShareHandler_ShareDocument(t *testing.T) {
	svc := &stubShareService{}
	h := NewShareHandler(svc, testLogger())

	body := `{"userIds":["a","b"],"permissions":{"read":["a","b"],"write":["a"],"delete":[]}}`
	rec := serve(t, "PUT /api/documents/{id}/share", h.ShareDocument, http.MethodPut, "/api/documents/d1/share", body, testViewer)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotDocument)
	assert.Equal(t, []string{"a", "b"}, svc.gotDocument.UserIDs)
	assert.Equal(t, []string{"a"}, svc.gotDocument.Permissions.Write)

	var got sharing.DocumentShare
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"a", "b"}, got.Permissions.Read)
}

func TestShareHandler_ShareDocumentValidation(t *testing.T) {
	svc := &stubShareService{err: fmt.Errorf("%w: user is not selected for sharing: c", domain.ErrValidation)}
	h := NewShareHandler(svc, testLogger())

	body := `{"userIds":["a"],"permissions":{"read":["c"]}}`
	rec := serve(t, "PUT /api/documents/{id}/share", h.ShareDocument, http.MethodPut, "/api/documents/d1/share", body, testViewer)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeProblem(t, rec)["detail"], "not selected")
}

func TestShareHandler_Candidates(t *testing.T) {
	svc := &stubShareService{}
	h := NewShareHandler(svc, testLogger())

	rec := serve(t, "GET /api/share/candidates", h.Candidates, http.MethodGet, "/api/share/candidates?owner=u1", "", testViewer)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", svc.gotOwner)
	assert.JSONEq(t, `[{"id":"u2","name":"Bea","email":"","role":""}]`, rec.Body.String())
}

type stubAdminService struct {
	services.AdminService
	gotPage models.PageRequest
	err     error
}

func (s *stubAdminService) ListDepartments(ctx context.Context, viewer *models.Viewer, p models.PageRequest) (*models.Page[models.DepartmentView], error) {
	s.gotPage = p
	return &models.Page[models.DepartmentView]{Items: []models.DepartmentView{}, Page: p.Page, Limit: p.Limit}, nil
}

func (s *stubAdminService) DeleteDepartment(ctx context.Context, viewer *models.Viewer, departmentID string) error {
	return s.err
}

func TestAdminHandler_PageParams(t *testing.T) {
	tests := []struct {
		target string
		want   models.PageRequest
	}{
		{"/api/admin/departments", models.PageRequest{Page: 1, Limit: models.DefaultPageLimit}},
		{"/api/admin/departments?page=3&limit=25", models.PageRequest{Page: 3, Limit: 25}},
		{"/api/admin/departments?page=x&limit=", models.PageRequest{Page: 1, Limit: models.DefaultPageLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			svc := &stubAdminService{}
			h := NewAdminHandler(svc, testLogger())

			rec := serve(t, "GET /api/admin/departments", h.ListDepartments, http.MethodGet, tt.target, "", testViewer)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, svc.gotPage)
		})
	}
}

func TestAdminHandler_DeleteDepartmentBackendMessage(t *testing.T) {
	svc := &stubAdminService{err: &domain.RemoteError{
		Kind:    domain.RemoteValidation,
		Status:  400,
		Message: "Cannot delete department with active employees",
	}}
	h := NewAdminHandler(svc, testLogger())

	rec := serve(t, "DELETE /api/admin/departments/{id}", h.DeleteDepartment, http.MethodDelete, "/api/admin/departments/d1", "", testViewer)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete department with active employees", decodeProblem(t, rec)["detail"])
}

func TestHealthCheck(t *testing.T) {
	rec := serve(t, "GET /health", HealthCheck, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSessionHandler_GetCapabilities(t *testing.T) {
	caps, err := access.LoadCapabilities()
	require.NoError(t, err)
	h := NewSessionHandler(access.NewResolver(caps))

	tests := []struct {
		name   string
		viewer *models.Viewer
		want   string
	}{
		{
			name:   "admin sees the admin panel",
			viewer: &models.Viewer{UserID: "a1", Email: "root@example.com", Role: models.RoleAdmin},
			want: `{"userId":"a1","email":"root@example.com","role":"admin","capabilities":
				{"role":"admin","manageAdmin":true,"shareAny":true,"editAny":true,"shareDepartment":true}}`,
		},
		{
			name:   "manager shares with departments only",
			viewer: &models.Viewer{UserID: "m1", Email: "m@example.com", Role: models.RoleManager, DepartmentID: "d1"},
			want: `{"userId":"m1","email":"m@example.com","role":"manager","departmentId":"d1","capabilities":
				{"role":"manager","manageAdmin":false,"shareAny":false,"editAny":true,"shareDepartment":true}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, "GET /api/users/me/capabilities", h.GetCapabilities, http.MethodGet, "/api/users/me/capabilities", "", tt.viewer)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}

	rec := serve(t, "GET /api/users/me/capabilities", h.GetCapabilities, http.MethodGet, "/api/users/me/capabilities", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
