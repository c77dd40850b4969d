package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"docshare/internal/domain"
	"docshare/internal/domain/models"
	"docshare/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

// fakeBackend is an in-memory document backend. It stores exactly what the
// last replace call sent, like the real backend.
type fakeBackend struct {
	mu sync.Mutex

	folders   map[string]*models.Folder
	order     []string
	contents  map[string][]models.Document
	documents map[string]*models.Document
	users     []models.User
	tags      []models.Tag

	departments []models.Department
	employees   []models.User

	// errors injected per operation name
	errs map[string]error

	calls []string

	lastPage       models.PageRequest
	lastDeptCreate *models.CreateDepartmentRequest
	lastQuery      models.DocumentQuery
	lastTag        *models.TagRequest
	lastUpload     string
	lastMode       models.FileMode
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		folders:   make(map[string]*models.Folder),
		contents:  make(map[string][]models.Document),
		documents: make(map[string]*models.Document),
		errs:      make(map[string]error),
	}
}

func (b *fakeBackend) addFolder(f models.Folder) {
	b.folders[f.ID] = &f
	b.order = append(b.order, f.ID)
}

func (b *fakeBackend) record(op string) error {
	b.calls = append(b.calls, op)
	return b.errs[op]
}

func (b *fakeBackend) called(op string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c == op {
			return true
		}
	}
	return false
}

func notFound() error {
	return &domain.RemoteError{Kind: domain.RemoteNotFound, Status: 404, Message: "Not Found"}
}

func forbidden(msg string) error {
	return &domain.RemoteError{Kind: domain.RemoteForbidden, Status: 403, Message: msg}
}

func (b *fakeBackend) ListFolders(ctx context.Context, token, parent string) ([]models.Folder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("ListFolders"); err != nil {
		return nil, err
	}
	out := make([]models.Folder, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.folders[id])
	}
	return out, nil
}

func (b *fakeBackend) GetFolder(ctx context.Context, token, id string) (*models.Folder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("GetFolder"); err != nil {
		return nil, err
	}
	f, ok := b.folders[id]
	if !ok {
		return nil, notFound()
	}
	cp := *f
	return &cp, nil
}

func (b *fakeBackend) GetFolderContents(ctx context.Context, token, id string) ([]models.Folder, []models.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("GetFolderContents"); err != nil {
		return nil, nil, err
	}
	var children []models.Folder
	for _, fid := range b.order {
		f := b.folders[fid]
		if f.Parent() == id {
			children = append(children, *f)
		}
	}
	return children, b.contents[id], nil
}

func (b *fakeBackend) CreateFolder(ctx context.Context, token string, req *models.CreateFolderRequest) (*models.Folder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("CreateFolder"); err != nil {
		return nil, err
	}
	f := models.Folder{ID: "new-" + req.Name, Name: req.Name, ParentID: req.ParentID, DepartmentAccess: req.DepartmentAccess}
	b.folders[f.ID] = &f
	b.order = append(b.order, f.ID)
	return &f, nil
}

func (b *fakeBackend) UpdateFolder(ctx context.Context, token, id string, req *models.UpdateFolderRequest) (*models.Folder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("UpdateFolder"); err != nil {
		return nil, err
	}
	f, ok := b.folders[id]
	if !ok {
		return nil, notFound()
	}
	f.Name = req.Name
	cp := *f
	return &cp, nil
}

func (b *fakeBackend) DeleteFolder(ctx context.Context, token, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.record("DeleteFolder")
}

func (b *fakeBackend) ShareFolderWithDepartments(ctx context.Context, token, id string, departments []string) (*models.Folder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("ShareFolderWithDepartments"); err != nil {
		return nil, err
	}
	f, ok := b.folders[id]
	if !ok {
		return nil, notFound()
	}
	f.DepartmentAccess = append([]string(nil), departments...)
	cp := *f
	return &cp, nil
}

func (b *fakeBackend) ShareFolderWithUsers(ctx context.Context, token, id string, userIDs []string) (*models.Folder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("ShareFolderWithUsers"); err != nil {
		return nil, err
	}
	f, ok := b.folders[id]
	if !ok {
		return nil, notFound()
	}
	f.SharedWith = append([]string(nil), userIDs...)
	cp := *f
	return &cp, nil
}

func (b *fakeBackend) ListDocuments(ctx context.Context, token string, q models.DocumentQuery) ([]models.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("ListDocuments"); err != nil {
		return nil, err
	}
	b.lastQuery = q
	return []models.Document{}, nil
}

func (b *fakeBackend) GetDocument(ctx context.Context, token, id string) (*models.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("GetDocument"); err != nil {
		return nil, err
	}
	d, ok := b.documents[id]
	if !ok {
		return nil, notFound()
	}
	cp := *d
	return &cp, nil
}

func (b *fakeBackend) StarDocument(ctx context.Context, token, id string, starred bool) (*models.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("StarDocument"); err != nil {
		return nil, err
	}
	d, ok := b.documents[id]
	if !ok {
		return nil, notFound()
	}
	d.IsStarred = starred
	cp := *d
	return &cp, nil
}

func (b *fakeBackend) DeleteDocument(ctx context.Context, token, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.record("DeleteDocument")
}

func (b *fakeBackend) ShareDocument(ctx context.Context, token, id string, userIDs []string, perms models.Permissions) (*models.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("ShareDocument"); err != nil {
		return nil, err
	}
	d, ok := b.documents[id]
	if !ok {
		return nil, notFound()
	}
	d.SharedWith = append([]string(nil), userIDs...)
	d.Permissions = perms
	cp := *d
	return &cp, nil
}

func (b *fakeBackend) UploadDocument(ctx context.Context, token string, upload *models.UploadRequest) (*models.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("UploadDocument"); err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(upload.Body)
	if err != nil {
		return nil, err
	}
	b.lastUpload = string(raw)
	d := models.Document{ID: "uploaded", OriginalName: "upload.bin", Size: int64(len(raw))}
	b.documents[d.ID] = &d
	cp := d
	return &cp, nil
}

func (b *fakeBackend) OpenDocument(ctx context.Context, token, id string, mode models.FileMode) (*models.FileStream, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("OpenDocument"); err != nil {
		return nil, err
	}
	if _, ok := b.documents[id]; !ok {
		return nil, notFound()
	}
	b.lastMode = mode
	return &models.FileStream{
		Body:          io.NopCloser(strings.NewReader("content of " + id)),
		ContentType:   "text/plain",
		ContentLength: int64(len("content of " + id)),
	}, nil
}

func (b *fakeBackend) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("ListUsers"); err != nil {
		return nil, err
	}
	return b.users, nil
}

func (b *fakeBackend) ListTags(ctx context.Context, token string) ([]models.Tag, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("ListTags"); err != nil {
		return nil, err
	}
	return b.tags, nil
}

func (b *fakeBackend) CreateTag(ctx context.Context, token string, req *models.TagRequest) (*models.Tag, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("CreateTag"); err != nil {
		return nil, err
	}
	b.lastTag = req
	return &models.Tag{ID: "t-" + req.Name, Name: req.Name, Color: req.Color}, nil
}

func (b *fakeBackend) UpdateTag(ctx context.Context, token, id string, req *models.TagRequest) (*models.Tag, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("UpdateTag"); err != nil {
		return nil, err
	}
	b.lastTag = req
	return &models.Tag{ID: id, Name: req.Name, Color: req.Color}, nil
}

func (b *fakeBackend) DeleteTag(ctx context.Context, token, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.record("DeleteTag")
}

func (b *fakeBackend) ListDepartments(ctx context.Context, token string, p models.PageRequest) (*models.Page[models.Department], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("ListDepartments"); err != nil {
		return nil, err
	}
	b.lastPage = p
	return &models.Page[models.Department]{Items: b.departments, Total: len(b.departments), Page: p.Page, Limit: p.Limit}, nil
}

func (b *fakeBackend) CreateDepartment(ctx context.Context, token string, req *models.CreateDepartmentRequest) (*models.Department, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("CreateDepartment"); err != nil {
		return nil, err
	}
	b.lastDeptCreate = req
	return &models.Department{ID: "d-" + req.Name, Name: req.Name, DisplayName: req.DisplayName, IsActive: true}, nil
}

func (b *fakeBackend) UpdateDepartment(ctx context.Context, token, id string, req *models.UpdateDepartmentRequest) (*models.Department, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("UpdateDepartment"); err != nil {
		return nil, err
	}
	return &models.Department{ID: id, DisplayName: req.DisplayName, IsActive: req.IsActive, EmployeeCount: 2}, nil
}

func (b *fakeBackend) DeleteDepartment(ctx context.Context, token, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.record("DeleteDepartment")
}

func (b *fakeBackend) ListEmployees(ctx context.Context, token string, p models.PageRequest) (*models.Page[models.User], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("ListEmployees"); err != nil {
		return nil, err
	}
	b.lastPage = p
	return &models.Page[models.User]{Items: b.employees, Total: len(b.employees), Page: p.Page, Limit: p.Limit}, nil
}

func (b *fakeBackend) CreateEmployee(ctx context.Context, token string, req *models.CreateEmployeeRequest) (*models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("CreateEmployee"); err != nil {
		return nil, err
	}
	return &models.User{ID: "u-new", Name: req.Name, Email: req.Email, Role: req.Role, DepartmentID: req.Department}, nil
}

func (b *fakeBackend) UpdateEmployee(ctx context.Context, token, id string, req *models.UpdateEmployeeRequest) (*models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record("UpdateEmployee"); err != nil {
		return nil, err
	}
	return &models.User{ID: id, Name: req.Name, Email: req.Email, Role: req.Role, DepartmentID: req.Department}, nil
}

func (b *fakeBackend) DeleteEmployee(ctx context.Context, token, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.record("DeleteEmployee")
}

var (
	_ repositories.FolderBackend    = (*fakeBackend)(nil)
	_ repositories.DocumentBackend  = (*fakeBackend)(nil)
	_ repositories.DirectoryBackend = (*fakeBackend)(nil)
	_ repositories.AdminBackend     = (*fakeBackend)(nil)
)

// fakeViewStateRepo stores view states in memory
type fakeViewStateRepo struct {
	mu      sync.Mutex
	states  map[string]models.ViewState
	locked  int
	upserts int
	err     error
}

func newFakeViewStateRepo() *fakeViewStateRepo {
	return &fakeViewStateRepo{states: make(map[string]models.ViewState)}
}

func (r *fakeViewStateRepo) GetByUserID(ctx context.Context, userID string) (*models.ViewState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.states[userID]
	if !ok {
		return nil, nil
	}
	s.ExpandedFolders = append([]string(nil), s.ExpandedFolders...)
	return &s, nil
}

func (r *fakeViewStateRepo) GetByUserIDForUpdate(ctx context.Context, userID string) (*models.ViewState, error) {
	r.mu.Lock()
	r.locked++
	r.mu.Unlock()
	return r.GetByUserID(ctx, userID)
}

func (r *fakeViewStateRepo) Upsert(ctx context.Context, state *models.ViewState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.upserts++
	s := *state
	s.ExpandedFolders = append([]string(nil), state.ExpandedFolders...)
	r.states[state.UserID] = s
	return nil
}

// fakeTxManager runs fn directly and counts invocations
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}
