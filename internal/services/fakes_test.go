package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"lawflow/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testTimeout = 5 * time.Second

// sliceSource is an in-memory PageSource that ignores ordering.
type sliceSource[T any] struct {
	items []T
	err   error
}

func (s sliceSource[T]) Count(ctx context.Context) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return len(s.items), nil
}

func (s sliceSource[T]) Fetch(ctx context.Context, offset, limit int, order *domain.Ordering) ([]T, error) {
	if s.err != nil {
		return nil, s.err
	}
	if offset >= len(s.items) {
		return []T{}, nil
	}
	end := min(offset+limit, len(s.items))
	return s.items[offset:end], nil
}

// fakeClientRepo is an in-memory ClientRepository for tests.
type fakeClientRepo struct {
	byID   map[int64]*domain.Client
	nextID int64
	err    error
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byID: map[int64]*domain.Client{}, nextID: 1}
}

func (f *fakeClientRepo) Create(ctx context.Context, c *domain.Client) error {
	if f.err != nil {
		return f.err
	}
	c.ID = f.nextID
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeClientRepo) Source() domain.PageSource[*domain.Client] {
	var items []*domain.Client
	for _, c := range f.byID {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return sliceSource[*domain.Client]{items: items, err: f.err}
}

// fakeProjectRepo is an in-memory ProjectRepository for tests.
type fakeProjectRepo struct {
	byID      map[int64]*domain.Project
	deleted   map[int64]bool
	nextID    int64
	err       error
	getCalls  int
	lastWrite *domain.Project
	onGet     func()
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{byID: map[int64]*domain.Project{}, deleted: map[int64]bool{}, nextID: 1}
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if f.err != nil {
		return f.err
	}
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.byID[p.ID] = &cp
	f.lastWrite = &cp
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[id]
	if hook := f.onGet; hook != nil {
		f.onGet = nil
		hook()
	}
	if !ok || f.deleted[id] {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	if _, ok := f.byID[p.ID]; !ok || f.deleted[p.ID] {
		return domain.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	f.lastWrite = &cp
	return nil
}

func (f *fakeProjectRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	if _, ok := f.byID[id]; !ok || f.deleted[id] {
		return domain.ErrNotFound
	}
	f.deleted[id] = true
	return nil
}

func (f *fakeProjectRepo) Source(filter domain.ProjectFilter) domain.PageSource[*domain.Project] {
	var items []*domain.Project
	for id, p := range f.byID {
		if f.deleted[id] || (filter.Status != "" && p.Status != filter.Status) {
			continue
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return sliceSource[*domain.Project]{items: items, err: f.err}
}

// fakeTaskRepo is an in-memory TaskRepository for tests.
type fakeTaskRepo struct {
	byID    map[int64]*domain.Task
	deleted map[int64]bool
	nextID  int64
	err     error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{byID: map[int64]*domain.Task{}, deleted: map[int64]bool{}, nextID: 1}
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	if f.err != nil {
		return f.err
	}
	t.ID = f.nextID
	f.nextID++
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, ok := f.byID[id]
	if !ok || f.deleted[id] {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	if _, ok := f.byID[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	if _, ok := f.byID[id]; !ok || f.deleted[id] {
		return domain.ErrNotFound
	}
	f.deleted[id] = true
	return nil
}

func (f *fakeTaskRepo) ListByProjectID(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*domain.Task{}
	for id, t := range f.byID {
		if t.ProjectID == projectID && !f.deleted[id] {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskRepo) Source(filter domain.TaskFilter) domain.PageSource[*domain.Task] {
	items, _ := f.ListByProjectID(context.Background(), filter.ProjectID)
	return sliceSource[*domain.Task]{items: items, err: f.err}
}

// fakeChecklistRepo is an in-memory ChecklistRepository for tests.
type fakeChecklistRepo struct {
	items  []*domain.ChecklistItem
	nextID int64
	err    error
}

func (f *fakeChecklistRepo) Create(ctx context.Context, it *domain.ChecklistItem) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	it.ID = f.nextID
	f.items = append(f.items, it)
	return nil
}

func (f *fakeChecklistRepo) SetDone(ctx context.Context, id int64, done bool, at time.Time) (*domain.ChecklistItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			it.IsDone = done
			it.UpdatedAt = at
			return it, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeChecklistRepo) ListByProjectID(ctx context.Context, projectID int64) ([]*domain.ChecklistItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*domain.ChecklistItem{}
	for _, it := range f.items {
		if it.ProjectID == projectID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeChecklistRepo) Source(projectID int64) domain.PageSource[*domain.ChecklistItem] {
	items, _ := f.ListByProjectID(context.Background(), projectID)
	return sliceSource[*domain.ChecklistItem]{items: items, err: f.err}
}

// fakeTimelineRepo is an in-memory TimelineRepository for tests.
type fakeTimelineRepo struct {
	items  []*domain.TimelineItem
	nextID int64
}

func (f *fakeTimelineRepo) Create(ctx context.Context, it *domain.TimelineItem) error {
	f.nextID++
	it.ID = f.nextID
	f.items = append(f.items, it)
	return nil
}

func (f *fakeTimelineRepo) ListByProjectID(ctx context.Context, projectID int64) ([]*domain.TimelineItem, error) {
	out := []*domain.TimelineItem{}
	for _, it := range f.items {
		if it.ProjectID == projectID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeTimelineRepo) Source(projectID int64) domain.PageSource[*domain.TimelineItem] {
	items, _ := f.ListByProjectID(context.Background(), projectID)
	return sliceSource[*domain.TimelineItem]{items: items}
}

// fakeActivityRepo is an in-memory ActivityRepository for tests.
type fakeActivityRepo struct {
	items []*domain.Activity
	err   error
}

func (f *fakeActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	if f.err != nil {
		return f.err
	}
	a.ID = int64(len(f.items) + 1)
	f.items = append(f.items, a)
	return nil
}

func (f *fakeActivityRepo) ListRecent(ctx context.Context, projectID int64, limit int) ([]*domain.Activity, error) {
	out := []*domain.Activity{}
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		if f.items[i].ProjectID == projectID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) Source(projectID int64) domain.PageSource[*domain.Activity] {
	items, _ := f.ListRecent(context.Background(), projectID, len(f.items))
	return sliceSource[*domain.Activity]{items: items, err: f.err}
}

func (f *fakeActivityRepo) verbs() []string {
	var out []string
	for _, a := range f.items {
		out = append(out, a.Verb)
	}
	return out
}

func (f *fakeActivityRepo) last() *domain.Activity {
	if len(f.items) == 0 {
		return nil
	}
	return f.items[len(f.items)-1]
}

// fakeCache is an in-memory Cache that round-trips values through JSON.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	hits    int
	deleted []string
	err     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return false, f.err
	}
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	f.hits++
	return true, json.Unmarshal(b, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error {
	return f.err
}

// fakeFileRepo is an in-memory FileRepository for tests.
// Like the database it rejects a second row with the same project, filename
// and version. beforeCreate runs ahead of that check.
type fakeFileRepo struct {
	items        []*domain.FileItem
	err          error
	beforeCreate func(file *domain.FileItem)
}

func (f *fakeFileRepo) Create(ctx context.Context, file *domain.FileItem) error {
	if f.err != nil {
		return f.err
	}
	if f.beforeCreate != nil {
		f.beforeCreate(file)
	}
	for _, it := range f.items {
		if it.ProjectID == file.ProjectID && it.OriginalFilename == file.OriginalFilename && it.Version == file.Version {
			return fmt.Errorf("%w: duplicate version", domain.ErrConflict)
		}
	}
	file.ID = int64(len(f.items) + 1)
	cp := *file
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeFileRepo) GetByID(ctx context.Context, id int64) (*domain.FileItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			cp := *it
			cp.HasPreview = cp.PreviewPath != nil
			cp.HasThumbnail = cp.ThumbnailPath != nil
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFileRepo) LatestVersion(ctx context.Context, projectID int64, filename string) (*domain.FileItem, error) {
	var latest *domain.FileItem
	for _, it := range f.items {
		if it.ProjectID == projectID && it.OriginalFilename == filename && (latest == nil || it.Version > latest.Version) {
			latest = it
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (f *fakeFileRepo) ListVersions(ctx context.Context, projectID int64, filename string) ([]*domain.FileItem, error) {
	out := []*domain.FileItem{}
	for _, it := range f.items {
		if it.ProjectID == projectID && it.OriginalFilename == filename {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (f *fakeFileRepo) Source(projectID int64) domain.PageSource[*domain.FileItem] {
	var items []*domain.FileItem
	for _, it := range f.items {
		if it.ProjectID == projectID {
			items = append(items, it)
		}
	}
	return sliceSource[*domain.FileItem]{items: items}
}

// fakeStorage is an in-memory FileStorage for tests.
type fakeStorage struct {
	objects map[string][]byte
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = b
	return nil
}

func (f *fakeStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	b, ok := f.objects[key]
	if !ok {
		return nil, domain.ErrFileContentMissing
	}
	return io.NopCloser(strings.NewReader(string(b))), nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

// fakePreviews returns fixed renditions.
type fakePreviews struct {
	preview, thumb []byte
	err            error
	lastMime       string
}

func (f *fakePreviews) Generate(ctx context.Context, mimeType string, content []byte) ([]byte, []byte, error) {
	f.lastMime = mimeType
	return f.preview, f.thumb, f.err
}

// fakeEmailService records the last summary it was asked to send.
type fakeEmailService struct {
	last *domain.ClosingPackEmailData
	err  error
}

func (f *fakeEmailService) SendClosingPackSummary(ctx context.Context, data *domain.ClosingPackEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.last = data
	return nil
}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T {
	return &v
}

func day(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
