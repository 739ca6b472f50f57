package users_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/felinefinder/felinefinder/internal/users"
	"github.com/felinefinder/felinefinder/pkg/lifecycle"
	"github.com/felinefinder/felinefinder/pkg/pagination"
	"github.com/felinefinder/felinefinder/pkg/storage"
)

// script drives the fake sql driver: it serves a canned user row and
// photo key rows, records every statement, and can force a statement
// matching failOn to error.
type script struct {
	mu     sync.Mutex
	user   []driver.Value
	keys   []string
	failOn string
	execs  []string
}

func (s *script) recordExec(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.execs = append(s.execs, query)
}

func (s *script) executed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.execs)
}

type connector struct{ s *script }

func (c connector) Connect(context.Context) (driver.Conn, error) {
	return &conn{s: c.s}, nil
}

func (c connector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open by connector only")
}

type conn struct{ s *script }

func (c *conn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *conn) Close() error { return nil }

func (c *conn) Begin() (driver.Tx, error) { return tx{}, nil }

func (c *conn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	switch {
	case strings.Contains(query, "photo_key"):
		data := make([][]driver.Value, 0, len(c.s.keys))
		for _, key := range c.s.keys {
			data = append(data, []driver.Value{key})
		}
		return &rows{cols: []string{"photo_key"}, data: data}, nil
	case strings.Contains(query, "public.users"):
		r := &rows{cols: []string{
			"id", "name", "email", "image_key",
			"instagram", "custom_platform", "custom_url",
			"created_at", "updated_at",
		}}
		if c.s.user != nil {
			r.data = [][]driver.Value{c.s.user}
		}
		return r, nil
	}
	return nil, errors.New("unexpected query: " + query)
}

func (c *conn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.s.recordExec(query)
	if c.s.failOn != "" && strings.Contains(query, c.s.failOn) {
		return nil, errors.New("statement failed")
	}
	return result{}, nil
}

type tx struct{}

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }

type rows struct {
	cols []string
	data [][]driver.Value
	idx  int
}

func (r *rows) Columns() []string { return r.cols }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.idx >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.idx])
	r.idx++
	return nil
}

type result struct{}

func (result) LastInsertId() (int64, error) { return 0, nil }
func (result) RowsAffected() (int64, error) { return 1, nil }

type fakeDatabase struct{ db *sql.DB }

func (f *fakeDatabase) Connection() *sql.DB                { return f.db }
func (f *fakeDatabase) Start(*lifecycle.Coordinator) error { return nil }

// recordingStore captures blob operations so tests can assert cleanup.
type recordingStore struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
}

func (s *recordingStore) Start(*lifecycle.Coordinator) error { return nil }

func (s *recordingStore) Upload(_ context.Context, key string, _ io.Reader, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, key)
	return nil
}

func (s *recordingStore) Download(context.Context, string) (*storage.DownloadResult, error) {
	return nil, storage.ErrNotFound
}

func (s *recordingStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, key)
	return nil
}

func userRow(imageKey *string) []driver.Value {
	now := time.Now()
	var image driver.Value
	if imageKey != nil {
		image = *imageKey
	}
	return []driver.Value{"u1", "Ramona", "ramona@example.com", image, nil, nil, nil, now, now}
}

func newRepo(t *testing.T, s *script) (users.System, *recordingStore) {
	t.Helper()

	db := sql.OpenDB(connector{s: s})
	t.Cleanup(func() { db.Close() })

	store := &recordingStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return users.New(&fakeDatabase{db: db}, store, pagination.Config{}, logger), store
}

func indexContaining(stmts []string, substr string) int {
	for i, stmt := range stmts {
		if strings.Contains(stmt, substr) {
			return i
		}
	}
	return -1
}

func TestDeleteRemovesListingsAndBlobs(t *testing.T) {
	avatar := "avatars/u1/pic"
	s := &script{
		user: userRow(&avatar),
		keys: []string{"cats/u1/one.jpg", "cats/u1/two.png"},
	}
	repo, store := newRepo(t, s)

	if err := repo.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	execs := s.executed()
	cats := indexContaining(execs, "DELETE FROM cats")
	friends := indexContaining(execs, "DELETE FROM friendships")
	user := indexContaining(execs, "DELETE FROM users")

	if cats == -1 || friends == -1 || user == -1 {
		t.Fatalf("missing delete statements, got %v", execs)
	}
	if cats > user || friends > user {
		t.Errorf("listings and friendships must be removed before the user row, got %v", execs)
	}

	want := []string{"cats/u1/one.jpg", "cats/u1/two.png", avatar}
	if !slices.Equal(store.deletes, want) {
		t.Errorf("blob deletes = %v, want %v", store.deletes, want)
	}
}

func TestDeleteWithoutListings(t *testing.T) {
	s := &script{user: userRow(nil)}
	repo, store := newRepo(t, s)

	if err := repo.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	if len(store.deletes) != 0 {
		t.Errorf("blob deletes = %v, want none", store.deletes)
	}
}

func TestDeleteMissingUser(t *testing.T) {
	repo, _ := newRepo(t, &script{})

	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, users.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateCleansUpAvatarOnFailure(t *testing.T) {
	previous := "avatars/u1/old"
	s := &script{
		user:   userRow(&previous),
		failOn: "UPDATE users",
	}
	repo, store := newRepo(t, s)

	image := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("pixels"))
	_, err := repo.Update(context.Background(), "u1", users.UpdateCommand{
		Name:  "Ramona",
		Image: &image,
	})
	if err == nil {
		t.Fatal("Update() expected error")
	}

	if len(store.uploads) != 1 {
		t.Fatalf("uploads = %v, want one avatar", store.uploads)
	}
	if !slices.Equal(store.deletes, []string{store.uploads[0]}) {
		t.Errorf("blob deletes = %v, want the uploaded key %q", store.deletes, store.uploads[0])
	}
	if slices.Contains(store.deletes, previous) {
		t.Error("previous avatar must survive a failed update")
	}
}
