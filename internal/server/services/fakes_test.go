package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/akorchagin/authgate/internal/common"
	"github.com/akorchagin/authgate/internal/dbx"
	"github.com/akorchagin/authgate/internal/server/models"
	"github.com/akorchagin/authgate/internal/server/repositories/tokens"
	"github.com/akorchagin/authgate/internal/server/repositories/users"
)

// --- in-memory fakes, shared by the service tests ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	byID    map[string]*models.User
	nextID  int

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorConflict
	}
	f.nextID++
	u.ID = fmt.Sprintf("u-%d", f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		delete(f.byEmail, u.Email)
		delete(f.byID, id)
	}
}

type fakeTokenRecord struct {
	id        string
	userID    string
	name      string
	expiresAt *time.Time
	lastUsed  *time.Time
}

type fakeTokensRepo struct {
	mu      sync.Mutex
	byHash  map[string]*fakeTokenRecord
	nextID  int
	now     func() time.Time
	touched int

	insertErr error
	findErr   error
	touchErr  error
	deleteErr error
}

func newFakeTokensRepo() *fakeTokensRepo {
	return &fakeTokensRepo{
		byHash: make(map[string]*fakeTokenRecord),
		now:    time.Now,
	}
}

func (f *fakeTokensRepo) setNow(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = func() time.Time { return t }
}

func (f *fakeTokensRepo) Insert(ctx context.Context, userID, name, hash string, expiresAt *time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return "", f.insertErr
	}
	if _, ok := f.byHash[hash]; ok {
		return "", common.ErrorConflict
	}
	f.nextID++
	rec := &fakeTokenRecord{id: fmt.Sprintf("t-%d", f.nextID), userID: userID, name: name, expiresAt: expiresAt}
	f.byHash[hash] = rec
	return rec.id, nil
}

func (f *fakeTokensRepo) FindByHash(ctx context.Context, hash string) (*models.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	rec, ok := f.byHash[hash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	// Mirrors the SQL predicate: expired rows look exactly like absent ones.
	if rec.expiresAt != nil && !rec.expiresAt.After(f.now()) {
		return nil, common.ErrorNotFound
	}
	return &models.AccessToken{
		ID:         rec.id,
		UserID:     rec.userID,
		Name:       rec.name,
		Hash:       hash,
		LastUsedAt: rec.lastUsed,
		ExpiresAt:  rec.expiresAt,
	}, nil
}

func (f *fakeTokensRepo) TouchLastUsed(ctx context.Context, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.touchErr != nil {
		return f.touchErr
	}
	if rec, ok := f.byHash[hash]; ok {
		now := f.now()
		rec.lastUsed = &now
		f.touched++
	}
	return nil
}

func (f *fakeTokensRepo) DeleteByHash(ctx context.Context, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byHash, hash)
	return nil
}

func (f *fakeTokensRepo) touchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched
}

func (f *fakeTokensRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byHash)
}

type fakeRepoManager struct {
	users  *fakeUsersRepo
	tokens *fakeTokensRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return f.users }

func (f *fakeRepoManager) Tokens(db dbx.DBTX) tokens.Repository { return f.tokens }
