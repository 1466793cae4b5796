package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"users-api/config"
	"users-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestRepository(t *testing.T) (*SQLUserRepository, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every pooled connection to :memory: would get its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLUserRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background(), "sqlite"))
	return repo, db
}

func TestEnsureSchemaRejectsUnknownDriver(t *testing.T) {
	repo, _ := newTestRepository(t)
	assert.Error(t, repo.EnsureSchema(context.Background(), "postgres"))
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	repo, _ := newTestRepository(t)
	assert.NoError(t, repo.EnsureSchema(context.Background(), "sqlite"))
}

func TestFindEmpty(t *testing.T) {
	repo, _ := newTestRepository(t)

	users, err := repo.Find(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestInsertAndFind(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	ada, err := repo.Insert(ctx, models.UserInput{Name: "Ada", Bio: "mathematician"})
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: 1, Name: "Ada", Bio: "mathematician"}, ada)

	grace, err := repo.Insert(ctx, models.UserInput{Name: "Grace", Bio: "admiral"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), grace.ID)

	got, err := repo.FindByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada, got)

	users, err := repo.Find(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*models.User{ada, grace}, users)
}

func TestFindByIDMissing(t *testing.T) {
	repo, _ := newTestRepository(t)

	got, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRemove(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	ada, err := repo.Insert(ctx, models.UserInput{Name: "Ada", Bio: "mathematician"})
	require.NoError(t, err)

	removed, err := repo.Remove(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada, removed)

	got, err := repo.FindByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err = repo.Remove(ctx, ada.ID)
	require.NoError(t, err)
	assert.Nil(t, removed)
}

func TestUpdateReplacesFields(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	ada, err := repo.Insert(ctx, models.UserInput{Name: "Ada", Bio: "mathematician"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, ada.ID, models.UserInput{Name: "Ada L.", Bio: "scientist"})
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: ada.ID, Name: "Ada L.", Bio: "scientist"}, updated)

	got, err := repo.FindByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateWithSameValues(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	ada, err := repo.Insert(ctx, models.UserInput{Name: "Ada", Bio: "mathematician"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, ada.ID, models.UserInput{Name: "Ada", Bio: "mathematician"})
	require.NoError(t, err)
	assert.Equal(t, ada, updated)
}

func TestUpdateMissing(t *testing.T) {
	repo, _ := newTestRepository(t)

	updated, err := repo.Update(context.Background(), 7, models.UserInput{Name: "x", Bio: "y"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestStoreErrorsAreReturned(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := repo.Find(ctx)
	assert.Error(t, err)
	_, err = repo.FindByID(ctx, 1)
	assert.Error(t, err)
	_, err = repo.Insert(ctx, models.UserInput{Name: "a", Bio: "b"})
	assert.Error(t, err)
	_, err = repo.Remove(ctx, 1)
	assert.Error(t, err)
	_, err = repo.Update(ctx, 1, models.UserInput{Name: "a", Bio: "b"})
	assert.Error(t, err)
}

func newFileRepository(t *testing.T) *SQLUserRepository {
	t.Helper()

	cfg := config.NewDatabaseConfig()
	cfg.DSN = config.SQLiteDSN(filepath.Join(t.TempDir(), "users.db"))
	db, err := config.ConnectDatabase(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLUserRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background(), config.DriverSQLite))
	return repo
}

func TestConcurrentUpdatesOnFileDatabase(t *testing.T) {
	repo := newFileRepository(t)
	ctx := context.Background()

	ada, err := repo.Insert(ctx, models.UserInput{Name: "Ada", Bio: "mathematician"})
	require.NoError(t, err)

	const writers = 50
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Update(ctx, ada.ID, models.UserInput{Name: "Ada", Bio: fmt.Sprintf("bio %d", i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	got, err := repo.FindByID(ctx, ada.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Contains(t, got.Bio, "bio ")
}

func TestConcurrentRemovesOnFileDatabase(t *testing.T) {
	repo := newFileRepository(t)
	ctx := context.Background()

	ada, err := repo.Insert(ctx, models.UserInput{Name: "Ada", Bio: "mathematician"})
	require.NoError(t, err)

	const removers = 20
	removed := make(chan *models.User, removers)
	errs := make(chan error, removers)
	var wg sync.WaitGroup
	for i := 0; i < removers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, err := repo.Remove(ctx, ada.ID)
			errs <- err
			if user != nil {
				removed <- user
			}
		}()
	}
	wg.Wait()
	close(errs)
	close(removed)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, removed, 1)
}
