package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"blog/internal/common"
	"blog/internal/database"
	"blog/internal/models"
	"blog/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	return db
}

func strPtr(s string) *string { return &s }

func TestGORMUserRepository_CRUD(t *testing.T) {
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	user := &models.User{Name: "Alice", Email: "a@x.com", Password: "hash", Role: models.RoleUser}
	require.NoError(t, repo.Create(user))
	assert.True(t, repositories.IsValidID(user.ID))

	byEmail, err := repo.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	updated, err := repo.Update(user.ID, models.UserPatch{Name: strPtr("Alicia")})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "hash", updated.Password)
	assert.Equal(t, "a@x.com", updated.Email)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	deleted, err := repo.Delete(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.ID)

	_, err = repo.GetByID(user.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGORMUserRepository_DuplicateEmail(t *testing.T) {
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(&models.User{Name: "Alice", Email: "dup@x.com", Password: "hash", Role: models.RoleUser}))
	err := repo.Create(&models.User{Name: "Alice2", Email: "dup@x.com", Password: "hash", Role: models.RoleUser})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestGORMUserRepository_MissingRecords(t *testing.T) {
	repo := repositories.NewGORMUserRepository(newTestDB(t))
	missing := uuid.NewString()

	_, err := repo.GetByEmail("nobody@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.Update(missing, models.UserPatch{Name: strPtr("Bob")})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.Delete(missing)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGORMPostRepository_ListAndFilter(t *testing.T) {
	repo := repositories.NewGORMPostRepository(newTestDB(t))
	alice, bob := uuid.NewString(), uuid.NewString()

	for i := 0; i < 5; i++ {
		author := alice
		if i%2 == 1 {
			author = bob
		}
		require.NoError(t, repo.Create(&models.Post{
			Title:     fmt.Sprintf("post %d", i),
			Content:   "body",
			Author:    author,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	page, err := repo.List(models.PostFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "post 2", page[0].Title)
	assert.Equal(t, "post 3", page[1].Title)

	total, err := repo.Count(models.PostFilter{Author: alice})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	bobs, err := repo.List(models.PostFilter{Author: bob}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, bobs, 2)
	for _, p := range bobs {
		assert.Equal(t, bob, p.Author)
	}
}

func TestGORMRepositories_SameTimestampKeepsInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	posts := repositories.NewGORMPostRepository(db)
	users := repositories.NewGORMUserRepository(db)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		require.NoError(t, posts.Create(&models.Post{
			Title:     fmt.Sprintf("post %d", i),
			Content:   "body",
			Author:    uuid.NewString(),
			CreatedAt: at,
		}))
		require.NoError(t, users.Create(&models.User{
			Name:      fmt.Sprintf("user %d", i),
			Email:     fmt.Sprintf("u%d@x.com", i),
			Password:  "hash",
			Role:      models.RoleUser,
			CreatedAt: at,
		}))
	}

	listedPosts, err := posts.List(models.PostFilter{}, 0, 20)
	require.NoError(t, err)
	listedUsers, err := users.List(0, 20)
	require.NoError(t, err)
	require.Len(t, listedPosts, 20)
	require.Len(t, listedUsers, 20)
	for i := 0; i < 20; i++ {
		assert.Equal(t, fmt.Sprintf("post %d", i), listedPosts[i].Title)
		assert.Equal(t, fmt.Sprintf("user %d", i), listedUsers[i].Name)
	}
}

func TestGORMPostRepository_HugeOffset(t *testing.T) {
	repo := repositories.NewGORMPostRepository(newTestDB(t))
	require.NoError(t, repo.Create(&models.Post{Title: "t", Content: "c", Author: uuid.NewString()}))

	page, err := repo.List(models.PostFilter{}, models.Skip(1000000000000000000, 10), 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestGORMPostRepository_UpdateAndDelete(t *testing.T) {
	repo := repositories.NewGORMPostRepository(newTestDB(t))
	post := &models.Post{Title: "T", Content: "C", Author: uuid.NewString()}
	require.NoError(t, repo.Create(post))

	updated, err := repo.Update(post.ID, models.PostPatch{Content: strPtr("new body")})
	require.NoError(t, err)
	assert.Equal(t, "T", updated.Title)
	assert.Equal(t, "new body", updated.Content)

	deleted, err := repo.Delete(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "new body", deleted.Content)

	_, err = repo.GetByID(post.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.Delete(post.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
