package services_test

import (
	"errors"
	"strings"
	"testing"

	"blog/internal/common"
	"blog/internal/models"
	"blog/internal/repositories"
	"blog/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPostService(repo *MockPostRepository, events services.EventPublisher) (*services.PostService, *services.TokenService) {
	tokens := services.NewTokenService(testJWTSecret, 0)
	return services.NewPostService(repo, tokens, events), tokens
}

func TestPostService_ListAll(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service, _ := newPostService(mockRepo, nil)

	posts := []models.Post{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
	mockRepo.On("List", models.PostFilter{}, 10, 10).Return(posts, nil).Once()
	mockRepo.On("Count", models.PostFilter{}).Return(int64(12), nil).Once()

	page, err := service.ListAll(2, 10)
	require.NoError(t, err)
	assert.Equal(t, posts, page.Items)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 2, page.TotalPages)
	mockRepo.AssertExpectations(t)
}

func TestPostService_ListAllNormalizesPaging(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service, _ := newPostService(mockRepo, nil)

	mockRepo.On("List", models.PostFilter{}, 0, 1).Return([]models.Post{}, nil).Once()
	mockRepo.On("Count", models.PostFilter{}).Return(int64(0), nil).Once()

	page, err := service.ListAll(-3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Limit)
	assert.Equal(t, 0, page.TotalPages)
	mockRepo.AssertExpectations(t)
}

func TestPostService_ListAllHugePageWithMemoryStore(t *testing.T) {
	repo := repositories.NewMockPostRepository()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.Post{Title: "t", Content: "c", Author: uuid.NewString()}))
	}
	service := services.NewPostService(repo, services.NewTokenService(testJWTSecret, 0), nil)

	page, err := service.ListAll(1000000000000000000, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestPostService_ListByUser(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service, _ := newPostService(mockRepo, nil)

	_, err := service.ListByUser("not-an-id", 1, 10)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "Invalid user Id", common.Message(err))

	author := uuid.NewString()
	filter := models.PostFilter{Author: author}
	mockRepo.On("List", filter, 0, 10).Return([]models.Post{{ID: "1", Author: author}}, nil).Once()
	mockRepo.On("Count", filter).Return(int64(10), nil).Once()

	page, err := service.ListByUser(author, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.TotalPages)
	mockRepo.AssertExpectations(t)
}

func TestPostService_GetByID(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service, _ := newPostService(mockRepo, nil)

	_, err := service.GetByID("not-an-id")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "Invalid post Id", common.Message(err))

	id := uuid.NewString()
	expected := &models.Post{ID: id, Title: "T"}
	mockRepo.On("GetByID", id).Return(expected, nil).Once()
	post, err := service.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, expected, post)

	missing := uuid.NewString()
	mockRepo.On("GetByID", missing).Return(nil, notFound("post")).Once()
	post, err = service.GetByID(missing)
	assert.Nil(t, post)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "Post not found", common.Message(err))
	mockRepo.AssertExpectations(t)
}

func TestPostService_MalformedIDNeverReachesStore(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service, _ := newPostService(mockRepo, nil)
	title := "T"

	for _, id := range []string{"", "not-an-id", "123", "3f2504e0-4f89-41d3-9a0c"} {
		_, err := service.GetByID(id)
		assert.ErrorIs(t, err, common.ErrValidation)
		_, err = service.Update(id, models.PostPatch{Title: &title})
		assert.ErrorIs(t, err, common.ErrValidation)
		_, err = service.Delete(id)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestPostService_Create(t *testing.T) {
	mockRepo := new(MockPostRepository)
	publisher := new(MockPublisher)
	service, tokens := newPostService(mockRepo, publisher)

	userID := uuid.NewString()
	token, err := tokens.Issue(userID, models.RoleUser, 0)
	require.NoError(t, err)

	mockRepo.On("Create", mock.MatchedBy(func(p *models.Post) bool {
		return p.Author == userID && p.Title == "T" && p.Content == "C"
	})).Return(nil).Once()
	publisher.On("Publish", services.EventPostCreated, mock.Anything).Return(errors.New("broker down")).Once()

	post, err := service.Create(services.CreatePostInput{Title: "T", Content: "C"}, token)
	require.NoError(t, err, "publisher failures must not fail the request")
	assert.Equal(t, userID, post.Author)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPostService_CreateRejects(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service, tokens := newPostService(mockRepo, nil)

	_, err := service.Create(services.CreatePostInput{Title: "T", Content: "C"}, "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, "Token required", common.Message(err))

	_, err = service.Create(services.CreatePostInput{Title: "T", Content: "C"}, "garbage")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	token, _ := tokens.Issue(uuid.NewString(), models.RoleUser, 0)
	_, err = service.Create(services.CreatePostInput{Title: strings.Repeat("x", 31), Content: "C"}, token)
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = service.Create(services.CreatePostInput{Title: "T", Content: ""}, token)
	assert.ErrorIs(t, err, common.ErrValidation)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestPostService_Update(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service, _ := newPostService(mockRepo, nil)

	id := uuid.NewString()
	title := "New"
	patch := models.PostPatch{Title: &title}
	mockRepo.On("Update", id, patch).Return(&models.Post{ID: id, Title: "New", Content: "old"}, nil).Once()

	post, err := service.Update(id, patch)
	require.NoError(t, err)
	assert.Equal(t, "New", post.Title)
	assert.Equal(t, "old", post.Content)

	missing := uuid.NewString()
	mockRepo.On("Update", missing, patch).Return(nil, notFound("post")).Once()
	_, err = service.Update(missing, patch)
	assert.ErrorIs(t, err, common.ErrNotFound)

	tooLong := strings.Repeat("x", 6001)
	_, err = service.Update(id, models.PostPatch{Content: &tooLong})
	assert.ErrorIs(t, err, common.ErrValidation)
	mockRepo.AssertExpectations(t)
}

func TestPostService_Delete(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service, _ := newPostService(mockRepo, nil)

	id := uuid.NewString()
	mockRepo.On("Delete", id).Return(&models.Post{ID: id}, nil).Once()
	post, err := service.Delete(id)
	require.NoError(t, err)
	assert.Equal(t, id, post.ID)

	mockRepo.On("Delete", id).Return(nil, notFound("post")).Once()
	_, err = service.Delete(id)
	assert.ErrorIs(t, err, common.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
