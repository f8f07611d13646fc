package service

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

func setupPostService(t *testing.T) (PostService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	logger := newTestLogger(t)
	postRepo := mysql.NewPostRepository(db, logger)

	// 测试不涉及封面上传与事件投递
	return NewPostService(db, postRepo, nil, nil, logger), db
}

func TestPostService_CreatePost(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()
	author := createTestUser(t, db, "admin", true)

	t.Run("正常创建并派生slug", func(t *testing.T) {
		postVO, err := svc.CreatePost(ctx, author.ID, &dto.CreatePostRequest{
			Title:   "My First Post!",
			Content: "<p>hello</p>",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "my-first-post", postVO.Slug)
		assert.Equal(t, DefaultPostCategory, postVO.Category, "未指定分类时使用默认值")
		assert.Equal(t, author.ID, postVO.AuthorID)
	})

	t.Run("同标题的slug冲突", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, author.ID, &dto.CreatePostRequest{
			Title:   "My First Post?!",
			Content: "<p>dup</p>",
		}, nil)
		assert.ErrorIs(t, err, myErrors.ErrSlugConflict)
	})

	t.Run("标题无法派生slug", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, author.ID, &dto.CreatePostRequest{
			Title:   "!!!",
			Content: "<p>x</p>",
		}, nil)
		assert.ErrorIs(t, err, myErrors.ErrEmptySlug)
	})

	t.Run("软删除后slug仍不可复用", func(t *testing.T) {
		created, err := svc.CreatePost(ctx, author.ID, &dto.CreatePostRequest{
			Title:   "Ephemeral Post",
			Content: "<p>x</p>",
		}, nil)
		require.NoError(t, err)
		require.NoError(t, svc.DeletePost(ctx, author.ID, created.ID))

		_, err = svc.CreatePost(ctx, author.ID, &dto.CreatePostRequest{
			Title:   "Ephemeral Post",
			Content: "<p>y</p>",
		}, nil)
		assert.ErrorIs(t, err, myErrors.ErrSlugConflict)
	})
}

func TestPostService_ListPosts(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()
	author := createTestUser(t, db, "admin", true)
	other := createTestUser(t, db, "editor", true)

	mustCreate := func(t *testing.T, authorID uint64, title, content, category string) *dto.CreatePostRequest {
		t.Helper()
		req := &dto.CreatePostRequest{Title: title, Content: content, Category: category}
		_, err := svc.CreatePost(ctx, authorID, req, nil)
		require.NoError(t, err)
		return req
	}

	mustCreate(t, author.ID, "Golang Concurrency Patterns", "channels and goroutines", "golang")
	mustCreate(t, author.ID, "Database Indexing", "btree internals", "database")
	mustCreate(t, other.ID, "Deployment Notes", "we use GOLANG in prod", "devops")

	t.Run("searchTerm同时匹配标题与正文且不区分大小写", func(t *testing.T) {
		term := "golang"
		result, err := svc.ListPosts(ctx, &dto.ListPostsRequest{SearchTerm: &term})
		require.NoError(t, err)
		assert.Len(t, result.Posts, 2)
	})

	t.Run("按分类过滤", func(t *testing.T) {
		category := "database"
		result, err := svc.ListPosts(ctx, &dto.ListPostsRequest{Category: &category})
		require.NoError(t, err)
		require.Len(t, result.Posts, 1)
		assert.Equal(t, "database-indexing", result.Posts[0].Slug)
	})

	t.Run("按作者过滤", func(t *testing.T) {
		result, err := svc.ListPosts(ctx, &dto.ListPostsRequest{UserID: &other.ID})
		require.NoError(t, err)
		require.Len(t, result.Posts, 1)
		assert.Equal(t, other.ID, result.Posts[0].AuthorID)
	})

	t.Run("按slug精确查询", func(t *testing.T) {
		slug := "deployment-notes"
		result, err := svc.ListPosts(ctx, &dto.ListPostsRequest{Slug: &slug})
		require.NoError(t, err)
		require.Len(t, result.Posts, 1)
	})

	t.Run("统计不随过滤条件变化", func(t *testing.T) {
		category := "database"
		result, err := svc.ListPosts(ctx, &dto.ListPostsRequest{Category: &category})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.TotalPosts)
		assert.Equal(t, int64(3), result.LastMonthPosts)
	})

	t.Run("分页", func(t *testing.T) {
		result, err := svc.ListPosts(ctx, &dto.ListPostsRequest{StartIndex: 0, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, result.Posts, 2)

		rest, err := svc.ListPosts(ctx, &dto.ListPostsRequest{StartIndex: 2, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, rest.Posts, 1)
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()
	author := createTestUser(t, db, "admin", true)
	stranger := createTestUser(t, db, "stranger", false)

	created, err := svc.CreatePost(ctx, author.ID, &dto.CreatePostRequest{
		Title:   "Original Title",
		Content: "<p>original</p>",
	}, nil)
	require.NoError(t, err)

	t.Run("非作者更新被拒绝", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, stranger.ID, created.ID, &dto.UpdatePostRequest{Title: "Hijacked"}, nil)
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("部分字段更新且slug保持稳定", func(t *testing.T) {
		updated, err := svc.UpdatePost(ctx, author.ID, created.ID, &dto.UpdatePostRequest{
			Title: "A Completely New Title",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "A Completely New Title", updated.Title)
		assert.Equal(t, "original-title", updated.Slug, "slug 不随标题更新变化")
		assert.Equal(t, "<p>original</p>", updated.Content, "未提供的字段保持不变")
	})

	t.Run("文章不存在", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, author.ID, created.ID+999, &dto.UpdatePostRequest{Title: "x"}, nil)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	svc, db := setupPostService(t)
	ctx := context.Background()
	author := createTestUser(t, db, "admin", true)
	stranger := createTestUser(t, db, "stranger", false)
	adminOther := createTestUser(t, db, "superadmin", true)

	newPost := func(t *testing.T, title string) uint64 {
		t.Helper()
		created, err := svc.CreatePost(ctx, author.ID, &dto.CreatePostRequest{
			Title: title, Content: "<p>x</p>",
		}, nil)
		require.NoError(t, err)
		return created.ID
	}

	t.Run("非作者被拒绝", func(t *testing.T) {
		id := newPost(t, "Keep Me Around")
		err := svc.DeletePost(ctx, stranger.ID, id)
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("作者本人删除", func(t *testing.T) {
		id := newPost(t, "Author Deletes This")
		require.NoError(t, svc.DeletePost(ctx, author.ID, id))

		_, err := svc.GetPostByID(ctx, id)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	})

	t.Run("管理员也不能删除他人文章", func(t *testing.T) {
		id := newPost(t, "Admin Cannot Delete This")
		err := svc.DeletePost(ctx, adminOther.ID, id)
		assert.ErrorIs(t, err, myErrors.ErrForbidden)

		_, getErr := svc.GetPostByID(ctx, id)
		assert.NoError(t, getErr)
	})

	t.Run("重复删除返回未找到", func(t *testing.T) {
		id := newPost(t, "Delete Twice")
		require.NoError(t, svc.DeletePost(ctx, author.ID, id))
		err := svc.DeletePost(ctx, author.ID, id)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	})

	t.Run("删除后不计入总数", func(t *testing.T) {
		before, err := svc.ListPosts(ctx, &dto.ListPostsRequest{})
		require.NoError(t, err)

		id := newPost(t, "Transient Counted Post")
		require.NoError(t, svc.DeletePost(ctx, author.ID, id))

		after, err := svc.ListPosts(ctx, &dto.ListPostsRequest{})
		require.NoError(t, err)
		assert.Equal(t, before.TotalPosts, after.TotalPosts)
	})
}
