package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

func setupCommentService(t *testing.T) (CommentService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	logger := newTestLogger(t)

	commentRepo := mysql.NewCommentRepository(db, logger)
	commentLikeRepo := mysql.NewCommentLikeRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	userRepo := mysql.NewUserRepository(db, logger)

	return NewCommentService(db, commentRepo, commentLikeRepo, postRepo, userRepo, logger), db
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint64, slug string) *entities.Post {
	t.Helper()

	post := &entities.Post{
		Title:    "Test Post " + slug,
		Slug:     slug,
		Content:  "<p>content</p>",
		Category: DefaultPostCategory,
		AuthorID: authorID,
	}
	require.NoError(t, db.Create(post).Error, "插入测试文章失败")
	return post
}

func TestCommentService_CreateComment(t *testing.T) {
	svc, db := setupCommentService(t)
	ctx := context.Background()

	author := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, author.ID, "test-post")

	t.Run("正常创建", func(t *testing.T) {
		commentVO, err := svc.CreateComment(ctx, author.ID, &dto.CreateCommentRequest{
			Content: "  nice post!  ",
			PostID:  post.ID,
			UserID:  author.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "nice post!", commentVO.Content, "内容应去除首尾空白")
		assert.Equal(t, author.ID, commentVO.AuthorID)
		assert.Empty(t, commentVO.Likes, "新评论没有点赞")
		require.NotNil(t, commentVO.Author)
		assert.Equal(t, "alice", commentVO.Author.Username)
	})

	t.Run("冒充他人发表被拒绝", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, author.ID, &dto.CreateCommentRequest{
			Content: "spoofed",
			PostID:  post.ID,
			UserID:  author.ID + 100,
		})
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("文章不存在", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, author.ID, &dto.CreateCommentRequest{
			Content: "orphan",
			PostID:  post.ID + 999,
			UserID:  author.ID,
		})
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	})
}

func TestCommentService_ContentValidation(t *testing.T) {
	svc, db := setupCommentService(t)
	ctx := context.Background()

	author := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, author.ID, "test-post")

	newReq := func(content string) *dto.CreateCommentRequest {
		return &dto.CreateCommentRequest{Content: content, PostID: post.ID, UserID: author.ID}
	}

	t.Run("空内容被拒绝", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, author.ID, newReq("   "))
		assert.ErrorIs(t, err, myErrors.ErrCommentEmpty)
	})

	t.Run("恰好200字符可接受", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, author.ID, newReq(strings.Repeat("a", 200)))
		assert.NoError(t, err)
	})

	t.Run("201字符被拒绝", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, author.ID, newReq(strings.Repeat("a", 201)))
		assert.ErrorIs(t, err, myErrors.ErrCommentTooLong)
	})

	t.Run("长度按字符数而非字节数计算", func(t *testing.T) {
		// 200 个中文字符远超 200 字节，但仍应通过
		_, err := svc.CreateComment(ctx, author.ID, newReq(strings.Repeat("好", 200)))
		assert.NoError(t, err)
	})
}

func TestCommentService_ListCommentsByPost(t *testing.T) {
	svc, db := setupCommentService(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	post := createTestPost(t, db, alice.ID, "test-post")

	first, err := svc.CreateComment(ctx, alice.ID, &dto.CreateCommentRequest{
		Content: "first", PostID: post.ID, UserID: alice.ID,
	})
	require.NoError(t, err)
	_, err = svc.CreateComment(ctx, bob.ID, &dto.CreateCommentRequest{
		Content: "second", PostID: post.ID, UserID: bob.ID,
	})
	require.NoError(t, err)

	_, err = svc.ToggleLike(ctx, bob.ID, first.ID)
	require.NoError(t, err)

	comments, err := svc.ListCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	byContent := make(map[string]int)
	for i, c := range comments {
		byContent[c.Content] = i
		require.NotNil(t, c.Author, "作者存在时必须带投影")
		assert.NotNil(t, c.Likes, "likes 必须是空切片而不是 null")
	}
	liked := comments[byContent["first"]]
	assert.Equal(t, []uint64{bob.ID}, liked.Likes)
	assert.Equal(t, 1, liked.NumberOfLikes)

	t.Run("作者删除后投影为空", func(t *testing.T) {
		require.NoError(t, db.Unscoped().Delete(&entities.User{}, bob.ID).Error)

		comments, err := svc.ListCommentsByPost(ctx, post.ID)
		require.NoError(t, err)
		for _, c := range comments {
			if c.AuthorID == bob.ID {
				assert.Nil(t, c.Author, "已删除作者的投影应为 nil")
			}
		}
	})

	t.Run("无评论的文章返回空列表", func(t *testing.T) {
		other := createTestPost(t, db, alice.ID, "other-post")
		comments, err := svc.ListCommentsByPost(ctx, other.ID)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})
}

func TestCommentService_ToggleLike(t *testing.T) {
	svc, db := setupCommentService(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	post := createTestPost(t, db, alice.ID, "test-post")

	comment, err := svc.CreateComment(ctx, alice.ID, &dto.CreateCommentRequest{
		Content: "toggle me", PostID: post.ID, UserID: alice.ID,
	})
	require.NoError(t, err)

	t.Run("首次切换为点赞", func(t *testing.T) {
		result, err := svc.ToggleLike(ctx, bob.ID, comment.ID)
		require.NoError(t, err)
		assert.True(t, result.IsLiked)
		assert.Equal(t, []uint64{bob.ID}, result.Likes)
		assert.Equal(t, 1, result.NumberOfLikes)
	})

	t.Run("再次切换为取消", func(t *testing.T) {
		result, err := svc.ToggleLike(ctx, bob.ID, comment.ID)
		require.NoError(t, err)
		assert.False(t, result.IsLiked)
		assert.Empty(t, result.Likes)
		assert.Equal(t, 0, result.NumberOfLikes)
	})

	t.Run("多用户互不影响", func(t *testing.T) {
		carol := createTestUser(t, db, "carol", false)
		_, err := svc.ToggleLike(ctx, bob.ID, comment.ID)
		require.NoError(t, err)
		result, err := svc.ToggleLike(ctx, carol.ID, comment.ID)
		require.NoError(t, err)
		assert.True(t, result.IsLiked)
		assert.ElementsMatch(t, []uint64{bob.ID, carol.ID}, result.Likes)
	})

	t.Run("评论不存在", func(t *testing.T) {
		_, err := svc.ToggleLike(ctx, bob.ID, comment.ID+999)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	})
}

// 并发切换同一条评论的点赞，按 commentID 加锁后结果必须是确定的。
func TestCommentService_ToggleLike_Concurrent(t *testing.T) {
	svc, db := setupCommentService(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, alice.ID, "concurrent-post")

	comment, err := svc.CreateComment(ctx, alice.ID, &dto.CreateCommentRequest{
		Content: "race me", PostID: post.ID, UserID: alice.ID,
	})
	require.NoError(t, err)

	t.Run("多个用户各切换一次", func(t *testing.T) {
		const numLikers = 8
		likerIDs := make([]uint64, 0, numLikers)
		for i := 0; i < numLikers; i++ {
			u := createTestUser(t, db, fmt.Sprintf("liker%02d", i), false)
			likerIDs = append(likerIDs, u.ID)
		}

		var wg sync.WaitGroup
		errs := make([]error, numLikers)
		for i, uid := range likerIDs {
			wg.Add(1)
			go func(i int, uid uint64) {
				defer wg.Done()
				_, errs[i] = svc.ToggleLike(ctx, uid, comment.ID)
			}(i, uid)
		}
		wg.Wait()

		for _, toggleErr := range errs {
			require.NoError(t, toggleErr)
		}

		comments, err := svc.ListCommentsByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.ElementsMatch(t, likerIDs, comments[0].Likes)
		assert.Equal(t, numLikers, comments[0].NumberOfLikes)
	})

	t.Run("同一用户偶数次切换归零", func(t *testing.T) {
		dave := createTestUser(t, db, "dave", false)

		const rounds = 4
		var wg sync.WaitGroup
		errs := make([]error, rounds)
		for i := 0; i < rounds; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.ToggleLike(ctx, dave.ID, comment.ID)
			}(i)
		}
		wg.Wait()

		for _, toggleErr := range errs {
			require.NoError(t, toggleErr)
		}

		comments, err := svc.ListCommentsByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.NotContains(t, comments[0].Likes, dave.ID, "偶数次切换后应回到未点赞")
	})
}

func TestCommentService_EditComment(t *testing.T) {
	svc, db := setupCommentService(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	post := createTestPost(t, db, alice.ID, "test-post")

	comment, err := svc.CreateComment(ctx, alice.ID, &dto.CreateCommentRequest{
		Content: "original", PostID: post.ID, UserID: alice.ID,
	})
	require.NoError(t, err)

	t.Run("作者本人编辑成功", func(t *testing.T) {
		updated, err := svc.EditComment(ctx, alice.ID, comment.ID, &dto.EditCommentRequest{Content: "edited"})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
	})

	t.Run("非作者编辑被拒绝", func(t *testing.T) {
		_, err := svc.EditComment(ctx, bob.ID, comment.ID, &dto.EditCommentRequest{Content: "hijack"})
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("编辑后内容仍受长度约束", func(t *testing.T) {
		_, err := svc.EditComment(ctx, alice.ID, comment.ID, &dto.EditCommentRequest{
			Content: strings.Repeat("a", 201),
		})
		assert.ErrorIs(t, err, myErrors.ErrCommentTooLong)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	svc, db := setupCommentService(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	admin := createTestUser(t, db, "admin", true)
	post := createTestPost(t, db, alice.ID, "test-post")

	newComment := func(t *testing.T) uint64 {
		c, err := svc.CreateComment(ctx, alice.ID, &dto.CreateCommentRequest{
			Content: "to delete", PostID: post.ID, UserID: alice.ID,
		})
		require.NoError(t, err)
		_, err = svc.ToggleLike(ctx, bob.ID, c.ID)
		require.NoError(t, err)
		return c.ID
	}

	t.Run("非作者非管理员被拒绝", func(t *testing.T) {
		id := newComment(t)
		err := svc.DeleteComment(ctx, bob.ID, false, id)
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("作者本人删除并级联点赞", func(t *testing.T) {
		id := newComment(t)
		require.NoError(t, svc.DeleteComment(ctx, alice.ID, false, id))

		_, err := svc.ToggleLike(ctx, bob.ID, id)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound, "删除后的评论不可再点赞")

		var likeCount int64
		require.NoError(t, db.Model(&entities.CommentLike{}).Where("comment_id = ?", id).Count(&likeCount).Error)
		assert.Zero(t, likeCount, "点赞关系应随评论一起删除")
	})

	t.Run("管理员可删除他人评论", func(t *testing.T) {
		id := newComment(t)
		assert.NoError(t, svc.DeleteComment(ctx, admin.ID, true, id))
	})
}
