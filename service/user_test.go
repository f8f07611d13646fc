package service

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

func setupUserService(t *testing.T) (UserService, CommentService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	logger := newTestLogger(t)

	userRepo := mysql.NewUserRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)
	commentLikeRepo := mysql.NewCommentLikeRepository(db, logger)

	userSvc := NewUserService(db, userRepo, postRepo, commentRepo, commentLikeRepo, &fakeCOSClient{}, logger)
	commentSvc := NewCommentService(db, commentRepo, commentLikeRepo, postRepo, userRepo, logger)
	return userSvc, commentSvc, db
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, _, db := setupUserService(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", false)
	createTestUser(t, db, "bob", false)

	t.Run("改名成功", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, alice.ID, alice.ID, &dto.UpdateProfileRequest{
			Username: "alice2",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "alice2", updated.Username)
	})

	t.Run("改为已占用的用户名被拒绝", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice.ID, alice.ID, &dto.UpdateProfileRequest{
			Username: "bob",
		}, nil)
		assert.ErrorIs(t, err, myErrors.ErrUserConflict)
	})

	t.Run("只能更新自己的资料", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice.ID, alice.ID+1, &dto.UpdateProfileRequest{
			Username: "eve",
		}, nil)
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, _, db := setupUserService(t)
	ctx := context.Background()

	// createTestUser 的密码固定为 "password"
	alice := createTestUser(t, db, "alice", false)

	t.Run("当前密码错误被拒绝", func(t *testing.T) {
		err := svc.ChangePassword(ctx, alice.ID, &dto.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "new-password",
		})
		assert.ErrorIs(t, err, myErrors.ErrWrongPassword)
	})

	t.Run("修改成功后新密码生效", func(t *testing.T) {
		err := svc.ChangePassword(ctx, alice.ID, &dto.ChangePasswordRequest{
			CurrentPassword: "password",
			NewPassword:     "new-password",
		})
		require.NoError(t, err)

		var stored entities.User
		require.NoError(t, db.First(&stored, alice.ID).Error)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("new-password")))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password")))
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	svc, commentSvc, db := setupUserService(t)
	ctx := context.Background()

	t.Run("他人非管理员不可删除", func(t *testing.T) {
		alice := createTestUser(t, db, "alice", false)
		bob := createTestUser(t, db, "bob", false)
		err := svc.DeleteUser(ctx, bob.ID, false, alice.ID)
		assert.ErrorIs(t, err, myErrors.ErrForbidden)
	})

	t.Run("本人删除时级联清理全部内容", func(t *testing.T) {
		victim := createTestUser(t, db, "victim", false)
		other := createTestUser(t, db, "other", false)
		post := createTestPost(t, db, victim.ID, "victim-post")
		otherPost := createTestPost(t, db, other.ID, "other-post")

		// victim 的评论与点赞，以及他在别人文章下的痕迹
		ownComment, err := commentSvc.CreateComment(ctx, victim.ID, &dto.CreateCommentRequest{
			Content: "mine", PostID: otherPost.ID, UserID: victim.ID,
		})
		require.NoError(t, err)
		otherComment, err := commentSvc.CreateComment(ctx, other.ID, &dto.CreateCommentRequest{
			Content: "keep me", PostID: post.ID, UserID: other.ID,
		})
		require.NoError(t, err)
		_, err = commentSvc.ToggleLike(ctx, victim.ID, otherComment.ID)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteUser(ctx, victim.ID, false, victim.ID))

		_, err = svc.GetUser(ctx, victim.ID)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound, "用户主记录应被删除")

		var postCount int64
		require.NoError(t, db.Model(&entities.Post{}).Where("author_id = ?", victim.ID).Count(&postCount).Error)
		assert.Zero(t, postCount, "用户的文章应被删除")

		var commentCount int64
		require.NoError(t, db.Model(&entities.Comment{}).Where("id = ?", ownComment.ID).Count(&commentCount).Error)
		assert.Zero(t, commentCount, "用户的评论应被删除")

		var likeCount int64
		require.NoError(t, db.Model(&entities.CommentLike{}).Where("user_id = ?", victim.ID).Count(&likeCount).Error)
		assert.Zero(t, likeCount, "用户发出的点赞应被删除")

		// 他人的内容不受影响
		remaining, err := commentSvc.ListCommentsByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})

	t.Run("管理员可删除任意用户", func(t *testing.T) {
		admin := createTestUser(t, db, "admin", true)
		target := createTestUser(t, db, "target", false)

		require.NoError(t, svc.DeleteUser(ctx, admin.ID, true, target.ID))
		_, err := svc.GetUser(ctx, target.ID)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	})

	t.Run("目标不存在", func(t *testing.T) {
		admin := createTestUser(t, db, "admin2", true)
		err := svc.DeleteUser(ctx, admin.ID, true, 99999)
		assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	svc, _, db := setupUserService(t)
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3"} {
		createTestUser(t, db, name, false)
	}

	t.Run("默认分页", func(t *testing.T) {
		result, err := svc.ListUsers(ctx, &dto.ListUsersRequest{})
		require.NoError(t, err)
		assert.Len(t, result.Users, 3)
		assert.Equal(t, int64(3), result.TotalUsers)
		assert.Equal(t, int64(3), result.LastMonthUsers, "刚创建的用户都算近一个月新增")
	})

	t.Run("分页截断", func(t *testing.T) {
		result, err := svc.ListUsers(ctx, &dto.ListUsersRequest{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, result.Users, 2)
		assert.Equal(t, int64(3), result.TotalUsers, "总数不受分页影响")
	})

	t.Run("响应不包含密码字段", func(t *testing.T) {
		result, err := svc.ListUsers(ctx, &dto.ListUsersRequest{})
		require.NoError(t, err)
		for _, u := range result.Users {
			assert.NotEmpty(t, u.Username)
			assert.NotEmpty(t, u.Email)
		}
	})
}
