package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/service"
)

// devSeedPassword 是所有生成账号的登录密码，方便本地调试时直接登录。
const devSeedPassword = "password123"

var seedCategories = []string{"uncategorized", "golang", "devops", "database", "frontend"}

// Seed 按 用户 -> 文章 -> 评论/点赞 的顺序填充测试数据。
// 文章通过服务层创建以复用 slug 派生逻辑，评论与点赞同样走服务层以覆盖防伪校验。
func Seed(
	ctx context.Context,
	db *gorm.DB,
	userRepo mysql.UserRepository,
	postSvc service.PostService,
	commentSvc service.CommentService,
	logger *core.ZapLogger,
	numUsers int,
	numPosts int,
) error {
	logger.Info("开始填充测试数据...", zap.Int("用户数", numUsers), zap.Int("文章数", numPosts))

	// --- 1. 创建用户，第一个为管理员 ---
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(devSeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("生成种子密码哈希失败: %w", err)
	}

	users := make([]*entities.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := &entities.User{
			Username: strings.ToLower(gofakeit.Username()),
			Email:    gofakeit.Email(),
			Password: string(passwordHash),
			Avatar:   gofakeit.ImageURL(100, 100),
			IsAdmin:  i == 0,
		}
		if err := userRepo.CreateUser(ctx, db, user); err != nil {
			logger.Warn("创建种子用户失败，跳过", zap.Error(err), zap.String("username", user.Username))
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("没有成功创建任何用户")
	}
	admin := users[0]
	logger.Info("种子用户创建完毕", zap.Int("成功数", len(users)), zap.Uint64("adminID", admin.ID))

	// --- 2. 由管理员并发创建文章 ---
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		postIDs []uint64
	)
	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for i := 0; i < numPosts; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			createReq := &dto.CreatePostRequest{
				Title:    gofakeit.Sentence(gofakeit.Number(4, 10)),
				Content:  gofakeit.Paragraph(3, 5, 20, "\n\n"),
				Category: seedCategories[gofakeit.Number(0, len(seedCategories)-1)],
			}

			resp, err := postSvc.CreatePost(ctx, admin.ID, createReq, nil)
			if err != nil {
				// 标题重复时 slug 冲突属于预期内失败，记录后继续
				logger.Warn(fmt.Sprintf("创建文章 %d/%d 失败", itemIndex+1, numPosts),
					zap.Error(err), zap.String("title", createReq.Title))
				return
			}
			mu.Lock()
			postIDs = append(postIDs, resp.ID)
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	logger.Info("种子文章创建完毕", zap.Int("成功数", len(postIDs)))

	// --- 3. 随机用户发表评论并点赞 ---
	commentCount := 0
	likeCount := 0
	for _, postID := range postIDs {
		numComments := gofakeit.Number(0, 5)
		for j := 0; j < numComments; j++ {
			author := users[gofakeit.Number(0, len(users)-1)]
			commentVO, err := commentSvc.CreateComment(ctx, author.ID, &dto.CreateCommentRequest{
				Content: gofakeit.Sentence(gofakeit.Number(3, 15)),
				PostID:  postID,
				UserID:  author.ID,
			})
			if err != nil {
				logger.Warn("创建种子评论失败，跳过", zap.Error(err), zap.Uint64("postID", postID))
				continue
			}
			commentCount++

			numLikes := gofakeit.Number(0, 3)
			for k := 0; k < numLikes; k++ {
				liker := users[gofakeit.Number(0, len(users)-1)]
				if _, err := commentSvc.ToggleLike(ctx, liker.ID, commentVO.ID); err != nil {
					logger.Warn("点赞种子评论失败，跳过", zap.Error(err), zap.Uint64("commentID", commentVO.ID))
					continue
				}
				likeCount++
			}
		}
	}

	logger.Info("测试数据填充完毕。",
		zap.Int("用户数", len(users)),
		zap.Int("文章数", len(postIDs)),
		zap.Int("评论数", commentCount),
		zap.Int("点赞操作数", likeCount))
	return nil
}
