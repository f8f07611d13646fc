package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// PurgeDeletedTask 负责定时物理清理超过保留期的软删除数据。
// - 文章与评论删除时只做软删除，保留期内可人工恢复；
//   超过保留期后由本任务硬删除记录并回收文章的封面对象。
type PurgeDeletedTask struct {
	postRepo      mysql.PostRepository
	commentRepo   mysql.CommentRepository
	cosClient     dependencies.COSClientInterface
	retentionDays int
	cron          *cron.Cron
	logger        *core.ZapLogger
}

// NewPurgeDeletedTask 初始化并启动软删除数据清理的定时任务。
func NewPurgeDeletedTask(
	postRepo mysql.PostRepository,
	commentRepo mysql.CommentRepository,
	cosClient dependencies.COSClientInterface,
	retentionDays int,
	logger *core.ZapLogger,
) *PurgeDeletedTask {
	if retentionDays <= 0 {
		retentionDays = constant.PurgeRetentionDays
	}
	cronV3 := cron.New() // 默认分钟级精度
	task := &PurgeDeletedTask{
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		cosClient:     cosClient,
		retentionDays: retentionDays,
		cron:          cronV3,
		logger:        logger,
	}
	task.startCronJob() // 在构造函数中启动定时作业
	return task
}

// startCronJob 配置并启动 cron 作业。
// 使用 constant.PurgeDeletedInterval 定义的 cron 表达式来调度清理逻辑。
func (t *PurgeDeletedTask) startCronJob() {
	schedule := constant.PurgeDeletedInterval
	t.logger.Info("准备启动软删除数据清理定时任务",
		zap.String("schedule", schedule),
		zap.Int("retentionDays", t.retentionDays),
	)

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("软删除数据清理任务开始执行...")
		startTime := time.Now()
		// 为单次任务执行设置超时，清理是全表范围的删除，放宽到 5 分钟。
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.purgeExpired(ctx)

		duration := time.Since(startTime)
		t.logger.Info("软删除数据清理任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		// 如果添加 cron 作业失败（通常是 schedule 表达式错误），记录致命错误。
		t.logger.Fatal("添加软删除数据清理 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start() // 启动 cron 调度器 (在后台 goroutine 中运行)
	t.logger.Info("软删除数据清理定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// purgeExpired 是定时任务执行的实际清理逻辑。
// 1. 回收超期文章的封面 COS 对象。
// 2. 物理删除超期的文章与评论记录。
func (t *PurgeDeletedTask) purgeExpired(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -t.retentionDays)

	// 步骤1: 清理封面对象。逐个删除，单个失败不中断整体清理。
	posts, err := t.postRepo.FindDeletedBefore(ctx, cutoff)
	if err != nil {
		t.logger.Error("检索待清理文章失败，本次清理中止。", zap.Error(err))
		return
	}
	for _, post := range posts {
		if post.ImageObjectKey == "" {
			continue
		}
		if err := t.cosClient.DeleteObject(ctx, post.ImageObjectKey); err != nil {
			t.logger.Error("回收文章封面 COS 对象失败",
				zap.Uint64("postID", post.ID),
				zap.String("objectKey", post.ImageObjectKey),
				zap.Error(err))
		}
	}

	// 步骤2: 物理删除超期文章
	purgedPosts, err := t.postRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		t.logger.Error("物理清理文章失败", zap.Error(err))
	}

	// 步骤3: 物理删除超期评论
	purgedComments, err := t.commentRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		t.logger.Error("物理清理评论失败", zap.Error(err))
	}

	t.logger.Info("软删除数据清理完成",
		zap.Time("cutoff", cutoff),
		zap.Int64("purgedPosts", purgedPosts),
		zap.Int64("purgedComments", purgedComments),
	)
}

// Stop 优雅地停止 cron 调度器。
func (t *PurgeDeletedTask) Stop() context.Context {
	t.logger.Info("正在停止软删除数据清理定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("软删除数据清理定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx // 调用者可以使用此 context 等待任务结束
}
