package constant

// 定时任务调度表达式 (robfig/cron v3，分钟级精度)
const (
	// PurgeDeletedInterval 软删除数据清理任务的执行周期，每天凌晨 4 点。
	PurgeDeletedInterval = "0 4 * * *"
)

// PurgeRetentionDays 软删除记录的保留天数。
// 超过该期限的帖子/评论会被物理删除，帖子关联的 COS 图片对象一并清理。
const PurgeRetentionDays = 30
