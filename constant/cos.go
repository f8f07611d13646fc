package constant

// COS 对象键前缀 (按资源类型分目录，便于生命周期管理与排查)
const (
	// COSObjectKeyPrefixPostImages 帖子配图的对象键前缀。
	// 完整键形如: posts/images/20250901/{authorID}_{uuid}.jpg
	COSObjectKeyPrefixPostImages = "posts/images/"

	// COSObjectKeyPrefixAvatars 用户头像的对象键前缀。
	// 完整键形如: users/avatars/20250901/{userID}_{uuid}.png
	COSObjectKeyPrefixAvatars = "users/avatars/"
)

// 上传限制，与前端约定保持一致
const (
	// MaxImageUploadBytes 单张图片的大小上限 (2 MiB)。
	MaxImageUploadBytes = 2 << 20
)
