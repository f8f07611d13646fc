package myErrors

import "errors"

// 服务层业务错误。
// 控制器通过 errors.Is 判断并映射为对应的 HTTP 状态码与响应码，
// 除这些已知错误外的内部错误一律记录日志后以通用消息返回，避免泄露内部细节。
var (
	// ErrInvalidCredentials 登录失败的统一错误。
	// 邮箱不存在与密码错误返回同一个错误，不向客户端泄露具体哪一项不对。
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWrongPassword 修改密码时当前密码校验失败。
	ErrWrongPassword = errors.New("the current password is wrong")

	// ErrForbidden 已认证但无权执行该操作 (403)。
	ErrForbidden = errors.New("you are not allowed to do this")

	// ErrUserConflict 用户名或邮箱已被占用。
	// 注册与改名场景下由唯一约束冲突转换而来，统一对外措辞。
	ErrUserConflict = errors.New("username or email already exists")

	// ErrSlugConflict 由标题推导出的 slug 已存在。
	ErrSlugConflict = errors.New("a post with this title (slug) already exists")

	// ErrEmptySlug 标题清洗后得到空 slug，无法生成合法的 URL 标识。
	ErrEmptySlug = errors.New("title must contain valid characters for a slug")

	// ErrCommentTooLong 评论内容去除首尾空白后超过 200 字符。
	ErrCommentTooLong = errors.New("comment must be 200 characters or less")

	// ErrCommentEmpty 评论内容去除首尾空白后为空。
	ErrCommentEmpty = errors.New("comment content is required")

	// ErrInvalidImage 上传文件不是允许的图片类型或超过大小限制。
	ErrInvalidImage = errors.New("only .png, .jpg, .jpeg, .gif, .webp images up to 2MB are allowed")
)
