package service

import (
	"regexp"
	"strings"

	"github.com/Xushengqwer/blog_service/myErrors"
)

var (
	slugInvalidChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugConsecutiveDash = regexp.MustCompile(`-{2,}`)
)

// DeriveSlug 从文章标题派生 URL 友好的 slug。
// - 规则: 转小写、空白折叠为连字符、剔除字母数字与连字符之外的字符、
//   合并连续连字符并去掉首尾连字符。
// - 标题不含任何可用字符时返回 myErrors.ErrEmptySlug，由调用方提示用户修改标题。
func DeriveSlug(title string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugConsecutiveDash.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return "", myErrors.ErrEmptySlug
	}
	return slug, nil
}
