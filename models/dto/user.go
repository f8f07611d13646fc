package dto

// UpdateProfileRequest 定义了更新个人资料的请求数据结构。
// - 请求体为 multipart/form-data，头像文件单独以 "profilePicture" 字段上传。
type UpdateProfileRequest struct {
	Username string `form:"username" binding:"omitempty,max=50"` // 新用户名，可选；与当前值相同则不更新
}

// ListUsersRequest 定义了管理员分页查询用户列表的请求数据结构。
// - startIndex/limit 是偏移分页参数，与前端仪表盘的"加载更多"交互对应。
type ListUsersRequest struct {
	StartIndex int    `form:"startIndex" binding:"omitempty,gte=0"`        // 偏移量，默认 0
	Limit      int    `form:"limit" binding:"omitempty,gte=1,lte=100"`     // 每页数量，默认 9
	Sort       string `form:"sort" binding:"omitempty,oneof=asc desc"`     // 按创建时间排序方向，默认 desc
}

// GetOffset 返回分页偏移量。
func (d *ListUsersRequest) GetOffset() int {
	if d.StartIndex < 0 {
		return 0
	}
	return d.StartIndex
}

// GetLimit 返回每页数量，未提供时使用默认值 9。
func (d *ListUsersRequest) GetLimit() int {
	if d.Limit <= 0 {
		return 9
	}
	return d.Limit
}

// SortAscending 返回是否按创建时间升序。
func (d *ListUsersRequest) SortAscending() bool {
	return d.Sort == "asc"
}
