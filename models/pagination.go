package models

// PaginationQuery 报名者列表的查询参数
type PaginationQuery struct {
	Search string `form:"search" json:"search"`
	Sort   string `form:"sort" json:"sort"`
	Page   int    `form:"page" json:"page"`
	Limit  int    `form:"limit" json:"limit"`
}

// Normalize 填充默认分页参数
func (q *PaginationQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
}

// Offset 计算当前页的偏移量
func (q *PaginationQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Ascending 是否按创建时间升序排序，"asc" 以外一律降序
func (q *PaginationQuery) Ascending() bool {
	return q.Sort == "asc"
}
