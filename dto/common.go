package dto

import (
	"rentals/constants"
	"rentals/response"
)

// PaginatedResponse là struct chung cho các response có phân trang
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// PageQuery đọc page/limit từ query string
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize áp giá trị mặc định và giới hạn limit
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = constants.DefaultPageLimit
	}
	if q.Limit > constants.MaxPageLimit {
		q.Limit = constants.MaxPageLimit
	}
	return q
}
