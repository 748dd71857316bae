package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit int
	Skip  int
}

// FromContext extracts skip/limit parameters from the echo context,
// clamping limit to [1, MaxLimit].
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	if skip <= 0 {
		skip, _ = strconv.Atoi(c.QueryParam("offset"))
	}
	if skip < 0 {
		skip = 0
	}

	return Params{Limit: limit, Skip: skip}
}

// Response wraps a paginated API response.
type Response struct {
	Data    interface{} `json:"data"`
	Total   int         `json:"total"`
	Limit   int         `json:"limit"`
	Skip    int         `json:"skip"`
	HasMore bool        `json:"has_more"`
}

func NewResponse(data interface{}, total, limit, skip int) *Response {
	return &Response{
		Data:    data,
		Total:   total,
		Limit:   limit,
		Skip:    skip,
		HasMore: skip+limit < total,
	}
}
