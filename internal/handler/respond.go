package handler

// respond.go centralizes the response envelope shared by every endpoint:
// successes are {success:true, message, data?, pagination?} and failures
// are {success:false, error, code}. Keeping the shape in one place stops
// individual handlers from drifting.

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func respondOK(c echo.Context, status int, message string, data any) error {
	body := echo.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(status, body)
}

func respondPage(c echo.Context, message string, data any, p Pagination) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": p,
	})
}

func respondErr(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg, "code": status})
}

// pageParams reads ?page and ?limit with defaults 1 and 10. Values that
// fail to parse or fall below 1 revert to the defaults.
func pageParams(c echo.Context) (page, limit, offset int) {
	page = atoiDefault(c.QueryParam("page"), 1)
	limit = atoiDefault(c.QueryParam("limit"), 10)
	return page, limit, (page - 1) * limit
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func totalPages(total, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
