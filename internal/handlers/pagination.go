package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parsePaginationParams(pageStr, limitStr string, defaultLimit int64) (int64, int64, error) {
	page := int64(1)
	limit := defaultLimit

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, errors.New("invalid pagination params")
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 || l > 100 {
			return 0, 0, errors.New("invalid pagination params")
		}
		limit = l
	}

	return page, limit, nil
}

func buildPagination(total, page, limit int64) gin.H {
	pages := int64(1)
	if total > 0 {
		pages = int64(math.Ceil(float64(total) / float64(limit)))
	}
	return gin.H{
		"page":     page,
		"limit":    limit,
		"total":    total,
		"pages":    pages,
		"has_next": page < pages,
		"has_prev": page > 1,
	}
}
