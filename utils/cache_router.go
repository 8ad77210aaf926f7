package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
)

// CacheRouter sets the cache-control header of everything it wraps
type CacheRouter struct {
	CacheTime int // seconds, defaults to CacheNoCache = 0
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch {
		case cr.CacheTime == CacheCustom:
		case cr.CacheTime == CacheNoCache:
			c.Header("cache-control", "no-store")
		default:
			c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.CacheTime))
		}
		c.Next()
	}
}
