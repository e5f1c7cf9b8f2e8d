package api

import (
	"github.com/gin-gonic/gin"

	"github.com/bannerforge/bannerforge-backend/internal/core"
)

const bannersEvent = "banners"

// streamBanners writes every list from updates as a server-sent event until updates is
// closed or done fires.
func streamBanners(c *gin.Context, updates <-chan core.BannerListState, done <-chan struct{}) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	for {
		select {
		case st, ok := <-updates:
			if !ok {
				return
			}
			c.SSEvent(bannersEvent, st)
			c.Writer.Flush()
		case <-done:
			return
		}
	}
}

// latestBanners is a one-slot channel that always holds the newest banner list.
type latestBanners chan core.BannerListState

func (l latestBanners) push(st core.BannerListState) {
	for {
		select {
		case l <- st:
			return
		default:
		}
		select {
		case <-l:
		default:
		}
	}
}
