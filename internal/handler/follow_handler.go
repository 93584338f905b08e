package handler

import (
	"net/http"

	"Yatube/internal/middleware"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FollowHandler struct {
	svc     *service.FollowService
	postSvc *service.PostService
}

func NewFollowHandler(db *gorm.DB) *FollowHandler {
	return &FollowHandler{
		svc:     service.NewFollowService(db),
		postSvc: service.NewPostService(db),
	}
}

// FeedIndex renders the viewer's personalized feed.
func (h *FollowHandler) FeedIndex(c *gin.Context) {
	page, err := h.postSvc.Feed(middleware.UserID(c), requestedPage(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":       page.Items,
		"page":        page.Number,
		"total_pages": page.TotalPages,
	})
}

// Follow subscribes the viewer to an author; duplicates and
// self-follows are quietly ignored. Always bounces back to the
// profile.
func (h *FollowHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := h.svc.Follow(c.Request.Context(), middleware.UserID(c), username); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

// Unfollow removes the subscription if present.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.svc.Unfollow(c.Request.Context(), middleware.UserID(c), username); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
