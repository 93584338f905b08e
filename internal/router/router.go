package router

import (
	"net/http"

	"Yatube/internal/cache"
	"Yatube/internal/config"
	"Yatube/internal/handler"
	"Yatube/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InitRouter wires the route table. Listing routes are public, every
// mutation and the personalized feed sit behind LoginRequired.
func InitRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	post := handler.NewPostHandler(db)
	comment := handler.NewCommentHandler(db)
	follow := handler.NewFollowHandler(db)
	user := handler.NewUserHandler(db)

	// the global listing response is cached whole for a short window
	indexCache := cache.NewResponseCache(config.IndexCacheTTL)

	// public listings
	r.GET("/", middleware.CacheIndex(indexCache), post.Index)
	r.GET("/group/:slug/", post.GroupList)
	r.GET("/profile/:username/", middleware.CurrentUser(), post.Profile)
	r.GET("/posts/:id/", post.Detail)

	// identity boundary
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/login/", user.LoginForm)
		authGroup.POST("/login/", user.Login)
		authGroup.GET("/signup/", user.SignupForm)
		authGroup.POST("/signup/", user.Signup)
		authGroup.POST("/logout/", middleware.CurrentUser(), user.Logout)
	}

	// gated routes: anonymous access redirects to login with next
	gated := r.Group("")
	gated.Use(middleware.LoginRequired())
	{
		gated.GET("/create/", post.CreateForm)
		gated.POST("/create/", post.Create)
		gated.GET("/posts/:id/edit/", post.EditForm)
		gated.POST("/posts/:id/edit/", post.Edit)
		gated.POST("/posts/:id/comment/", comment.Add)
		gated.GET("/follow/", follow.FeedIndex)
		gated.POST("/profile/:username/follow/", follow.Follow)
		gated.POST("/profile/:username/unfollow/", follow.Unfollow)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
	})

	return r
}
