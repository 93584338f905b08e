package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Yatube/internal/middleware"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{svc: service.NewCommentService(db)}
}

// Add attaches a comment and redirects back to the post; an empty text
// re-renders the comment form with field messages.
func (h *CommentHandler) Add(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
		return
	}
	_, err = h.svc.Add(middleware.UserID(c), postID, c.PostForm("text"))
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusOK, gin.H{"errors": verr.FieldMap()})
			return
		}
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+c.Param("id")+"/")
}
