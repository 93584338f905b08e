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

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{svc: service.NewPostService(db)}
}

// requestedPage reads the page query param; absent or malformed means
// the first page.
func requestedPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}

// postForm is the create/edit submission: text, an optional group id
// and an optional image path.
type postForm struct {
	Text    string
	GroupID *uint64
	Image   string
}

func bindPostForm(c *gin.Context) (postForm, *service.ValidationError) {
	form := postForm{
		Text:  c.PostForm("text"),
		Image: c.PostForm("image"),
	}
	if raw := c.PostForm("group"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			verr := &service.ValidationError{}
			verr.Add("group", "unknown group")
			return form, verr
		}
		form.GroupID = &id
	}
	return form, nil
}

// fail maps service errors onto the response taxonomy.
func fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
}

// Index renders the global listing. The route is wrapped by the index
// cache middleware, so within the cache window this handler is not
// reached at all.
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.svc.ListAll(requestedPage(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":       page.Items,
		"page":        page.Number,
		"total_pages": page.TotalPages,
		"total_items": page.TotalItems,
	})
}

// GroupList renders one group's listing.
func (h *PostHandler) GroupList(c *gin.Context) {
	listing, err := h.svc.ListByGroup(c.Param("slug"), requestedPage(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"group":       listing.Group,
		"posts":       listing.Page.Items,
		"page":        listing.Page.Number,
		"total_pages": listing.Page.TotalPages,
	})
}

// Profile renders an author's listing with the follow state for the
// current viewer.
func (h *PostHandler) Profile(c *gin.Context) {
	listing, err := h.svc.ListByAuthor(c.Param("username"), requestedPage(c), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"author":      listing.Author,
		"post_count":  listing.PostCount,
		"following":   listing.Following,
		"posts":       listing.Page.Items,
		"page":        listing.Page.Number,
		"total_pages": listing.Page.TotalPages,
	})
}

// Detail renders one post with its comments.
func (h *PostHandler) Detail(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
		return
	}
	detail, err := h.svc.GetDetail(postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":     detail.Post,
		"count":    detail.PostCount,
		"comments": detail.Comments,
	})
}

// CreateForm renders the empty submission form.
func (h *PostHandler) CreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"is_edit": false, "errors": gin.H{}})
}

// Create publishes a post and redirects to the author's profile; a
// validation failure re-renders the form with field messages.
func (h *PostHandler) Create(c *gin.Context) {
	form, verr := bindPostForm(c)
	if verr == nil {
		_, err := h.svc.Create(middleware.UserID(c), form.Text, form.GroupID, form.Image)
		if err == nil {
			c.Redirect(http.StatusFound, "/profile/"+middleware.Username(c)+"/")
			return
		}
		if !errors.As(err, &verr) {
			fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"is_edit": false, "errors": verr.FieldMap()})
}

// EditForm renders the form pre-filled with the post; a non-owner is
// bounced to the detail view.
func (h *PostHandler) EditForm(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
		return
	}
	detail, err := h.svc.GetDetail(postID)
	if err != nil {
		fail(c, err)
		return
	}
	if detail.Post.AuthorID != middleware.UserID(c) {
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id")+"/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_edit": true, "post": detail.Post, "errors": gin.H{}})
}

// Edit updates an owned post and redirects to its detail view. A
// non-owner attempt changes nothing and gets the same redirect — not
// an error.
func (h *PostHandler) Edit(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
		return
	}
	detailPath := "/posts/" + c.Param("id") + "/"

	form, verr := bindPostForm(c)
	if verr == nil {
		_, err := h.svc.Edit(middleware.UserID(c), postID, form.Text, form.GroupID, form.Image)
		if err == nil || errors.Is(err, service.ErrNotOwner) {
			c.Redirect(http.StatusFound, detailPath)
			return
		}
		if !errors.As(err, &verr) {
			fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"is_edit": true, "errors": verr.FieldMap()})
}
