package handler

import (
	"errors"
	"net/http"
	"strings"

	"Yatube/internal/middleware"
	"Yatube/internal/pkg"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{svc: service.NewUserService(db)}
}

// safeNext keeps redirects on-site; anything else falls back to the
// global listing.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

// LoginForm renders the login form, echoing the next target.
func (h *UserHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"next": c.Query("next"), "errors": gin.H{}})
}

// Login issues the session cookie and sends the user back to where
// they were headed.
func (h *UserHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}

	token, _, err := h.svc.Login(username, password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			c.JSON(http.StatusOK, gin.H{"errors": gin.H{"__all__": err.Error()}, "next": next})
			return
		}
		fail(c, err)
		return
	}
	c.SetCookie(middleware.AuthCookie, token, int(pkg.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, safeNext(next))
}

// SignupForm renders the registration form.
func (h *UserHandler) SignupForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"errors": gin.H{}})
}

// Signup registers an account and sends the user to the login form.
func (h *UserHandler) Signup(c *gin.Context) {
	err := h.svc.Signup(c.PostForm("username"), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusOK, gin.H{"errors": verr.FieldMap()})
			return
		}
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// Logout clears the session cookie and the mirrored token.
func (h *UserHandler) Logout(c *gin.Context) {
	if userID := middleware.UserID(c); userID != 0 {
		if err := h.svc.Logout(userID); err != nil {
			fail(c, err)
			return
		}
	}
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
