package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"estate-site/pkg/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Site) apiError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.Logger.Error("api request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "content store unavailable"})
}

func (s *Site) ListProperties(c *gin.Context) {
	data, err := s.Content.Properties(c.Request.Context(), services.ParseListingFilter(c.Request.URL.Query()))
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Site) GetProperty(c *gin.Context) {
	data, err := s.Content.Property(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Site) ListPosts(c *gin.Context) {
	data, err := s.Content.Posts(c.Request.Context(), services.ParsePostFilter(c.Request.URL.Query()))
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Site) GetPost(c *gin.Context) {
	post, err := s.Content.Post(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Revalidate is called by the content store webhook after a publish.
func (s *Site) Revalidate(c *gin.Context) {
	if s.WebhookSecret == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "webhook disabled"})
		return
	}
	got := c.GetHeader("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(got), []byte(s.WebhookSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret"})
		return
	}

	s.Content.Invalidate()
	if err := s.Pages.Reload(); err != nil {
		s.Logger.Error("reload legal pages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revalidated"})
}
