package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"estate-site/pkg/config"
	"estate-site/pkg/models"
	"estate-site/pkg/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContentSource interface {
	Home(ctx context.Context) (*services.HomeData, error)
	Properties(ctx context.Context, filter services.ListingFilter) (*services.ListingsData, error)
	Property(ctx context.Context, slug string) (*services.PropertyData, error)
	Posts(ctx context.Context, filter services.PostFilter) (*services.InsightsData, error)
	Post(ctx context.Context, slug string) (*models.Post, error)
	Invalidate()
}

type LeadSubmitter interface {
	Contact(ctx context.Context, msg models.ContactMessage) error
	Sell(ctx context.Context, req models.SellRequest) (string, error)
	Comment(ctx context.Context, postID string, c models.CommentRequest) (string, error)
	Viewing(ctx context.Context, p *models.Property, v models.ViewingRequest, listingURL string) error
}

type PageSource interface {
	Page(slug string) (*models.Page, error)
	Reload() error
}

// Site serves the public pages.
type Site struct {
	Content       ContentSource
	Leads         LeadSubmitter
	Pages         PageSource
	Info          *config.Site
	Logger        *zap.Logger
	BaseURL       string
	WebhookSecret string
}

// render adds the fields every layout needs.
func (s *Site) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Site"] = s.Info
	data["Path"] = c.Request.URL.Path
	data["Year"] = time.Now().Year()
	if _, ok := data["Title"]; !ok {
		data["Title"] = s.Info.Name
	}
	c.HTML(status, name, data)
}

func (s *Site) fail(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		s.NotFound(c)
		return
	}
	s.Logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	s.render(c, http.StatusInternalServerError, "error.html", gin.H{"Title": "Something went wrong"})
}

func (s *Site) NotFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "notfound.html", gin.H{"Title": "Page not found"})
}

func (s *Site) Home(c *gin.Context) {
	home, err := s.Content.Home(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "home.html", gin.H{
		"Title": s.Info.Name,
		"Home":  home,
	})
}

func (s *Site) Listings(c *gin.Context) {
	filter := services.ParseListingFilter(c.Request.URL.Query())
	data, err := s.Content.Properties(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "listings.html", gin.H{
		"Title":    "Listings",
		"Listings": data,
	})
}

func (s *Site) Listing(c *gin.Context) {
	data, err := s.Content.Property(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "listing.html", gin.H{
		"Title":       data.Property.Title,
		"Description": services.PlainText(data.Property.Description, metaDescriptionLimit),
		"Listing":     data,
		"Form":        models.ViewingRequest{},
	})
}

func (s *Site) Insights(c *gin.Context) {
	filter := services.ParsePostFilter(c.Request.URL.Query())
	data, err := s.Content.Posts(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "insights.html", gin.H{
		"Title":    "Insights",
		"Insights": data,
	})
}

func (s *Site) Insight(c *gin.Context) {
	post, err := s.Content.Post(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "insight.html", gin.H{
		"Title":       post.Title,
		"Description": postDescription(post),
		"Post":        post,
		"Form":        models.CommentRequest{},
	})
}

func (s *Site) Legal(c *gin.Context) {
	page, err := s.Pages.Page(c.Param("page"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "legal.html", gin.H{
		"Title":       page.Title,
		"Description": page.Description,
		"Page":        page,
	})
}

const metaDescriptionLimit = 160

func postDescription(post *models.Post) string {
	if post.Excerpt != "" {
		return post.Excerpt
	}
	return services.PlainText(post.Body, metaDescriptionLimit)
}

func (s *Site) About(c *gin.Context) {
	s.render(c, http.StatusOK, "about.html", gin.H{"Title": "About us"})
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
