package handlers

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterOptions struct {
	Site          *Site
	Admin         *Admin
	Templates     *template.Template
	Static        fs.FS
	SessionSecret string
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

func NewRouter(opts RouterOptions) *gin.Engine {
	site := opts.Site

	r := gin.New()
	r.Use(RequestLogger(site.Logger), gin.Recovery())

	// Session Setup
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 8 * 3600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("estate_session", store))

	r.SetHTMLTemplate(opts.Templates)
	if opts.Static != nil {
		r.StaticFS("/static", http.FS(opts.Static))
	}

	r.GET("/healthz", Health)

	// --- Public pages ---
	r.GET("/", site.Home)
	r.GET("/about", site.About)
	r.GET("/listings", site.Listings)
	r.GET("/listings/:slug", site.Listing)
	r.POST("/listings/:slug/viewing", site.SubmitViewing)
	r.GET("/insights", site.Insights)
	r.GET("/insights/:slug", site.Insight)
	r.POST("/insights/:slug/comments", site.SubmitComment)
	r.GET("/legal/:page", site.Legal)
	r.GET("/contact", site.ContactPage)
	r.POST("/contact", site.SubmitContact)
	r.GET("/sell", site.SellPage)
	r.POST("/sell", site.SubmitSell)

	api := r.Group("/api")
	{
		api.GET("/properties", site.ListProperties)
		api.GET("/properties/:slug", site.GetProperty)
		api.GET("/posts", site.ListPosts)
		api.GET("/posts/:slug", site.GetPost)
		api.POST("/revalidate", site.Revalidate)
	}

	// --- Admin ---
	if admin := opts.Admin; admin != nil {
		r.GET("/admin/login", admin.LoginPage)
		r.GET("/admin/login/github", admin.GithubLogin)
		r.GET("/admin/auth/callback", admin.AuthCallback)
		r.GET("/admin/logout", admin.Logout)

		authorized := r.Group("/admin")
		authorized.Use(admin.AuthRequired)
		{
			authorized.GET("", admin.Dashboard)
		}
	}

	r.NoRoute(site.NotFound)
	return r
}
