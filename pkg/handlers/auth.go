package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"estate-site/pkg/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	githubUserURL = "https://api.github.com/user"
	sessionLogin  = "github_login"
	sessionState  = "oauth_state"
)

type LeadLister interface {
	SellRequests(ctx context.Context) ([]models.SellRequest, error)
}

// Admin is the GitHub-authenticated lead dashboard.
type Admin struct {
	OAuth       *oauth2.Config
	IsAdmin     func(login string) bool
	Leads       LeadLister
	Site        *Site
	UserInfoURL string
}

func (a *Admin) AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	login, _ := session.Get(sessionLogin).(string)
	if login == "" || !a.IsAdmin(login) {
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
		return
	}
	c.Set("admin_login", login)
	c.Next()
}

func (a *Admin) LoginPage(c *gin.Context) {
	a.Site.render(c, http.StatusOK, "login.html", gin.H{"Title": "Admin sign in"})
}

func (a *Admin) GithubLogin(c *gin.Context) {
	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(sessionState, state)
	if err := session.Save(); err != nil {
		a.Site.fail(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, a.OAuth.AuthCodeURL(state))
}

func (a *Admin) AuthCallback(c *gin.Context) {
	session := sessions.Default(c)
	want, _ := session.Get(sessionState).(string)
	if want == "" || c.Query("state") != want {
		c.String(http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	session.Delete(sessionState)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	token, err := a.OAuth.Exchange(ctx, c.Query("code"))
	if err != nil {
		a.Site.Logger.Warn("oauth exchange failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	login, err := a.githubLogin(ctx, token)
	if err != nil {
		a.Site.Logger.Warn("github user lookup failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "GitHub user lookup failed")
		return
	}
	if !a.IsAdmin(login) {
		a.Site.Logger.Warn("admin login refused", zap.String("login", login))
		c.String(http.StatusForbidden, "Not authorised")
		return
	}

	session.Set(sessionLogin, login)
	if err := session.Save(); err != nil {
		a.Site.fail(c, err)
		return
	}
	a.Site.Logger.Info("admin signed in", zap.String("login", login))
	c.Redirect(http.StatusFound, "/admin")
}

func (a *Admin) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

func (a *Admin) Dashboard(c *gin.Context) {
	leads, err := a.Leads.SellRequests(c.Request.Context())
	if err != nil {
		a.Site.fail(c, err)
		return
	}
	a.Site.render(c, http.StatusOK, "admin.html", gin.H{
		"Title": "Leads",
		"Login": c.GetString("admin_login"),
		"Leads": leads,
	})
}

func (a *Admin) githubLogin(ctx context.Context, token *oauth2.Token) (string, error) {
	endpoint := a.UserInfoURL
	if endpoint == "" {
		endpoint = githubUserURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := a.OAuth.Client(ctx, token).Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github returned %d", resp.StatusCode)
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", err
	}
	if user.Login == "" {
		return "", fmt.Errorf("github user has no login")
	}
	return user.Login, nil
}
