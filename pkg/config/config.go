package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	Port        = "8080"
	ContentPath = "./content"
	SiteFile    = "./site.yml"

	// Content store settings
	SanityProjectID  = ""
	SanityDataset    = "production"
	SanityAPIVersion = "2023-05-03"
	SanityToken      = ""
	SanityUseCDN     = true

	// Cache settings
	CacheTTL      = 60 * time.Second
	WebhookSecret = ""

	// Email relay settings
	EmailServiceID  = ""
	EmailTemplateID = ""
	EmailPublicKey  = ""
	EmailPrivateKey = ""
	LeadInbox       = ""

	// Hosted forms backend
	FormsEndpoint = ""

	// Notification pool
	NotifyWorkers = 4

	// Admin settings
	AdminUsers    []string
	SessionSecret = ""
)

var OauthConf *oauth2.Config

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	appURL := GetAppURL()
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/admin/auth/callback")

	Port = getEnv("PORT", "8080")
	ContentPath = getEnv("CONTENT_PATH", "./content")
	SiteFile = getEnv("SITE_FILE", "./site.yml")

	SanityProjectID = getEnv("SANITY_PROJECT_ID", "")
	SanityDataset = getEnv("SANITY_DATASET", "production")
	SanityAPIVersion = getEnv("SANITY_API_VERSION", "2023-05-03")
	SanityToken = getEnv("SANITY_TOKEN", "")
	SanityUseCDN = getBool("SANITY_USE_CDN", true)

	CacheTTL = getDuration("CACHE_TTL", 60*time.Second)
	WebhookSecret = getEnv("WEBHOOK_SECRET", "")

	EmailServiceID = getEnv("EMAILJS_SERVICE_ID", "")
	EmailTemplateID = getEnv("EMAILJS_TEMPLATE_ID", "")
	EmailPublicKey = getEnv("EMAILJS_PUBLIC_KEY", "")
	EmailPrivateKey = getEnv("EMAILJS_PRIVATE_KEY", "")
	LeadInbox = getEnv("LEAD_INBOX", "")

	FormsEndpoint = getEnv("FORMS_ENDPOINT", "")

	if n := os.Getenv("NOTIFY_WORKERS"); n != "" {
		if val, err := strconv.Atoi(n); err == nil && val > 0 {
			NotifyWorkers = val
		}
	}

	AdminUsers = splitList(os.Getenv("ADMIN_USERS"))
	SessionSecret = os.Getenv("SESSION_SECRET")

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"read:user"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return strings.TrimSuffix(appURL, "/")
}

// IsAdmin reports whether the GitHub login is on the ADMIN_USERS allow list.
func IsAdmin(login string) bool {
	for _, u := range AdminUsers {
		if strings.EqualFold(u, login) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getDuration accepts Go durations ("90s") or plain seconds ("90").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
