package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"estate-site/pkg/models"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const notifyTimeout = 15 * time.Second

type Mailer interface {
	Send(ctx context.Context, params map[string]string) error
}

type FormSubmitter interface {
	Submit(ctx context.Context, formName string, fields map[string]string) error
}

type DocumentWriter interface {
	Create(ctx context.Context, docType string, doc map[string]interface{}) (string, error)
}

// LeadService forwards form submissions to the email relay, the hosted forms
// backend and the content store.
type LeadService struct {
	mailer Mailer
	forms  FormSubmitter
	store  DocumentWriter
	inbox  string
	logger *zap.Logger
	now    func() time.Time

	pool   *workerpool.WorkerPool
	mu     sync.Mutex
	closed bool
}

type LeadOptions struct {
	Mailer  Mailer
	Forms   FormSubmitter
	Store   DocumentWriter
	Inbox   string
	Workers int
	Logger  *zap.Logger
}

func NewLeadService(opts LeadOptions) *LeadService {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	return &LeadService{
		mailer: opts.Mailer,
		forms:  opts.Forms,
		store:  opts.Store,
		inbox:  opts.Inbox,
		logger: logger,
		now:    time.Now,
		pool:   workerpool.New(workers),
	}
}

// Contact relays a contact form message by email.
func (s *LeadService) Contact(ctx context.Context, msg models.ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "Website enquiry"
	}
	err := s.mailer.Send(ctx, map[string]string{
		"form":      "contact",
		"from_name": msg.Name,
		"reply_to":  msg.Email,
		"phone":     msg.Phone,
		"subject":   subject,
		"message":   msg.Message,
		"to_email":  s.inbox,
	})
	if err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	s.logger.Info("contact message relayed", zap.String("email", msg.Email))
	return nil
}

// Sell posts the request to the forms backend and writes a sellRequest
// document in parallel. Both must succeed. The team notification is queued.
func (s *LeadService) Sell(ctx context.Context, req models.SellRequest) (string, error) {
	req.SubmittedAt = s.now().UTC()
	fields := map[string]string{
		"name":         req.Name,
		"email":        req.Email,
		"phone":        req.Phone,
		"location":     req.Location,
		"propertyType": req.PropertyType,
		"askingPrice":  strconv.FormatFloat(req.AskingPrice, 'f', -1, 64),
		"message":      req.Message,
	}

	var id string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.forms.Submit(gctx, "sell-property", fields)
		if errors.Is(err, ErrRelayDisabled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		id, err = s.store.Create(gctx, "sellRequest", map[string]interface{}{
			"name":         req.Name,
			"email":        req.Email,
			"phone":        req.Phone,
			"location":     req.Location,
			"propertyType": req.PropertyType,
			"askingPrice":  req.AskingPrice,
			"message":      req.Message,
			"submittedAt":  req.SubmittedAt.Format(time.RFC3339),
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("sell request: %w", err)
	}

	s.logger.Info("sell request stored", zap.String("id", id), zap.String("location", req.Location))
	params := make(map[string]string, len(fields)+5)
	for k, v := range fields {
		params[k] = v
	}
	params["form"] = "sell"
	params["subject"] = "New property to list: " + req.Location
	params["from_name"] = req.Name
	params["reply_to"] = req.Email
	params["to_email"] = s.inbox
	s.notify("sell", params)
	return id, nil
}

// Comment stores an unapproved comment on a post.
func (s *LeadService) Comment(ctx context.Context, postID string, c models.CommentRequest) (string, error) {
	id, err := s.store.Create(ctx, "comment", map[string]interface{}{
		"name":     c.Name,
		"email":    c.Email,
		"comment":  c.Comment,
		"approved": false,
		"post": map[string]interface{}{
			"_type": "reference",
			"_ref":  postID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("comment: %w", err)
	}
	s.logger.Info("comment stored", zap.String("id", id), zap.String("post", postID))
	return id, nil
}

// Viewing relays a viewing request for a listing.
func (s *LeadService) Viewing(ctx context.Context, p *models.Property, v models.ViewingRequest, listingURL string) error {
	err := s.mailer.Send(ctx, map[string]string{
		"form":           "viewing",
		"from_name":      v.Name,
		"reply_to":       v.Email,
		"phone":          v.Phone,
		"subject":        "Viewing request: " + p.Title,
		"message":        v.Message,
		"preferred_date": v.PreferredDate,
		"property":       p.Title,
		"property_slug":  p.Slug.Current,
		"property_url":   listingURL,
		"to_email":       s.inbox,
	})
	if err != nil {
		return fmt.Errorf("viewing: %w", err)
	}
	s.logger.Info("viewing request relayed", zap.String("property", p.Slug.Current))
	return nil
}

// notify sends a best-effort email on the worker pool. After Close the
// notification is dropped.
func (s *LeadService) notify(kind string, params map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Warn("notification dropped after shutdown", zap.String("kind", kind))
		return
	}
	s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, params); err != nil {
			s.logger.Warn("notification failed", zap.String("kind", kind), zap.Error(err))
		}
	})
}

// Close waits for queued notifications.
func (s *LeadService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.pool.StopWait()
}
