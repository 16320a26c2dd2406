package handlers

import (
	"net/http"

	"estate-site/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const invalidForm = "Please check the highlighted fields and try again."

func (s *Site) thanks(c *gin.Context, heading, message string) {
	s.render(c, http.StatusOK, "thanks.html", gin.H{
		"Title":   heading,
		"Heading": heading,
		"Message": message,
	})
}

func (s *Site) ContactPage(c *gin.Context) {
	s.render(c, http.StatusOK, "contact.html", gin.H{
		"Title": "Contact us",
		"Form":  models.ContactMessage{},
	})
}

func (s *Site) SubmitContact(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		s.render(c, http.StatusBadRequest, "contact.html", gin.H{
			"Title": "Contact us",
			"Form":  msg,
			"Error": invalidForm,
		})
		return
	}

	if err := s.Leads.Contact(c.Request.Context(), msg); err != nil {
		s.Logger.Error("contact relay failed", zap.Error(err))
		s.render(c, http.StatusBadGateway, "contact.html", gin.H{
			"Title": "Contact us",
			"Form":  msg,
			"Error": "We could not send your message right now. Please call or email us instead.",
		})
		return
	}
	s.thanks(c, "Message sent", "Thank you for reaching out. A member of our team will contact you shortly.")
}

func (s *Site) SellPage(c *gin.Context) {
	s.render(c, http.StatusOK, "sell.html", gin.H{
		"Title": "Sell your property",
		"Form":  models.SellRequest{},
	})
}

func (s *Site) SubmitSell(c *gin.Context) {
	var req models.SellRequest
	if err := c.ShouldBind(&req); err != nil {
		s.render(c, http.StatusBadRequest, "sell.html", gin.H{
			"Title": "Sell your property",
			"Form":  req,
			"Error": invalidForm,
		})
		return
	}

	if _, err := s.Leads.Sell(c.Request.Context(), req); err != nil {
		s.Logger.Error("sell request failed", zap.Error(err))
		s.render(c, http.StatusBadGateway, "sell.html", gin.H{
			"Title": "Sell your property",
			"Form":  req,
			"Error": "We could not submit your request right now. Please try again later.",
		})
		return
	}
	s.thanks(c, "Request received", "Thank you. Our agents will review your property and get back to you within two working days.")
}

func (s *Site) SubmitComment(c *gin.Context) {
	post, err := s.Content.Post(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.fail(c, err)
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		s.render(c, http.StatusBadRequest, "insight.html", gin.H{
			"Title": post.Title,
			"Post":  post,
			"Form":  req,
			"Error": invalidForm,
		})
		return
	}

	if _, err := s.Leads.Comment(c.Request.Context(), post.ID, req); err != nil {
		s.Logger.Error("comment failed", zap.String("post", post.ID), zap.Error(err))
		s.render(c, http.StatusBadGateway, "insight.html", gin.H{
			"Title": post.Title,
			"Post":  post,
			"Form":  req,
			"Error": "We could not save your comment right now.",
		})
		return
	}
	s.thanks(c, "Comment submitted", "Thanks for joining the conversation. Your comment will appear once it has been reviewed.")
}

func (s *Site) SubmitViewing(c *gin.Context) {
	slug := c.Param("slug")
	data, err := s.Content.Property(c.Request.Context(), slug)
	if err != nil {
		s.fail(c, err)
		return
	}

	var req models.ViewingRequest
	if err := c.ShouldBind(&req); err != nil {
		s.render(c, http.StatusBadRequest, "listing.html", gin.H{
			"Title":   data.Property.Title,
			"Listing": data,
			"Form":    req,
			"Error":   invalidForm,
		})
		return
	}

	listingURL := s.BaseURL + "/listings/" + slug
	if err := s.Leads.Viewing(c.Request.Context(), data.Property, req, listingURL); err != nil {
		s.Logger.Error("viewing relay failed", zap.String("slug", slug), zap.Error(err))
		s.render(c, http.StatusBadGateway, "listing.html", gin.H{
			"Title":   data.Property.Title,
			"Listing": data,
			"Form":    req,
			"Error":   "We could not send your request right now. Please call the agent directly.",
		})
		return
	}
	s.thanks(c, "Viewing requested", "Thank you. The listing agent will call you to confirm a time.")
}
