package models

import "time"

// ContactMessage is posted by the contact form.
type ContactMessage struct {
	Name    string `form:"name" json:"name" binding:"required,max=120"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Phone   string `form:"phone" json:"phone" binding:"max=40"`
	Subject string `form:"subject" json:"subject" binding:"max=200"`
	Message string `form:"message" json:"message" binding:"required,max=5000"`
}

// SellRequest is posted by owners who want the company to list their property.
type SellRequest struct {
	ID           string    `form:"-" json:"_id,omitempty"`
	Name         string    `form:"name" json:"name" binding:"required,max=120"`
	Email        string    `form:"email" json:"email" binding:"required,email"`
	Phone        string    `form:"phone" json:"phone" binding:"required,max=40"`
	Location     string    `form:"location" json:"location" binding:"required,max=200"`
	PropertyType string    `form:"propertyType" json:"propertyType" binding:"required"`
	AskingPrice  float64   `form:"askingPrice" json:"askingPrice" binding:"omitempty,min=0"`
	Message      string    `form:"message" json:"message" binding:"max=5000"`
	SubmittedAt  time.Time `form:"-" json:"submittedAt"`
}

// CommentRequest is posted from an insight page.
type CommentRequest struct {
	Name    string `form:"name" json:"name" binding:"required,max=120"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Comment string `form:"comment" json:"comment" binding:"required,max=2000"`
}

// ViewingRequest asks an agent to arrange a viewing of a listing.
type ViewingRequest struct {
	Name          string `form:"name" json:"name" binding:"required,max=120"`
	Email         string `form:"email" json:"email" binding:"required,email"`
	Phone         string `form:"phone" json:"phone" binding:"required,max=40"`
	PreferredDate string `form:"preferredDate" json:"preferredDate" binding:"max=40"`
	Message       string `form:"message" json:"message" binding:"max=2000"`
}
