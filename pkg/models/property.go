package models

import "time"

const (
	StatusSale = "sale"
	StatusRent = "rent"
	StatusSold = "sold"
)

// Property is a listing document.
type Property struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Slug         Slug      `json:"slug"`
	Location     string    `json:"location"`
	Address      string    `json:"address,omitempty"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency,omitempty"`
	Status       string    `json:"status"`
	PropertyType string    `json:"propertyType"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Area         float64   `json:"area,omitempty"`
	Featured     bool      `json:"featured"`
	MainImage    *Image    `json:"mainImage,omitempty"`
	Gallery      *Gallery  `json:"gallery,omitempty"`
	Agent        *Agent    `json:"agent,omitempty"`
	Amenities    []string  `json:"amenities,omitempty"`
	Description  []Block   `json:"description,omitempty"`
	PublishedAt  time.Time `json:"publishedAt"`
}

type Agent struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Image    *Image `json:"image,omitempty"`
}

type Gallery struct {
	ID     string  `json:"_id"`
	Title  string  `json:"title"`
	Images []Image `json:"images"`
}

// Review is a client testimonial.
type Review struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}
