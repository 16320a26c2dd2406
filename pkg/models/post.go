package models

import "time"

// Post is an insight (blog) article.
type Post struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Slug        Slug       `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	MainImage   *Image     `json:"mainImage,omitempty"`
	Author      *Author    `json:"author,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
	Body        []Block    `json:"body,omitempty"`
	Comments    []Comment  `json:"comments,omitempty"`
	PublishedAt time.Time  `json:"publishedAt"`
}

type Author struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  Slug   `json:"slug"`
	Image *Image `json:"image,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

type Category struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Slug        Slug   `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Comment is a reader comment. Only approved comments are queried for display.
type Comment struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"_createdAt"`
}
