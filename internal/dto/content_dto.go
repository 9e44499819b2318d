package dto

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=20"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required"`
}

type FAQRequest struct {
	Question     string `json:"question" validate:"required,max=500"`
	Answer       string `json:"answer" validate:"required"`
	Category     string `json:"category" validate:"max=100"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}

type ArticleRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Content     string `json:"content"`
	Excerpt     string `json:"excerpt" validate:"max=500"`
	Image       string `json:"image" validate:"max=500"`
	Author      string `json:"author" validate:"max=100"`
	Category    string `json:"category" validate:"max=100"`
	IsPublished bool   `json:"isPublished"`
}
