package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a support message submitted through the contact form.
type Contact struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:255;not null;index" json:"email"`
	Phone      string    `gorm:"size:20" json:"phone"`
	Subject    string    `gorm:"size:255" json:"subject"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsResolved bool      `gorm:"not null;default:false;index" json:"isResolved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (Contact) TableName() string {
	return "contacts"
}

type FAQ struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Question     string    `gorm:"size:500;not null" json:"question"`
	Answer       string    `gorm:"type:text;not null" json:"answer"`
	Category     string    `gorm:"size:100;index" json:"category"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (f *FAQ) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

func (FAQ) TableName() string {
	return "faqs"
}

type Article struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Image       string     `gorm:"size:500" json:"image"`
	Author      string     `gorm:"size:100" json:"author"`
	Category    string     `gorm:"size:100;index" json:"category"`
	IsPublished bool       `gorm:"not null;index" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

func (Article) TableName() string {
	return "articles"
}
