package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrArticleNotFound = errors.New("article not found")

type ArticleService struct {
	db *gorm.DB
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

func (s *ArticleService) List(ctx context.Context) ([]models.Article, error) {
	var list []models.Article
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (s *ArticleService) Published(ctx context.Context) ([]models.Article, error) {
	return s.published(s.db.WithContext(ctx))
}

func (s *ArticleService) ByCategory(ctx context.Context, category string) ([]models.Article, error) {
	return s.published(s.db.WithContext(ctx).Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))))
}

// Search matches published articles whose title or excerpt contains keyword.
func (s *ArticleService) Search(ctx context.Context, keyword string) ([]models.Article, error) {
	kw := likePattern(keyword)
	return s.published(s.db.WithContext(ctx).Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(excerpt) LIKE ? ESCAPE '\\')", kw, kw))
}

func (s *ArticleService) published(q *gorm.DB) ([]models.Article, error) {
	var list []models.Article
	err := q.Where("is_published = ?", true).Order("published_at DESC").Find(&list).Error
	return list, err
}

func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var a models.Article
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrArticleNotFound)
	}
	return &a, nil
}

func (s *ArticleService) Create(ctx context.Context, req *dto.ArticleRequest) (*models.Article, error) {
	a := models.Article{}
	applyArticle(&a, req)
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return &a, nil
}

func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, req *dto.ArticleRequest) (*models.Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyArticle(a, req)
	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	return a, nil
}

func (s *ArticleService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	setPublished(a, published)
	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Article{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func applyArticle(a *models.Article, req *dto.ArticleRequest) {
	a.Title = strings.TrimSpace(req.Title)
	a.Content = req.Content
	a.Excerpt = req.Excerpt
	a.Image = req.Image
	a.Author = req.Author
	a.Category = strings.TrimSpace(req.Category)
	setPublished(a, req.IsPublished)
}

// setPublished stamps publishedAt the first time an article goes live.
func setPublished(a *models.Article, published bool) {
	a.IsPublished = published
	if published && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}
}
