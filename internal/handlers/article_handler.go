package handlers

import (
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ArticleHandler struct {
	articles *services.ArticleService
}

func NewArticleHandler(articles *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

func (h *ArticleHandler) List(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.Article, error) { return h.articles.List(c.UserContext()) })
}

func (h *ArticleHandler) Published(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.Article, error) { return h.articles.Published(c.UserContext()) })
}

func (h *ArticleHandler) ByCategory(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.Article, error) {
		return h.articles.ByCategory(c.UserContext(), c.Params("category"))
	})
}

func (h *ArticleHandler) Search(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.Article, error) {
		return h.articles.Search(c.UserContext(), c.Query("keyword"))
	})
}

func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	a, err := h.articles.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}

func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var req dto.ArticleRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	a, err := h.articles.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.ArticleRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	a, err := h.articles.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}

func (h *ArticleHandler) Publish(c *fiber.Ctx) error {
	return h.setPublished(c, true)
}

func (h *ArticleHandler) Unpublish(c *fiber.Ctx) error {
	return h.setPublished(c, false)
}

func (h *ArticleHandler) setPublished(c *fiber.Ctx, published bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	a, err := h.articles.SetPublished(c.UserContext(), id, published)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}

func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.articles.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Article deleted successfully"})
}

func (h *ArticleHandler) respond(c *fiber.Ctx, fn func() ([]models.Article, error)) error {
	list, err := fn()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}
