package category

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sirawit-dev/storefront-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.list)
	app.Get("/api/v1/categories/tree", h.tree)
	app.Get("/api/v1/categories/:id<[0-9]+>", h.get)
	app.Get("/api/v1/categories/slug/:slug", h.getBySlug)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/admin/categories", h.create)
	app.Put("/api/v1/admin/categories/:id<[0-9]+>", h.update)
	app.Delete("/api/v1/admin/categories/:id<[0-9]+>", h.remove)
}

func (h *Handler) list(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *Handler) tree(c *fiber.Ctx) error {
	nodes, err := h.service.Tree()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"categories": nodes})
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	cat, err := h.service.GetByID(id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"category": cat})
}

func (h *Handler) getBySlug(c *fiber.Ctx) error {
	cat, err := h.service.GetBySlug(c.Params("slug"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"category": cat})
}

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentID    *int   `json:"parentId"`
	Status      string `json:"status"`
	SortOrder   int    `json:"sortOrder"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}

	created, err := h.service.Create(Category{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
		ParentID:    payload.ParentID,
		Status:      payload.Status,
		SortOrder:   payload.SortOrder,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": created})
}

func (h *Handler) update(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	updated, err := h.service.Update(Category{
		ID:          id,
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
		ParentID:    payload.ParentID,
		Status:      payload.Status,
		SortOrder:   payload.SortOrder,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"category": updated})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "category deleted"})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
	case ErrSlugExists:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case ErrHasProducts:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
