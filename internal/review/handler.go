package review

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sirawit-dev/storefront-backend/internal/product"
	"github.com/sirawit-dev/storefront-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/:id<[0-9]+>/reviews", h.list)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products/:id<[0-9]+>/reviews", h.create)
}

func (h *Handler) list(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("id"))
	summary, err := h.service.ListByProduct(productID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"reviews":      summary.Reviews,
		"numOfReviews": summary.NumOfReviews,
		"ratings":      summary.Ratings,
	})
}

type createRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	productID, _ := strconv.Atoi(c.Params("id"))
	created, err := h.service.Create(userID, productID, payload.Rating, payload.Comment)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "review added", "review": created})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch err {
	case product.ErrNotFound, ErrNotFound, user.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case ErrAlreadyReviewed, ErrInvalidRating:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
