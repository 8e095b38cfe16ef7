package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirawit-dev/storefront-backend/internal/product"
	"github.com/sirawit-dev/storefront-backend/internal/user"
)

// Handler delegates cart operations to the cart service. All cart routes
// require an authenticated user.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Put("/api/v1/cart/items/:itemId", h.updateItem)
	app.Delete("/api/v1/cart/items/:itemId", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addToCartRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	cart, err := h.service.GetOrCreate(userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"cart": cart})
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addToCartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	cart, err := h.service.Add(userID, payload.ProductID, payload.Quantity, payload.Color, payload.Size)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "item added to cart", "cart": cart})
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	cart, err := h.service.UpdateItem(userID, c.Params("itemId"), payload.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "cart item updated", "cart": cart})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	cart, err := h.service.RemoveItem(userID, c.Params("itemId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "item removed from cart", "cart": cart})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	cart, err := h.service.Clear(userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "cart cleared", "cart": cart})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch err {
	case product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case ErrNotFound, ErrItemNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case product.ErrUnavailable, product.ErrInsufficientStock, ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
