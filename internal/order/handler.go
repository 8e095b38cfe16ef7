package order

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirawit-dev/storefront-backend/internal/cart"
	"github.com/sirawit-dev/storefront-backend/internal/product"
	"github.com/sirawit-dev/storefront-backend/internal/user"
)

// Handler delegates order operations to the order service. It holds the
// cart service so a successful checkout can clear the cart.
type Handler struct {
	service *Service
	carts   *cart.Service
}

func NewHandler(s *Service, carts *cart.Service) *Handler {
	return &Handler{service: s, carts: carts}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.placeOrder)
	app.Get("/api/v1/orders", h.getOrders)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Put("/api/v1/orders/:id<[0-9]+>/cancel", h.cancelOrder)
	app.Post("/api/v1/payments/confirm", h.confirmPayment)
	app.Get("/api/v1/payments/history", h.paymentHistory)

	app.Get("/api/v1/admin/orders", h.listAllOrders)
	app.Put("/api/v1/admin/orders/:id<[0-9]+>/status", h.updateStatus)
}

type placeOrderRequest struct {
	Items           []PlaceItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(placeOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if len(payload.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "order must contain at least one item"})
	}
	if payload.PaymentMethod == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "paymentMethod is required"})
	}

	created, err := h.service.Place(userID, PlaceInput{
		Items:           payload.Items,
		ShippingAddress: payload.ShippingAddress,
		PaymentMethod:   payload.PaymentMethod,
	})
	if err != nil {
		return h.fail(c, err)
	}

	// checkout clears the cart; a failure here must not undo the order
	if h.carts != nil {
		if _, err := h.carts.Clear(userID); err != nil {
			log.Printf("warning: could not clear cart for user %d: %v", userID, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "order placed", "order": created})
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, _ := strconv.Atoi(c.Params("id"))

	ord, err := h.service.Get(orderID, userID, user.IsAdminFromCtx(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"order": ord})
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, _ := strconv.Atoi(c.Params("id"))

	ord, err := h.service.Cancel(orderID, userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "order cancelled", "order": ord})
}

type confirmPaymentRequest struct {
	OrderID          int    `json:"orderId"`
	PaymentReference string `json:"paymentReference"`
}

func (h *Handler) confirmPayment(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(confirmPaymentRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.OrderID <= 0 || payload.PaymentReference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "orderId and paymentReference are required"})
	}

	ord, err := h.service.ConfirmPayment(payload.OrderID, userID, payload.PaymentReference)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "payment confirmed", "order": ord})
}

func (h *Handler) paymentHistory(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	orders, total, spent, err := h.service.PaymentHistory(userID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return c.JSON(fiber.Map{
		"payments":   orders,
		"totalSpent": spent,
		"pagination": fiber.Map{"page": page, "limit": limit, "total": total, "pages": pages},
	})
}

func (h *Handler) listAllOrders(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}
	f := Filter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 20),
	}
	if raw := c.Query("status"); raw != "" && raw != "all" {
		f.Status = Status(raw)
		if !f.Status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order status"})
		}
	}

	orders, total, err := h.service.List(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	f = f.normalized()
	pages := total / f.Limit
	if total%f.Limit != 0 {
		pages++
	}
	return c.JSON(fiber.Map{
		"orders":     orders,
		"pagination": fiber.Map{"page": f.Page, "limit": f.Limit, "total": total, "pages": pages},
	})
}

type updateStatusRequest struct {
	Status         string `json:"status"`
	Note           string `json:"note"`
	TrackingNumber string `json:"trackingNumber"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}
	orderID, _ := strconv.Atoi(c.Params("id"))
	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.UpdateStatus(orderID, Status(payload.Status), payload.Note, payload.TrackingNumber)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "order status updated", "order": ord})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound, product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case ErrNotAuthorized:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	case ErrInvalidStatus, ErrFinalized, ErrNotPending, ErrEmptyOrder, ErrInvalidQuantity,
		ErrPaymentNotSettled, product.ErrUnavailable, product.ErrInsufficientStock:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
