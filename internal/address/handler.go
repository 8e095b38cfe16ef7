package address

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

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/addresses", h.list)
	app.Post("/api/v1/addresses", h.create)
	app.Put("/api/v1/addresses/:id<[0-9]+>", h.update)
	app.Put("/api/v1/addresses/:id<[0-9]+>/default", h.setDefault)
	app.Delete("/api/v1/addresses/:id<[0-9]+>", h.remove)
}

type addressRequest struct {
	FullName  string `json:"fullName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

func (p *addressRequest) validate() error {
	if p.FullName == "" || p.Address == "" || p.City == "" || p.ZipCode == "" || p.Country == "" {
		return fiber.NewError(fiber.StatusBadRequest, "fullName, address, city, zipCode and country are required")
	}
	return nil
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	addresses, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"addresses": addresses})
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := payload.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(Address{
		UserID:    userID,
		FullName:  payload.FullName,
		Address:   payload.Address,
		City:      payload.City,
		State:     payload.State,
		ZipCode:   payload.ZipCode,
		Country:   payload.Country,
		IsDefault: payload.IsDefault,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"address": created})
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := payload.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	updated, err := h.service.Update(id, userID, Address{
		FullName:  payload.FullName,
		Address:   payload.Address,
		City:      payload.City,
		State:     payload.State,
		ZipCode:   payload.ZipCode,
		Country:   payload.Country,
		IsDefault: payload.IsDefault,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"address": updated})
}

func (h *Handler) setDefault(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	updated, err := h.service.SetDefault(id, userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"address": updated})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(id, userID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "address deleted"})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
	case ErrNotAuthorized:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
