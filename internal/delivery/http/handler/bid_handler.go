package handler

import (
	"errors"

	"github.com/farukalways/freelancing-platform-create/internal/delivery/http/middleware"
	"github.com/farukalways/freelancing-platform-create/internal/domain/bid"
	"github.com/farukalways/freelancing-platform-create/internal/pkg/response"
	"github.com/farukalways/freelancing-platform-create/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BidHandler struct {
	uc   usecase.BidUsecase
	auth *middleware.AuthMiddleware
}

type bidStatusRequest struct {
	Status string `json:"status"`
}

func NewBidHandler(uc usecase.BidUsecase, auth *middleware.AuthMiddleware) *BidHandler {
	return &BidHandler{uc: uc, auth: auth}
}

func (h *BidHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/add-bid", h.Place)
	r.Get("/bids/:email", h.auth.Middleware(), h.ListMine)
	r.Get("/bid-requests/:email", h.auth.Middleware(), h.ListRequests)
	r.Patch("/bid-status-updated/:id", h.UpdateStatus)
}

func (h *BidHandler) Place(c fiber.Ctx) error {
	var b bid.Bid
	if err := c.Bind().Body(&b); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	id, err := h.uc.Place(c.Context(), b)
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateBid) {
			// Bare text body, matching what callers already parse.
			return c.Status(fiber.StatusBadRequest).SendString(response.MessageDuplicateBid)
		}
		return err
	}
	return c.JSON(fiber.Map{"acknowledged": true, "insertedId": id.String()})
}

func (h *BidHandler) ListMine(c fiber.Ctx) error {
	email := c.Params("email")
	if err := middleware.RequireOwner(c, email); err != nil {
		return err
	}

	items, err := h.uc.ListByBidder(c.Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *BidHandler) ListRequests(c fiber.Ctx) error {
	email := c.Params("email")
	if err := middleware.RequireOwner(c, email); err != nil {
		return err
	}

	items, err := h.uc.ListByOwner(c.Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *BidHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return err
	}

	var req bidStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	n, err := h.uc.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"acknowledged": true, "matchedCount": n, "modifiedCount": n})
}
