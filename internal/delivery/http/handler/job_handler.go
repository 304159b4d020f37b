package handler

import (
	"github.com/farukalways/freelancing-platform-create/internal/delivery/http/middleware"
	"github.com/farukalways/freelancing-platform-create/internal/domain/job"
	"github.com/farukalways/freelancing-platform-create/internal/repository"
	"github.com/farukalways/freelancing-platform-create/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc   usecase.JobUsecase
	auth *middleware.AuthMiddleware
}

func NewJobHandler(uc usecase.JobUsecase, auth *middleware.AuthMiddleware) *JobHandler {
	return &JobHandler{uc: uc, auth: auth}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/add-job", h.Create)
	r.Get("/jobs", h.ListAll)
	r.Get("/all-jobs", h.Search)
	r.Get("/myJob/:email", h.auth.Middleware(), h.ListMine)
	r.Get("/Job/:id", h.Get)
	r.Delete("/job/:id", h.Delete)
	r.Put("/update-job/:id", h.Update)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var j job.Job
	if err := c.Bind().Body(&j); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	id, err := h.uc.Create(c.Context(), j)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"acknowledged": true, "insertedId": id.String()})
}

func (h *JobHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *JobHandler) Search(c fiber.Ctx) error {
	items, err := h.uc.Search(c.Context(), repository.SearchParams{
		Search: c.Query("search"),
		Filter: c.Query("filter"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *JobHandler) ListMine(c fiber.Ctx) error {
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

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return err
	}

	j, found, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if !found {
		// Absence is an empty result, not an error.
		return c.JSON(nil)
	}
	return c.JSON(j)
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return err
	}

	n, err := h.uc.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"acknowledged": true, "deletedCount": n})
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return err
	}

	var j job.Job
	if err := c.Bind().Body(&j); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	res, err := h.uc.Upsert(c.Context(), id, j)
	if err != nil {
		return err
	}

	if res.Inserted {
		return c.JSON(fiber.Map{
			"acknowledged":  true,
			"matchedCount":  0,
			"modifiedCount": 0,
			"upsertedId":    id.String(),
		})
	}
	return c.JSON(fiber.Map{
		"acknowledged":  true,
		"matchedCount":  1,
		"modifiedCount": 1,
		"upsertedId":    nil,
	})
}
