package handler

import (
	"uhs-recruit/internal/middleware"
	"uhs-recruit/internal/repository"
	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// LookupHandler exposes one vendor-owned lookup list (locations, outlet types, positions).
type LookupHandler[T any, PT repository.OwnedPtr[T]] struct {
	svc  service.LookupService[T, PT]
	noun string
	log  *logger.Logger
}

func NewLookupHandler[T any, PT repository.OwnedPtr[T]](svc service.LookupService[T, PT], noun string, log *logger.Logger) *LookupHandler[T, PT] {
	return &LookupHandler[T, PT]{svc: svc, noun: noun, log: log}
}

// Mount registers GET/POST on path and PUT/DELETE on path/:id.
func (h *LookupHandler[T, PT]) Mount(r fiber.Router, path string) {
	r.Get(path, h.List)
	r.Post(path, h.Create)
	r.Put(path+"/:id", h.Update)
	r.Delete(path+"/:id", h.Delete)
}

func (h *LookupHandler[T, PT]) List(c *fiber.Ctx) error {
	rows, err := h.svc.List(c.UserContext(), middleware.Principal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *LookupHandler[T, PT]) Create(c *fiber.Ctx) error {
	row := PT(new(T))
	if err := parseBody(c, row); err != nil {
		return err
	}
	created, err := h.svc.Create(c.UserContext(), middleware.Principal(c), row)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(201).JSON(fiber.Map{"data": created})
}

func (h *LookupHandler[T, PT]) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	updated, err := h.svc.Update(c.UserContext(), middleware.Principal(c), id, func(row PT) error {
		return c.BodyParser(row)
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": updated})
}

func (h *LookupHandler[T, PT]) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), middleware.Principal(c), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": h.noun + " deleted successfully"})
}
