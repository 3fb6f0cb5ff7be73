package documents

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router, h *Handler) {
	grp := r.Group("/documents")

	grp.Get("/:id", h.HandleGetDocument)
	grp.Get("/:id/chunks", h.HandleListChunks)
}
