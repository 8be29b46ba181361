package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/persistence"
)

// HealthHandler reports database connectivity.
type HealthHandler struct {
	db *persistence.Postgres
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(db *persistence.Postgres) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health. It acquires a fresh connection and runs a
// trivial query; failures are reported, never fatal to the process.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	conn, err := h.db.Acquire(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"db":    "error",
			"error": err.Error(),
		})
	}
	defer conn.Release()

	var one int
	if err := conn.QueryRow(c.Context(), `SELECT 1`).Scan(&one); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"db":    "error",
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"db": "ok"})
}
