package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"internmatch/internship-matcher/internal/services"
)

type IngestHandler struct {
	scraper services.ScraperService
	ingest  services.IngestService
}

func NewIngestHandler(scraper services.ScraperService, ingest services.IngestService) *IngestHandler {
	return &IngestHandler{
		scraper: scraper,
		ingest:  ingest,
	}
}

// HandleIngest handles POST /ingest: fetches postings from the
// configured source and runs them through the region/dedup gate.
func (h *IngestHandler) HandleIngest(c *fiber.Ctx) error {
	query := c.Query("query", "internship")
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	postings, err := h.scraper.FetchInternships(c.Context(), query, limit)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.ingest.IngestPostings(c.Context(), postings, "rapidapi")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}
