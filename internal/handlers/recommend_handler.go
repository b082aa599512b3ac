package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"internmatch/internship-matcher/internal/repositories"
	"internmatch/internship-matcher/internal/services"
)

type RecommendHandler struct {
	matcher    services.MatcherService
	resumeRepo repositories.ResumeRepository
	recRepo    repositories.RecommendationRepository
}

func NewRecommendHandler(
	matcher services.MatcherService,
	resumeRepo repositories.ResumeRepository,
	recRepo repositories.RecommendationRepository,
) *RecommendHandler {
	return &RecommendHandler{
		matcher:    matcher,
		resumeRepo: resumeRepo,
		recRepo:    recRepo,
	}
}

// HandleRecommend handles GET /recommendations/:resume_id. The special
// id "latest" ranks the most recently uploaded resume.
func (h *RecommendHandler) HandleRecommend(c *fiber.Ctx) error {
	resumeID, err := h.resolveResumeID(c.Params("resume_id"))
	if err != nil {
		return resumeIDError(c, err)
	}

	response, err := h.matcher.RecommendForResume(c.Context(), resumeID)
	if err != nil {
		// Only an absent resume is the client's fault; persistence
		// failures and cancellations are server-side.
		status := fiber.StatusInternalServerError
		if errors.Is(err, repositories.ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(response)
}

// HandleHistory handles GET /recommendations/:resume_id/history and
// returns the stored audit trail for a resume.
func (h *RecommendHandler) HandleHistory(c *fiber.Ctx) error {
	resumeID, err := h.resolveResumeID(c.Params("resume_id"))
	if err != nil {
		return resumeIDError(c, err)
	}

	recs, err := h.recRepo.FindByResumeID(resumeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"resume_id":       resumeID.String(),
		"recommendations": recs,
	})
}

func resumeIDError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid resume ID format",
	})
}

func (h *RecommendHandler) resolveResumeID(param string) (uuid.UUID, error) {
	if param == "latest" {
		resume, err := h.resumeRepo.FindLatest()
		if err != nil {
			return uuid.Nil, err
		}
		return resume.ID, nil
	}

	return uuid.Parse(param)
}
