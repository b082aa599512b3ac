package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"internmatch/internship-matcher/internal/models"
	"internmatch/internship-matcher/internal/repositories"
	"internmatch/internship-matcher/internal/services"
)

type UploadHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	parser         services.ResumeParserService
	extractor      services.FeatureExtractor
	embeddings     services.EmbeddingService
	refreshWorker  services.RefreshWorker
	maxFileSize    int64
}

func NewUploadHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	parser services.ResumeParserService,
	extractor services.FeatureExtractor,
	embeddings services.EmbeddingService,
	refreshWorker services.RefreshWorker,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		parser:         parser,
		extractor:      extractor,
		embeddings:     embeddings,
		refreshWorker:  refreshWorker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadResume handles POST /upload-resume.
func (h *UploadHandler) HandleUploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveResume(file)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrUnsupportedInputFormat) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	content, err := h.parser.Parse(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrUnsupportedInputFormat) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to parse resume: %v", err),
		})
	}

	features := h.extractor.Extract(content.Text)

	resume := models.Resume{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		ParsedText:       features.Text,
		Skills:           services.JoinSkillList(features.Skills),
		Outcomes:         services.JoinSkillList(features.Outcomes),
		GPA:              features.GPA,
		CreatedAt:        time.Now(),
	}

	// Embedding is best-effort; a missing vector only degrades the
	// learned scorer to skill/outcome signals.
	handle, err := h.embeddings.EmbedAndStore(c.Context(), resume.ID.String(), services.NamespaceResume, features.Text)
	if err != nil {
		log.Printf("⚠️  Failed to embed resume %s: %v\n", resume.ID, err)
	} else {
		resume.EmbeddingRef = handle
	}

	if err := h.resumeRepo.Create(&resume); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume record: %v", err),
		})
	}

	// Kick a background posting refresh; never block the upload on it.
	h.refreshWorker.EnqueueRefresh("", 0)

	return c.Status(fiber.StatusCreated).JSON(models.UploadResumeResponse{
		ResumeID:        resume.ID.String(),
		Filename:        resume.Filename,
		OriginalName:    resume.OriginalFileName,
		ExtractedSkills: features.Skills,
		Outcomes:        features.Outcomes,
		GPA:             features.GPA,
	})
}
