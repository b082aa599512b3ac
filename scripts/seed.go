package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internmatch/internship-matcher/internal/config"
	"internmatch/internship-matcher/internal/models"
	"internmatch/internship-matcher/internal/repositories"
	"internmatch/internship-matcher/internal/services"
)

// Seed operations are statically registered by name and invoked by
// reference only; nothing is loaded dynamically at runtime.
type seedDeps struct {
	db         *gorm.DB
	ingest     services.IngestService
	embeddings services.EmbeddingService
	chunker    services.TextChunker
}

var seedOps = map[string]func(ctx context.Context, deps seedDeps) error{
	"internships":    seedInternships,
	"students":       seedStudents,
	"reference-docs": seedReferenceDocs,
}

func main() {
	log.Println("🚀 Starting seeding...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	internshipRepo := repositories.NewInternshipRepository(db)
	embeddingRepo := repositories.NewEmbeddingRepository(db)

	// Seeding works without an embedding model; postings are stored
	// and scoring uses skill/outcome signals until vectors exist.
	var gemini services.GeminiService
	if cfg.Gemini.APIKey != "" {
		gemini, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.TextModel, cfg.Gemini.EmbedModel)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini: %v", err)
		}
	}

	vectorStore := services.NewInlineVectorStore(embeddingRepo)
	embeddings := services.NewEmbeddingService(gemini, vectorStore)

	extractor := services.NewFeatureExtractor()
	region := services.NewRegionClassifier(cfg.Matcher.RegionExtraTokens)
	ingest := services.NewIngestService(internshipRepo, extractor, region, embeddings)

	deps := seedDeps{
		db:         db,
		ingest:     ingest,
		embeddings: embeddings,
		chunker:    services.NewTextChunker(),
	}

	names := os.Args[1:]
	if len(names) == 0 {
		for name := range seedOps {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	ctx := context.Background()
	for _, name := range names {
		op, ok := seedOps[name]
		if !ok {
			log.Fatalf("❌ Unknown seed operation: %s", name)
		}

		log.Printf("🌱 Running seed operation %q...\n", name)
		if err := op(ctx, deps); err != nil {
			log.Fatalf("❌ Seed operation %q failed: %v", name, err)
		}
		log.Printf("✅ Seed operation %q completed\n", name)
	}

	log.Println("✅ Seeding completed successfully")
}

func seedInternships(ctx context.Context, deps seedDeps) error {
	postings := []services.RawPosting{
		{
			Title:       "Software Engineering Intern",
			Company:     "TechHive Solutions",
			Location:    "Makati, Metro Manila",
			Description: "Join our backend team building APIs with Python, Django and PostgreSQL. Exposure to Docker and Git workflows. Strong software development fundamentals expected.",
			URL:         "https://careers.techhive.ph/jobs/swe-intern",
			Country:     "Philippines",
		},
		{
			Title:       "Data Analytics Intern",
			Company:     "Visayas Data Labs",
			Location:    "Cebu City",
			Description: "Work on data analysis and statistics projects with SQL and Python. You will support our data science team with reporting dashboards.",
			URL:         "https://visayasdatalabs.com/careers",
			Country:     "Philippines",
		},
		{
			Title:       "Network Operations Intern",
			Company:     "IslandNet",
			Location:    "Davao City",
			Description: "Assist with network monitoring, routing and switching. Linux and networking knowledge required.",
			URL:         "https://islandnet.ph/careers/noc-intern",
			Country:     "Philippines",
		},
		{
			Title:       "Frontend Developer Intern",
			Company:     "Manila Web Studio",
			Location:    "Remote (Philippines)",
			Description: "Build interfaces with JavaScript, React, HTML and CSS. Remote position open to candidates across the Philippines.",
			URL:         "https://manilawebstudio.ph/jobs",
			Country:     "",
		},
		{
			Title:       "Machine Learning Intern",
			Company:     "Luzon AI",
			Location:    "Quezon City",
			Description: "Support machine learning experiments with PyTorch and TensorFlow. Software development and data analysis experience is a plus.",
			URL:         "https://luzon.ai/careers/ml-intern",
			Country:     "PH",
		},
	}

	result, err := deps.ingest.IngestPostings(ctx, postings, "seed")
	if err != nil {
		return err
	}

	log.Printf("🌱 Seeded internships: %d processed, %d inserted\n", result.Count, result.Inserted)
	return nil
}

// seedReferenceDocs chunks career guidance documents and stores one
// vector per chunk, keyed by document slug and chunk index. Without
// an embedding model the operation is skipped rather than failed.
func seedReferenceDocs(ctx context.Context, deps seedDeps) error {
	docs := map[string]string{
		"internship-preparation-guide": "Internship applications in the Philippines usually open between " +
			"November and February, ahead of the April to July practicum term.\n\n" +
			"Prepare a one-page resume listing concrete skills such as Python, SQL or networking, " +
			"and include your GPA when it is above 3.0.\n\n" +
			"Tailor the skills section to each posting: recruiters filter on required skills " +
			"before reading anything else.",
		"outcome-categories-overview": "Software development roles cover backend, frontend and mobile programming work.\n\n" +
			"Data analysis roles center on statistics, reporting and data science support.\n\n" +
			"Networking roles involve routing, switching and network operations monitoring.",
	}

	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		chunks := deps.chunker.ChunkText(docs[name], 1000, 100)
		stored := 0
		for i, chunk := range chunks {
			entityID := fmt.Sprintf("%s#%d", name, i)
			if _, err := deps.embeddings.EmbedAndStore(ctx, entityID, "reference", chunk); err != nil {
				if errors.Is(err, services.ErrEmbeddingUnavailable) {
					log.Printf("⚠️  Skipping reference doc %q: %v\n", name, err)
					break
				}
				return err
			}
			stored++
		}
		if stored > 0 {
			log.Printf("🌱 Seeded reference doc %q (%d chunks)\n", name, stored)
		}
	}

	return nil
}

func seedStudents(ctx context.Context, deps seedDeps) error {
	gpa := 3.4
	students := []models.Student{
		{ID: uuid.New(), Name: "Demo Student", Email: "demo.student@example.edu", GPA: &gpa},
	}

	for _, student := range students {
		var count int64
		if err := deps.db.Model(&models.Student{}).Where("email = ?", student.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := deps.db.Create(&student).Error; err != nil {
			return err
		}
	}

	return nil
}
