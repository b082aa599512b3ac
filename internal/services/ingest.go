package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"internmatch/internship-matcher/internal/models"
	"internmatch/internship-matcher/internal/repositories"
)

// RawPosting is an incoming posting from the scraping transport before
// it has passed the region/dedup gate.
type RawPosting struct {
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
	Country     string
	Skills      []string
	PostedDate  *time.Time
}

// IngestService gates and stores incoming postings. The region and
// dedup checks run before any skill extraction or embedding work, so
// out-of-scope and duplicate items cost nothing.
type IngestService interface {
	Accept(posting RawPosting) bool
	IngestPostings(ctx context.Context, postings []RawPosting, source string) (*models.IngestResponse, error)
}

type ingestService struct {
	internshipRepo repositories.InternshipRepository
	extractor      FeatureExtractor
	region         *RegionClassifier
	embeddings     EmbeddingService
}

func NewIngestService(
	internshipRepo repositories.InternshipRepository,
	extractor FeatureExtractor,
	region *RegionClassifier,
	embeddings EmbeddingService,
) IngestService {
	return &ingestService{
		internshipRepo: internshipRepo,
		extractor:      extractor,
		region:         region,
		embeddings:     embeddings,
	}
}

// Accept implements IngestService: conservative region gate, no
// positive signal means rejection.
func (s *ingestService) Accept(posting RawPosting) bool {
	return s.region.InRegion(posting.Location, posting.URL, posting.Description, posting.Country)
}

// IngestPostings implements IngestService.
func (s *ingestService) IngestPostings(ctx context.Context, postings []RawPosting, source string) (*models.IngestResponse, error) {
	response := &models.IngestResponse{Source: source}

	for _, posting := range postings {
		select {
		case <-ctx.Done():
			return response, ctx.Err()
		default:
		}

		item := models.IngestItemResult{
			Title:   posting.Title,
			Company: posting.Company,
		}

		if !s.Accept(posting) {
			item.Reason = "out-of-region"
			response.Items = append(response.Items, item)
			continue
		}

		exists, err := s.internshipRepo.ExistsByTitleCompany(posting.Title, posting.Company)
		if err != nil {
			return response, err
		}
		if exists {
			item.Reason = "duplicate"
			response.Items = append(response.Items, item)
			continue
		}

		skills := s.extractor.ExtractSkills(posting.Description)
		skills = mergeSkills(skills, posting.Skills)

		internship := &models.Internship{
			ID:             uuid.New(),
			Title:          orUnknown(posting.Title),
			CompanyName:    orUnknown(posting.Company),
			Location:       posting.Location,
			Description:    posting.Description,
			RequiredSkills: JoinSkillList(skills),
			PostingURL:     posting.URL,
			PostedDate:     posting.PostedDate,
			IsActive:       true,
			InRegion:       true,
			Source:         source,
		}

		inserted, err := s.internshipRepo.InsertIfNew(internship)
		if err != nil {
			return response, err
		}
		if !inserted {
			item.Reason = "duplicate"
			response.Items = append(response.Items, item)
			continue
		}

		// Embedding is best-effort: an unreachable model leaves the
		// posting stored without a vector and scoring degrades.
		handle, err := s.embeddings.EmbedAndStore(ctx, internship.ID.String(), NamespaceInternship, internship.Title+"\n"+internship.Description)
		if err != nil {
			log.Printf("⚠️  Failed to embed posting %q: %v\n", internship.Title, err)
		} else if err := s.internshipRepo.UpdateEmbeddingRef(internship.ID, handle); err != nil {
			log.Printf("⚠️  Failed to store embedding ref for %q: %v\n", internship.Title, err)
		}

		item.Saved = true
		response.Items = append(response.Items, item)
		response.Inserted++
	}

	response.Count = len(response.Items)
	return response, nil
}

func mergeSkills(extracted, explicit []string) []string {
	seen := make(map[string]struct{}, len(extracted))
	merged := make([]string, 0, len(extracted)+len(explicit))

	for _, s := range extracted {
		s = NormalizeSkill(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			merged = append(merged, s)
		}
	}
	for _, s := range explicit {
		s = NormalizeSkill(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			merged = append(merged, s)
		}
	}
	return merged
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
