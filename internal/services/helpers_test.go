package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"internmatch/internship-matcher/internal/models"
	"internmatch/internship-matcher/internal/repositories"
)

// stubEmbeddings is an in-memory EmbeddingService for scorer and
// matcher tests.
type stubEmbeddings struct {
	vectors  map[string][]float32
	embedErr error
}

func (s *stubEmbeddings) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	return []float32{0.1, 0.2}, nil
}

func (s *stubEmbeddings) EmbedAndStore(ctx context.Context, entityID, namespace, text string) (string, error) {
	if s.embedErr != nil {
		return "", s.embedErr
	}
	return makeHandle("stub", namespace, entityID), nil
}

func (s *stubEmbeddings) Load(ctx context.Context, handle string) ([]float32, error) {
	if vec, ok := s.vectors[handle]; ok {
		return vec, nil
	}
	return nil, fmt.Errorf("%w: no vector for %q", ErrEmbeddingUnavailable, handle)
}

// stubGemini lets tests script the provider's behavior.
type stubGemini struct {
	text      string
	err       error
	blockCtx  bool
	embedding []float32
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.embedding, nil
}

func (s *stubGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	if s.blockCtx {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

// memInternshipRepo is an in-memory InternshipRepository.
type memInternshipRepo struct {
	mu     sync.Mutex
	stored []*models.Internship
	active []models.Internship
}

func (m *memInternshipRepo) InsertIfNew(internship *models.Internship) (bool, error) {
	exists, _ := m.ExistsByTitleCompany(internship.Title, internship.CompanyName)
	if exists {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = append(m.stored, internship)
	return true, nil
}

func (m *memInternshipRepo) ExistsByTitleCompany(title, company string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.stored {
		if i.Title == title && i.CompanyName == company {
			return true, nil
		}
	}
	return false, nil
}

func (m *memInternshipRepo) FindByID(id uuid.UUID) (*models.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.stored {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, fmt.Errorf("internship not found: %w", repositories.ErrNotFound)
}

func (m *memInternshipRepo) FindActive() ([]models.Internship, error) {
	if m.active != nil {
		return m.active, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Internship
	for _, i := range m.stored {
		if i.IsActive {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *memInternshipRepo) UpdateEmbeddingRef(id uuid.UUID, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.stored {
		if i.ID == id {
			i.EmbeddingRef = ref
			return nil
		}
	}
	return fmt.Errorf("internship not found")
}

// memResumeRepo is an in-memory ResumeRepository.
type memResumeRepo struct {
	resumes map[uuid.UUID]*models.Resume
}

func (m *memResumeRepo) Create(resume *models.Resume) error {
	if m.resumes == nil {
		m.resumes = make(map[uuid.UUID]*models.Resume)
	}
	m.resumes[resume.ID] = resume
	return nil
}

func (m *memResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	if resume, ok := m.resumes[id]; ok {
		return resume, nil
	}
	return nil, fmt.Errorf("resume not found: %w", repositories.ErrNotFound)
}

func (m *memResumeRepo) FindLatest() (*models.Resume, error) {
	for _, resume := range m.resumes {
		return resume, nil
	}
	return nil, fmt.Errorf("no resumes uploaded yet: %w", repositories.ErrNotFound)
}

// memRecRepo captures appended recommendation batches.
type memRecRepo struct {
	mu      sync.Mutex
	batches [][]models.Recommendation
}

func (m *memRecRepo) CreateBatch(recs []models.Recommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, recs)
	return nil
}

func (m *memRecRepo) FindByResumeID(resumeID uuid.UUID) ([]models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Recommendation
	for _, batch := range m.batches {
		for _, rec := range batch {
			if rec.ResumeID == resumeID {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

// memEmbeddingRepo is an in-memory EmbeddingRepository backing the
// inline vector store in tests.
type memEmbeddingRepo struct {
	records map[string]*models.EmbeddingRecord
}

func (m *memEmbeddingRepo) key(entityID, namespace string) string {
	return namespace + "/" + entityID
}

func (m *memEmbeddingRepo) Upsert(record *models.EmbeddingRecord) error {
	if m.records == nil {
		m.records = make(map[string]*models.EmbeddingRecord)
	}
	m.records[m.key(record.EntityID, record.Namespace)] = record
	return nil
}

func (m *memEmbeddingRepo) FindByEntity(entityID, namespace string) (*models.EmbeddingRecord, error) {
	if record, ok := m.records[m.key(entityID, namespace)]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("embedding not found")
}
