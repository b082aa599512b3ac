package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIngest(repo *memInternshipRepo, embeddings EmbeddingService) IngestService {
	if embeddings == nil {
		embeddings = &stubEmbeddings{}
	}
	return NewIngestService(repo, NewFeatureExtractor(), NewRegionClassifier(nil), embeddings)
}

func manilaPosting(title, company string) RawPosting {
	return RawPosting{
		Title:       title,
		Company:     company,
		Location:    "Makati, Metro Manila",
		Description: "Internship using Python and SQL for data analysis.",
		URL:         "https://example.com/jobs/1",
	}
}

func TestAcceptRequiresRegionSignal(t *testing.T) {
	ingest := newTestIngest(&memInternshipRepo{}, nil)

	assert.True(t, ingest.Accept(manilaPosting("Data Intern", "Acme")))

	foreign := RawPosting{
		Title:       "Data Intern",
		Company:     "Acme",
		Location:    "New York, NY",
		Description: "Internship using Python.",
		URL:         "https://example.com/jobs/2",
	}
	assert.False(t, ingest.Accept(foreign))
}

func TestIngestSavesNewPosting(t *testing.T) {
	repo := &memInternshipRepo{}
	ingest := newTestIngest(repo, nil)

	response, err := ingest.IngestPostings(context.Background(), []RawPosting{
		manilaPosting("Data Intern", "Acme PH"),
	}, "rapidapi")
	require.NoError(t, err)

	assert.Equal(t, 1, response.Inserted)
	require.Len(t, response.Items, 1)
	assert.True(t, response.Items[0].Saved)
	assert.Empty(t, response.Items[0].Reason)

	require.Len(t, repo.stored, 1)
	saved := repo.stored[0]
	assert.NotEqual(t, "", saved.ID.String())
	assert.Equal(t, "rapidapi", saved.Source)
	assert.True(t, saved.IsActive)
	assert.True(t, saved.InRegion)
	assert.Contains(t, saved.RequiredSkills, "python")
	assert.Contains(t, saved.RequiredSkills, "sql")
	assert.NotEmpty(t, saved.EmbeddingRef)
}

func TestIngestRejectsOutOfRegion(t *testing.T) {
	repo := &memInternshipRepo{}
	ingest := newTestIngest(repo, nil)

	posting := manilaPosting("Data Intern", "Acme")
	posting.Location = "Berlin, Germany"

	response, err := ingest.IngestPostings(context.Background(), []RawPosting{posting}, "rapidapi")
	require.NoError(t, err)

	assert.Equal(t, 0, response.Inserted)
	require.Len(t, response.Items, 1)
	assert.False(t, response.Items[0].Saved)
	assert.Equal(t, "out-of-region", response.Items[0].Reason)
	assert.Empty(t, repo.stored)
}

func TestIngestSkipsDuplicates(t *testing.T) {
	repo := &memInternshipRepo{}
	ingest := newTestIngest(repo, nil)

	batch := []RawPosting{
		manilaPosting("Data Intern", "Acme PH"),
		manilaPosting("Data Intern", "Acme PH"),
	}

	response, err := ingest.IngestPostings(context.Background(), batch, "rapidapi")
	require.NoError(t, err)

	assert.Equal(t, 1, response.Inserted)
	require.Len(t, response.Items, 2)
	assert.True(t, response.Items[0].Saved)
	assert.Equal(t, "duplicate", response.Items[1].Reason)
	assert.Len(t, repo.stored, 1)
}

func TestIngestMergesExplicitSkills(t *testing.T) {
	repo := &memInternshipRepo{}
	ingest := newTestIngest(repo, nil)

	posting := manilaPosting("Data Intern", "Acme PH")
	posting.Skills = []string{" Tableau ", "Python"}

	_, err := ingest.IngestPostings(context.Background(), []RawPosting{posting}, "rapidapi")
	require.NoError(t, err)

	require.Len(t, repo.stored, 1)
	skills := SplitSkillList(repo.stored[0].RequiredSkills)
	assert.Contains(t, skills, "tableau")

	counts := map[string]int{}
	for _, s := range skills {
		counts[s]++
	}
	assert.Equal(t, 1, counts["python"])
}

func TestIngestStoresPostingWhenEmbeddingFails(t *testing.T) {
	repo := &memInternshipRepo{}
	embeddings := &stubEmbeddings{embedErr: errors.New("model offline")}
	ingest := newTestIngest(repo, embeddings)

	response, err := ingest.IngestPostings(context.Background(), []RawPosting{
		manilaPosting("Data Intern", "Acme PH"),
	}, "rapidapi")
	require.NoError(t, err)

	assert.Equal(t, 1, response.Inserted)
	require.Len(t, repo.stored, 1)
	assert.Empty(t, repo.stored[0].EmbeddingRef)
}

func TestIngestDefaultsMissingFields(t *testing.T) {
	repo := &memInternshipRepo{}
	ingest := newTestIngest(repo, nil)

	posting := manilaPosting("", "")

	_, err := ingest.IngestPostings(context.Background(), []RawPosting{posting}, "rapidapi")
	require.NoError(t, err)

	require.Len(t, repo.stored, 1)
	assert.Equal(t, "Unknown", repo.stored[0].Title)
	assert.Equal(t, "Unknown", repo.stored[0].CompanyName)
}

func TestIngestStopsOnCancelledContext(t *testing.T) {
	repo := &memInternshipRepo{}
	ingest := newTestIngest(repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	response, err := ingest.IngestPostings(ctx, []RawPosting{
		manilaPosting("Data Intern", "Acme PH"),
	}, "rapidapi")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, response.Inserted)
	assert.Empty(t, repo.stored)
}
