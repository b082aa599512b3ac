package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// RefreshWorker runs posting refreshes in the background: uploads
// enqueue a refresh instead of scraping synchronously, so ingestion
// latency and failures never reach the scoring path.
type RefreshWorker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueRefresh(query string, limit int)
}

type refreshJob struct {
	query string
	limit int
}

type refreshWorker struct {
	scraper      ScraperService
	ingest       IngestService
	jobQueue     chan refreshJob
	concurrency  int
	pollInterval time.Duration
	defaultQuery string
	defaultLimit int
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

func NewRefreshWorker(
	scraper ScraperService,
	ingest IngestService,
	concurrency int,
	defaultQuery string,
	defaultLimit int,
) RefreshWorker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &refreshWorker{
		scraper:      scraper,
		ingest:       ingest,
		jobQueue:     make(chan refreshJob, 100),
		concurrency:  concurrency,
		pollInterval: time.Hour,
		defaultQuery: defaultQuery,
		defaultLimit: defaultLimit,
		stopChan:     make(chan struct{}),
	}
}

// Start implements RefreshWorker.
func (w *refreshWorker) Start(ctx context.Context) {
	log.Printf("🚀 Starting refresh worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPeriodically(ctx)

	log.Println("✅ Refresh worker started successfully")
}

// Stop implements RefreshWorker.
func (w *refreshWorker) Stop() {
	log.Println("🛑 Stopping refresh worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	log.Println("✅ Refresh worker stopped")
}

// EnqueueRefresh implements RefreshWorker.
func (w *refreshWorker) EnqueueRefresh(query string, limit int) {
	if query == "" {
		query = w.defaultQuery
	}
	if limit <= 0 {
		limit = w.defaultLimit
	}

	select {
	case w.jobQueue <- refreshJob{query: query, limit: limit}:
		log.Printf("📥 Refresh for %q enqueued\n", query)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue refresh for %q\n", query)
	default:
		// Queue full: a refresh is already pending, dropping is fine.
		log.Printf("⚠️  Refresh queue full, dropping refresh for %q\n", query)
	}
}

func (w *refreshWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Refresh worker %d started\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Refresh worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			log.Printf("👷 Worker #%d refreshing postings for %q\n", workerID, job.query)
			if err := w.refresh(ctx, job); err != nil {
				log.Printf("❌ Worker #%d refresh failed: %v\n", workerID, err)
			}
		}
	}
}

func (w *refreshWorker) refresh(ctx context.Context, job refreshJob) error {
	postings, err := w.scraper.FetchInternships(ctx, job.query, job.limit)
	if err != nil {
		return err
	}

	result, err := w.ingest.IngestPostings(ctx, postings, "rapidapi")
	if err != nil {
		return err
	}

	log.Printf("✅ Refresh for %q completed: %d fetched, %d inserted\n", job.query, result.Count, result.Inserted)
	return nil
}

func (w *refreshWorker) pollPeriodically(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting periodic refresh poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Periodic refresh poller stopped")
			return
		case <-ticker.C:
			w.EnqueueRefresh(w.defaultQuery, w.defaultLimit)
		}
	}
}
