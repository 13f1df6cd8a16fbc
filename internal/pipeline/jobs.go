package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/docnum/internal/render"
	"github.com/google/uuid"
)

// JobStatus represents the state of a page render job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusFetching  JobStatus = "fetching"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Job tracks the state of a single page render.
type Job struct {
	mu sync.Mutex

	ID   string `json:"job_id"`
	Page string `json:"page"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	result *render.Page
	errors []string
}

// NewJob returns a queued job for the named page.
func NewJob(page string) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Page:      page,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Progress summarises what a finished render produced.
type Progress struct {
	Headings     int      `json:"headings"`
	Environments int      `json:"environments"`
	Equations    int      `json:"equations"`
	Unresolved   []string `json:"unresolved"`
	Errors       []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash of the fetched source.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// SetResult stores the rendered page.
func (j *Job) SetResult(p *render.Page) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = p
	j.UpdatedAt = time.Now()
}

// Result returns the rendered page, or nil before the job completes.
func (j *Job) Result() *render.Page {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string       `json:"job_id"`
	Page        string       `json:"page"`
	Status      JobStatus    `json:"status"`
	Phase       string       `json:"phase"`
	ContentHash string       `json:"content_hash,omitempty"`
	Progress    Progress     `json:"progress"`
	Result      *render.Page `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state. The result is
// shared; it is never modified once set.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.errors...)
	progress := Progress{Unresolved: []string{}, Errors: errs}
	if p := j.result; p != nil {
		for _, e := range p.Outline {
			if e.Kind == "environment" {
				progress.Environments++
			} else {
				progress.Headings++
			}
		}
		progress.Equations = len(p.Equations)
		progress.Unresolved = append(progress.Unresolved, p.Unresolved...)
	}
	return JobSnapshot{
		ID:          j.ID,
		Page:        j.Page,
		Status:      j.Status,
		Phase:       j.Phase,
		ContentHash: j.ContentHash,
		Progress:    progress,
		Result:      j.result,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
