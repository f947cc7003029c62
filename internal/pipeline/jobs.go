package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusSplitting JobStatus = "splitting"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Part is one rendered output document of a conversion.
type Part struct {
	Index     int               `json:"index"`
	Title     string            `json:"title"`
	Slug      string            `json:"slug"`
	WordCount int               `json:"word_count"`
	Markdown  string            `json:"markdown"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Job tracks the state of a single document conversion.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Filename  string    `json:"filename"`
	SplitSpec string    `json:"split_spec"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	parts    []Part
	errors   []string
}

// Progress tracks conversion progress.
type Progress struct {
	TotalParts    int      `json:"total_parts"`
	PartsRendered int      `json:"parts_rendered"`
	Words         int      `json:"words"`
	Errors        []string `json:"errors"`
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

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
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
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrPartsRendered atomically increments the rendered part count.
func (j *Job) IncrPartsRendered() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PartsRendered++
	j.UpdatedAt = time.Now()
}

// SetTotalParts records the part count the splitter produced.
func (j *Job) SetTotalParts(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalParts = n
	j.UpdatedAt = time.Now()
}

// AddWords accumulates rendered word counts.
func (j *Job) AddWords(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Words += n
	j.UpdatedAt = time.Now()
}

// SetContentHash records the input content hash.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetParts stores the rendered output and releases the input bytes.
func (j *Job) SetParts(parts []Part) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.parts = parts
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Parts returns the rendered output documents.
func (j *Job) Parts() []Part {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.parts
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	SplitSpec   string    `json:"split_spec"`
	ContentHash string    `json:"content_hash,omitempty"`
	Progress    Progress  `json:"progress"`
	Parts       []Part    `json:"parts,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state. Parts are included
// once the job has finished.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	snap := JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		SplitSpec:   j.SplitSpec,
		ContentHash: j.ContentHash,
		Progress: Progress{
			TotalParts:    j.Progress.TotalParts,
			PartsRendered: j.Progress.PartsRendered,
			Words:         j.Progress.Words,
			Errors:        errs,
		},
	}
	if j.Status == StatusCompleted || j.Status == StatusPartial {
		snap.Parts = j.parts
	}
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
