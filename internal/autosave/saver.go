package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

// Key identifies one draft stream: the (task, user) pair the upsert
// is keyed on.
type Key struct {
	TaskID string
	UserID string
}

func (k Key) String() string {
	return k.TaskID + "/" + k.UserID
}

// SubmissionStore is the slice of the record store the saver needs.
type SubmissionStore interface {
	Upsert(ctx context.Context, s *models.Submission) error
	FindByTaskAndUser(ctx context.Context, taskID, userID string) (*models.Submission, error)
}

// SaveState is what the "Saving… / Last saved" indicator shows.
type SaveState struct {
	Saving      bool       `json:"saving"`
	LastSavedAt *time.Time `json:"lastSavedAt,omitempty"`
}

type draft struct {
	content     string
	saving      bool
	lastSavedAt *time.Time
}

// Saver keeps remote submissions eventually consistent with the
// latest draft edits without issuing one write per edit. Edits are
// recorded immediately; persistence is debounced per key. A failed
// flush is logged and swallowed — the next edit is the retry.
type Saver struct {
	store SubmissionStore
	sched *Scheduler
	log   *slog.Logger

	mu     sync.Mutex
	drafts map[Key]*draft
}

func NewSaver(store SubmissionStore, interval time.Duration, log *slog.Logger) *Saver {
	return &Saver{
		store:  store,
		sched:  NewScheduler(interval),
		log:    log,
		drafts: make(map[Key]*draft),
	}
}

// HandleChange replaces the in-memory draft content immediately and
// re-arms the debounce timer; only the last change within any window
// triggers a write.
func (s *Saver) HandleChange(key Key, content string) {
	s.mu.Lock()
	d := s.draft(key)
	d.content = content
	s.mu.Unlock()

	s.sched.Schedule(key.String(), func() {
		s.flush(key)
	})
}

// Seed returns the draft content for key. An in-memory draft always
// wins over the stored submission, so a load arriving while an edit
// sits in its debounce window never rolls the draft back to stale
// content. Only a key with no draft yet reads the store; absence is
// not an error, and a failed read is logged and the draft starts
// empty rather than blocking entry on a transient error.
func (s *Saver) Seed(ctx context.Context, key Key) string {
	s.mu.Lock()
	if d, ok := s.drafts[key]; ok {
		content := d.content
		s.mu.Unlock()
		return content
	}
	s.mu.Unlock()

	sub, err := s.store.FindByTaskAndUser(ctx, key.TaskID, key.UserID)
	if err != nil {
		s.log.Error("loading existing submission failed", "task_id", key.TaskID, "user_id", key.UserID, "error", err)
		return ""
	}
	if sub == nil {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.drafts[key]; ok {
		// An edit arrived while the read was in flight; keep it.
		return d.content
	}
	saved := sub.UpdatedAt
	s.drafts[key] = &draft{content: sub.Content, lastSavedAt: &saved}
	return sub.Content
}

// Flush forces the pending write for key out now, if one is armed.
func (s *Saver) Flush(key Key) {
	s.sched.Flush(key.String())
}

// State reports the in-flight flag and last successful save time.
func (s *Saver) State(key Key) SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[key]
	if !ok {
		return SaveState{}
	}
	return SaveState{Saving: d.saving, LastSavedAt: d.lastSavedAt}
}

// Close drains pending writes. An edit still inside its debounce
// window at process end is an unsaved edit; Close writes it out
// instead of dropping it.
func (s *Saver) Close() {
	s.sched.Close()
}

func (s *Saver) flush(key Key) {
	if key.TaskID == "" || key.UserID == "" {
		return
	}

	s.mu.Lock()
	d := s.draft(key)
	content := d.content
	d.saving = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		d.saving = false
		s.mu.Unlock()
	}()

	sub := &models.Submission{
		ID:      uuid.NewString(),
		TaskID:  key.TaskID,
		UserID:  key.UserID,
		Content: content,
		Status:  models.SubmissionStatusPending,
	}
	if err := s.store.Upsert(context.Background(), sub); err != nil {
		// Swallowed: the user only sees the missing "last saved"
		// update, and the next edit retries implicitly.
		s.log.Error("autosave flush failed", "task_id", key.TaskID, "user_id", key.UserID, "error", err)
		return
	}

	now := time.Now()
	s.mu.Lock()
	d.lastSavedAt = &now
	s.mu.Unlock()
}

// draft returns the entry for key, creating it. Callers hold mu.
func (s *Saver) draft(key Key) *draft {
	d, ok := s.drafts[key]
	if !ok {
		d = &draft{}
		s.drafts[key] = d
	}
	return d
}
