package app

import (
	"sync"
	"time"

	"survey-builder-service/internal/builder"
	"survey-builder-service/internal/domain"
)

// DefaultNoticeTimeout is how long a rejection banner stays up.
const DefaultNoticeTimeout = 3 * time.Second

// IncompleteNotice is shown when AddQuestion is refused.
const IncompleteNotice = "Please complete all questions before adding a new one."

// Scheduler runs fn once after d and returns a function that cancels it.
type Scheduler func(d time.Duration, fn func()) (cancel func() bool)

// TimerScheduler schedules with time.AfterFunc.
func TimerScheduler(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Notice is a transient user-facing message, dismissed automatically.
type Notice struct {
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raisedAt"`
}

// Snapshot is the state an editing surface renders.
type Snapshot struct {
	SessionID  string            `json:"sessionId"`
	Revision   int               `json:"revision"`
	Questions  []domain.Question `json:"questions"`
	SelectedID string            `json:"selectedId,omitempty"`
	Responses  domain.Responses  `json:"responses"`
	Incomplete []string          `json:"incomplete"`
	Notice     *Notice           `json:"notice,omitempty"`
}

// SessionOptions tunes new sessions.
type SessionOptions struct {
	NoticeTimeout time.Duration
	Schedule      Scheduler
	Now           func() time.Time
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.NoticeTimeout <= 0 {
		o.NoticeTimeout = DefaultNoticeTimeout
	}
	if o.Schedule == nil {
		o.Schedule = TimerScheduler
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Session is one editing surface: the question list plus the selection,
// responses and notice that live beside it. The mutex makes every call a
// single writer over the reducer.
type Session struct {
	id      string
	reducer *builder.Reducer
	opts    SessionOptions

	mu           sync.Mutex
	questions    []domain.Question
	selected     string
	responses    domain.Responses
	notice       *Notice
	noticeGen    uint64
	cancelNotice func() bool
	revision     int
	subscribers  map[chan Snapshot]struct{}
}

// NewSession builds a session seeded with questions. The seed must satisfy
// builder.CheckQuestions.
func NewSession(id string, ids builder.IDGenerator, seed []domain.Question, opts SessionOptions) *Session {
	questions := make([]domain.Question, len(seed))
	for i, q := range seed {
		q.Options = append([]domain.Option{}, q.Options...)
		questions[i] = q
	}
	return &Session{
		id:          id,
		reducer:     builder.NewReducer(ids),
		opts:        opts.withDefaults(),
		questions:   questions,
		selected:    builder.ValidSelection(questions, ""),
		responses:   domain.Responses{},
		subscribers: make(map[chan Snapshot]struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Dispatch applies one action. AddQuestion is refused with
// domain.ErrIncompleteQuestions while any question is still a draft; the
// refusal also raises a notice. New questions always get a generated id.
func (s *Session) Dispatch(action builder.Action) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action = builder.Canonical(action)
	switch a := action.(type) {
	case nil:
		return s.snapshotLocked(), domain.ErrUnknownAction
	case builder.AddQuestion:
		if !builder.AllComplete(s.questions) {
			s.raiseNoticeLocked(IncompleteNotice)
			return s.broadcastLocked(), domain.ErrIncompleteQuestions
		}
		// Ids come from the generator only; a caller-chosen id could repeat a deleted one.
		a.ID = s.reducer.NewQuestionID(s.questions)
		s.questions = s.reducer.Apply(s.questions, a)
		s.selected = a.ID
	case builder.RemoveQuestion:
		s.questions = s.reducer.Apply(s.questions, a)
		delete(s.responses, a.ID)
	case builder.ChangeType:
		if q, ok := builder.Find(s.questions, a.ID); ok && a.Type.Valid() && q.Type != a.Type {
			delete(s.responses, a.ID)
		}
		s.questions = s.reducer.Apply(s.questions, a)
	default:
		s.questions = s.reducer.Apply(s.questions, action)
	}

	s.selected = builder.ValidSelection(s.questions, s.selected)
	return s.broadcastLocked(), nil
}

// Select moves the selection. Unknown ids fall back like any other stale selection.
func (s *Session) Select(questionID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = builder.ValidSelection(s.questions, questionID)
	return s.broadcastLocked()
}

// Respond records an answer. Choice answers are re-captured from the
// question's current option so the stored text matches what was shown.
func (s *Session) Respond(questionID string, resp domain.Response) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := builder.Find(s.questions, questionID)
	if !ok {
		return s.snapshotLocked(), domain.ErrQuestionNotFound
	}
	if resp.Kind() != q.Type {
		return s.snapshotLocked(), domain.ErrInvalidResponse
	}
	if choice, isChoice := resp.Choice(); isChoice {
		opt, found := q.FindOption(choice.OptionID)
		if !found {
			return s.snapshotLocked(), domain.ErrOptionNotFound
		}
		resp = domain.ChoiceResponse(opt)
	}
	s.responses[questionID] = resp
	return s.broadcastLocked(), nil
}

// ClearResponse marks a question unanswered again.
func (s *Session) ClearResponse(questionID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.responses, questionID)
	return s.broadcastLocked()
}

// DismissNotice clears the banner before its timer fires.
func (s *Session) DismissNotice() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil {
		return s.snapshotLocked()
	}
	s.clearNoticeLocked()
	return s.broadcastLocked()
}

// Snapshot returns the current state without changing it.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// IsIdle reports whether nobody is subscribed to the session.
func (s *Session) IsIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers) == 0
}

func (s *Session) subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) raiseNoticeLocked(message string) {
	if s.cancelNotice != nil {
		s.cancelNotice()
	}
	s.noticeGen++
	gen := s.noticeGen
	s.notice = &Notice{Message: message, RaisedAt: s.opts.Now()}
	s.cancelNotice = s.opts.Schedule(s.opts.NoticeTimeout, func() {
		s.expireNotice(gen)
	})
}

// expireNotice is the timer callback; a superseded or already dismissed
// notice makes it a no-op.
func (s *Session) expireNotice(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.noticeGen || s.notice == nil {
		return
	}
	s.notice = nil
	s.cancelNotice = nil
	s.broadcastLocked()
}

func (s *Session) clearNoticeLocked() {
	if s.cancelNotice != nil {
		s.cancelNotice()
		s.cancelNotice = nil
	}
	s.noticeGen++
	s.notice = nil
}

func (s *Session) broadcastLocked() Snapshot {
	s.revision++
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Slow subscriber: drop its oldest pending snapshot.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (s *Session) snapshotLocked() Snapshot {
	questions := make([]domain.Question, len(s.questions))
	copy(questions, s.questions)
	incomplete := builder.Incomplete(s.questions)
	if incomplete == nil {
		incomplete = []string{}
	}
	var notice *Notice
	if s.notice != nil {
		n := *s.notice
		notice = &n
	}
	return Snapshot{
		SessionID:  s.id,
		Revision:   s.revision,
		Questions:  questions,
		SelectedID: s.selected,
		Responses:  s.responses.Clone(),
		Incomplete: incomplete,
		Notice:     notice,
	}
}
