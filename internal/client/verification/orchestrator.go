package verification

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/client"
	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/client/services"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/logging"
)

var (
	ErrBusy            = errors.New("verification already in progress")
	ErrEmptyDocumentID = errors.New("document id is empty")
)

type State int

const (
	Idle State = iota
	Verifying
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Verifying:
		return "verifying"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Observer receives the outcome of every verification. Calls happen on the
// worker goroutine.
type Observer interface {
	OnStatusChanged(doc *models.Document)
	OnError(message string)
}

// OfflineObserver is implemented by observers that want the last known
// snapshot when the registry cannot be reached.
type OfflineObserver interface {
	OnCachedDocument(snapshot *models.CachedDocument)
}

// Result is delivered once per Verify call.
type Result struct {
	// Document is nil only when the repository gave no answer at all.
	Document *models.Document
	// Err is a *client.TransportError when no round trip completed.
	Err      error
	Message  string
	Cached   *models.CachedDocument
	RecordID int64
}

// Completed reports whether the registry answered.
func (r Result) Completed() bool { return r.Document != nil && r.Err == nil }

type Orchestrator struct {
	repo    services.DocumentRepository
	history services.HistoryService
	offline services.OfflineService
	logger  logging.Logger
	now     services.Clock

	mu    sync.Mutex
	state State
	// busy stays set until the worker has finished, including observer
	// callbacks. runID identifies the run owning cancel.
	busy      bool
	runID     uint64
	cancel    context.CancelFunc
	observers []Observer
}

type Option func(*Orchestrator)

func WithClock(now services.Clock) Option { return func(o *Orchestrator) { o.now = now } }

func New(repo services.DocumentRepository, history services.HistoryService, offline services.OfflineService, logger logging.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		repo:    repo,
		history: history,
		offline: offline,
		logger:  logger.With("module", "verification"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) Subscribe(obs Observer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, obs)
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Verify starts a verification and returns a channel that receives exactly
// one Result. It fails without side effects when documentID is blank or a
// verification is already running.
func (o *Orchestrator) Verify(ctx context.Context, documentID, pin string) (<-chan Result, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, ErrEmptyDocumentID
	}

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	o.runID++
	id := o.runID
	o.busy = true
	o.state = Verifying
	o.cancel = cancel
	o.mu.Unlock()

	ch := make(chan Result, 1)
	go o.run(ctx, id, cancel, documentID, pin, ch)
	return ch, nil
}

// Cancel asks the running verification to stop at the next retry boundary.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
}

func (o *Orchestrator) run(ctx context.Context, id uint64, cancel context.CancelFunc, documentID, pin string, ch chan<- Result) {
	var res Result
	defer func() {
		if p := recover(); p != nil {
			o.logger.Error(ctx, "verification panicked", "document_id", documentID, "panic", p)
			res = o.noResponse(ctx)
		}
		cancel()
		o.finish(id)
		ch <- res
	}()

	o.logger.Debug(ctx, "verification started", "document_id", documentID)
	doc, err := o.repo.VerifyDocument(ctx, documentID, pin)

	// Persisting must not be cut short by a late Cancel.
	sctx := context.WithoutCancel(ctx)
	switch {
	case doc == nil:
		res = o.noResponse(sctx)
	case err != nil:
		res = o.transportFailure(sctx, documentID, pin, doc, err)
	default:
		res = o.completed(sctx, doc)
	}
}

func (o *Orchestrator) completed(ctx context.Context, doc *models.Document) Result {
	res := Result{Document: doc, Message: doc.ErrorMessage(), RecordID: -1}

	if id, ok := o.history.Save(ctx, models.NewRecord(doc, o.now())); ok {
		res.RecordID = id
	}
	o.offline.CacheDocument(ctx, doc)
	if n := o.offline.MarkSynced(ctx, doc.DocumentID); n > 0 {
		o.logger.Info(ctx, "pending verifications resolved", "document_id", doc.DocumentID, "count", n)
	}

	o.logger.Info(ctx, "document verified", "document_id", doc.DocumentID, "status", doc.Status)
	o.setState(Succeeded)
	o.notify(ctx, func(obs Observer) { obs.OnStatusChanged(doc) })
	return res
}

func (o *Orchestrator) transportFailure(ctx context.Context, documentID, pin string, doc *models.Document, err error) Result {
	message := doc.ErrorMessage()
	var te *client.TransportError
	if errors.As(err, &te) && te.Message != "" {
		message = te.Message
	}
	if message == "" {
		message = common.MsgNoResponse
	}
	res := Result{Document: doc, Err: err, Message: message, RecordID: -1}

	if client.IsRetryable(err) {
		o.offline.AddPendingVerification(ctx, documentID, pin)
	}
	res.Cached = o.offline.GetCachedDocument(ctx, documentID)

	o.logger.Warn(ctx, "verification failed", "document_id", documentID, "message", message, "cached", res.Cached != nil)
	o.setState(Failed)
	if res.Cached != nil {
		o.notify(ctx, func(obs Observer) {
			if oo, ok := obs.(OfflineObserver); ok {
				oo.OnCachedDocument(res.Cached)
			}
		})
	}
	o.notify(ctx, func(obs Observer) { obs.OnError(message) })
	return res
}

func (o *Orchestrator) noResponse(ctx context.Context) Result {
	o.logger.Warn(ctx, "no document from repository")
	o.setState(Failed)
	o.notify(ctx, func(obs Observer) { obs.OnError(common.MsgNoResponse) })
	return Result{Message: common.MsgNoResponse, RecordID: -1}
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// finish releases the orchestrator unless a newer run already owns it.
func (o *Orchestrator) finish(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.runID != id {
		return
	}
	o.state = Idle
	o.busy = false
	o.cancel = nil
}

// notify calls fn for every observer. A panicking observer is logged and
// skipped, so each observer sees one outcome per verification.
func (o *Orchestrator) notify(ctx context.Context, fn func(Observer)) {
	for _, obs := range o.snapshotObservers() {
		func() {
			defer func() {
				if p := recover(); p != nil {
					o.logger.Error(ctx, "observer panicked", "panic", p)
				}
			}()
			fn(obs)
		}()
	}
}

func (o *Orchestrator) snapshotObservers() []Observer {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Observer(nil), o.observers...)
}
