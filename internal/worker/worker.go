// Package worker runs tree generations on a dedicated goroutine behind a
// request/response channel boundary.
//
// Requests are handled one at a time, in submission order, each by a fresh generator.
// There is no cancellation: once a request is queued it runs to completion, and a caller
// that stops listening simply leaves its response in the buffered reply channel.
package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/leandrodaf/seqtree/internal/transform"
	"github.com/leandrodaf/seqtree/internal/tree"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

type job struct {
	req   contracts.GenerationRequest
	reply chan contracts.GenerationResponse
}

// Worker owns the generation goroutine.
type Worker struct {
	logger contracts.Logger
	env    *transform.Env

	mu      sync.RWMutex // guards stopped and the send side of jobs
	stopped bool
	jobs    chan job
	done    chan struct{}

	faults  error // panics recovered by handle; written only by the run goroutine
	stopErr error

	stopOnce sync.Once
}

var _ contracts.TreeGenerator = (*Worker)(nil)

// New starts a worker. options must already carry defaults (logger, random source,
// note provider).
func New(options *contracts.ClientOptions) *Worker {
	w := &Worker{
		logger: options.Logger,
		env:    &transform.Env{Notes: options.Notes, Random: options.Random},
		jobs:   make(chan job, max(options.QueueSize, 0)),
		done:   make(chan struct{}),
	}
	go w.run()
	w.logger.Debug("Generation worker started", w.logger.Field().Int("queue_size", cap(w.jobs)))
	return w
}

// Submit queues req and returns a channel that receives exactly one response. It blocks
// while the queue is full.
func (w *Worker) Submit(req contracts.GenerationRequest) <-chan contracts.GenerationResponse {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	reply := make(chan contracts.GenerationResponse, 1)

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		reply <- contracts.GenerationResponse{
			RequestID: req.ID,
			Err:       newGenerationError(req.ID, ErrWorkerStopped),
		}
		return reply
	}
	w.jobs <- job{req: req, reply: reply}
	return reply
}

// Generate submits req and waits for its response.
func (w *Worker) Generate(req contracts.GenerationRequest) contracts.GenerationResponse {
	return <-w.Submit(req)
}

// Stop refuses new requests, lets queued ones finish and waits for the goroutine to exit.
// It returns the panics recovered while the worker ran, combined, or nil. It is safe to
// call more than once; later calls return the same result.
func (w *Worker) Stop() error {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		close(w.jobs)
		w.mu.Unlock()

		<-w.done
		w.stopErr = w.faults
		w.logger.Debug("Generation worker stopped",
			w.logger.Field().Int("faults", len(multierr.Errors(w.faults))))
	})
	return w.stopErr
}

func (w *Worker) run() {
	defer close(w.done)
	for j := range w.jobs {
		j.reply <- w.handle(j.req)
	}
}

func (w *Worker) handle(req contracts.GenerationRequest) (resp contracts.GenerationResponse) {
	start := time.Now()
	resp.RequestID = req.ID

	defer func() {
		if r := recover(); r != nil {
			resp = contracts.GenerationResponse{
				RequestID: req.ID,
				Err:       &GenerationError{Code: CodeInternal, RequestID: req.ID, Err: fmt.Errorf("panic: %v", r)},
			}
			w.faults = multierr.Append(w.faults, resp.Err)
			w.logFailure(req, resp.Err)
		}
	}()

	w.logger.Debug("Generation started",
		w.logger.Field().String("request_id", req.ID),
		w.logger.Field().Int("height", req.Height),
		w.logger.Field().Int("trunk_steps", len(req.Trunk)))

	g, err := tree.New(req.Height, req.Trunk, req.State, w.env)
	if err != nil {
		resp.Err = newGenerationError(req.ID, err)
		w.logFailure(req, resp.Err)
		return resp
	}

	resp.Root = g.Root()
	resp.Paths = g.Paths()
	w.logger.Info("Generation finished",
		w.logger.Field().String("request_id", req.ID),
		w.logger.Field().Int("height", req.Height),
		w.logger.Field().Int("nodes", resp.Root.Count()),
		w.logger.Field().Int("paths", len(resp.Paths)),
		w.logger.Field().Duration("elapsed", time.Since(start)))
	return resp
}

func (w *Worker) logFailure(req contracts.GenerationRequest, err error) {
	w.logger.Error("Generation failed",
		w.logger.Field().String("request_id", req.ID),
		w.logger.Field().Int("height", req.Height),
		w.logger.Field().Error("error", err))
}
