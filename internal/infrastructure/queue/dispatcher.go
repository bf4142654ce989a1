package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/institutpi/events-api/internal/api/metrics"
	"github.com/institutpi/events-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes email jobs to a fixed set of workers using consistent
// hashing on the recipient address, so all mail for one recipient is sent
// in order. Enqueue never blocks the request path up to channelBuffer.
type Dispatcher struct {
	workers []chan ports.EmailJob
	sender  ports.EmailSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.EmailSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.EmailJob, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.EmailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a job to the worker responsible for its recipient. A full
// channel drops the job with a log line rather than stalling registration.
func (d *Dispatcher) Enqueue(job ports.EmailJob) {
	ch := d.workers[d.shardIndex(job.To)]
	select {
	case ch <- job:
		metrics.EmailsEnqueuedTotal.WithLabelValues(string(job.Type)).Inc()
	default:
		metrics.EmailsDroppedTotal.WithLabelValues(string(job.Type)).Inc()
		d.log.Error().
			Str("type", string(job.Type)).
			Str("to", job.To).
			Msg("email queue full, job dropped")
	}
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.EmailJob) {
	workerID := strconv.Itoa(id)
	for {
		metrics.EmailQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.Send(ctx, job); err != nil {
				metrics.EmailsSentTotal.WithLabelValues(string(job.Type), "error").Inc()
				d.log.Error().Err(err).
					Str("type", string(job.Type)).
					Str("to", job.To).
					Int("worker_id", id).
					Msg("email delivery failed")
				continue
			}
			metrics.EmailsSentTotal.WithLabelValues(string(job.Type), "ok").Inc()
		}
	}
}
