package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/salone-skillshub/skillshub/internal/api/metrics"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	defaultTimeout = 10 * time.Second
	defaultDrain   = 15 * time.Second
)

// Config tunes the dispatcher. Zero values fall back to the defaults.
type Config struct {
	Workers int
	Buffer  int
	Timeout time.Duration
	// Drain bounds how long a worker keeps delivering its backlog after
	// shutdown begins.
	Drain time.Duration
}

// Dispatcher delivers notifications on a fixed set of workers, sharded by
// recipient so mail to one address keeps its order. It implements
// ports.Notifier: Notify never blocks the caller.
type Dispatcher struct {
	workers []chan domain.Notification
	sender  ports.MailSender
	timeout time.Duration
	drain   time.Duration
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher delivering through sender.
func NewDispatcher(cfg Config, sender ports.MailSender, log zerolog.Logger) *Dispatcher {
	n := cfg.Workers
	if n <= 0 {
		n = defaultWorkers
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = channelBuffer
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	drain := cfg.Drain
	if drain <= 0 {
		drain = defaultDrain
	}

	d := &Dispatcher{
		workers: make([]chan domain.Notification, n),
		sender:  sender,
		timeout: timeout,
		drain:   drain,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, buffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// delivers what is already queued, within the drain window, then returns.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Notify queues n on the worker owning its recipient. A full queue drops the
// notification and logs it.
func (d *Dispatcher) Notify(n domain.Notification) {
	idx := d.shardIndex(n.To)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.NotificationsFailedTotal.WithLabelValues(n.Kind, "dropped").Inc()
		d.log.Warn().
			Str("kind", n.Kind).
			Int("worker_id", idx).
			Msg("notification queue full, dropping")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(recipient)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	defer d.wg.Done()
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			d.drainWorker(ctx, id, ch)
			return
		case n := <-ch:
			depth.Set(float64(len(ch)))
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) drainWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	deadline := time.Now().Add(d.drain)
	delivered := 0
	for {
		select {
		case n := <-ch:
			if time.Now().After(deadline) {
				metrics.NotificationsFailedTotal.WithLabelValues(n.Kind, "shutdown").Inc()
				d.log.Warn().Str("kind", n.Kind).Int("worker_id", id).Msg("drain window elapsed, dropping")
				continue
			}
			d.deliver(ctx, id, n)
			delivered++
		default:
			if delivered > 0 {
				d.log.Info().Int("worker_id", id).Int("delivered", delivered).Msg("notification backlog drained")
			}
			return
		}
	}
}

// deliver detaches from ctx cancellation so an in-flight or backlogged
// delivery is bounded only by the per-send timeout.
func (d *Dispatcher) deliver(ctx context.Context, id int, n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(ctx, n)
	if err != nil {
		metrics.NotificationDeliveryDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		metrics.NotificationsFailedTotal.WithLabelValues(n.Kind, "send_failed").Inc()
		d.log.Error().Err(err).
			Str("kind", n.Kind).
			Int("worker_id", id).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationDeliveryDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	metrics.NotificationsSentTotal.WithLabelValues(n.Kind).Inc()
}

var _ ports.Notifier = (*Dispatcher)(nil)
