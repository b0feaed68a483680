package kafka

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventPublisher = (*EventsProducer)(nil)

// An EventsProducer produces [domain.ClientEvent] records keyed by kind.
//
// Records are produced asynchronously, delivery failures are logged and
// counted. Close flushes what is buffered.
type EventsProducer struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string
	failed   atomic.Int64
}

func NewEventsProducer(opts ...ProducerOpt) (*EventsProducer, error) {
	const op = "NewEventsProducer"

	if len(opts) != 2 {
		return nil, opErr(ErrTooFewOpts, op)
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, opErr(err, op)
		}
	}

	return &EventsProducer{
		cl:       options.cl,
		encoder:  options.encoder,
		opPrefix: "EventsProducer",
	}, nil
}

func (p *EventsProducer) Publish(ctx context.Context, e domain.ClientEvent) error {
	const op = "Publish"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(e)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	// records outlive the command that emitted them until Close
	p.cl.Produce(context.WithoutCancel(ctx), r, p.onDelivered)
	return nil
}

func (p *EventsProducer) onDelivered(r *kgo.Record, err error) {
	if err == nil {
		return
	}
	p.failed.Add(1)
	slog.Warn(
		"failed to deliver event",
		"op", makeOp(p.opPrefix, "onDelivered"),
		"key", string(r.Key),
		"err", err,
	)
}

// Failed returns the number of records the broker did not acknowledge.
func (p *EventsProducer) Failed() int64 {
	return p.failed.Load()
}

func (p *EventsProducer) createRecord(e domain.ClientEvent) (*kgo.Record, error) {
	const op = "createRecord"

	s := eventToSchemaV1(e)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.Kind), Value: b}, nil
}

// Close flushes buffered records and closes the underlying client.
func (p *EventsProducer) Close(ctx context.Context) {
	const op = "Close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing producer...")
	if err := p.cl.Flush(ctx); err != nil {
		log.Warn("failed to flush events", "err", err)
	}
	p.cl.Close()
	log.Info("producer is closed")
}

func eventToSchemaV1(v domain.ClientEvent) (s schema.ClientEventV1) {
	s.EventID = v.ID
	s.Kind = string(v.Kind)
	s.ProductID = v.ProductID
	s.Quantity = v.Quantity
	s.Query = v.Query
	s.Category = v.Category
	s.OrderID = v.OrderID
	s.OccurredAt = v.OccurredAt
	return
}
