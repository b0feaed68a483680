package kafka

import (
	"context"
	"errors"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
)

// A TopicCreator is satisfied by [*kadm.Client].
type TopicCreator interface {
	CreateTopics(
		ctx context.Context,
		partitions int32,
		replicationFactor int16,
		configs map[string]*string,
		topics ...string,
	) (kadm.CreateTopicResponses, error)
}

type TopicStatus int

const (
	TopicCreated TopicStatus = iota
	TopicExists
)

type TopicResult struct {
	Topic  string
	Status TopicStatus
}

// CreateEventTopics creates the topics with the delete cleanup policy.
// Topics that already exist are reported, not failed.
func CreateEventTopics(
	ctx context.Context,
	cl TopicCreator,
	partitions int32,
	replicationFactor int16,
	topics ...string,
) ([]TopicResult, error) {
	const op = "CreateEventTopics"

	var (
		cleanupPolicy = "delete"
		minISR        = "1"
	)
	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
	}

	responses, err := cl.CreateTopics(
		ctx, partitions, replicationFactor, config, topics...,
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	var (
		res  []TopicResult
		errs []error
	)
	for _, r := range responses.Sorted() {
		switch {
		case r.Err == nil:
			res = append(res, TopicResult{Topic: r.Topic, Status: TopicCreated})
		case errors.Is(r.Err, kerr.TopicAlreadyExists):
			res = append(res, TopicResult{Topic: r.Topic, Status: TopicExists})
		default:
			errs = append(errs, opErr(r.Err, op, r.Topic))
		}
	}
	return res, errors.Join(errs...)
}
