// Command topicmaker creates the client events topic.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/spf13/pflag"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		printFail(err)
		os.Exit(2)
	}

	cl, err := createClient(cfg)
	if err != nil {
		printFail(err)
		os.Exit(2)
	}
	defer cl.Close()

	printStart(cfg)
	start := time.Now()

	res, err := kafka.CreateEventTopics(
		sigCtx, cl,
		cfg.Events.Partitions,
		cfg.Events.ReplicationFactor,
		cfg.Events.Topic,
	)
	for _, r := range res {
		switch r.Status {
		case kafka.TopicExists:
			fmt.Printf("topic: %q already exists\n", r.Topic)
		case kafka.TopicCreated:
			fmt.Printf("topic: %q successfully created\n", r.Topic)
		}
	}
	if err != nil {
		printFail(err)
		cl.Close()
		os.Exit(1)
	}

	printComplete(start)
}

func createClient(cfg config.Config) (*kadm.Client, error) {
	if len(cfg.Events.SeedBrokers) == 0 {
		return nil, errors.New("events.seed_brokers is empty")
	}

	tls := cfg.Events.TLS
	tlsConfig, err := adapter.MakeTLSConfig(tls.CA, tls.Cert, tls.Key)
	if err != nil {
		return nil, err
	}

	opts := []kgo.Opt{kgo.SeedBrokers(cfg.Events.SeedBrokers...)}
	if tlsConfig != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}
	return kadm.NewOptClient(opts...)
}

func printStart(cfg config.Config) {
	fmt.Printf(`initializing topics...
	- %q (partitions=%d, replication=%d)

`,
		cfg.Events.Topic,
		cfg.Events.Partitions,
		cfg.Events.ReplicationFactor,
	)
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
