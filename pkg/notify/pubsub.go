package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

type gcpPubSubSender struct {
	id     string
	client *pubsub.Client
	topic  *pubsub.Topic
	log    Logger
}

func newPubSubSink(ctx context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("notifier %q missing pubsub configuration", cfg.ID)
	}
	s, err := newGCPPubSubSender(ctx, cfg.PubSub, log)
	if err != nil {
		return nil, err
	}
	s.id = cfg.ID
	return s, nil
}

func newGCPPubSubSender(ctx context.Context, cfg *PubSubSinkConfig, log Logger) (*gcpPubSubSender, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &gcpPubSubSender{
		id:     cfg.Topic,
		client: client,
		topic:  client.Topic(cfg.Topic),
		log:    ensureLogger(log),
	}, nil
}

func (g *gcpPubSubSender) ID() string   { return g.id }
func (g *gcpPubSubSender) Type() string { return TypePubSub }

// Send publishes the event and waits for the server acknowledgement.
func (g *gcpPubSubSender) Send(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	res := g.topic.Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: eventAttributes(evt),
	})
	id, err := res.Get(ctx)
	if err != nil {
		g.log.ErrorObj("pubsub notifier publish failed", "notify_pubsub_error", map[string]any{
			"notifier_id": g.id,
			"error":       err.Error(),
		})
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	g.log.DebugObj("pubsub notifier delivered event", "notify_pubsub_delivery", map[string]any{
		"notifier_id": g.id,
		"message_id":  id,
	})
	return nil
}

// Close flushes pending messages and releases the client.
func (g *gcpPubSubSender) Close() error {
	g.topic.Stop()
	return g.client.Close()
}
