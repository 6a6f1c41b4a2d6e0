package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/IBM/sarama"

	"totem/pkg/logger"
)

const (
	socketTimeout  = 5 * time.Second
	webhookTimeout = 10 * time.Second
)

// Notifier delivers payment confirmations to the hosting native wrapper,
// best effort. Channels are probed in ordered preference: a host-provided
// unix socket (direct call), a Kafka topic (message handler), an HTTP
// webhook (post message, last resort). A missing or broken channel is
// logged, never surfaced to the purchase flow.
type Notifier struct {
	socketPath string
	producer   sarama.SyncProducer
	topic      string
	webhookURL string
	http       *http.Client
	log        *logger.Logger
}

// NewNotifier probes the configured channels. A Kafka broker that cannot be
// reached at startup simply leaves that channel unavailable.
func NewNotifier(cfg Config, log *logger.Logger) *Notifier {
	n := &Notifier{
		socketPath: cfg.SocketPath,
		topic:      cfg.PaymentTopic,
		webhookURL: cfg.WebhookURL,
		http:       &http.Client{Timeout: webhookTimeout},
		log:        log,
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := newSyncProducer(cfg.KafkaBrokers)
		if err != nil {
			if log != nil {
				log.WithError(err).Warn("bridge message-handler channel unavailable")
			}
		} else {
			n.producer = producer
		}
	}

	return n
}

func newSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// Detect returns the channel a notification would currently go through.
func (n *Notifier) Detect() Channel {
	if n.socketPath != "" {
		if _, err := os.Stat(n.socketPath); err == nil {
			return ChannelDirectCall
		}
	}
	if n.producer != nil {
		return ChannelMessageHandler
	}
	if n.webhookURL != "" {
		return ChannelPostMessage
	}
	return ChannelNone
}

// NotifyPayment serializes the payment data and delivers it through the
// first channel that accepts it. Failures are logged and swallowed.
func (n *Notifier) NotifyPayment(ctx context.Context, data PaymentData) {
	payload, err := json.Marshal(data)
	if err != nil {
		if n.log != nil {
			n.log.WithError(err).Error("bridge payload marshal failed")
		}
		return
	}

	if n.socketPath != "" {
		if _, statErr := os.Stat(n.socketPath); statErr == nil {
			if err := n.sendSocket(payload); err == nil {
				n.logDelivered(ctx, ChannelDirectCall)
				return
			} else if n.log != nil {
				n.log.WithError(err).Warn("bridge direct-call channel failed")
			}
		}
	}

	if n.producer != nil {
		if err := n.sendKafka(data.MuseumID, payload); err == nil {
			n.logDelivered(ctx, ChannelMessageHandler)
			return
		} else if n.log != nil {
			n.log.WithError(err).Warn("bridge message-handler channel failed")
		}
	}

	if n.webhookURL != "" {
		if err := n.sendWebhook(ctx, payload); err == nil {
			n.logDelivered(ctx, ChannelPostMessage)
			return
		} else if n.log != nil {
			n.log.WithError(err).Warn("bridge post-message channel failed")
		}
	}

	if n.log != nil {
		n.log.WarnContext(ctx, "no bridge channel available, payment notification dropped")
	}
}

func (n *Notifier) sendSocket(payload []byte) error {
	conn, err := net.DialTimeout("unix", n.socketPath, socketTimeout)
	if err != nil {
		return fmt.Errorf("failed to dial bridge socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(socketTimeout)); err != nil {
		return err
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("failed to write to bridge socket: %w", err)
	}
	return nil
}

func (n *Notifier) sendKafka(key string, payload []byte) error {
	message := &sarama.ProducerMessage{
		Topic:     n.topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now(),
	}

	if _, _, err := n.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to publish payment message: %w", err)
	}
	return nil
}

func (n *Notifier) sendWebhook(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post payment webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("payment webhook returned %d", resp.StatusCode)
	}
	return nil
}

func (n *Notifier) logDelivered(ctx context.Context, channel Channel) {
	if n.log != nil {
		n.log.InfoWithContext(ctx, "payment notification delivered", map[string]interface{}{
			"channel": string(channel),
		})
	}
}

// Close releases the Kafka producer if one was created.
func (n *Notifier) Close() error {
	if n.producer != nil {
		return n.producer.Close()
	}
	return nil
}
