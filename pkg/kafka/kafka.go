package kafka

import (
	"errors"
	"fmt"
	"github.com/segmentio/kafka-go"
	"net"
	"strconv"
	"strings"
)

// Config holds broker connection settings, env vars are read with the KAFKA_ prefix
type Config struct {
	Brokers           []string `yaml:"brokers" env:"BROKERS" env-separator:","`
	NumPartitions     int      `yaml:"num_partitions" env:"NUM_PARTITIONS" env-default:"1"`
	ReplicationFactor int      `yaml:"replication_factor" env:"REPLICATION_FACTOR" env-default:"1"`
}

// BrokerAddrs returns the configured broker addresses, trimmed, empty entries dropped
//
// "KAFKA_BROKERS=,host:9092" gives ["host:9092"]
func (c Config) BrokerAddrs() []string {
	addrs := make([]string, 0, len(c.Brokers))
	for _, broker := range c.Brokers {
		if broker = strings.TrimSpace(broker); broker != "" {
			addrs = append(addrs, broker)
		}
	}
	return addrs
}

// Enabled reports whether at least one broker address is configured
func (c Config) Enabled() bool {
	return len(c.BrokerAddrs()) > 0
}

// NewWriter creates a synchronous writer that waits for all replicas
func NewWriter(cfg Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.BrokerAddrs()...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.LeastBytes{},
		Async:                  false,
		AllowAutoTopicCreation: false,
	}
}

// NewReader creates a consumer group reader, offsets are committed by ReadMessage
func NewReader(cfg Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.BrokerAddrs(),
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// CreateTopicIfNotExists asks the cluster controller to create the topic, an existing topic is not an error
func CreateTopicIfNotExists(cfg Config, topic string, numPartitions, replicationFactor int) error {
	if topic == "" {
		return errors.New("topic name mustn't be empty")
	}
	brokers := cfg.BrokerAddrs()
	if len(brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return fmt.Errorf("couldn't dial kafka broker: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("couldn't find kafka controller: %w", err)
	}

	controllerConn, err := kafka.Dial("tcp",
		net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("couldn't dial kafka controller: %w", err)
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     numPartitions,
		ReplicationFactor: replicationFactor,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("couldn't create topic %s: %w", topic, err)
	}
	return nil
}
