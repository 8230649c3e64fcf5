package kafka

import "github.com/IBM/sarama"

// Config holds configuration for Kafka producer.
type Config struct {
	Brokers []string
	Topic   string
}

// producerImpl implements IProducer.
type producerImpl struct {
	producer sarama.SyncProducer
	topic    string
}
