package producer

import (
	"admissions-srv/internal/report"
	pkgKafka "admissions-srv/pkg/kafka"
	"admissions-srv/pkg/log"
)

// Producer interface for the report domain.
type Producer interface {
	report.Producer
}

type implProducer struct {
	l        log.Logger
	producer pkgKafka.IProducer
}

// New creates a new report event producer.
func New(l log.Logger, producer pkgKafka.IProducer) Producer {
	return &implProducer{
		l:        l,
		producer: producer,
	}
}
