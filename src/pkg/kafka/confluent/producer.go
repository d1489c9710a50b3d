package kafka

import (
	"fmt"

	"coinvest-service/src/pkg/log"

	k "gopkg.in/confluentinc/confluent-kafka-go.v1/kafka"
)

type producer struct {
	producer *k.Producer
	log      log.Log
}

// NewProducer creates a confluent producer and drains delivery reports in
// the background so the publish path never blocks on acknowledgements.
func NewProducer(config *k.ConfigMap, logger log.Log) (Producer, error) {
	p, err := k.NewProducer(config)
	if err != nil {
		return nil, err
	}

	pr := &producer{producer: p, log: logger}
	go pr.handleEvents()
	return pr, nil
}

func (p *producer) handleEvents() {
	for e := range p.producer.Events() {
		switch ev := e.(type) {
		case *k.Message:
			if ev.TopicPartition.Error != nil {
				p.log.Error("kafka-producer", fmt.Sprintf("delivery failed: %v", ev.TopicPartition.Error), "handleEvents", "")
			}
		case k.Error:
			p.log.Error("kafka-producer", ev.Error(), "handleEvents", "")
		}
	}
}

func (p *producer) Publish(message *k.Message) error {
	return p.producer.Produce(message, nil)
}

func (p *producer) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
