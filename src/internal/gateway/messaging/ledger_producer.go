package messaging

import (
	"coinvest-service/src/internal/model"
	kafka "coinvest-service/src/pkg/kafka/confluent"
	"coinvest-service/src/pkg/log"
)

const TopicCoinRequests = "coin-requests"

// LedgerProducer publishes ledger events after money-moving transitions.
// A nil LedgerProducer (broker disabled) is a no-op.
type LedgerProducer struct {
	Producer[*model.LedgerEvent]
}

func NewLedgerProducer(producer kafka.Producer, logger log.Log) *LedgerProducer {
	return &LedgerProducer{
		Producer: Producer[*model.LedgerEvent]{
			Producer: producer,
			Topic:    TopicCoinRequests,
			Log:      logger,
		},
	}
}

func (p *LedgerProducer) SendLedgerEvent(event *model.LedgerEvent) error {
	if p == nil || p.Producer.Producer == nil {
		return nil
	}
	return p.Send(event)
}
