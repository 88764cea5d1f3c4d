package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/repository/specification"
	"ml-discovery-be/internal/repository/unitofwork"
	"ml-discovery-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const summaryPromptPrefix = "Summarize the following reference material in 2-3 sentences, " +
	"keeping customer names, platform names, and concrete outcomes:\n\n"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService back-fills the summary column on freshly loaded reference
// records. Summaries keep analysis prompts short without losing the facts
// that ground the recommendations.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishSummarizeMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Summarizing reference record %s", payload.ReferenceId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.ReferenceRepository().FindOne(ctx, specification.ByID{ID: payload.ReferenceId})
	if err != nil {
		log.Printf("[ERROR] Failed to get reference %s: %v", payload.ReferenceId, err)
		msg.Nack()
		return
	}
	if record == nil {
		log.Printf("[ERROR] Reference not found: %s", payload.ReferenceId)
		msg.Ack() // Record deleted? Ack.
		return
	}
	if record.Summary != "" {
		// Redelivery after a partial run; nothing to do.
		msg.Ack()
		return
	}

	summary, err := cs.llmProvider.Generate(ctx, summaryPromptPrefix+record.BodyText,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(300),
	)
	if err != nil {
		log.Printf("[ERROR] Failed to summarize reference %s: %v", payload.ReferenceId, err)
		msg.Nack()
		return
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		log.Printf("[ERROR] Empty summary for reference %s", payload.ReferenceId)
		msg.Nack()
		return
	}

	if err := uow.ReferenceRepository().UpdateSummary(ctx, record.Id, summary); err != nil {
		log.Printf("[ERROR] Failed to store summary for %s: %v", payload.ReferenceId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Reference %s summarized (%d chars)", payload.ReferenceId, len(summary))
	msg.Ack()
}
