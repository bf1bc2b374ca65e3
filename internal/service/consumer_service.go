package service

import (
	"context"
	"encoding/json"
	"log"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the folder-changed topic. For every change it
// recomputes the user's usage snapshot and pings their connected devices.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	usageService IUsageService
	hub          *websocket.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	usageService IUsageService,
	hub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		usageService: usageService,
		hub:          hub,
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
	var payload dto.PublishFolderChangedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if _, err := cs.usageService.Recompute(ctx, payload.UserId); err != nil {
		log.Printf("[ERROR] Failed to recompute usage for %s: %v", payload.UserId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	if cs.hub != nil {
		cs.hub.Send(payload.UserId, websocket.ChangeMessage{
			Action:   "folder_changed",
			FolderId: payload.FolderId,
		})
	}

	msg.Ack()
}
