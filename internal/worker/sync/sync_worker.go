package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/worker"
)

// FullSyncRunner is the resolver surface the worker drives.
type FullSyncRunner interface {
	FullSync(ctx context.Context) (*domain.SyncResult, error)
}

// AddressSyncWorker consumes sync-requested events and runs the full
// hierarchy walk out of band, so the triggering HTTP request returns
// immediately. One walk at a time per consumer; duplicate requests queued
// behind a running walk are cheap because resolved levels short-circuit.
type AddressSyncWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	resolverUC   FullSyncRunner
	consumerName string
}

func NewAddressSyncWorker(
	streamRepo repository.StreamRepository,
	resolverUC FullSyncRunner,
	consumerGroup string,
	logger *zap.Logger,
) *AddressSyncWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &AddressSyncWorker{
		BaseWorker:   worker.NewBaseWorker("address-sync", consumerGroup, logger),
		streamRepo:   streamRepo,
		resolverUC:   resolverUC,
		consumerName: consumerName,
	}
}

func (w *AddressSyncWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AddressSyncWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamAddressSync, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	messages, err := w.streamRepo.Consume(ctx, domain.StreamAddressSync, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Message channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

func (w *AddressSyncWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.SyncRequestedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Error("Malformed sync event, acking to drop",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	logger.Info("Full address sync started",
		zap.String("message_id", msg.ID),
		zap.String("requested_by", event.RequestedBy),
		zap.Time("requested_at", event.RequestedAt))

	result, err := w.resolverUC.FullSync(ctx)
	if err != nil {
		// Leave the message pending so a later consumer retries it.
		logger.Error("Full address sync failed",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return
	}

	logger.Info("Full address sync finished",
		zap.String("message_id", msg.ID),
		zap.Int("provinces", result.Provinces),
		zap.Int("districts", result.Districts),
		zap.Int("neighborhoods", result.Neighborhoods))
	w.ack(ctx, msg.ID)
}

func (w *AddressSyncWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.Ack(ctx, domain.StreamAddressSync, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack sync message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
