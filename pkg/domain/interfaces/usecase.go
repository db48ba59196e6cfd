package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

type UseCase interface {
	HandleWebhook(ctx context.Context, channel types.Channel, event *model.WebhookEvent) (*model.WebhookResult, error)
	ExecuteJob(ctx context.Context, job *model.TestRunJob) error

	VerifyIdentity(ctx context.Context, sid types.SessionID, expected types.Email) (*model.VerifiedIdentity, error)
	Subscribe(ctx context.Context, input *model.SubscribeInput) (*model.SubscribeOutput, error)
	Unsubscribe(ctx context.Context, input *model.SubscribeInput) (int, error)
	ListSubscriptions(ctx context.Context, sid types.SessionID, channel types.Channel, env types.Environment) ([]*model.Subscription, error)
	GetScan(ctx context.Context, sid types.SessionID, id types.ScanID) (*model.ScanRecord, error)
}
