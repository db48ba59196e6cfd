package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

// VerifyIdentity exchanges a session identifier for a verified identity.
// A failed lookup, an empty answer or an email mismatch all yield nil
// without error; callers skip the subscriber. An error is returned only
// when no test provider is configured.
func (x *UseCase) VerifyIdentity(ctx context.Context, sid types.SessionID, expected types.Email) (*model.VerifiedIdentity, error) {
	provider := x.clients.TestProvider()
	if provider == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "test provider is not configured")
	}
	if sid == "" {
		return nil, nil
	}

	user, err := provider.GetUserData(ctx, sid)
	if err != nil {
		logging.From(ctx).Warn("Failed to verify session", slog.Any("error", err))
		return nil, nil
	}
	if user == nil || user.Email == "" {
		logging.From(ctx).Debug("Session has no identity")
		return nil, nil
	}

	if expected != "" && !strings.EqualFold(string(expected), string(user.Email)) {
		logging.From(ctx).Warn("Session email mismatch",
			slog.Any("expected", expected),
			slog.Any("actual", user.Email),
		)
		return nil, nil
	}

	return &model.VerifiedIdentity{
		Email:         user.Email,
		Name:          user.Name,
		PictureLink:   user.PictureLink,
		SessionID:     sid,
		ProviderToken: user.ProviderToken,
	}, nil
}
