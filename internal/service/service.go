package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
	"github.com/helpdesk-kit/itsm-service/internal/events"
	"github.com/helpdesk-kit/itsm-service/internal/repository"
	apperrors "github.com/helpdesk-kit/itsm-service/pkg/util"
)

// mapStoreError translates repository sentinels into the domain error
// taxonomy, naming the resource for the caller.
func mapStoreError(resource string, err error) error {
	switch {
	case errors.Is(err, repository.ErrRecordTooLarge):
		return apperrors.NewRecordTooLarge(resource, nil)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}

func actorFor(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	id := user.ID
	return events.Actor{ActorID: &id, Username: user.Username, Role: user.Role}
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
