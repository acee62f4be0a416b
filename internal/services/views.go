package services

import (
	"context"
	"fmt"

	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resolveEventViews turns stored events into API payloads, resolving the weak
// creator/participant references to display identities in one user lookup.
func resolveEventViews(ctx context.Context, userRepo models.UserRepo, events ...*models.Event) ([]*models.EventView, error) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, event := range events {
		if !seen[event.Creator] {
			seen[event.Creator] = true
			ids = append(ids, event.Creator)
		}
		for _, p := range event.Participants {
			if !seen[p] {
				seen[p] = true
				ids = append(ids, p)
			}
		}
	}

	refs, err := userRepo.GetUserRefs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user references: %w", err)
	}
	byID := make(map[primitive.ObjectID]models.UserRef, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref
	}

	views := make([]*models.EventView, 0, len(events))
	for _, event := range events {
		view := &models.EventView{
			ID:           event.ID,
			Title:        event.Title,
			Description:  event.Description,
			Date:         event.Date,
			Location:     event.Location,
			HasImage:     event.Image != nil,
			Creator:      models.UserRef{ID: event.Creator},
			Participants: []models.UserRef{},
			CreatedAt:    event.CreatedAt,
			UpdatedAt:    event.UpdatedAt,
		}
		if ref, ok := byID[event.Creator]; ok {
			view.Creator = ref
		}
		for _, p := range event.Participants {
			if ref, ok := byID[p]; ok {
				view.Participants = append(view.Participants, ref)
			} else {
				view.Participants = append(view.Participants, models.UserRef{ID: p})
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func resolveEventView(ctx context.Context, userRepo models.UserRepo, event *models.Event) (*models.EventView, error) {
	views, err := resolveEventViews(ctx, userRepo, event)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}
