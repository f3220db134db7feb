package careservice

import (
	"context"

	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// CreateAlert attaches an alert to one of the caller's plants.
func (s *CareService) CreateAlert(ctx context.Context, p *auth.Principal, in *models.AlertCreate) (*models.Alert, error) {
	plant, err := s.Guard.Plant(ctx, p, in.UserPlantID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	alert := &models.Alert{
		ID:          nuts.NID("alr", 12),
		UserPlantID: plant.ID,
		AlertType:   in.AlertType,
		Title:       in.Title,
		Message:     in.Message,
		CreatedAt:   s.now(),
	}
	if err := s.Alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *CareService) ListAlerts(ctx context.Context, p *auth.Principal, filters models.AlertFilters, page models.Page) (*models.AlertList, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	alerts, total, err := s.Alerts.ListByOwner(ctx, userID, filters, page.Skip, page.Limit)
	if err != nil {
		return nil, err
	}
	return &models.AlertList{Alerts: alerts, Total: total, Skip: page.Skip, Limit: page.Limit}, nil
}

func (s *CareService) GetAlert(ctx context.Context, p *auth.Principal, id string) (*models.Alert, error) {
	return s.Guard.Alert(ctx, p, id)
}

func (s *CareService) MarkAlertRead(ctx context.Context, p *auth.Principal, id string) (*models.Alert, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	return s.Alerts.MarkRead(ctx, userID, id, s.now())
}

func (s *CareService) MarkAllAlertsRead(ctx context.Context, p *auth.Principal) (*models.MarkAllReadResult, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	count, err := s.Alerts.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[CareService] Marked %d alerts read for user %s", count, userID)
	return &models.MarkAllReadResult{Message: "Alerts marked as read", Count: count}, nil
}

func (s *CareService) DeleteAlert(ctx context.Context, p *auth.Principal, id string) error {
	userID, err := owner(p)
	if err != nil {
		return err
	}
	return s.Alerts.DeleteOwned(ctx, userID, id)
}
