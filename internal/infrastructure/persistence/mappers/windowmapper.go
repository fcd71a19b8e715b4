package mappers

import (
	"quokkalist/internal/domain/promotion"
	pvo "quokkalist/internal/domain/promotion/valueobjects"
	"quokkalist/internal/infrastructure/persistence/models"
)

type WindowMapper struct{}

func NewWindowMapper() *WindowMapper {
	return &WindowMapper{}
}

func (m *WindowMapper) ToModel(window *promotion.Window) *models.WindowModel {
	return &models.WindowModel{
		ID:        window.ID(),
		ServerID:  window.ServerID(),
		Plan:      window.Plan().String(),
		StartAt:   window.StartAt(),
		EndAt:     window.EndAt(),
		CreatedAt: window.CreatedAt(),
	}
}

func (m *WindowMapper) ToDomain(model *models.WindowModel) *promotion.Window {
	return promotion.ReconstructWindow(
		model.ID,
		model.ServerID,
		pvo.Plan(model.Plan),
		model.StartAt,
		model.EndAt,
		model.CreatedAt,
	)
}

func (m *WindowMapper) ToDomainList(modelList []*models.WindowModel) []*promotion.Window {
	windows := make([]*promotion.Window, 0, len(modelList))
	for _, model := range modelList {
		windows = append(windows, m.ToDomain(model))
	}
	return windows
}
