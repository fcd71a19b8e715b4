package mappers

import (
	"quokkalist/internal/domain/listing"
	"quokkalist/internal/infrastructure/persistence/models"
)

type ServerMapper struct{}

func NewServerMapper() *ServerMapper {
	return &ServerMapper{}
}

func (m *ServerMapper) ToDomain(model *models.ServerModel) *listing.Server {
	return listing.ReconstructServer(
		model.ID,
		model.Name,
		model.OwnerID,
		model.Hidden,
		model.CreatedAt,
	)
}

func (m *ServerMapper) StatsToDomain(model *models.ServerStatsModel) *listing.Stats {
	return &listing.Stats{
		ServerID: model.ServerID,
		Likes:    model.Likes,
		Views:    model.Views,
		Visits:   model.Visits,
		Clicks:   model.Clicks,
	}
}
