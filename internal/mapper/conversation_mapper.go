package mapper

import (
	"jarvina-be/internal/entity"
	"jarvina-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(e *model.ConversationEntry) *entity.ConversationEntry {
	if e == nil {
		return nil
	}

	return &entity.ConversationEntry{
		Id:        e.Id,
		Role:      e.Role,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(e *entity.ConversationEntry) *model.ConversationEntry {
	if e == nil {
		return nil
	}

	return &model.ConversationEntry{
		Id:        e.Id,
		Role:      e.Role,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ConversationMapper) ToEntities(entries []*model.ConversationEntry) []*entity.ConversationEntry {
	entities := make([]*entity.ConversationEntry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
