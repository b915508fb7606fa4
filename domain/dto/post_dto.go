package dto

import "ember-scriptorium/domain/model"

type PostListResponse struct {
	Posts []model.Post `json:"posts"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
