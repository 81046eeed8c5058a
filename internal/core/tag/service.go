// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context) ([]*Tag, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id int64) (*Tag, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) Create(context context.Context, name string) (*Tag, error) {
	tag := &Tag{Name: name}
	if err := service.repo.Create(context, tag); err != nil {
		return nil, err
	}
	service.logger.InfoContext(context, "tag_created", slog.Int64("tag_id", tag.ID), slog.String("name", tag.Name))
	return tag, nil
}

// Update renames a tag. A nil name leaves it unchanged.
func (service *Service) Update(context context.Context, id int64, name *string) (*Tag, error) {
	tag, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if name == nil {
		return tag, nil
	}

	tag.Name = *name
	if err := service.repo.Update(context, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (service *Service) Delete(context context.Context, id int64) error {
	return service.repo.Delete(context, id)
}
