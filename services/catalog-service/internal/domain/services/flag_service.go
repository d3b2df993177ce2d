package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/pkg/tx"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/messaging"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/storage"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
)

// FlagService управляет метками товаров и их порядком отображения.
// Инвариант: позиции меток всегда образуют плотную последовательность
// 0..N-1 без дыр и повторов
type FlagService struct {
	repository storage.CatalogStorageInterface
	txManager  tx.TxManager
	messaging  interfaces.MessagingPort
	logger     interfaces.LoggerPort
}

// NewFlagService создает новый экземпляр FlagService.
// messaging может быть nil, тогда события не публикуются
func NewFlagService(
	repository storage.CatalogStorageInterface,
	txManager tx.TxManager,
	msg interfaces.MessagingPort,
	logger interfaces.LoggerPort,
) *FlagService {
	return &FlagService{
		repository: repository,
		txManager:  txManager,
		messaging:  msg,
		logger:     logger,
	}
}

// CreateFlag создает метку, добавляя ее в конец списка
func (s *FlagService) CreateFlag(ctx context.Context, name string) (*models.Flag, error) {
	var flag *models.Flag

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		count, err := s.repository.CountFlags(txCtx)
		if err != nil {
			return err
		}

		flag = &models.Flag{Name: name, Position: count}
		return s.repository.SaveFlag(txCtx, flag)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create flag: %w", err)
	}

	s.publishFlagEvent(ctx, flag.ID)
	return flag, nil
}

// GetFlag получает метку по ID
func (s *FlagService) GetFlag(ctx context.Context, flagID string) (*models.Flag, error) {
	flag, err := s.repository.GetFlag(ctx, flagID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flag: %w", err)
	}
	if flag == nil {
		return nil, utils.ErrFlagNotFound
	}
	return flag, nil
}

// ListFlags возвращает все метки в порядке позиций
func (s *FlagService) ListFlags(ctx context.Context) ([]*models.Flag, error) {
	flags, err := s.repository.ListFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flags: %w", err)
	}
	return flags, nil
}

// UpdateFlag переименовывает метку. Позиция при переименовании не меняется
func (s *FlagService) UpdateFlag(ctx context.Context, flagID, name string) (*models.Flag, error) {
	flag, err := s.repository.GetFlag(ctx, flagID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flag: %w", err)
	}
	if flag == nil {
		return nil, utils.ErrFlagNotFound
	}

	flag.Name = name
	if err = s.repository.UpdateFlag(ctx, flag); err != nil {
		return nil, fmt.Errorf("failed to update flag: %w", err)
	}

	s.publishFlagEvent(ctx, flag.ID)
	return flag, nil
}

// DeleteFlag удаляет метку и закрывает дыру в позициях: все метки после
// удаленной сдвигаются на одну позицию вверх. Обе операции выполняются
// в одной транзакции
func (s *FlagService) DeleteFlag(ctx context.Context, flagID string) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		deleted, err := s.repository.DeleteFlag(txCtx, flagID)
		if err != nil {
			return err
		}
		if deleted == nil {
			return utils.ErrFlagNotFound
		}

		return s.repository.ShiftFlagPositionsAfter(txCtx, deleted.Position)
	})
	if err != nil {
		if errors.Is(err, utils.ErrFlagNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete flag: %w", err)
	}

	s.publishFlagEvent(ctx, flagID)
	return nil
}

// ReorderFlags перезаписывает позиции меток по порядку идентификаторов
// в переданном списке. Список должен содержать все существующие метки
func (s *FlagService) ReorderFlags(ctx context.Context, orderedIDs []string) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		count, err := s.repository.CountFlags(txCtx)
		if err != nil {
			return err
		}
		if len(orderedIDs) != count {
			return fmt.Errorf("expected %d flag ids, got %d", count, len(orderedIDs))
		}

		for position, flagID := range orderedIDs {
			flag, err := s.repository.GetFlag(txCtx, flagID)
			if err != nil {
				return err
			}
			if flag == nil {
				return fmt.Errorf("%w: %s", utils.ErrFlagNotFound, flagID)
			}

			if err = s.repository.UpdateFlagPosition(txCtx, flagID, position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reorder flags: %w", err)
	}

	return nil
}

// publishFlagEvent публикует событие изменения метки; ошибки только логируются
func (s *FlagService) publishFlagEvent(ctx context.Context, flagID string) {
	if s.messaging == nil {
		return
	}

	event := messaging.NewCatalogEvent(messaging.EventFlagUpdated, flagID)
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err = s.messaging.PublishWithKey(ctx, messaging.TopicCatalogEvents, flagID, payload); err != nil {
		s.logger.WarnWithContext(ctx, "ошибка публикации события метки",
			interfaces.LogField{Key: "flag_id", Value: flagID},
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
}
