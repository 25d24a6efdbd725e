package settings

import (
	"context"
	"fmt"
	"strings"

	dbmodels "github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// ConfigRequest is the wire payload for writing a config entry. Value is
// untyped on the wire and stored as its string form; it carries no tag
// because zero values (0, false, "") are legal, only null is not.
type ConfigRequest struct {
	Key   string `json:"key" validate:"required"`
	Value any    `json:"value"`
}

func (ConfigRequest) ValidationMessage(string, string) string {
	return "key and value required"
}

// ConfigResponse echoes the stored entry with the caller's original value.
type ConfigResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type settingRepository interface {
	Replace(ctx context.Context, setting *dbmodels.Setting) error
	FindByKey(ctx context.Context, key string) (*dbmodels.Setting, error)
}

// Service manages the key/value config store.
type Service interface {
	Set(ctx context.Context, input ConfigRequest) (*ConfigResponse, error)
	Get(ctx context.Context, key string) (string, error)
}

// ServiceParams configure the settings service.
type ServiceParams struct {
	Repo   settingRepository
	Logger *logger.Logger
}

type service struct {
	repo settingRepository
	logg *logger.Logger
}

// NewService builds a settings service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("setting repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) Set(ctx context.Context, input ConfigRequest) (*ConfigResponse, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" || input.Value == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "key and value required")
	}

	setting := &dbmodels.Setting{
		Key:   key,
		Value: stringify(input.Value),
	}
	if err := s.repo.Replace(ctx, setting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store setting")
	}
	return &ConfigResponse{Key: key, Value: input.Value}, nil
}

func (s *service) Get(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
