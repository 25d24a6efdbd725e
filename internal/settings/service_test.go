package settings

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	svc, err := NewService(ServiceParams{
		Repo:   NewRepository(db),
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})
	require.NoError(t, err)
	return svc, db
}

func TestSetAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Set(ctx, ConfigRequest{Key: "initial_capital", Value: 1500.0})
	require.NoError(t, err)
	require.Equal(t, "initial_capital", resp.Key)
	require.Equal(t, 1500.0, resp.Value, "response echoes the caller's value")

	stored, err := svc.Get(ctx, "initial_capital")
	require.NoError(t, err)
	require.Equal(t, "1500", stored, "numbers persist as their string form")
}

func TestSetOverwrites(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, ConfigRequest{Key: "initial_capital", Value: "100"})
	require.NoError(t, err)
	_, err = svc.Set(ctx, ConfigRequest{Key: "initial_capital", Value: "250"})
	require.NoError(t, err)

	stored, err := svc.Get(ctx, "initial_capital")
	require.NoError(t, err)
	require.Equal(t, "250", stored)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSetValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, input := range []ConfigRequest{
		{Key: "", Value: "x"},
		{Key: "   ", Value: "x"},
		{Key: "initial_capital"},
	} {
		_, err := svc.Set(ctx, input)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		require.Equal(t, pkgerrors.CodeValidation, typed.Code())
		require.Equal(t, "key and value required", typed.Message())
	}
}

func TestGetMissingKey(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "nope")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
