package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/orderstate/internal/app"
	"github.com/polkiloo/orderstate/internal/config"
	"github.com/polkiloo/orderstate/internal/domain/repository"
	"github.com/polkiloo/orderstate/internal/storage/postgres"
	"github.com/polkiloo/orderstate/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		TokenSecret:        "secret",
		ReconcileInterval:  time.Millisecond,
		ReconcileLookback:  time.Minute,
		ReconcileBatchSize: 1,
		WorkerPoolSize:     1,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	adminRepo := test.NewAdminRepositoryStub()
	orderRepo := test.NewOrderRepositoryStub()
	paymentRepo := test.NewPaymentRepositoryStub()
	historyRepo := &test.HistoryRepositoryStub{}

	var facade *app.LifecycleFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.AdminRepository(adminRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.PaymentRepository(paymentRepo)),
			fx.Replace(repository.HistoryRepository(historyRepo)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected lifecycle facade instance")
	}
}
