// habit-worker consumes expense change events and re-evaluates the spending
// habit after every change, warning when the history ends in a risk purchase.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"habitcheck/internal/amqp"
	"habitcheck/internal/config"
	"habitcheck/internal/core"
	"habitcheck/internal/log"
	"habitcheck/internal/storage"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Worker exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is required for the worker")
	}

	log.Setup(cfg.LogFormat, log.ParseLevel(cfg.LogLevel))

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Habit worker started", "queue", cfg.AMQPQueue)

	return client.ConsumeExpenseEvents(ctx, func(evt *amqp.ExpenseEvent) error {
		expenses, err := repo.ListExpenses(ctx)
		if err != nil {
			return err
		}

		state, score := core.EvaluateHabit(expenses)
		slog.InfoContext(ctx, "Habit re-evaluated",
			"event", evt.Event,
			"expenseId", evt.ExpenseID,
			"state", state,
			"riskScore", score,
			"records", len(expenses))

		if state == core.StateRisk {
			slog.WarnContext(ctx, "Spending habit at risk",
				"expenseId", evt.ExpenseID,
				"riskScore", score)
		}
		return nil
	})
}
