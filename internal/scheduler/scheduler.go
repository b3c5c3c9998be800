// Package scheduler запускает фоновые задачи по расписанию под общим контекстом.
package scheduler

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Task фоновая задача
type Task struct {
	Name       string
	Schedule   Schedule
	Timeout    time.Duration // ограничение одного запуска, 0 = без ограничения
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// Scheduler владеет таймерами всех задач
type Scheduler struct {
	tasks  []Task
	logger Logger
}

// New создает планировщик
func New(logger Logger, tasks ...Task) *Scheduler {
	return &Scheduler{tasks: tasks, logger: logger}
}

// Start запускает задачи и блокируется до отмены ctx
// Ошибка запуска задачи логируется и не останавливает планировщик
func (s *Scheduler) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, task := range s.tasks {
		task := task
		g.Go(func() error {
			s.loop(gctx, task)
			return nil
		})
	}

	s.logger.Info("Scheduler: started %d tasks", len(s.tasks))
	err := g.Wait()
	s.logger.Info("Scheduler: stopped")
	return err
}

func (s *Scheduler) loop(ctx context.Context, task Task) {
	s.logger.Info("Scheduler: task=%s schedule=%s", task.Name, task.Schedule)

	if task.RunOnStart {
		s.runOnce(ctx, task)
	}

	for {
		next := task.Schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runOnce(ctx, task)
		}
	}
}

// runOnce выполняет задачу с ограничением по времени
func (s *Scheduler) runOnce(ctx context.Context, task Task) {
	if ctx.Err() != nil {
		return
	}

	runCtx := ctx
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	started := time.Now()
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("Scheduler: task=%s panicked: %v", task.Name, p)
		}
	}()

	if err := task.Run(runCtx); err != nil {
		s.logger.Error("Scheduler: task=%s failed after %s: %v", task.Name, time.Since(started), err)
		return
	}
	s.logger.Info("Scheduler: task=%s finished in %s", task.Name, time.Since(started))
}
