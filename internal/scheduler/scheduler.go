package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/config"
	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// Reporter builds the reports the jobs deliver.
type Reporter interface {
	DailyKegReport() (models.DailyKegReport, error)
	OrderSummary(start, end time.Time) models.OrderSummary
}

// ReportArchive stores daily keg reports.
type ReportArchive interface {
	SaveDailyKegReport(ctx context.Context, report models.DailyKegReport) error
}

// RowAppender appends rows to a spreadsheet range.
type RowAppender interface {
	AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// Notifier pushes a text message to the brewery manager.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Sinks are the optional destinations of the jobs. Nil sinks are skipped.
type Sinks struct {
	Archive     ReportArchive
	Sheet       RowAppender
	OrdersRange string
	Notifier    Notifier
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	sinks    Sinks
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler running the keg report and order digest
// on the configured cron specs.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, sinks Sinks, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reporter: reporter,
		sinks:    sinks,
		logger:   logger,
		now:      time.Now,
	}

	if _, err := s.cron.AddFunc(cfg.KegReportCron, s.job("daily keg report", s.RunDailyKegReport)); err != nil {
		return nil, fmt.Errorf("schedule daily keg report: %w", err)
	}
	if _, err := s.cron.AddFunc(cfg.OrderDigestCron, s.job("weekly order digest", s.RunOrderDigest)); err != nil {
		return nil, fmt.Errorf("schedule weekly order digest: %w", err)
	}

	return s, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) job(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		s.logger.Info("running job", zap.String("job", name))
		if err := run(ctx); err != nil {
			s.logger.Error("job finished with errors", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("job finished", zap.String("job", name))
	}
}

// RunDailyKegReport archives today's fleet snapshot and alerts the manager
// when kegs are overdue. A failing sink does not stop the others.
func (s *Scheduler) RunDailyKegReport(ctx context.Context) error {
	report, err := s.reporter.DailyKegReport()
	if err != nil {
		return fmt.Errorf("build daily keg report: %w", err)
	}

	var errs []error
	if s.sinks.Archive != nil {
		if err := s.sinks.Archive.SaveDailyKegReport(ctx, report); err != nil {
			errs = append(errs, fmt.Errorf("archive daily keg report: %w", err))
		}
	}
	if s.sinks.Notifier != nil && report.Overdue > 0 {
		if err := s.sinks.Notifier.Notify(ctx, reporting.FormatDailyKegReport(report)); err != nil {
			errs = append(errs, fmt.Errorf("notify daily keg report: %w", err))
		}
	}
	return errors.Join(errs...)
}

// RunOrderDigest exports the current week's orders to the sheet and sends
// the digest to the manager.
func (s *Scheduler) RunOrderDigest(ctx context.Context) error {
	start := reporting.WeekStart(s.now())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	summary := s.reporter.OrderSummary(start, end)

	var errs []error
	if s.sinks.Sheet != nil && len(summary.Orders) > 0 {
		rows := reporting.OrderSheetRows(summary, s.now().UTC())
		if err := s.sinks.Sheet.AppendRows(ctx, s.sinks.OrdersRange, rows); err != nil {
			errs = append(errs, fmt.Errorf("export orders: %w", err))
		}
	}
	if s.sinks.Notifier != nil {
		if err := s.sinks.Notifier.Notify(ctx, reporting.FormatOrderSummary(summary)); err != nil {
			errs = append(errs, fmt.Errorf("notify order digest: %w", err))
		}
	}
	return errors.Join(errs...)
}
