// Package app wires the optional reporting destinations shared by the
// server and the command line tool.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/config"
	"github.com/mamadbah2/agritech/internal/repository/mongodb"
	"github.com/mamadbah2/agritech/internal/repository/sheets"
	reportingsvc "github.com/mamadbah2/agritech/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/agritech/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/agritech/pkg/clients/whatsapp"
)

const mongoConnectTimeout = 10 * time.Second

// Reporting holds the configured sinks and the resources behind them.
type Reporting struct {
	Sinks reportingsvc.Sinks
	// Alerts is set whenever a WhatsApp access token is configured, even
	// without an alert recipient, so the command bot can reply.
	Alerts *whatsappsvc.AlertService

	closers []func(context.Context) error
}

// NewReporting connects every sink cfg enables. Missing credentials only
// disable the matching sink.
func NewReporting(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Reporting, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reporting{}

	if cfg.MongoDB.Enabled() {
		connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
		repo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("init mongodb repository: %w", err)
		}
		r.Sinks.Store = repo
		r.closers = append(r.closers, repo.Close)
	} else {
		logger.Warn("mongodb uri missing, snapshot archive disabled")
	}

	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"))
		if err != nil {
			_ = r.Close(ctx)
			return nil, fmt.Errorf("init sheets repository: %w", err)
		}
		r.Sinks.Exporter = repo
		r.Sinks.InventoryRange = cfg.Sheets.InventoryRange
	} else {
		logger.Warn("google sheets credentials missing, inventory export disabled")
	}

	if cfg.WhatsApp.AccessToken != "" {
		client := whatsappclient.NewClient(whatsappclient.Config{
			BaseURL:       cfg.WhatsApp.BaseURL,
			APIVersion:    cfg.WhatsApp.APIVersion,
			AccessToken:   cfg.WhatsApp.AccessToken,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		})
		r.Alerts = whatsappsvc.NewAlertService(client, cfg.WhatsApp.AlertRecipient, logger.Named("svc.whatsapp"))
	}
	if cfg.WhatsApp.Enabled() && r.Alerts != nil {
		r.Sinks.Alerter = r.Alerts
	} else {
		logger.Warn("whatsapp credentials missing, stock alerts disabled")
	}

	return r, nil
}

// Close releases every connection opened by NewReporting.
func (r *Reporting) Close(ctx context.Context) error {
	var errs []error
	for _, closeFn := range r.closers {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
