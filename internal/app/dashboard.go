package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samvad-hq/mpc-dashboard/internal/config"
	"github.com/samvad-hq/mpc-dashboard/internal/logger"
	"github.com/samvad-hq/mpc-dashboard/internal/pages"
	"github.com/samvad-hq/mpc-dashboard/pkg/apiclient"
	"github.com/samvad-hq/mpc-dashboard/pkg/dashboard"
	"github.com/samvad-hq/mpc-dashboard/pkg/httpclient"
	"github.com/samvad-hq/mpc-dashboard/pkg/notify"
)

// Dashboard is the runtime behind the CLI. It owns the backend client, the
// page archive and the notifier fanout, and must be closed after use. The
// archive is opened on first use, so plain API reads never touch it.
type Dashboard struct {
	cfg    *config.Config
	api    *dashboard.API
	fanout *notify.Fanout
	log    logger.Logger

	storeMu  sync.Mutex
	store    pages.Store
	storeErr error
}

// Generated is the outcome of a page generation.
type Generated struct {
	Result   any
	Page     pages.Page
	Saved    bool
	Notified int
}

// NewDashboard builds the runtime from config.
func NewDashboard(ctx context.Context, cfg *config.Config, log logger.Logger) (*Dashboard, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client := apiclient.New(cfg.APIBaseURL, httpclient.NewRestyClient(cfg.HTTPTimeout), log)
	log.DebugObj("api client ready", "api_config", map[string]any{
		"base_url":        cfg.APIBaseURL,
		"timeout_seconds": int(cfg.HTTPTimeout.Seconds()),
	})

	fanout, err := buildFanout(ctx, cfg.NotifiersFile, log)
	if err != nil {
		return nil, err
	}

	if err := pages.CheckType(cfg.StorageType, cfg.PagesDBPath); err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	return &Dashboard{
		cfg:    cfg,
		api:    dashboard.New(client),
		fanout: fanout,
		log:    log,
	}, nil
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*notify.Fanout, error) {
	if strings.TrimSpace(path) == "" {
		return notify.NewFanout(nil), nil
	}

	reg, err := notify.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}
	enabled := reg.Enabled()
	sinks, err := notify.BuildAll(ctx, notify.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.DebugObj("notifiers registry loaded", "notifiers_meta", map[string]any{
		"count":     len(summaries),
		"notifiers": summaries,
	})
	return notify.NewFanout(sinks), nil
}

// API exposes the typed backend operations.
func (d *Dashboard) API() *dashboard.API { return d.api }

// Pages opens the generated page archive on first call and returns it.
// A failed open is remembered and returned on later calls.
func (d *Dashboard) Pages() (pages.Store, error) {
	d.storeMu.Lock()
	defer d.storeMu.Unlock()

	if d.store != nil || d.storeErr != nil {
		return d.store, d.storeErr
	}

	cfg := d.cfg
	store, err := pages.NewStore(cfg.StorageType, cfg.PagesDBPath, pages.Options{
		PageTTL:         cfg.PagesTTL,
		CleanupInterval: cfg.PagesCleanupInterval,
	})
	if err != nil {
		d.storeErr = fmt.Errorf("init storage: %w", err)
		return nil, d.storeErr
	}
	d.log.DebugObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.PagesDBPath,
		"page_ttl_seconds":         int(cfg.PagesTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.PagesCleanupInterval.Seconds()),
	})
	d.store = store
	return store, nil
}

func (d *Dashboard) savePage(page pages.Page) (pages.Page, error) {
	store, err := d.Pages()
	if err != nil {
		return page, err
	}
	return store.Save(page)
}

// GeneratePage asks the backend to generate a page, optionally archives it,
// and notifies the configured sinks. Archive and notifier failures are logged
// and never fail the call.
func (d *Dashboard) GeneratePage(ctx context.Context, name, description, dataType string, save bool) (Generated, error) {
	result, err := d.api.GeneratePage(ctx, name, description, dataType)
	if err != nil {
		return Generated{}, err
	}

	out := Generated{Result: result}
	page, err := pages.NewPage(name, description, dataType, result)
	if err != nil {
		d.log.WarnObj("generated page could not be recorded", "page_error", map[string]any{
			"page_name": name,
			"error":     err.Error(),
		})
	} else {
		out.Page = page
		if save {
			saved, err := d.savePage(page)
			switch {
			case errors.Is(err, pages.ErrStorageDisabled):
				d.log.DebugObj("page archive disabled; page not saved", "page_name", name)
			case err != nil:
				d.log.ErrorObj("page archive save failed", "page_error", map[string]any{
					"page_name": name,
					"error":     err.Error(),
				})
			default:
				out.Page = saved
				out.Saved = true
			}
		}
	}

	evt := notify.NewPageGenerated(name, description, dataType, out.Page.Title, result)
	sent, err := d.fanout.Send(ctx, evt)
	out.Notified = sent
	if err != nil {
		d.log.WarnObj("page notification incomplete", "notify_error", map[string]any{
			"page_name": name,
			"delivered": sent,
			"error":     err.Error(),
		})
	}

	d.log.InfoObj("page generated", "page_meta", map[string]any{
		"page_name": name,
		"data_type": dataType,
		"title":     out.Page.Title,
		"saved":     out.Saved,
		"notified":  out.Notified,
	})
	return out, nil
}

// Close releases the archive and notifier connections.
func (d *Dashboard) Close() error {
	if d == nil {
		return nil
	}
	var errs []error
	d.storeMu.Lock()
	defer d.storeMu.Unlock()
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
		d.store = nil
	}
	if err := d.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
