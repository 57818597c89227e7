/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package app assembles the settings subsystem for a process: configuration, logging, the
// settings store, appearance state, translations and the page catalog. Front ends (the CLI
// and the fyne UI) start a Session and hand its parts to the components they show.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/image/font"

	"idecore/internal/appearance"
	"idecore/internal/catalog"
	"idecore/internal/config"
	"idecore/internal/i18n"
	applog "idecore/internal/log"
	"idecore/internal/pages"
	"idecore/internal/settings"
	"idecore/internal/telemetry"
)

// Options configure Start. Zero values select the defaults.
type Options struct {
	Mode  appearance.StartMode
	Entry appearance.StartEntry
	// Target receives the startup fonts; nil discards them.
	Target appearance.FontTarget
	// SystemFont returns the platform UI font; nil uses appearance.SystemFont.
	SystemFont func() appearance.Font
	// Secrets defaults to the OS keyring.
	Secrets config.SecretStore
	// RunOnUI runs f on the UI goroutine; nil runs it inline.
	RunOnUI func(f func())
	// WatchSettings reloads the settings file when it is edited on disk.
	WatchSettings bool
}

type Session struct {
	Config     config.AppConfig
	Store      settings.Store
	Decorator  *appearance.Decorator
	Context    *appearance.AppContext
	Translator *i18n.Translator
	Catalog    *catalog.Catalog
	Pages      *pages.Set
	Fonts      *appearance.FontLibrary
	Telemetry  *telemetry.Client

	log     *slog.Logger
	stop    context.CancelFunc
	cancels []func()
}

type discardFonts struct{}

func (discardFonts) SetDefaultFont(appearance.Font) {}
func (discardFonts) SetTooltipFont(appearance.Font) {}

// Start loads configuration, opens the settings store, applies the appearance preferences and
// installs the built-in pages.
func Start(ctx context.Context, opts Options) (*Session, error) {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("app")
	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}
	if opts.Target == nil {
		opts.Target = discardFonts{}
	}
	if opts.Secrets == nil {
		opts.Secrets = config.Keyring()
	}
	if opts.RunOnUI == nil {
		opts.RunOnUI = func(f func()) { f() }
	}

	store, err := settings.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	s := &Session{
		Config:    cfg,
		Store:     store,
		Decorator: appearance.NewDecorator(),
		Context:   appearance.NewAppContext(opts.Mode, opts.Entry),
		Catalog:   catalog.New(),
		Telemetry: telemetry.New(telemetry.FromConfig(cfg)),
		log:       l,
	}
	telemetry.SetDefault(s.Telemetry)
	appearance.Initialize(store, s.Decorator, s.Context, opts.Target, opts.SystemFont)

	if s.Translator, err = i18n.New(); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	s.Translator.SetLocale(s.Decorator.Locale())
	if s.Fonts, err = appearance.GoFontLibrary(); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	loadFontFiles(s.Fonts, cfg.Fonts, l)
	if s.Pages, err = pages.Install(s.Catalog, pages.Deps{
		Store:     store,
		Decorator: s.Decorator,
		App:       s.Context,
		Secrets:   opts.Secrets,
	}); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	s.Pages.ReloadStrings(s.Translator)
	// Subscribed before any dialog so translations switch before widgets reload their strings.
	s.cancels = append(s.cancels, s.Decorator.Subscribe(func(c appearance.Change) {
		if c == appearance.LocaleChanged {
			s.Translator.SetLocale(s.Decorator.Locale())
			s.Pages.ReloadStrings(s.Translator)
		}
	}))

	if fs, ok := store.(*settings.FileStore); ok && opts.WatchSettings {
		watchCtx, stop := context.WithCancel(context.Background())
		s.stop = stop
		err := fs.Watch(watchCtx, func() {
			opts.RunOnUI(func() {
				l.Info("settings file changed on disk, reapplying")
				appearance.Reapply(store, s.Decorator)
			})
		})
		if err != nil {
			l.Warn("settings watch unavailable", slog.Any("err", err))
		}
	}

	l.Info("session started",
		slog.String("backend", cfg.Settings.Backend),
		slog.String("locale", s.Translator.Locale()),
		slog.Int("pages", len(s.Catalog.AllPages())))
	return s, nil
}

// Close saves and closes the settings store and flushes telemetry.
func (s *Session) Close(ctx context.Context) error {
	if s.stop != nil {
		s.stop()
	}
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.Telemetry.Flush(ctx)
	s.Telemetry.Close()

	var errs []error
	if err := s.Store.Save(ctx); err != nil {
		errs = append(errs, fmt.Errorf("save settings: %w", err))
	}
	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close settings: %w", err))
	}
	if err := applog.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// loadFontFiles adds the configured font files to lib. A file that cannot be loaded is skipped.
func loadFontFiles(lib *appearance.FontLibrary, files []config.FontFile, l *slog.Logger) {
	dir, _ := config.Dir()
	for _, ff := range files {
		path := ff.Path
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		style := font.StyleNormal
		if ff.Italic {
			style = font.StyleItalic
		}
		if err := lib.LoadTTF(ff.Family, appearance.WeightFromCSS(ff.Weight), style, path); err != nil {
			l.Warn("font file not loaded", slog.String("family", ff.Family), slog.Any("err", err))
			continue
		}
		l.Debug("font file loaded", slog.String("family", ff.Family), slog.String("path", path))
	}
}
