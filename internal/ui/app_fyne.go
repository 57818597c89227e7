//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	fynedialog "fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"idecore/internal/app"
	"idecore/internal/appearance"
	"idecore/internal/crash"
	"idecore/internal/dialog"
	applog "idecore/internal/log"
)

var newFyneApp = func() fyne.App { return fyneapp.NewWithID("idecore") }

// Run shows the settings window until it is closed.
func Run(opts Options) error {
	defer crash.Recover()
	ctx := context.Background()
	l := applog.WithComponent("ui")

	fyApp := newFyneApp()
	th := newAppTheme(nil)
	s, err := app.Start(ctx, app.Options{
		Mode:          appearance.StartSettings,
		Entry:         appearance.StartEntry{Command: os.Args[0], Args: os.Args[1:]},
		Target:        th,
		RunOnUI:       fyne.Do,
		WatchSettings: true,
	})
	if err != nil {
		return err
	}
	th.dec = s.Decorator
	fyApp.Settings().SetTheme(th)
	stopTheme := th.bind(fyApp, s.Context.InitialUserFont())
	defer stopTheme()

	w := fyApp.NewWindow("")
	w.SetMaster()
	view := newSettingsView(w)
	dlg := dialog.New(view, dialog.Options{
		Catalog:    s.Catalog,
		Store:      s.Store,
		Translator: s.Translator,
		Decorator:  s.Decorator,
	})
	view.dlg = dlg
	installContent(s, w)

	apply := func() bool {
		err := dlg.Apply()
		s.Telemetry.SettingsApplied(len(s.Catalog.AllPages()), countErrors(err))
		if err != nil {
			fynedialog.ShowError(err, w)
			return false
		}
		if err := s.Store.Save(ctx); err != nil {
			fynedialog.ShowError(err, w)
			return false
		}
		return true
	}
	closeDialog := func() {
		if err := dlg.Close(ctx); err != nil {
			l.Error("close settings dialog", slog.Any("err", err))
		}
		w.Close()
	}

	okBtn := widget.NewButton("", func() {
		if apply() {
			closeDialog()
		}
	})
	okBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton("", closeDialog)
	applyBtn := widget.NewButton("", func() { apply() })
	reloadButtons := func() {
		okBtn.SetText(s.Translator.T("ButtonOK"))
		cancelBtn.SetText(s.Translator.T("ButtonCancel"))
		applyBtn.SetText(s.Translator.T("ButtonApply"))
	}
	reloadButtons()
	stopButtons := s.Decorator.Subscribe(func(c appearance.Change) {
		if c == appearance.LocaleChanged {
			reloadButtons()
		}
	})
	defer stopButtons()

	buttons := container.NewHBox(layout.NewSpacer(), okBtn, cancelBtn, applyBtn)
	w.SetContent(container.NewBorder(nil, buttons, nil, nil, view.split))
	w.SetCloseIntercept(closeDialog)

	dlg.Open()
	if opts.Page != "" {
		dlg.SelectPage(opts.Page)
	}
	if p := dlg.Current(); p != nil {
		s.Telemetry.SettingsOpened(p.ID())
	}
	l.Info("settings window shown")
	w.ShowAndRun()
	return s.Close(ctx)
}

func countErrors(err error) int {
	if err == nil {
		return 0
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return len(joined.Unwrap())
	}
	return 1
}
