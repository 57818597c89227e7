/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"idecore/internal/app"
	"idecore/internal/appearance"
	"idecore/internal/config"
	"idecore/internal/crash"
	"idecore/internal/dialog"
	applog "idecore/internal/log"
	"idecore/internal/ui"
	"idecore/internal/version"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "idecore settings")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  idecore version|-v|--version     Show version")
	fmt.Fprintln(w, "  idecore pages [filter]           Print the settings page tree, optionally filtered")
	fmt.Fprintln(w, "  idecore prefs                    Apply the stored appearance preferences and print them")
	fmt.Fprintln(w, "  idecore settings [pageID]        Open the settings dialog (build with -tags fyne)")
}

func main() {
	applog.Init(applog.FromEnv())
	defer crash.Recover()
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	l := applog.WithComponent("cli")
	if len(args) == 0 {
		usage(out)
		return 0
	}
	l.Debug("start", slog.String("cmd", args[0]), slog.Int("args", len(args)))
	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintln(out, version.String())
		return 0
	case "pages":
		filter := strings.Join(args[1:], " ")
		if err := printPages(out, filter); err != nil {
			l.Error("pages failed", slog.Any("err", err))
			fmt.Fprintln(out, "Error:", err)
			return 1
		}
		return 0
	case "prefs":
		if err := printPrefs(out); err != nil {
			l.Error("prefs failed", slog.Any("err", err))
			fmt.Fprintln(out, "Error:", err)
			return 1
		}
		return 0
	case "settings":
		var opts ui.Options
		if len(args) > 1 {
			opts.Page = args[1]
		}
		if err := ui.Run(opts); err != nil {
			l.Error("ui failed", slog.Any("err", err))
			fmt.Fprintln(out, "Error:", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(out, "unknown command %q\n", args[0])
		usage(out)
		return 2
	}
}

// headless starts a session that never touches the OS keyring.
func headless(ctx context.Context, target appearance.FontTarget) (*app.Session, error) {
	return app.Start(ctx, app.Options{
		Mode:    appearance.StartSettings,
		Entry:   appearance.StartEntry{Command: "idecore", Args: os.Args[1:]},
		Target:  target,
		Secrets: config.NewMemorySecrets(),
	})
}

func printPages(out io.Writer, filter string) error {
	ctx := context.Background()
	s, err := headless(ctx, nil)
	if err != nil {
		return err
	}
	tree := dialog.BuildTree(s.Catalog.Pages(), filter)
	fmt.Fprint(out, tree.String())
	if filter != "" && tree.VisibleCount() == 0 {
		fmt.Fprintf(out, "no page matches %q\n", filter)
	}
	return s.Close(ctx)
}

type fontRecorder struct{ def, tooltip appearance.Font }

func (r *fontRecorder) SetDefaultFont(f appearance.Font) { r.def = f }
func (r *fontRecorder) SetTooltipFont(f appearance.Font) { r.tooltip = f }

func printPrefs(out io.Writer) error {
	ctx := context.Background()
	fonts := &fontRecorder{}
	s, err := headless(ctx, fonts)
	if err != nil {
		return err
	}
	dec := s.Decorator
	fmt.Fprintf(out, "locale:          %s\n", s.Translator.Locale())
	fmt.Fprintf(out, "theme:           %s\n", orDefault(dec.Theme()))
	fmt.Fprintf(out, "zoom:            %.0f%%\n", dec.ZoomRatio()*100)
	fmt.Fprintf(out, "font ratio:      %.2f\n", dec.FontRatio())
	fmt.Fprintf(out, "user font:       %s\n", s.Context.UserFont())
	fmt.Fprintf(out, "effective font:  %s %dpx\n", fonts.def.Family, fonts.def.PixelSize)
	fmt.Fprintf(out, "use system font: %t\n", s.Context.UseSystemFont())
	return s.Close(ctx)
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}
