/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a crash report and a clean exit.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"idecore/internal/config"
	applog "idecore/internal/log"
	"idecore/internal/telemetry"
	"idecore/internal/version"
)

// exitFn is replaced in tests.
var exitFn = os.Exit

// Recover logs a panic with its stack, writes a crash report to the config directory and
// exits with status 2. Call it deferred at the top of main and of long-lived goroutines:
//
//	defer crash.Recover()
func Recover() {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	report := buildReport(r, stack)
	path, err := writeReport(report)
	if err != nil {
		l.Error("write crash report", slog.Any("err", err))
	}
	telemetry.Default().UploadCrash(report)
	_ = applog.Close()

	fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", path)
	fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func buildReport(panicVal any, stack []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "IDECore Crash Report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&buf, "\nPanic: %v\n\nStack:\n%s\n", panicVal, stack)
	return buf.Bytes()
}

// reportDir is <config dir>/crash, or the temp directory when the config directory is
// unavailable.
func reportDir() string {
	if dir, err := config.Dir(); err == nil {
		crashDir := filepath.Join(dir, "crash")
		if err := os.MkdirAll(crashDir, 0o755); err == nil {
			return crashDir
		}
	}
	return os.TempDir()
}

func writeReport(report []byte) (string, error) {
	path := filepath.Join(reportDir(), fmt.Sprintf("crash-%s.log", time.Now().Format("20060102-150405")))
	if err := os.WriteFile(path, report, 0o644); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
