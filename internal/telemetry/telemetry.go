/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package telemetry sends anonymous, opt-in usage events and crash reports. Nothing is sent
// unless the user opted in and an endpoint is configured.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"idecore/internal/config"
	applog "idecore/internal/log"
	"idecore/internal/version"
)

// Event names emitted by the settings dialog.
const (
	EventSettingsOpened   = "settings_opened"
	EventSettingsApplied  = "settings_applied"
	EventSettingsRejected = "settings_rejected"
)

// Environment variables read by FromConfig. The opt-in itself lives in the user config.
const (
	EnvEventsURL = "IDECORE_TELEMETRY_URL"
	EnvCrashURL  = "IDECORE_CRASH_UPLOAD_URL"
	EnvTimeoutMS = "IDECORE_TELEMETRY_TIMEOUT_MS"
	EnvDebug     = "IDECORE_TELEMETRY_DEBUG"
)

type Config struct {
	OptIn     bool
	EventsURL string
	CrashURL  string
	Timeout   time.Duration
	Debug     bool
}

// FromConfig builds the telemetry configuration from the user config and the environment.
func FromConfig(app config.AppConfig) Config {
	cfg := Config{
		OptIn:     app.General.TelemetryOptIn,
		EventsURL: strings.TrimSpace(os.Getenv(EnvEventsURL)),
		CrashURL:  strings.TrimSpace(os.Getenv(EnvCrashURL)),
		Timeout:   1500 * time.Millisecond,
		Debug:     os.Getenv(EnvDebug) != "",
	}
	if ms := strings.TrimSpace(os.Getenv(EnvTimeoutMS)); ms != "" {
		if d, err := time.ParseDuration(ms + "ms"); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// Event is the JSON body posted for every event.
type Event struct {
	Name    string         `json:"name"`
	Time    time.Time      `json:"ts"`
	Version string         `json:"version"`
	OS      string         `json:"os"`
	Arch    string         `json:"arch"`
	Props   map[string]any `json:"props,omitempty"`
}

// Client posts events from a background goroutine. Send never blocks; events are dropped
// when the queue is full or a request fails.
type Client struct {
	cfg     Config
	log     *slog.Logger
	http    *http.Client
	queue   chan Event
	pending atomic.Int64
	done    chan struct{}
	once    sync.Once
}

func New(cfg Config) *Client {
	c := &Client{
		cfg:   cfg,
		log:   applog.WithComponent("telemetry"),
		http:  &http.Client{Timeout: cfg.Timeout},
		queue: make(chan Event, 64),
		done:  make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether events are sent.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Send queues an event. Props must not carry personal data.
func (c *Client) Send(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	ev := Event{
		Name:    name,
		Time:    time.Now().UTC(),
		Version: version.String(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		Props:   props,
	}
	c.pending.Add(1)
	select {
	case c.queue <- ev:
	default:
		c.pending.Add(-1)
	}
}

// SettingsOpened records that the settings dialog was shown on page.
func (c *Client) SettingsOpened(page string) {
	c.Send(EventSettingsOpened, map[string]any{"page": page})
}

// SettingsApplied records an Apply of the settings dialog and how many pages rejected it.
func (c *Client) SettingsApplied(pages, rejected int) {
	name := EventSettingsApplied
	if rejected > 0 {
		name = EventSettingsRejected
	}
	c.Send(name, map[string]any{"pages": pages, "rejected": rejected})
}

// Flush waits until queued events are sent or ctx is done.
func (c *Client) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	t := time.NewTicker(10 * time.Millisecond)
	defer t.Stop()
	for c.pending.Load() > 0 {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Close stops the sender. Queued events are dropped.
func (c *Client) Close() {
	if c != nil {
		c.once.Do(func() { close(c.done) })
	}
}

func (c *Client) loop() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.queue:
			c.post(c.cfg.EventsURL, "application/json", c.encode(ev), "event")
			c.pending.Add(-1)
		}
	}
}

func (c *Client) encode(ev Event) []byte {
	b, err := json.Marshal(ev)
	if err != nil {
		c.log.Debug("encode telemetry event", slog.Any("err", err))
		return nil
	}
	return b
}

func (c *Client) post(url, contentType string, body []byte, what string) {
	if body == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.http.Do(req)
	if err != nil {
		if c.cfg.Debug {
			c.log.Debug("telemetry post failed", slog.String("kind", what), slog.Any("err", err))
		}
		return
	}
	_ = resp.Body.Close()
	if c.cfg.Debug {
		c.log.Debug("telemetry posted", slog.String("kind", what), slog.Int("status", resp.StatusCode))
	}
}

// UploadCrash posts a crash report to the crash endpoint if the user opted in.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", report, "crash")
}

var defaultClient atomic.Pointer[Client]

// SetDefault installs c as the process-wide client used by Default.
func SetDefault(c *Client) { defaultClient.Store(c) }

// Default returns the process-wide client. It is nil until SetDefault; all methods accept a
// nil receiver.
func Default() *Client { return defaultClient.Load() }
