/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package appearance

// StartMode tells startup code which front end the process was launched for.
type StartMode int

const (
	StartApplication StartMode = iota
	StartSettings
)

// StartEntry records the command that launched the process.
type StartEntry struct {
	Command string
	Args    []string
}

// Splash is the startup splash screen, if one is shown.
type Splash interface {
	ShowMessage(msg string)
	Close()
}

// AppContext carries process-wide startup state. It is built once by main, filled by
// Initialize and handed to the components that need it.
type AppContext struct {
	mode   StartMode
	entry  StartEntry
	splash Splash

	userFont        Font
	userFontInitial Font
	useSystemFont   bool
}

func NewAppContext(mode StartMode, entry StartEntry) *AppContext {
	return &AppContext{mode: mode, entry: entry, useSystemFont: true}
}

func (a *AppContext) StartMode() StartMode   { return a.mode }
func (a *AppContext) StartEntry() StartEntry { return a.entry }
func (a *AppContext) Splash() Splash         { return a.splash }
func (a *AppContext) SetSplash(s Splash)     { a.splash = s }

// UserFont is the font chosen by the user during this session. The application font itself is
// fixed at startup; UserFont tracks edits that take effect on the next start.
func (a *AppContext) UserFont() Font          { return a.userFont }
func (a *AppContext) SetUserFont(f Font)      { a.userFont = f }
func (a *AppContext) InitialUserFont() Font   { return a.userFontInitial }
func (a *AppContext) UseSystemFont() bool     { return a.useSystemFont }
func (a *AppContext) SetUseSystemFont(b bool) { a.useSystemFont = b }
