/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package settings

import (
	"context"
	"fmt"

	"idecore/internal/config"
)

// Open returns the Store selected by the application configuration.
func Open(ctx context.Context, cfg config.AppConfig) (Store, error) {
	path, err := cfg.SettingsPath()
	if err != nil {
		return nil, err
	}
	switch cfg.Settings.Backend {
	case config.BackendSQLite:
		return OpenSQLite(ctx, path)
	case config.BackendFile, "":
		return OpenFile(path)
	default:
		return nil, fmt.Errorf("unknown settings backend %q", cfg.Settings.Backend)
	}
}
