/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package dialog

import (
	"strings"

	"idecore/internal/catalog"
	"idecore/internal/settings"
)

// CatalogRow is one link of a synthesized catalog view.
type CatalogRow struct {
	PageID string
	Text   string
}

// View renders a Dialog. All calls happen on the UI goroutine.
type View interface {
	SetWindowTitle(title string)
	SetSearchPlaceholder(text string)
	SetHeader(title, description string)

	// SetTree shows t. It is called after every rebuild and filter change.
	SetTree(t *Tree)
	// RefreshNode redraws the label and tooltip of n.
	RefreshNode(n *Node)
	// Select mirrors the current node in the tree widget; nil clears the selection.
	Select(n *Node)

	// Attach mounts s in the content area.
	Attach(s catalog.Surface)
	// Detach unmounts s without releasing it.
	Detach(s catalog.Surface)
	// Destroy unmounts and releases a surface created by NewCatalogView.
	Destroy(s catalog.Surface)
	// NewCatalogView creates a list of links; activating a row calls open with its page id.
	NewCatalogView(rows []CatalogRow, open func(pageID string)) catalog.Surface
	SetRowText(view catalog.Surface, pageID, text string)

	Size() settings.Size
	Resize(settings.Size)
	SplitterSizes() []float32
	SetSplitterSizes([]float32)
}

// EscapeMnemonic doubles '&' so the text renders literally instead of marking an accelerator.
func EscapeMnemonic(s string) string { return strings.ReplaceAll(s, "&", "&&") }

// UnescapeMnemonic returns the displayed text for a mnemonic label: "&&" becomes '&' and a
// single '&' is dropped.
func UnescapeMnemonic(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '&' {
			if i+1 < len(s) && s[i+1] == '&' {
				b.WriteByte('&')
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
