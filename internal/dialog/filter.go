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

// ApplyFilter sets the visibility of every node for the search text. With empty text every
// node is shown. Otherwise a node is shown when its page matches or it is an ancestor of a
// matching page; matching itself is left to the pages.
func (t *Tree) ApplyFilter(text string) {
	if text == "" {
		t.Walk(func(n *Node, _ int) { n.Hidden = false })
		return
	}
	t.Walk(func(n *Node, _ int) { n.Hidden = true })
	t.Walk(func(n *Node, _ int) {
		if !n.page.Matches(text) {
			return
		}
		n.Hidden = false
		// Stop at the first visible ancestor; a sibling match already revealed the rest.
		for p := n.parent; p != nil && p.Hidden; p = p.parent {
			p.Hidden = false
		}
	})
}

// VisibleCount returns the number of nodes not hidden by the filter.
func (t *Tree) VisibleCount() int {
	count := 0
	t.Walk(func(n *Node, _ int) {
		if !n.Hidden {
			count++
		}
	})
	return count
}
