// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

// processAnchor writes the current node's anchor ("&name") or, for an
// alias, its reference ("*name"), using e.anchorData as populated by
// analyzeEvent. Anchor names are assumed well-formed by the caller; this
// emitter does not validate their character set.
func (e *Emitter) processAnchor() error {
	name := e.anchorData.name
	if name == "" {
		if e.anchorData.isAlias {
			return newError(UnexpectedEvent, e.state, "alias event with empty name")
		}
		return nil
	}
	indicator := "&"
	if e.anchorData.isAlias {
		indicator = "*"
	}
	return e.writeIndicator(indicator+name, true, false, false)
}
