// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// supportedVersion is the %YAML directive this emitter implements.
const supportedVersion = "1.1"

// checkVersion validates that a document's requested %YAML directive is
// exactly the version this emitter implements. The teacher emitter's
// yamlEmitterAnalyzeVersionDirective rejects anything but an exact
// major/minor match rather than accepting a lesser or equal minor version.
func checkVersion(v *VersionDirective) error {
	if v == nil {
		return nil
	}
	want, err := goversion.NewVersion(supportedVersion)
	if err != nil {
		return err
	}
	got, err := goversion.NewVersion(fmt.Sprintf("%d.%d", v.Major, v.Minor))
	if err != nil {
		return newError(InvalidVersion, invalidState, fmt.Sprintf("malformed version %d.%d", v.Major, v.Minor))
	}
	if !got.Equal(want) {
		return newError(InvalidVersion, invalidState,
			fmt.Sprintf("incompatible %%YAML directive: %d.%d", v.Major, v.Minor))
	}
	return nil
}
