// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()
	assert.True(t, strings.HasPrefix(info, "tiffpdf-meta "+Version))
	assert.Contains(t, info, "commit: "+GitCommit)
	assert.Contains(t, info, "platform: "+runtime.GOOS+"/"+runtime.GOARCH)
	assert.True(t, strings.HasSuffix(info, "\nmodes: "+Supported()))
}

func TestSupported(t *testing.T) {
	assert.Equal(t, "tiff (.tif, .tiff), pdf (.pdf)", Supported())
}
