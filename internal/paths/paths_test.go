// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	assert.Equal(t, dir, GetConfigDir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), GetConfigFile())
}

func TestGetConfigDirDefault(t *testing.T) {
	t.Setenv(ConfigDirEnv, "")
	assert.Equal(t, "tiffpdf-meta", filepath.Base(GetConfigDir()))
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath(""))
	assert.NoError(t, ValidatePath("reports/tiff_metadata.xlsx"))

	err := ValidatePath("bad\x00name.csv")
	var pathErr *PathValidationError
	assert.True(t, errors.As(err, &pathErr))
	assert.Contains(t, err.Error(), "null byte")
}

func TestValidateWindowsPath(t *testing.T) {
	assert.NoError(t, validateWindowsPath(`C:\reports\out.xlsx`))
	assert.ErrorContains(t, validateWindowsPath(`C:\reports\out?.xlsx`), "invalid character: ?")
}
