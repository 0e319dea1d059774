/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package configtest

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDevConfigDir returns the sampleconfig directory of the source tree by
// walking up from the working directory. This should only be used in a
// test/development context.
func GetDevConfigDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		devPath := filepath.Join(dir, "sampleconfig")
		if fi, err := os.Stat(filepath.Join(devPath, "bnpeer.yaml")); err == nil && !fi.IsDir() {
			return devPath, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("sampleconfig not found above %s", dir)
		}
		dir = parent
	}
}

// GetDevConfigFile returns the path of the sample bnpeer.yaml.
func GetDevConfigFile() (string, error) {
	devDir, err := GetDevConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(devDir, "bnpeer.yaml"), nil
}
