// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package envfile loads KEY=value files (.env) into the process environment
// before configuration is read, so settings such as
// OPERATOR_SEARCH_CLIENT_BASE_URL can live next to the binary.
package envfile

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// Load reads each file in paths and sets every variable that is not already
// present in the environment; real environment variables always win. Missing
// files are not errors. It returns the names of the variables it set, sorted.
func Load(paths ...string) ([]string, error) {
	var applied []string
	for _, path := range paths {
		vars, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return applied, fmt.Errorf("reading env file %s: %w", path, err)
		}

		for key, value := range vars {
			if _, ok := os.LookupEnv(key); ok {
				continue
			}
			if err := os.Setenv(key, value); err != nil {
				return applied, fmt.Errorf("setting %s from %s: %w", key, path, err)
			}
			applied = append(applied, key)
		}
	}
	sort.Strings(applied)
	return applied, nil
}
