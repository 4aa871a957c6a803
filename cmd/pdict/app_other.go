// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !windows

package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// dataSubdir is the directory under each XDG data directory holding
// dictionaries.
const dataSubdir = "pocketdict/dic"

// dictLocations returns the directories searched for dictionaries, most
// specific first: $PDICT_DATA_DIR, the XDG data home and then each of the
// XDG data directories. Duplicates are removed.
func dictLocations() []string {
	var loc []string

	if dataDir := os.Getenv("PDICT_DATA_DIR"); dataDir != "" {
		loc = append(loc, dataDir)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
			dataHome = filepath.Join(homeDir, ".local/share")
		}
	}
	if dataHome != "" {
		loc = append(loc, filepath.Join(dataHome, dataSubdir))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range filepath.SplitList(dataDirs) {
		// Relative entries are invalid and ignored.
		if filepath.IsAbs(dir) {
			loc = append(loc, filepath.Join(dir, dataSubdir))
		}
	}

	return compactPaths(loc)
}

// compactPaths removes later duplicates of cleaned paths.
func compactPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		p = filepath.Clean(strings.TrimSpace(p))
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// historyLocation returns the default history file under the XDG state
// home.
func historyLocation() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "pocketdict/history")
	}

	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		return filepath.Join(homeDir, ".local/state/pocketdict/history")
	}

	return ""
}
