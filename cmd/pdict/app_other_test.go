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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDictLocations(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected []string
	}{
		{
			name: "defaults",
			env: map[string]string{
				"HOME":           "/home/user",
				"PDICT_DATA_DIR": "",
				"XDG_DATA_HOME":  "",
				"XDG_DATA_DIRS":  "",
			},
			expected: []string{
				"/home/user/.local/share/pocketdict/dic",
				"/usr/local/share/pocketdict/dic",
				"/usr/share/pocketdict/dic",
			},
		},
		{
			name: "configured",
			env: map[string]string{
				"HOME":           "/home/user",
				"PDICT_DATA_DIR": "/srv/dicts/",
				"XDG_DATA_HOME":  "/data",
				"XDG_DATA_DIRS":  "/opt/share:relative:/data:/opt/share",
			},
			expected: []string{
				"/srv/dicts",
				"/data/pocketdict/dic",
				"/opt/share/pocketdict/dic",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			if diff := cmp.Diff(test.expected, dictLocations()); diff != "" {
				t.Errorf("dictLocations (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHistoryLocation(t *testing.T) {
	t.Setenv("HOME", "/home/user")

	t.Setenv("XDG_STATE_HOME", "")
	if diff := cmp.Diff("/home/user/.local/state/pocketdict/history", historyLocation()); diff != "" {
		t.Errorf("historyLocation (-want +got):\n%s", diff)
	}

	t.Setenv("XDG_STATE_HOME", "/state")
	if diff := cmp.Diff("/state/pocketdict/history", historyLocation()); diff != "" {
		t.Errorf("historyLocation (-want +got):\n%s", diff)
	}
}
