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

//go:build unix

package idx

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile maps size bytes of f read only. A nil unmap func means the file
// was not mapped and should be read normally.
func mmapFile(f *os.File, size int64) (data []byte, unmap func() error, err error) {
	// Empty files cannot be mapped.
	if size == 0 || size > math.MaxInt {
		return nil, nil, nil
	}

	//nolint:gosec // fd fits in int on unix.
	data, err = unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mapping index: %w", err)
	}
	return data, func() error {
		return unix.Munmap(data)
	}, nil
}
