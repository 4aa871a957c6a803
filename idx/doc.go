// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package idx implements reading .idx files.
//
// The .idx file is a list of dictionary words and the associated offset and
// size of each word's definition in the data file. Records are sorted by word
// using ASCII case insensitive byte order and are packed back to back with no
// padding and no table of record offsets.
//
// Each record comes in four parts, integers in little endian byte order:
//  1. The key length: a 16 bit unsigned integer, at most [MaxKeyLen].
//  2. The key: key length bytes of word text.
//  3. The offset: a 32 bit unsigned offset of the definition in the data
//     file.
//  4. The size: a 16 bit unsigned size of the definition in the data file.
//
// Because records vary in size, the index is never loaded into memory.
// [Index.Find] runs a binary search over byte offsets that walks forward to
// the record straddling each midpoint, and [Index.Random] selects records by
// sequential scanning.
package idx
