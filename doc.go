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

// Package pocketdict implements an offline word lookup engine for large,
// read-only dictionaries on constrained devices.
//
// A dictionary consists of several files:
//  1. An .idx file that contains the sorted dictionary index. Each record
//     holds a word and the offset and size of its definition in the data
//     file. The index is searched on disk and never loaded into memory.
//  2. A .dict file that contains the definitions. The data file can be
//     compressed using the dictzip format.
//  3. An optional .ifo file that contains metadata about the dictionary.
//
// Definitions optionally start with a bracketed phonetic transcription
// followed by senses separated by semicolons. [Dictionary.Lookup] and
// [Dictionary.Random] return definitions formatted for display and record
// found words in a [history.Store].
package pocketdict
