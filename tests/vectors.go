// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package tests reads the testdata vector files used by the
// calendar and codec tests.
package tests

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ReadSections splits r into sections separated by lines
// beginning with `---`. Blank lines and lines beginning with
// `#` are skipped; every other line becomes one vector of
// whitespace-separated fields.
func ReadSections(r io.Reader) ([][][]string, error) {
	sections := [][][]string{nil}
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := scan.Text()
		if strings.HasPrefix(line, "---") {
			sections = append(sections, nil)
			continue
		}
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		n := len(sections) - 1
		sections[n] = append(sections[n], fields)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

// ReadVectors reads the sections of the vector file fname;
// see ReadSections.
func ReadVectors(fname string) ([][][]string, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSections(f)
}
