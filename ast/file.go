// Copyright 2024 The LSTF Authors
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

package ast

import "github.com/Prince781/lstf-sub001/token"

// FunctionLike is implemented by function symbols (package scope): it
// is the minimal surface File needs from its main function without
// importing the scope package, which itself depends on ast.
type FunctionLike interface {
	Symbol
	ScopeOwner
	Body() *Block
}

// File is the entry point the resolver and analyzer are handed: a
// source path, its contents, and the implicit `main` function whose
// body is the file's top-level block of statements (so MainBlock and
// MainFunction's own block are the same node, matching how the parser
// installs builtin declarations directly into the main function).
//
// File itself is not a code node (it has no source span to report
// diagnostics against beyond the zero location, and it is never the
// target of acquire/release or visitation) — it is the plain handle
// the driver passes to each pass, mirroring the source's own
// unreferenced-counted lstf_file.
type File struct {
	Path     string
	Contents string

	MainFunction FunctionLike

	// ServerPathAssigned and ProjectFilesAssigned track the two
	// mandatory top-level assignments (§6); the analyzer sets these as
	// it walks assignment statements and checks them at end of file.
	ServerPathAssigned   bool
	ProjectFilesAssigned bool
}

// NewFile constructs a File. Callers (ordinarily the external parser,
// or a test harness standing in for it) set MainFunction once the
// implicit main function symbol has been built.
func NewFile(path, contents string) *File {
	return &File{Path: path, Contents: contents}
}

// SourceRef returns the zero-width reference at the start of the file,
// used for diagnostics that apply to the file as a whole (e.g. a
// missing mandatory top-level assignment).
func (f *File) SourceRef() token.SourceRef {
	return token.DefaultFor(f.Path)
}

// MainBlock returns the file's top-level sequence of statements, which
// is simply the main function's body block.
func (f *File) MainBlock() *Block {
	if f.MainFunction == nil {
		return nil
	}
	return f.MainFunction.Body()
}

func (f *File) SetMainFunction(fn FunctionLike) {
	f.MainFunction = Acquire(fn).(FunctionLike)
}
