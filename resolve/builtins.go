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

package resolve

import (
	"github.com/Prince781/lstf-sub001/ast"
	"github.com/Prince781/lstf-sub001/scope"
	"github.com/Prince781/lstf-sub001/types"
)

// NewMainFile builds the skeleton the parser hands the compiler core: a
// file whose implicit main function owns the top-level block of
// statements. Test harnesses standing in for the external parser start
// here.
func NewMainFile(path, contents string) *ast.File {
	file := ast.NewFile(path, contents)
	src := file.SourceRef()

	main := scope.NewFunction(src, "main", false, false)
	main.SetReturnType(types.NewVoidType(src))
	main.SetBody(ast.NewBlock(src))
	file.SetMainFunction(main)
	return file
}

// InstallBuiltins declares the built-in surface every LSTF program sees,
// exactly as the parser installs it before resolution begins:
//
//	server_path: string
//	project_files: string[]
//	diagnostics(file: string): any
//	print(args: any): void
//
// The declarations are appended as ordinary statements of the main
// function's body (on a file fresh from NewMainFile they are its first
// statements), so resolution and lookup treat them like any other
// top-level declaration.
func InstallBuiltins(file *ast.File) {
	src := file.SourceRef()
	block := file.MainBlock()

	serverPath := scope.NewVariable(src, "server_path", true)
	serverPath.SetVariableType(types.NewStringType(src))
	block.AddStatement(ast.NewDeclarationStmt(src, serverPath))

	projectFiles := scope.NewVariable(src, "project_files", true)
	projectFiles.SetVariableType(types.NewArrayType(src, types.NewStringType(src)))
	block.AddStatement(ast.NewDeclarationStmt(src, projectFiles))

	diagnostics := scope.NewFunction(src, "diagnostics", true, false)
	fileArg := scope.NewVariable(src, "file", true)
	fileArg.SetVariableType(types.NewStringType(src))
	diagnostics.AddParameter(fileArg)
	diagnostics.SetReturnType(types.NewAnyType(src))
	block.AddStatement(ast.NewDeclarationStmt(src, diagnostics))

	print := scope.NewFunction(src, "print", true, false)
	printArg := scope.NewVariable(src, "args", true)
	printArg.SetVariableType(types.NewAnyType(src))
	print.AddParameter(printArg)
	print.SetReturnType(types.NewVoidType(src))
	block.AddStatement(ast.NewDeclarationStmt(src, print))
}
