package dfxml_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterIsDocumented(t *testing.T) {
	file, err := parser.ParseFile(token.NewFileSet(), "writer.go", nil, parser.ParseComments)
	require.NoError(t, err)

	var exported int
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Name.IsExported() {
				exported++
				require.NotNil(t, d.Doc, d.Name.Name)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || !ts.Name.IsExported() {
					continue
				}
				exported++
				require.True(t, d.Doc != nil || ts.Doc != nil, ts.Name.Name)
			}
		}
	}
	require.Equal(t, 5, exported)
}
