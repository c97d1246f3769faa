package typecheck

import (
	"testing"

	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/stretchr/testify/assert"
)

func sym(name, parent string) ast.Symbol {
	if parent == "" {
		return ast.Symbol{Name: name}
	}
	return ast.Symbol{Name: name, Type: parent, Typed: true}
}

func TestBuild_IsDeclared(t *testing.T) {
	assert := assert.New(t)

	g := Build([]ast.Symbol{
		sym("vehicle", ""),
		sym("car", "vehicle"),
		sym("truck", "vehicle"),
	})

	assert.True(g.IsDeclared("object"))
	assert.True(g.IsDeclared("vehicle"))
	assert.True(g.IsDeclared("car"))
	assert.True(g.IsDeclared("truck"))
	assert.False(g.IsDeclared("boat"))
}

func TestVerifyAcyclic(t *testing.T) {
	testCases := []struct {
		name    string
		types   []ast.Symbol
		wantErr bool
	}{
		{
			name: "linear chain is acyclic",
			types: []ast.Symbol{
				sym("car", "vehicle"),
				sym("vehicle", "object"),
			},
			wantErr: false,
		},
		{
			name: "self-reference is cyclic",
			types: []ast.Symbol{
				sym("car", "car"),
			},
			wantErr: true,
		},
		{
			name: "mutual reference is cyclic",
			types: []ast.Symbol{
				sym("a", "b"),
				sym("b", "a"),
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := Build(tc.types)
			err := g.VerifyAcyclic()
			if tc.wantErr {
				assert.ErrorAs(t, err, &diag.CyclicTypeDeclaration{})
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsSubtype(t *testing.T) {
	g := Build([]ast.Symbol{
		sym("car", "vehicle"),
		sym("vehicle", ""),
		sym("boat", ""),
	})

	testCases := []struct {
		name                           string
		found, expected                string
		foundTyped, expectedTyped      bool
		want                           bool
	}{
		{"both untyped", "", "", false, false, true},
		{"found typed, expected untyped", "car", "", true, false, false},
		{"same type", "car", "car", true, true, true},
		{"direct supertype", "car", "vehicle", true, true, true},
		{"unrelated types", "car", "boat", true, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.IsSubtype(tc.found, tc.foundTyped, tc.expected, tc.expectedTyped)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCheckDeclarations(t *testing.T) {
	g := Build([]ast.Symbol{sym("car", "vehicle"), sym("vehicle", "")})

	assert.NoError(t, g.CheckDeclarations([]ast.Symbol{sym("x", "car")}))

	err := g.CheckDeclarations([]ast.Symbol{sym("x", "boat")})
	assert.ErrorAs(t, err, &diag.UndefinedType{})
}
