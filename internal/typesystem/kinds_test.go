package typesystem

import (
	"reflect"
	"testing"

	"github.com/funvibe/corecalc/internal/ast"
)

func TestGetKinds(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want []ast.ExprKind
	}{
		{"F64", VF64{}, []ast.ExprKind{ast.KindVar, ast.KindF64Lit}},
		{"Trivial", VTrivial{}, []ast.ExprKind{ast.KindVar, ast.KindSole}},
		{"U(0)", VU{Level: 0}, []ast.ExprKind{ast.KindVar}},
		{"U(1)", VU{Level: 1}, []ast.ExprKind{ast.KindVar, ast.KindU}},
		{"U(max)", VU{Level: ast.MaxLevel}, []ast.ExprKind{ast.KindVar, ast.KindU}},
		{"Command(Trivial)", VCommand{Result: VTrivial{}}, []ast.ExprKind{ast.KindVar, ast.KindLet}},
		{"Command(F64)", VCommand{Result: VF64{}}, []ast.ExprKind{ast.KindVar}},
		{"literal", VF64Lit{Value: 1}, []ast.ExprKind{ast.KindVar}},
		{"sole", VSole{}, []ast.ExprKind{ast.KindVar}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetKinds(tt.typ)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetKinds(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestGetKindsStartsWithVar(t *testing.T) {
	for _, typ := range []Type{VF64{}, VTrivial{}, VU{Level: 5}, VCommand{Result: VU{Level: 0}}} {
		kinds := GetKinds(typ)
		if len(kinds) == 0 || kinds[0] != ast.KindVar {
			t.Errorf("GetKinds(%s) = %v, want Var first", typ, kinds)
		}
	}
}
