package typesystem

import "github.com/funvibe/corecalc/internal/ast"

// GetKinds lists the expression kinds an editor may offer for a hole of
// type t. Var always comes first since any type may be met by a bound name;
// the order decides the default selection and must stay stable.
func GetKinds(t Type) []ast.ExprKind {
	kinds := []ast.ExprKind{ast.KindVar}

	switch t := t.(type) {
	case VCommand:
		if IsTrivial(t.Result) {
			kinds = append(kinds, ast.KindLet)
		}
	case VF64:
		kinds = append(kinds, ast.KindF64Lit)
	case VTrivial:
		kinds = append(kinds, ast.KindSole)
	case VU:
		if t.Level > 0 {
			kinds = append(kinds, ast.KindU)
		}
	}

	return kinds
}
