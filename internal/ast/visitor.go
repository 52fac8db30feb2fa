package ast

// Visitor walks expression nodes. Each Accept dispatches to the method for
// its concrete node type; recursion into children is left to the visitor.
type Visitor interface {
	VisitAdd(*Add)
	VisitCommand(*Command)
	VisitF64(*F64)
	VisitF64Lit(*F64Lit)
	VisitLet(*Let)
	VisitTrivial(*Trivial)
	VisitSole(*Sole)
	VisitU(*U)
	VisitVar(*Var)
}
