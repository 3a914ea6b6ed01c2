package ast

// Visitor is invoked by Walk for every node in a tree. If Visit returns a
// non-nil Visitor, Walk visits the children of the node with that visitor,
// then calls Visit(nil) on the returned visitor. Mirrors the teacher's
// Inspector/Walk pattern from its public facade.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses an AST in depth-first order, calling v.Visit for each node.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	v = v.Visit(node)
	if v == nil {
		return
	}
	defer v.Visit(nil)

	switch n := node.(type) {
	case *Identifier, *Literal, *ParameterRef, *VariableRef, *CurrentValueSpec, *DomainValueRef:
		// leaves

	case *ColumnRef:
		walkIdent(v, n.Schema)
		walkIdent(v, n.Table)
		Walk(v, n.Name)

	case *UnaryExpr:
		Walk(v, n.Operand)
	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *NaryExpr:
		for _, o := range n.Operands {
			Walk(v, o)
		}
	case *Cast:
		Walk(v, n.Operand)
	case *FieldDeref:
		Walk(v, n.Operand)
		Walk(v, n.FieldName)
	case *ArrayElementRef:
		Walk(v, n.Operand)
		Walk(v, n.Index)
	case *ArrayConstructor:
		for _, e := range n.Elements {
			Walk(v, e)
		}
		if n.Subquery != nil {
			Walk(v, n.Subquery)
		}
	case *RowConstructor:
		for _, e := range n.Fields {
			Walk(v, e)
		}
	case *Subquery:
		Walk(v, n.Query)
	case *SequenceValue:
		walkIdent(v, n.Schema)
		Walk(v, n.Sequence)
	case *AtTimeZone:
		Walk(v, n.Operand)
		if n.Zone != nil {
			Walk(v, n.Zone)
		}
	case *FormatExpr:
		Walk(v, n.Operand)
	case *VariableAssign:
		Walk(v, n.Target)
		Walk(v, n.Value)

	case *InExpr:
		Walk(v, n.Operand)
		for _, e := range n.List {
			Walk(v, e)
		}
		if n.Subquery != nil {
			Walk(v, n.Subquery)
		}
	case *BetweenExpr:
		Walk(v, n.Operand)
		Walk(v, n.Low)
		Walk(v, n.High)
	case *LikeExpr:
		Walk(v, n.Operand)
		Walk(v, n.Pattern)
		if n.Escape != nil {
			Walk(v, n.Escape)
		}
	case *IsExpr:
		Walk(v, n.Operand)
		if n.Other != nil {
			Walk(v, n.Other)
		}
	case *UniqueExpr:
		Walk(v, n.Subquery)
	case *ExistsExpr:
		Walk(v, n.Subquery)
	case *IntersectsExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *QuantifiedComparison:
		Walk(v, n.Left)
		Walk(v, n.Subquery)
	case *CaseExpr:
		if n.Operand != nil {
			Walk(v, n.Operand)
		}
		for _, w := range n.Whens {
			Walk(v, w.Condition)
			Walk(v, w.Result)
		}
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *CoalesceExpr:
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *FuncCall:
		walkIdent(v, n.Schema)
		Walk(v, n.Name)
		for _, a := range n.Args {
			Walk(v, a)
		}
		if n.Filter != nil {
			Walk(v, n.Filter)
		}

	case *TableRef:
		walkIdent(v, n.Schema)
		Walk(v, n.Name)
	case *DerivedTable:
		Walk(v, n.Query)
	case *TableFunctionRef:
		Walk(v, n.Call)
	case *JoinExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
		if n.On != nil {
			Walk(v, n.On)
		}

	case *Select:
		if n.With != nil {
			for _, c := range n.With.CTEs {
				Walk(v, c.Query)
			}
		}
		for _, it := range n.Items {
			if it.Expr != nil {
				Walk(v, it.Expr)
			}
		}
		if n.From != nil {
			Walk(v, n.From)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}
		if n.Having != nil {
			Walk(v, n.Having)
		}
		if n.Qualify != nil {
			Walk(v, n.Qualify)
		}
	case *SetOperation:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *Values:
		for _, row := range n.Rows {
			for _, e := range row {
				Walk(v, e)
			}
		}
	case *TableCommand:
		Walk(v, n.Name)

	case *Insert:
		Walk(v, n.Table)
		if n.Query != nil {
			Walk(v, n.Query)
		}
		for _, row := range n.Values {
			for _, e := range row {
				Walk(v, e)
			}
		}
	case *Update:
		Walk(v, n.Table)
		for _, a := range n.Set {
			Walk(v, a.Value)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}
	case *Delete:
		Walk(v, n.Table)
		if n.Where != nil {
			Walk(v, n.Where)
		}
	case *Merge:
		Walk(v, n.Target)
		Walk(v, n.Source)
		Walk(v, n.On)

	case *CreateTable:
		Walk(v, n.Name)
		if n.AsQuery != nil {
			Walk(v, n.AsQuery)
		}
	case *CreateView:
		Walk(v, n.Name)
		Walk(v, n.Query)
	case *CreateIndex:
		Walk(v, n.Name)
		Walk(v, n.Table)
	case *CreateSequence:
		Walk(v, n.Name)
	case *CreateDomain:
		Walk(v, n.Name)
		if n.Default != nil {
			Walk(v, n.Default)
		}
		if n.Check != nil {
			Walk(v, n.Check)
		}
	case *Drop:
		Walk(v, n.Name)
	case *AlterTable:
		Walk(v, n.Name)

	case *Set:
		Walk(v, n.Value)
	case *Show:
		// leaf
	case *Explain:
		Walk(v, n.Target)
	case *TransactionControl:
		// leaf
	case *Call:
		Walk(v, n.Proc)
	case *PrepareStmt:
		Walk(v, n.Name)
	case *ExecuteStmt:
		Walk(v, n.Name)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *Deallocate:
		Walk(v, n.Name)
	case *NoOperation:
		// leaf
	case *CommandList:
		for _, c := range n.Commands {
			Walk(v, c)
		}

	case *CreateSchema:
		Walk(v, n.Name)
	case *CreateRole:
		Walk(v, n.Name)
	case *CreateUser:
		Walk(v, n.Name)
		if n.Password != nil {
			Walk(v, n.Password)
		}
	case *CreateSynonym:
		Walk(v, n.Name)
		Walk(v, n.Target)
	case *CreateTrigger:
		Walk(v, n.Name)
		Walk(v, n.Table)
	case *CreateAlias:
		Walk(v, n.Name)
	case *CreateAggregate:
		Walk(v, n.Name)
	case *CreateConstant:
		Walk(v, n.Name)
		Walk(v, n.Value)
	case *LinkedTable:
		Walk(v, n.Name)
	case *Truncate:
		Walk(v, n.Table)
	case *CommentOn:
		Walk(v, n.Target)
	case *Checkpoint:
		// leaf
	case *Shutdown:
		// leaf
	case *RunScript:
		if n.Source != nil {
			Walk(v, n.Source)
		}
	case *Help:
		// leaf
	case *Use:
		Walk(v, n.Schema)
	case *Analyze:
		if n.Table != nil {
			Walk(v, n.Table)
		}
	}
}

func walkIdent(v Visitor, id *Identifier) {
	if id != nil {
		Walk(v, id)
	}
}

// Inspector adapts an ordinary func(Node) bool into a Visitor, the same
// convenience wrapper the teacher's facade exposes.
type Inspector func(Node) bool

func (f Inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// FindVariables collects every VariableRef reachable from node.
func FindVariables(node Node) []*VariableRef {
	var out []*VariableRef
	Walk(Inspector(func(n Node) bool {
		if v, ok := n.(*VariableRef); ok {
			out = append(out, v)
		}
		return true
	}), node)
	return out
}

// FindFunctionCalls collects every FuncCall reachable from node.
func FindFunctionCalls(node Node) []*FuncCall {
	var out []*FuncCall
	Walk(Inspector(func(n Node) bool {
		if f, ok := n.(*FuncCall); ok {
			out = append(out, f)
		}
		return true
	}), node)
	return out
}

// FindSelectStatements collects every nested *Select reachable from node,
// including the top-level node itself if it is one.
func FindSelectStatements(node Node) []*Select {
	var out []*Select
	Walk(Inspector(func(n Node) bool {
		if s, ok := n.(*Select); ok {
			out = append(out, s)
		}
		return true
	}), node)
	return out
}
