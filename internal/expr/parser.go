package expr

// Node is an expression AST node.
type Node interface {
	// pos returns the byte offset of the node in the source expression.
	pos() int
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
	Off   int
}

// Call is a built-in function invocation.
type Call struct {
	Name string
	Args []Node
	Off  int
}

// BinaryOp enumerates arithmetic and comparison operators.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpEq  BinaryOp = "=="
	OpNeq BinaryOp = "!="
	OpLt  BinaryOp = "<"
	OpLte BinaryOp = "<="
	OpGt  BinaryOp = ">"
	OpGte BinaryOp = ">="
)

// Binary is an infix operation. Comparisons never nest: the parser
// admits at most one comparison operator, at the top level.
type Binary struct {
	Op    BinaryOp
	Left  Node
	Right Node
	Off   int
}

func (n *NumberLit) pos() int { return n.Off }
func (n *Call) pos() int      { return n.Off }
func (n *Binary) pos() int    { return n.Off }

// IsComparison reports whether op is one of the six comparison operators.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return true
	}
	return false
}

// Parse parses an assertion expression. The entire input must be
// consumed; trailing tokens (including a second comparison operator)
// are a PARSE_ERROR.
func Parse(input string) (Node, error) {
	p := &parser{lex: newLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	node, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	if p.cur.kind != tokEOF {
		return nil, newError(CodeParse, p.cur.pos, "unexpected %s after expression", p.cur.kind)
	}
	return node, nil
}

// parser is a single-token-lookahead recursive descent parser.
type parser struct {
	lex *lexer
	cur token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// comparison := arith (cmpOp arith)?
func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}

	op, ok := comparisonOp(p.cur.kind)
	if !ok {
		return left, nil
	}
	opPos := p.cur.pos
	if err := p.advance(); err != nil {
		return nil, err
	}

	right, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: op, Left: left, Right: right, Off: opPos}, nil
}

func comparisonOp(k tokenKind) (BinaryOp, bool) {
	switch k {
	case tokEq:
		return OpEq, true
	case tokNeq:
		return OpNeq, true
	case tokLt:
		return OpLt, true
	case tokLte:
		return OpLte, true
	case tokGt:
		return OpGt, true
	case tokGte:
		return OpGte, true
	}
	return "", false
}

// arith := term (('+'|'-') term)*
func (p *parser) parseArith() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := OpAdd
		if p.cur.kind == tokMinus {
			op = OpSub
		}
		opPos := p.cur.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, Off: opPos}
	}
	return left, nil
}

// term := factor (('*'|'/') factor)*
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := OpMul
		if p.cur.kind == tokSlash {
			op = OpDiv
		}
		opPos := p.cur.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, Off: opPos}
	}
	return left, nil
}

// factor := number | call | '(' expr ')'
func (p *parser) parseFactor() (Node, error) {
	switch p.cur.kind {
	case tokNumber:
		node := &NumberLit{Value: p.cur.num, Off: p.cur.pos}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node, nil

	case tokIdent:
		return p.parseCall()

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		// Parenthesized sub-expressions admit a full comparison, per
		// the grammar. The evaluator rejects non-numeric operands of
		// arithmetic, so a nested comparison surfaces as a TYPE_ERROR
		// rather than a parse failure.
		node, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, newError(CodeParse, p.cur.pos, "expected ')', got %s", p.cur.kind)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node, nil
	}

	return nil, newError(CodeParse, p.cur.pos, "expected number, call, or '(', got %s", p.cur.kind)
}

// call := identifier '(' args? ')'
// Bare identifiers are not values in this language; every identifier
// must be invoked.
func (p *parser) parseCall() (Node, error) {
	name := p.cur.text
	namePos := p.cur.pos
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.kind != tokLParen {
		return nil, newError(CodeParse, p.cur.pos, "expected '(' after identifier %q", name)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var args []Node
	if p.cur.kind != tokRParen {
		for {
			arg, err := p.parseComparison()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.kind != tokComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if p.cur.kind != tokRParen {
		return nil, newError(CodeParse, p.cur.pos, "expected ')' to close call to %q, got %s", name, p.cur.kind)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return &Call{Name: name, Args: args, Off: namePos}, nil
}
