package seq

import "math/big"

// Simplify returns a structurally normalized equivalent of s: constants are
// folded, identity elements removed, inverse functionals cancelled. Every
// rewrite preserves values at every index where the input is defined.
// Search correctness never depends on any particular rule firing.
func Simplify(s Sequence) Sequence {
	switch node := s.(type) {
	case binOp:
		return simplifyBinOp(node)
	case unOp:
		return simplifyUnOp(node)
	case composeSeq:
		return simplifyCompose(node)
	case summationSeq:
		return Summation(Simplify(node.operand))
	case productSeq:
		return Product(Simplify(node.operand))
	case derivativeSeq:
		return simplifyDerivative(node)
	case integralSeq:
		return simplifyIntegral(node)
	case roundrobinSeq:
		operands := make([]Sequence, len(node.operands))
		for i, op := range node.operands {
			operands[i] = Simplify(op)
		}
		return Roundrobin(operands...)
	default:
		return s
	}
}

func asConst(s Sequence) (*big.Int, bool) {
	c, ok := s.(constSeq)
	if !ok {
		return nil, false
	}
	return c.value, true
}

func simplifyBinOp(node binOp) Sequence {
	left := Simplify(node.left)
	right := Simplify(node.right)
	lc, lok := asConst(left)
	rc, rok := asConst(right)

	if lok && rok {
		if folded, err := (binOp{op: node.op}).apply(0, lc, rc); err == nil {
			return Const(folded)
		}
	}

	switch node.op {
	case opAdd:
		if lok && lc.Sign() == 0 {
			return right
		}
		if rok && rc.Sign() == 0 {
			return left
		}
	case opSub:
		if rok && rc.Sign() == 0 {
			return left
		}
		if lok && lc.Sign() == 0 {
			return Neg(right)
		}
	case opMul:
		if lok && lc.Sign() == 0 || rok && rc.Sign() == 0 {
			return ConstInt(0)
		}
		if lok && lc.Cmp(bigOne) == 0 {
			return right
		}
		if rok && rc.Cmp(bigOne) == 0 {
			return left
		}
	case opDiv:
		if rok && rc.Cmp(bigOne) == 0 {
			return left
		}
	case opPow:
		if rok && rc.Cmp(bigOne) == 0 {
			return left
		}
		if rok && rc.Sign() == 0 {
			return ConstInt(1)
		}
	}
	return binOp{op: node.op, left: left, right: right}
}

func simplifyUnOp(node unOp) Sequence {
	operand := Simplify(node.operand)
	if node.op == "-" {
		if inner, ok := operand.(unOp); ok && inner.op == "-" {
			return inner.operand
		}
		if c, ok := asConst(operand); ok {
			return Const(new(big.Int).Neg(c))
		}
	} else {
		if c, ok := asConst(operand); ok {
			return Const(new(big.Int).Abs(c))
		}
	}
	return unOp{op: node.op, operand: operand}
}

func simplifyCompose(node composeSeq) Sequence {
	outer := Simplify(node.outer)
	index := Simplify(node.index)
	if _, ok := outer.(integerSeq); ok {
		return index
	}
	if _, ok := asConst(outer); ok {
		return outer
	}
	if _, ok := index.(integerSeq); ok {
		return outer
	}
	if c, ok := asConst(index); ok && c.Sign() >= 0 && c.IsInt64() {
		if v, err := outer.At(int(c.Int64())); err == nil {
			return Const(v)
		}
	}
	return composeSeq{outer: outer, index: index}
}

func simplifyDerivative(node derivativeSeq) Sequence {
	operand := Simplify(node.operand)
	switch op := operand.(type) {
	case integralSeq:
		// derivative(integral(x, start)) == x
		return op.operand
	case binOp:
		// A constant shift vanishes under differencing.
		_, lok := asConst(op.left)
		_, rok := asConst(op.right)
		switch op.op {
		case opAdd:
			if lok {
				return Derivative(op.right)
			}
			if rok {
				return Derivative(op.left)
			}
		case opSub:
			if lok {
				return Derivative(Simplify(Neg(op.right)))
			}
			if rok {
				return Derivative(op.left)
			}
		}
	case constSeq:
		return ConstInt(0)
	}
	return derivativeSeq{operand: operand}
}

func simplifyIntegral(node integralSeq) Sequence {
	operand := Simplify(node.operand)
	if d, ok := operand.(derivativeSeq); ok {
		// integral(derivative(x), start) == x shifted so f(0) == start.
		if first, err := d.operand.At(0); err == nil {
			shift := new(big.Int).Sub(node.start, first)
			if shift.Sign() == 0 {
				return d.operand
			}
			return Simplify(Add(Const(shift), d.operand))
		}
	}
	return integralSeq{operand: operand, start: node.start}
}
