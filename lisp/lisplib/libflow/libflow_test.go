// Copyright © 2024 The NeoLisp authors

package libflow_test

import (
	"testing"

	"github.com/neolisp/nl/nltest"
)

func TestFlow(t *testing.T) {
	tests := nltest.TestSuite{
		{"if", nltest.TestSequence{
			{"(if nil 1 2)", "2", ""},
			{"(if true 1 2)", "1", ""},
			{"(if () 1 2)", "2", ""},
			{"(if '(a) 1 2)", "1", ""},
			{`(if "" 1 2)`, "2", ""},
			{"(if false 1)", "nil", ""},
			{"(if true (define x 1) (define x 2))", "1", ""},
			{"x", "1", ""},
			{"(if)", "'if' requires between 2 and 3 arguments, got 0 instead.", ""},
		}},
		{"when unless", nltest.TestSequence{
			{"(when true 1 2 3)", "3", ""},
			{"(when false 1)", "nil", ""},
			{"(unless false 1 2)", "2", ""},
			{"(unless 1 2)", "nil", ""},
		}},
		{"cond", nltest.TestSequence{
			{"(cond ((= 1 2) 'a) ((= 1 1) 'b) (else 'c))", "b", ""},
			{"(cond ((= 1 2) 'a) (else 'c))", "c", ""},
			{"(cond ((= 1 2) 'a))", "nil", ""},
			{"(cond (7))", "7", ""},
			{"(cond 1)", "'cond' clauses must be non-empty lists, got : 1", ""},
		}},
		{"progn", nltest.TestSequence{
			{"(progn)", "nil", ""},
			{"(progn 1 2 3)", "3", ""},
		}},
		{"let", nltest.TestSequence{
			{"(let () 1)", "1", ""},
			{"(let ((x 1) (y (+ x 1))) (list x y))", "(1 2)", ""},
			{"x", "unbound symbol 'x'", ""},
			{"(define x 10)", "10", ""},
			{"(let ((x 1)) x)", "1", ""},
			{"x", "10", ""},
			{"(let (x) x)", "'let' bindings must be (symbol value) pairs, got : x", ""},
		}},
		{"set define defconst", nltest.TestSequence{
			{"(set x 1)", "1", ""},
			{"x", "1", ""},
			{"(let ((x 2)) (set x 3) x)", "3", ""},
			{"x", "1", ""},
			{"(defconst k 5)", "5", ""},
			{"(set k 6)", "'k' is a constant.", ""},
			{"k", "5", ""},
			{"(define 1 2)", "'define' requires a symbol as its first argument, got : 1", ""},
		}},
		{"while", nltest.TestSequence{
			{"(define i 0)", "0", ""},
			{"(while (< i 5) (set i (+ i 1)))", "5", ""},
			{"i", "5", ""},
			{"(while false 1)", "nil", ""},
			{"(set i 0)", "0", ""},
			{"(while true (set i (+ i 1)) (when (= i 3) (break i)))", "3", ""},
			{"(while (break 'early) 1)", "early", ""},
		}},
		{"loop", nltest.TestSequence{
			{"(define n 0)", "0", ""},
			{"(loop (set n (+ n 2)) (when (> n 7) (break n)))", "8", ""},
			{"(loop (loop (break 1)) (break 2))", "2", ""},
		}},
		{"and or", nltest.TestSequence{
			{"(and)", "true", ""},
			{"(and 1 2 3)", "3", ""},
			{"(and 1 nil (unbound))", "nil", ""},
			{"(or)", "false", ""},
			{"(or nil 2 (unbound))", "2", ""},
			{"(or nil false)", "false", ""},
		}},
	}
	nltest.RunTestSuite(t, tests)
}
