package value

import "testing"

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"bool true", NewBool(true), true},
		{"bool false", NewBool(false), false},
		{"nonzero int", NewInt(5), true},
		{"zero int", NewInt(0), false},
		{"real never truthy", NewReal(1.0), false},
		{"str never truthy", NewStr("x"), false},
		{"none never truthy", NewNone(), false},
	}
	for _, tt := range tests {
		if got := tt.v.Truthy(); got != tt.want {
			t.Errorf("%s: Truthy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPrint(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NewInt(42), "42"},
		{NewReal(3.5), "3.500000"},
		{NewStr("hi"), "hi"},
		{NewBool(true), "True"},
		{NewBool(false), "False"},
		{NewNone(), "None"},
	}
	for _, tt := range tests {
		if got := tt.v.Print(); got != tt.want {
			t.Errorf("Print(%+v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestBinaryOpArithmetic(t *testing.T) {
	tests := []struct {
		name string
		lhs  Value
		op   Operator
		rhs  Value
		want Value
	}{
		{"int plus int", NewInt(2), Plus, NewInt(3), NewInt(5)},
		{"int plus real promotes", NewInt(2), Plus, NewReal(0.5), NewReal(2.5)},
		{"str plus str concatenates", NewStr("a"), Plus, NewStr("b"), NewStr("ab")},
		{"int minus int", NewInt(5), Minus, NewInt(3), NewInt(2)},
		{"int asterisk int", NewInt(5), Asterisk, NewInt(3), NewInt(15)},
		{"int div floors toward zero", NewInt(7), Div, NewInt(2), NewInt(3)},
		{"int mod", NewInt(7), Mod, NewInt(2), NewInt(1)},
		{"int power truncates", NewInt(2), Power, NewInt(3), NewInt(8)},
		{"real power stays real", NewReal(2), Power, NewInt(2), NewReal(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BinaryOp(tt.lhs, tt.op, tt.rhs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBinaryOpRelational(t *testing.T) {
	tests := []struct {
		name string
		lhs  Value
		op   Operator
		rhs  Value
		want bool
	}{
		{"int equal", NewInt(3), Equal, NewInt(3), true},
		{"int not equal", NewInt(3), NotEqual, NewInt(4), true},
		{"int lt", NewInt(3), LT, NewInt(4), true},
		{"int gte false", NewInt(3), GTE, NewInt(4), false},
		{"str lt", NewStr("a"), LT, NewStr("b"), true},
		{"mixed numeric", NewInt(3), LT, NewReal(3.5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BinaryOp(tt.lhs, tt.op, tt.rhs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Tag != Bool || got.Bool != tt.want {
				t.Errorf("got %+v, want Bool(%v)", got, tt.want)
			}
		})
	}
}

func TestBinaryOpTypeMismatch(t *testing.T) {
	_, err := BinaryOp(NewStr("a"), Minus, NewStr("b"))
	if err == nil {
		t.Fatal("expected an error for str-minus-str")
	}
	if _, ok := err.(*OpError); !ok {
		t.Errorf("got %T, want *OpError", err)
	}
}

func TestBinaryOpDivByZero(t *testing.T) {
	_, err := BinaryOp(NewInt(1), Div, NewInt(0))
	if _, ok := err.(*DivByZeroError); !ok {
		t.Errorf("got %T, want *DivByZeroError", err)
	}
	_, err = BinaryOp(NewInt(1), Mod, NewInt(0))
	if _, ok := err.(*DivByZeroError); !ok {
		t.Errorf("got %T, want *DivByZeroError", err)
	}
}

func TestBinaryOpRealDivByZeroIsNotAnError(t *testing.T) {
	got, err := BinaryOp(NewReal(1), Div, NewReal(0))
	if err != nil {
		t.Fatalf("real division by zero should not error, got %v", err)
	}
	if got.Tag != Real {
		t.Errorf("got %+v, want a Real", got)
	}
}

func TestBinaryOpNoOpIsAnInternalError(t *testing.T) {
	_, err := BinaryOp(NewInt(1), NoOp, NewInt(2))
	if err == nil {
		t.Fatal("expected an error for NoOp")
	}
}
