package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateBasics(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2+2", 4},
		{"3 + 5 * 2", 13},
		{"(3 + 5) * 2", 16},
		{"10 / 4", 2.5},
		{"-4 + 2", -2},
		{"-(3 + 2)", -5},
		{"1.5 * 2", 3},
		{"15*15 + 25*25", 850},
		{"  7  ", 7},
		{"2 - 3 - 4", -5},
		{"12 / 3 / 2", 2},
	}
	for _, tt := range tests {
		got, err := evaluate(tt.expr)
		assert.NoError(t, err, "expr %q", tt.expr)
		assert.Equal(t, tt.want, got, "expr %q", tt.expr)
	}
}

func TestEvaluateErrors(t *testing.T) {
	exprs := []string{
		"",
		"   ",
		"2+",
		"(2+3",
		"2+2)",
		"1.5.2",
		"__import__('os')",
		"a + b",
		"2 ** 3",
	}
	for _, expr := range exprs {
		_, err := evaluate(expr)
		assert.Error(t, err, "expr %q", expr)
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	_, err := evaluate("1 / 0")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "除数为零")

	_, err = evaluate("1 / (2 - 2)")
	assert.Error(t, err)
}
