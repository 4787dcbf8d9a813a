package tool

import (
	"context"
	"fmt"
	"strconv"

	"github.com/reagent-dev/reagent/internal/util"
)

// calculatorArgs describes the calculator's argument schema.
type calculatorArgs struct {
	Expression string `json:"expression" description:"要计算的数学表达式，例如：3 + 5 * 2"`
}

// Calculator evaluates arithmetic expressions with a purpose-built parser.
// Expressions have no access to names, functions or any runtime facility, so
// model-supplied input can never execute code.
type Calculator struct{}

// NewCalculator returns the built-in calculator tool.
func NewCalculator() *Calculator { return &Calculator{} }

// Name implements Tool.
func (c *Calculator) Name() string { return "calculator" }

// Description implements Tool.
func (c *Calculator) Description() string { return "用于执行数学计算" }

// Parameters implements Tool.
func (c *Calculator) Parameters() map[string]any { return util.CreateSchema(calculatorArgs{}) }

// Call evaluates args["expression"] and formats the numeric result. Any
// lexing, parsing or evaluation failure is returned as an *Error whose
// Message is a conversation-ready 计算错误 string.
func (c *Calculator) Call(_ context.Context, args map[string]any) (string, error) {
	expr, _ := args["expression"].(string)

	value, err := evaluate(expr)
	if err != nil {
		return "", &Error{
			Tool:    c.Name(),
			Message: fmt.Sprintf("计算错误: %v", err),
			Code:    "EVAL_ERROR",
		}
	}

	return fmt.Sprintf("计算结果: %s", strconv.FormatFloat(value, 'g', -1, 64)), nil
}
