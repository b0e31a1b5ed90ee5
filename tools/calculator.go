package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/rickchristie/reagent"
)

// CalculatorName is the name the model uses to call the calculator.
const CalculatorName = "calculator"

const calculatorDescription = "Useful for getting the result of a math expression. " +
	"The input to this tool should be a valid mathematical expression that could be executed " +
	"by a simple calculator."

// Calculator evaluates arithmetic expressions such as "2+2", "200 * 0.15" or "sqrt(16)".
//
// All numbers are float64, so large products lose precision instead of wrapping around.
// The only names are the constants PI and E and the math functions in [mathFunctions];
// any other identifier is rejected.
type Calculator struct {
	env     map[string]any
	options []expr.Option
}

// NewCalculator creates a calculator tool.
func NewCalculator() *Calculator {
	env := map[string]any{
		"PI": math.Pi,
		"E":  math.E,
	}
	options := []expr.Option{
		expr.Env(env),
		expr.Patch(floatArithmetic{}),
		expr.Function("mod", func(params ...any) (any, error) {
			return math.Mod(params[0].(float64), params[1].(float64)), nil
		}, new(func(float64, float64) float64)),
		expr.Function("pow", func(params ...any) (any, error) {
			return math.Pow(params[0].(float64), params[1].(float64)), nil
		}, new(func(float64, float64) float64)),
		expr.Function("atan2", func(params ...any) (any, error) {
			return math.Atan2(params[0].(float64), params[1].(float64)), nil
		}, new(func(float64, float64) float64)),
	}
	for name, fn := range mathFunctions {
		options = append(options, expr.Function(name, func(params ...any) (any, error) {
			return fn(params[0].(float64)), nil
		}, new(func(float64) float64)))
	}
	return &Calculator{env: env, options: options}
}

// mathFunctions are the one-argument functions available to expressions.
var mathFunctions = map[string]func(float64) float64{
	"sqrt":  math.Sqrt,
	"cbrt":  math.Cbrt,
	"exp":   math.Exp,
	"log":   math.Log,
	"ln":    math.Log,
	"log10": math.Log10,
	"log2":  math.Log2,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"trunc": math.Trunc,
}

// floatArithmetic rewrites integer literals to floats and "%" to mod(), which expr only
// defines for integers.
type floatArithmetic struct{}

func (floatArithmetic) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IntegerNode:
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	case *ast.BinaryNode:
		if n.Operator == "%" {
			ast.Patch(node, &ast.CallNode{
				Callee:    &ast.IdentifierNode{Value: "mod"},
				Arguments: []ast.Node{n.Left, n.Right},
			})
		}
	}
}

// Name returns "calculator".
func (c *Calculator) Name() string { return CalculatorName }

// Description returns the tool description shown to the model.
func (c *Calculator) Description() string { return calculatorDescription }

// Call evaluates input and renders the numeric result.
func (c *Calculator) Call(_ context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty input", reagent.ErrInvalidExpression)
	}

	program, err := expr.Compile(input, c.options...)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", reagent.ErrInvalidExpression, input, firstLine(err.Error()))
	}

	out, err := expr.Run(program, c.env)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", reagent.ErrInvalidExpression, input, firstLine(err.Error()))
	}

	return formatNumber(input, out)
}

func formatNumber(input string, v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", n), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", n), nil
	case float32:
		return formatFloat(input, float64(n))
	case float64:
		return formatFloat(input, n)
	default:
		return "", fmt.Errorf("%w: %q does not evaluate to a number", reagent.ErrInvalidExpression, input)
	}
}

func formatFloat(input string, f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %q has no finite result", reagent.ErrInvalidExpression, input)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// expr errors carry a multi-line source excerpt; the observation only needs the message.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// Compile-time check that Calculator implements reagent.Tool.
var _ reagent.Tool = (*Calculator)(nil)
