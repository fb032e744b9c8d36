// internal/service/order/infrastructure/rule/cel_engine.go
package rule

import (
	"sync"

	"github.com/google/cel-go/cel"
	perrors "github.com/pkg/errors"

	"tably/internal/service/order/domain/port"
)

// CelRuleEngine 用 CEL 表达式评估代金券的资格规则，例如
// "subtotal >= 50000 && itemCount >= 2"。
// 表达式编译开销不小，按规则文本缓存编译产物。
type CelRuleEngine struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

// NewCelRuleEngine 创建规则引擎并声明规则可用的变量。
func NewCelRuleEngine() (*CelRuleEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("subtotal", cel.IntType),
		cel.Variable("itemCount", cel.IntType),
		cel.Variable("tableId", cel.StringType),
		cel.Variable("customerId", cel.StringType),
	)
	if err != nil {
		return nil, perrors.Wrap(err, "failed to create cel env")
	}
	return &CelRuleEngine{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

// Evaluate 评估规则，规则必须产出 bool。空规则视为通过。
func (e *CelRuleEngine) Evaluate(ruleExpr string, fact port.VoucherFact) (bool, error) {
	if ruleExpr == "" {
		return true, nil
	}

	prg, err := e.program(ruleExpr)
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(map[string]interface{}{
		"subtotal":   fact.Subtotal,
		"itemCount":  fact.ItemCount,
		"tableId":    fact.TableID,
		"customerId": fact.CustomerID,
	})
	if err != nil {
		return false, perrors.Wrap(err, "failed to evaluate voucher rule")
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, perrors.Errorf("voucher rule did not produce a boolean: %q", ruleExpr)
	}
	return result, nil
}

func (e *CelRuleEngine) program(ruleExpr string) (cel.Program, error) {
	e.mu.RLock()
	prg, hit := e.programs[ruleExpr]
	e.mu.RUnlock()
	if hit {
		return prg, nil
	}

	ast, issues := e.env.Compile(ruleExpr)
	if issues != nil && issues.Err() != nil {
		return nil, perrors.Wrapf(issues.Err(), "failed to compile voucher rule %q", ruleExpr)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, perrors.Wrap(err, "failed to build cel program")
	}

	e.mu.Lock()
	e.programs[ruleExpr] = prg
	e.mu.Unlock()
	return prg, nil
}
