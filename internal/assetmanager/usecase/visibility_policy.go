package usecase

import (
	"fmt"

	"asset-manager/internal/assetmanager/domain/model"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// VisibilityPolicy decides which elements a user may see. The expression is CEL and
// is evaluated with the variables userId, typeName, securityLabels and accessGroups
// (taken from the element's SecurityTags classification). A nil policy allows everything.
type VisibilityPolicy struct {
	expression string
	program    cel.Program
}

func createCELEnvironment() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Declarations(
			decls.NewVar("userId", decls.String),
			decls.NewVar("typeName", decls.String),
			decls.NewVar("securityLabels", decls.NewListType(decls.String)),
			decls.NewVar("accessGroups", decls.NewMapType(decls.String, decls.NewListType(decls.String))),
		),
	)
}

// NewVisibilityPolicy compiles expression. An empty expression yields a nil policy.
func NewVisibilityPolicy(expression string) (*VisibilityPolicy, error) {
	if expression == "" {
		return nil, nil
	}

	env, err := createCELEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compilation error: %w", issues.Err())
	}
	if outputType := ast.OutputType().String(); outputType != "bool" && outputType != "dyn" {
		return nil, fmt.Errorf("visibility policy must evaluate to a bool, not %s", outputType)
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &VisibilityPolicy{expression: expression, program: program}, nil
}

// Expression returns the policy source.
func (p *VisibilityPolicy) Expression() string {
	if p == nil {
		return ""
	}
	return p.expression
}

// Allows evaluates the policy for userID and entity.
func (p *VisibilityPolicy) Allows(userID string, entity *model.Entity) (bool, error) {
	if p == nil {
		return true, nil
	}

	tags := model.SecurityTagsProperties{}
	if c := entity.Classification(model.ClassSecurityTags); c != nil {
		if err := model.DecodeProperties(c.Properties, &tags); err != nil {
			return false, err
		}
	}
	labels := tags.SecurityLabels
	if labels == nil {
		labels = []string{}
	}
	groups := tags.AccessGroups
	if groups == nil {
		groups = map[string][]string{}
	}

	out, _, err := p.program.Eval(map[string]interface{}{
		"userId":         userID,
		"typeName":       entity.TypeName,
		"securityLabels": labels,
		"accessGroups":   groups,
	})
	if err != nil {
		return false, fmt.Errorf("CEL evaluation error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("CEL expression did not return boolean value")
	}
	return result, nil
}
