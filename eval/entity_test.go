package eval

import (
	"errors"
	"testing"

	"wright/ast"
	"wright/types"
)

func character(defaultBlip ast.Node) *ast.EntityDefinition {
	return ast.NewEntityDefinition("Character",
		ast.FieldDecl{Name: "name"},
		ast.FieldDecl{Name: "blipsound", Default: defaultBlip},
	)
}

func TestCreateEntityWithDefault(t *testing.T) {
	seq := ast.SequenceOf(
		character(str("male")),
		ast.NewCreateEntity(id("Character"), ast.FieldInit{Name: "name", Value: str("Apollo")}),
	)
	got, _ := mustRun(t, seq)
	entity, ok := got.(*types.EntityValue)
	if !ok {
		t.Fatalf("Expected an entity, got %T", got)
	}
	if entity.Template() != "Character" {
		t.Errorf("Expected template Character, got %s", entity.Template())
	}
	name, _ := entity.Get("name")
	blip, _ := entity.Get("blipsound")
	if !name.Equal(types.NewStr("Apollo")) || !blip.Equal(types.NewStr("male")) {
		t.Errorf("Unexpected fields %s", entity)
	}
}

func TestCreateEntityOverridesDefault(t *testing.T) {
	var out []string
	seq := ast.SequenceOf(
		character(call("textbox", str("default evaluated"))),
		ast.NewCreateEntity(id("Character"),
			ast.FieldInit{Name: "name", Value: str("Maya")},
			ast.FieldInit{Name: "blipsound", Value: str("female")},
		),
	)
	env := newTestEnv(t, &out)
	bind(t, env, seq)
	outcome, err := New().Run(seq, env)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	blip, _ := outcome.Value.(*types.EntityValue).Get("blipsound")
	if !blip.Equal(types.NewStr("female")) {
		t.Errorf("Expected female, got %s", blip)
	}
	if len(out) != 0 {
		t.Errorf("Expected overridden default not to run, got %v", out)
	}
}

func TestCreateEntityMissingField(t *testing.T) {
	seq := ast.SequenceOf(
		character(nil),
		ast.NewCreateEntity(id("Character"), ast.FieldInit{Name: "name", Value: str("Apollo")}),
	)
	_, _, err := run(t, seq)
	expectCode(t, err, types.E_MISSINGFIELD)

	var rt *types.Error
	if !errors.As(err, &rt) {
		t.Fatalf("Expected *types.Error, got %T", err)
	}
	if !equalStrings(rt.Missing, []string{"blipsound"}) {
		t.Errorf("Expected [blipsound], got %v", rt.Missing)
	}
}

func TestCreateEntityErrors(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		code types.ErrorCode
	}{
		{
			"undeclared field",
			ast.NewCreateEntity(id("Character"),
				ast.FieldInit{Name: "name", Value: str("Apollo")},
				ast.FieldInit{Name: "age", Value: num(1)}),
			types.E_UNKNOWNFIELD,
		},
		{
			"not a template",
			ast.NewCreateEntity(id("x"), ast.FieldInit{Name: "name", Value: str("Apollo")}),
			types.E_NOTENTITYDEF,
		},
		{
			"function field value",
			ast.NewCreateEntity(id("Character"), ast.FieldInit{Name: "name", Value: id("+")}),
			types.E_FUNCRVAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []string
			env := newTestEnv(t, &out)
			env.AddEntityTemplate(character(str("male")))
			env.Set("x", types.NewNum(1), false)
			result := New().Eval(tt.node, env)
			expectCode(t, result.Err, tt.code)
		})
	}
}

func TestCreateEntityChecksBeforeEvaluating(t *testing.T) {
	var out []string
	env := newTestEnv(t, &out)
	env.AddEntityTemplate(character(nil))
	node := ast.NewCreateEntity(id("Character"),
		ast.FieldInit{Name: "name", Value: call("textbox", str("side effect"))})

	result := New().Eval(node, env)
	expectCode(t, result.Err, types.E_MISSINGFIELD)
	if len(out) != 0 {
		t.Errorf("Expected no evaluation before the check, got %v", out)
	}
}

func TestFieldAssignment(t *testing.T) {
	seq := ast.SequenceOf(
		character(str("male")),
		ast.NewAssignment("p", ast.NewCreateEntity(id("Character"), ast.FieldInit{Name: "name", Value: str("Phoenix")})),
		ast.NewFieldAssignment("p.name", str("Edgeworth")),
		id("p.name"),
	)
	got, _ := mustRun(t, seq)
	if !got.Equal(types.NewStr("Edgeworth")) {
		t.Errorf("Expected \"Edgeworth\", got %s", got)
	}
}

func TestFieldAssignmentErrors(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		code types.ErrorCode
	}{
		{"unknown field", ast.NewFieldAssignment("p.age", num(1)), types.E_UNKNOWNFIELD},
		{"not an entity", ast.NewFieldAssignment("n.x", num(1)), types.E_INVFIELD},
		{"function value", ast.NewFieldAssignment("p.name", id("+")), types.E_FUNCRVAL},
		{"read of non-entity", id("n.x"), types.E_INVFIELD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []string
			env := newTestEnv(t, &out)
			env.Set("p", types.NewEntity("Character", []string{"name"}, nil), false)
			env.Set("n", types.NewNum(1), false)
			result := New().Eval(tt.node, env)
			expectCode(t, result.Err, tt.code)
		})
	}
}

func TestTemplateValue(t *testing.T) {
	result := New().Eval(character(nil), NewEnvironment(nil))
	tmpl, ok := result.Val.(TemplateValue)
	if !ok {
		t.Fatalf("Expected TemplateValue, got %T", result.Val)
	}
	if tmpl.String() != "<entity Character>" {
		t.Errorf("Unexpected string %s", tmpl)
	}
}
