package bridge

import (
	"wright/eval"
	"wright/types"
)

// EntityView is the host side of an entity. Field reads and writes go
// straight through to the entity, converting by category.
type EntityView struct {
	entity *types.EntityValue
	ctx    *eval.CallContext
}

// Template returns the entity's template name
func (e *EntityView) Template() string {
	return e.entity.Template()
}

// Entity returns the underlying entity
func (e *EntityView) Entity() *types.EntityValue {
	return e.entity
}

// Get unpacks a field
func (e *EntityView) Get(field string) (any, error) {
	v, err := e.entity.Get(field)
	if err != nil {
		return nil, err
	}
	return unpackAny(e.ctx, v)
}

// Set packs x into a field of the entity
func (e *EntityView) Set(field string, x any) error {
	v, err := packAny(e.ctx, x)
	if err != nil {
		return err
	}
	return e.entity.Set(field, v)
}

type entityPacker struct {
	template string // empty accepts any template
}

var anyEntity = entityPacker{}

// Entity handles entities of one template as *EntityView
func Entity(template string) Packer { return entityPacker{template: template} }

func (p entityPacker) Unpack(ctx *eval.CallContext, v types.Value) (any, error) {
	e, ok := v.(*types.EntityValue)
	if !ok {
		return nil, types.NewError(types.E_TYPE, "expected Entity as argument, got %s", v.Kind())
	}
	if p.template != "" && e.Template() != p.template {
		return nil, types.NewError(types.E_TYPE, "expected Entity of type %s, got %s", p.template, e.Template())
	}
	return &EntityView{entity: e, ctx: ctx}, nil
}

// Pack only hands back entities that came from the script; natives can't
// create entities.
func (p entityPacker) Pack(_ *eval.CallContext, x any) (types.Value, error) {
	view, ok := x.(*EntityView)
	if !ok {
		return nil, types.NewError(types.E_TYPE, "entities can't be created by natives")
	}
	if p.template != "" && view.Template() != p.template {
		return nil, types.NewError(types.E_TYPE, "expected Entity of type %s, got %s", p.template, view.Template())
	}
	return view.entity, nil
}
