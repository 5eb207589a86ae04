package schema

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/builder"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/printer"
	"github.com/mindscript-lang/mindscript/internal/types"
)

// ToProtoDescriptor builds a protobuf MessageDescriptor for a mindscript
// TypeMap, on demand, with no precompiled .proto: a TypeMap's shape is
// only known once a `type X = {...}` alias has been declared at runtime,
// so the descriptor has to be assembled from the resolved ast.Type using
// jhump/protoreflect's builder API rather than protoc-generated code.
// name becomes the message's type name.
func ToProtoDescriptor(t ast.Type, env *object.Environment, name string) (*desc.MessageDescriptor, error) {
	mb, err := messageBuilder(t, env, name, map[ast.Type]*builder.MessageBuilder{})
	if err != nil {
		return nil, err
	}
	return mb.Build()
}

func messageBuilder(t ast.Type, env *object.Environment, name string, seen map[ast.Type]*builder.MessageBuilder) (*builder.MessageBuilder, error) {
	resolved, rEnv, err := types.Resolve(t, env)
	if err != nil {
		return nil, err
	}
	tm, ok := resolved.(*ast.TypeMap)
	if !ok {
		return nil, fmt.Errorf("schema: %s is not a map type, cannot build a message descriptor for it", printer.PrintType(t))
	}
	if mb, ok := seen[resolved]; ok {
		return mb, nil
	}

	mb := builder.NewMessage(name)
	seen[resolved] = mb

	for i, key := range tm.Keys {
		fb, err := fieldBuilder(key, tm.Entries[key], rEnv, int32(i+1), name, seen)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		if !tm.Required[key] {
			fb.SetProto3Optional(true)
		}
		mb.AddField(fb)
	}
	return mb, nil
}

// fieldBuilder maps a single map-entry type to a protobuf field. Scalars
// map to their natural proto3 scalar kind; a nested TypeMap becomes a
// nested message; a TypeArray becomes a repeated field of its element's
// mapped kind. Anything else (Any, enums, function types) has no fixed
// wire shape, so it becomes a string field; NewDynamicMessage fills such
// a field with the value's printed mindscript form (printer.PrintValue).
func fieldBuilder(fieldName string, t ast.Type, env *object.Environment, number int32, parentName string, seen map[ast.Type]*builder.MessageBuilder) (*builder.FieldBuilder, error) {
	resolved, rEnv, err := types.Resolve(t, env)
	if err != nil {
		return nil, err
	}

	switch n := resolved.(type) {
	case *ast.TypeUnary:
		fb, err := fieldBuilder(fieldName, n.Inner, rEnv, number, parentName, seen)
		if err != nil {
			return nil, err
		}
		fb.SetProto3Optional(true)
		return fb, nil
	case *ast.TypeArray:
		elemFb, err := fieldBuilder(fieldName, n.Element, rEnv, number, parentName, seen)
		if err != nil {
			return nil, err
		}
		return builder.NewField(fieldName, elemFb.GetType()).SetRepeated(), nil
	case *ast.TypeMap:
		nestedName := parentName + "_" + fieldName
		nestedMb, err := messageBuilder(n, rEnv, nestedName, seen)
		if err != nil {
			return nil, err
		}
		return builder.NewField(fieldName, builder.FieldTypeMessage(nestedMb)), nil
	case *ast.TypeTerminal:
		scalar, ok := scalarFieldType(n.Name)
		if !ok {
			return builder.NewField(fieldName, builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_STRING)), nil
		}
		return builder.NewField(fieldName, scalar), nil
	default:
		return builder.NewField(fieldName, builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_STRING)), nil
	}
}

func scalarFieldType(name string) (*builder.FieldType, bool) {
	switch name {
	case "Bool":
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_BOOL), true
	case "Int":
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_INT64), true
	case "Num":
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_DOUBLE), true
	case "Str":
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_STRING), true
	default:
		return nil, false
	}
}

// NewDynamicMessage populates a dynamicpb.Message for t's resolved shape
// from a runtime object.Value, the population half of the JSON Schema /
// protobuf bridge: ToProtoDescriptor describes the shape, NewDynamicMessage
// fills it in.
func NewDynamicMessage(t ast.Type, env *object.Environment, name string, v object.Value) (*dynamicpb.Message, error) {
	md, err := ToProtoDescriptor(t, env, name)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*object.Map)
	if !ok {
		return nil, fmt.Errorf("schema: expected a Map value for %s, got %s", name, printer.PrintType(types.TypeOf(v)))
	}

	refMsg := md.UnwrapMessage()
	msg := dynamicpb.NewMessage(refMsg)
	for _, key := range m.Keys {
		fd := refMsg.Fields().ByName(protoreflect.Name(key))
		if fd == nil {
			continue
		}
		val, ok := m.Get(key)
		if !ok {
			continue
		}
		pv, err := protoValue(fd, val)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		msg.Set(fd, pv)
	}
	return msg, nil
}

// protoValue converts a runtime object.Value into the protoreflect.Value
// shape fd's kind expects. Nested messages recurse through a fresh
// dynamicpb.Message built straight from fd's own message descriptor,
// since a nested field already carries its full shape in fd.Message().
func protoValue(fd protoreflect.FieldDescriptor, val object.Value) (protoreflect.Value, error) {
	if fd.IsList() {
		list, ok := val.(*object.List)
		if !ok {
			return protoreflect.Value{}, fmt.Errorf("expected a List, got %s", printer.PrintType(types.TypeOf(val)))
		}
		lv := dynamicpb.NewMessage(fd.ContainingMessage()).NewField(fd).List()
		for _, elem := range list.Elements {
			ev, err := scalarOrMessageValue(fd, elem)
			if err != nil {
				return protoreflect.Value{}, err
			}
			lv.Append(ev)
		}
		return protoreflect.ValueOfList(lv), nil
	}
	return scalarOrMessageValue(fd, val)
}

func scalarOrMessageValue(fd protoreflect.FieldDescriptor, val object.Value) (protoreflect.Value, error) {
	if fd.Kind() == protoreflect.MessageKind {
		nested := dynamicpb.NewMessage(fd.Message())
		m, ok := val.(*object.Map)
		if !ok {
			return protoreflect.Value{}, fmt.Errorf("expected a Map for message field %s, got %s", fd.Name(), printer.PrintType(types.TypeOf(val)))
		}
		for _, key := range m.Keys {
			nfd := fd.Message().Fields().ByName(protoreflect.Name(key))
			if nfd == nil {
				continue
			}
			v, _ := m.Get(key)
			nv, err := protoValue(nfd, v)
			if err != nil {
				return protoreflect.Value{}, err
			}
			nested.Set(nfd, nv)
		}
		return protoreflect.ValueOfMessage(nested), nil
	}

	switch v := val.(type) {
	case *object.Boolean:
		return protoreflect.ValueOfBool(v.Value), nil
	case *object.Integer:
		return protoreflect.ValueOfInt64(v.Value), nil
	case *object.Float:
		return protoreflect.ValueOfFloat64(v.Value), nil
	case *object.String:
		return protoreflect.ValueOfString(v.Value), nil
	case *object.Null:
		return protoreflect.ValueOfString(""), nil
	default:
		return protoreflect.ValueOfString(printer.PrintValue(val)), nil
	}
}
