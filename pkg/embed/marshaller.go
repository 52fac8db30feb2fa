package corecalc

import (
	"fmt"
	"reflect"

	"github.com/funvibe/corecalc/internal/typesystem"
)

// Marshaller handles conversion between Go values and calculus values.
//
// Go numbers become float literals of type F64 and struct{} becomes sole
// of type Trivial. Anything else is rejected: the calculus has no other
// inhabited types a host could supply.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

var emptyStruct = reflect.TypeOf(struct{}{})

// ToValue converts a Go value to a calculus value and its type.
func (m *Marshaller) ToValue(val interface{}) (typesystem.Value, typesystem.Type, error) {
	if val == nil {
		return nil, nil, fmt.Errorf("cannot convert nil")
	}

	// Already a calculus value.
	if v, ok := val.(typesystem.Value); ok {
		t, ok := typesystem.TypeOf(v)
		if !ok {
			return nil, nil, fmt.Errorf("value %s has no type", v)
		}
		return v, t, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return typesystem.VF64Lit{Value: float64(v.Int())}, typesystem.VF64{}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typesystem.VF64Lit{Value: float64(v.Uint())}, typesystem.VF64{}, nil
	case reflect.Float32, reflect.Float64:
		return typesystem.VF64Lit{Value: v.Float()}, typesystem.VF64{}, nil
	case reflect.Struct:
		if v.Type() == emptyStruct {
			return typesystem.VSole{}, typesystem.VTrivial{}, nil
		}
	}
	return nil, nil, fmt.Errorf("unsupported Go type %T", val)
}

// FromValue converts a calculus value to a Go value.
// targetType is optional; if provided, numbers are converted to it.
func (m *Marshaller) FromValue(val typesystem.Value, targetType reflect.Type) (interface{}, error) {
	switch v := val.(type) {
	case typesystem.VF64Lit:
		if targetType == nil {
			return v.Value, nil
		}
		rv := reflect.ValueOf(v.Value)
		if !rv.CanConvert(targetType) {
			return nil, fmt.Errorf("cannot convert %s to %s", v, targetType)
		}
		return rv.Convert(targetType).Interface(), nil
	case typesystem.VSole:
		return struct{}{}, nil
	case nil:
		return nil, fmt.Errorf("cannot convert nil value")
	}
	// Types and commands have no Go counterpart; hand them back as is.
	return val, nil
}
