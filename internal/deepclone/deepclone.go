package deepclone

import "reflect"

// Clone returns an independent copy of value. Maps, slices, pointers, and
// nested structs are duplicated recursively so the copy never aliases the
// original's storage. Channels, funcs, and unexported fields are carried as-is
// since they cannot be duplicated meaningfully.
func Clone[T any](value T) T {
	var zero T
	cloned := cloneValue(reflect.ValueOf(value))
	if !cloned.IsValid() {
		return zero
	}
	target := reflect.TypeOf(zero)
	if target == nil {
		// T is an interface type; the concrete clone satisfies it directly.
		return cloned.Interface().(T)
	}
	if cloned.Type() != target {
		result := reflect.New(target).Elem()
		result.Set(cloned.Convert(target))
		return result.Interface().(T)
	}
	return cloned.Interface().(T)
}

func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.New(v.Type().Elem())
		clone.Elem().Set(cloneValue(v.Elem()))
		return clone
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		elem := cloneValue(v.Elem())
		if !elem.IsValid() {
			return reflect.Zero(v.Type())
		}
		return elem.Convert(v.Type())
	case reflect.Struct:
		clone := reflect.New(v.Type()).Elem()
		// Whole-struct copy first so unexported fields survive, then deep
		// copy the settable ones.
		clone.Set(v)
		for i := 0; i < v.NumField(); i++ {
			field := clone.Field(i)
			if !field.CanSet() {
				continue
			}
			field.Set(cloneValue(v.Field(i)))
		}
		return clone
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return clone
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	case reflect.Array:
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	default:
		return reflect.ValueOf(v.Interface())
	}
}
