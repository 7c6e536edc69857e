package mediator

import (
	"reflect"
	"strings"
)

// RequestName extracts a clean request name from a request type
// Examples:
//   - "*users.CreateUserCommand" → "CreateUserCommand"
//   - "ping.PingQuery" → "PingQuery"
//   - "users.Page[ping.PingQuery]" → "Page"
func RequestName(t reflect.Type) string {
	if t == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(t.String(), "*")
	if i := strings.IndexByte(fullName, '['); i > 0 {
		fullName = fullName[:i]
	}

	parts := strings.Split(fullName, ".")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}

	return fullName
}

// packageOf returns the import path of the package declaring t, looking
// through pointers. Unnamed types report an empty path.
func packageOf(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.PkgPath()
}

// isNil reports whether v is nil or an interface holding a nil value
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}
