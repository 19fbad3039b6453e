package variant

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the host's variant type tag.
type Type int

const (
	Nil Type = iota
	Bool
	Int
	Float
	String
	Vector2
	Vector2i
	Rect2
	Rect2i
	Vector3
	Vector3i
	Transform2D
	Vector4
	Vector4i
	Plane
	Quaternion
	AABB
	Basis
	Transform3D
	Projection
	Color
	StringName
	NodePath
	RID
	Object
	Callable
	Signal
	Dictionary
	Array
	PackedByteArray
	PackedInt32Array
	PackedInt64Array
	PackedFloat32Array
	PackedFloat64Array
	PackedStringArray
	PackedVector2Array
	PackedVector3Array
	PackedColorArray
	PackedVector4Array

	// Max is one past the last valid type tag.
	Max
)

var typeNames = [...]string{
	Nil:                "nil",
	Bool:               "bool",
	Int:                "int",
	Float:              "float",
	String:             "string",
	Vector2:            "vector2",
	Vector2i:           "vector2i",
	Rect2:              "rect2",
	Rect2i:             "rect2i",
	Vector3:            "vector3",
	Vector3i:           "vector3i",
	Transform2D:        "transform2d",
	Vector4:            "vector4",
	Vector4i:           "vector4i",
	Plane:              "plane",
	Quaternion:         "quaternion",
	AABB:               "aabb",
	Basis:              "basis",
	Transform3D:        "transform3d",
	Projection:         "projection",
	Color:              "color",
	StringName:         "string_name",
	NodePath:           "node_path",
	RID:                "rid",
	Object:             "object",
	Callable:           "callable",
	Signal:             "signal",
	Dictionary:         "dictionary",
	Array:              "array",
	PackedByteArray:    "packed_byte_array",
	PackedInt32Array:   "packed_int32_array",
	PackedInt64Array:   "packed_int64_array",
	PackedFloat32Array: "packed_float32_array",
	PackedFloat64Array: "packed_float64_array",
	PackedStringArray:  "packed_string_array",
	PackedVector2Array: "packed_vector2_array",
	PackedVector3Array: "packed_vector3_array",
	PackedColorArray:   "packed_color_array",
	PackedVector4Array: "packed_vector4_array",
}

// Valid reports whether t is a known type tag.
func (t Type) Valid() bool {
	return t >= Nil && t < Max
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("variant(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType resolves a type keyword such as "int" or "packed_string_array".
// Matching is case-insensitive.
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == key {
			return Type(i), nil
		}
	}
	return Nil, fmt.Errorf("unknown variant type %q", name)
}

// MarshalText encodes the type by keyword so YAML/TOML dumps stay readable.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid variant type %d", int(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText accepts either a keyword or a decimal tag.
func (t *Type) UnmarshalText(text []byte) error {
	s := string(text)
	if n, err := strconv.Atoi(s); err == nil {
		if !Type(n).Valid() {
			return fmt.Errorf("invalid variant type %d", n)
		}
		*t = Type(n)
		return nil
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
