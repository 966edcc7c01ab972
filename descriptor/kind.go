package descriptor

// Kind classifies how a declared type binds to JSON.
type Kind uint8

const (
	Invalid Kind = iota
	String
	Scalar
	Date
	Time
	DateTime
	List
	Array
	Map
	Object
	Enum
	Dynamic
)

var kindNames = [...]string{"invalid", "string", "scalar", "date", "time", "dateTime", "list", "array", "map", "object", "enum", "dynamic"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsTemporal returns true for Date, Time and DateTime.
func (k Kind) IsTemporal() bool {
	return k == Date || k == Time || k == DateTime
}

// IsContainer returns true for kinds bound from '{' or '['.
func (k Kind) IsContainer() bool {
	switch k {
	case List, Array, Map, Object:
		return true
	}
	return false
}

// IsLeaf returns true for kinds bound from a single scalar token.
func (k Kind) IsLeaf() bool {
	switch k {
	case String, Scalar, Enum, Date, Time, DateTime:
		return true
	}
	return false
}

// ScalarKind refines the Scalar kind.
type ScalarKind uint8

const (
	NotScalar ScalarKind = iota
	Bool
	Int
	Uint
	Float
	BigInt
	BigFloat
	Decimal
)

// IsNumber returns true for numeric scalars.
func (s ScalarKind) IsNumber() bool {
	return s >= Int
}

// IsArbitrary returns true for arbitrary precision scalars.
func (s ScalarKind) IsArbitrary() bool {
	return s >= BigInt
}
