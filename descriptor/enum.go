package descriptor

// Enumerator is implemented by integer or string types bound by name.
// For integer types the value is the ordinal into EnumNames.
type Enumerator interface {
	EnumNames() []string
}
