package core

// Secret holds a credential and keeps it out of logs and serialized output.
// Only Expose returns the raw value.
//
//	key := NewSecret("sk-live-123")
//	fmt.Println(key)  // [REDACTED]
//	key.Expose()      // "sk-live-123"
type Secret struct {
	value string
}

// NewSecret wraps value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// String implements fmt.Stringer with a redacted placeholder.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v.
func (s Secret) GoString() string {
	return "core.Secret{[REDACTED]}"
}

// MarshalJSON always emits the placeholder.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}

// MarshalText always emits the placeholder, which also covers YAML encoders.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// Expose returns the raw value for building auth headers.
func (s Secret) Expose() string {
	return s.value
}

// IsEmpty reports whether no credential was set.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}
