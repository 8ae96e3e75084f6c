package scan

import (
	"errors"
	"strings"
)

// Kind identifies which action a scanned payload asks for.
type Kind int

const (
	KindInvalid Kind = iota
	KindLogin
	KindAddress
	KindToken
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindAddress:
		return "address"
	case KindToken:
		return "token"
	default:
		return "invalid"
	}
}

// Payload is the classified form of a raw scan. The concrete type is one of
// Login, Address, Token or Invalid.
type Payload interface {
	Kind() Kind
	payload()
}

// Login is a wallet login challenge: {"action":"login","id":...,"token":...}.
// Absent fields are left empty.
type Login struct {
	ID    string
	Token string
}

// Address is a bare 0x-prefixed recipient address.
type Address struct {
	Address string
}

// Field is one key:value pair of a token descriptor, in scan order.
type Field struct {
	Key   string
	Value string
}

// Token is a `name:value,key:value,...` descriptor. Name is the first key
// seen and Address is that key's value.
type Token struct {
	Name    string
	Address string
	Fields  []Field
}

// Get returns the value stored under key.
func (t Token) Get(key string) (string, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Invalid carries the input that could not be classified and why.
type Invalid struct {
	Raw    string
	Reason error
}

func (Login) Kind() Kind   { return KindLogin }
func (Address) Kind() Kind { return KindAddress }
func (Token) Kind() Kind   { return KindToken }
func (Invalid) Kind() Kind { return KindInvalid }

func (Login) payload()   {}
func (Address) payload() {}
func (Token) payload()   {}
func (Invalid) payload() {}

// Classification failures, reported through Invalid.Reason.
var (
	ErrEmpty            = errors.New("empty scan payload")
	ErrNotLoginAction   = errors.New("json payload is not a login action")
	ErrMissingSeparator = errors.New("property is missing ':' separator")
	ErrEmptyKey         = errors.New("property has an empty key")
)

func (i Invalid) Error() string {
	if i.Reason == nil {
		return "invalid scan payload"
	}
	return "invalid scan payload: " + i.Reason.Error()
}

func (i Invalid) Unwrap() error { return i.Reason }

// fieldsString renders fields back into scan grammar, mainly for logs.
func fieldsString(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Key+":"+f.Value)
	}
	return strings.Join(parts, ",")
}

func (t Token) String() string { return fieldsString(t.Fields) }
