package catalog

import "fmt"

// Kind is the closed set of input shapes a field can take.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindGuestCount
	KindChoice
	KindMultiline
)

var kindNames = map[Kind]string{
	KindText:       "text",
	KindEmail:      "email",
	KindGuestCount: "guest-count",
	KindChoice:     "choice",
	KindMultiline:  "multiline",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("catalog: unknown kind %q", string(text))
}
