package dictionary

import (
	"context"
	_ "embed"
	"io"
	"strings"
)

// builtinList embeds a short list of the most common leaked passwords.
//
//go:embed wordlists/common_passwords.txt
var builtinList string

// BuiltinName is the name of the embedded source.
const BuiltinName = "builtin"

// Builtin returns the embedded common-password list as a Source.
func Builtin() Source {
	return Static(BuiltinName, builtinList)
}

// Static returns a Source over an in-memory list.
func Static(name, data string) Source {
	return staticSource{name: name, data: data}
}

type staticSource struct {
	name string
	data string
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.data)), nil
}
