package store

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/rogersnm/dolphin/internal/api"
)

type op string

const (
	opLoad   op = "load"
	opCreate op = "create"
	opUpdate op = "update"
	opDelete op = "delete"
	opSave   op = "save"
)

// failureMessage is the server's own message when the API sent one, or
// "Failed to <op> <noun>".
func failureMessage(o op, noun string, err error) string {
	var he *api.HTTPError
	if errors.As(err, &he) && he.Message != "" {
		return he.Message
	}
	return "Failed to " + string(o) + " " + noun
}

func successMessage(o op, noun string) string {
	var verb string
	switch o {
	case opCreate:
		verb = "created"
	case opUpdate:
		verb = "updated"
	case opDelete:
		verb = "deleted"
	case opSave:
		verb = "saved"
	}
	return upperFirst(noun) + " " + verb + " successfully!"
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
