package sema

import (
	"fmt"
	"strings"
)

// порядок важен: он же порядок диагностик в отчёте
var defaultOrder = []string{
	"empty-statements",
	"names",
	"unused",
	"constant-condition",
	"literal-division",
}

var registry = map[string]func() Pass{
	"empty-statements":   func() Pass { return EmptyStatements{} },
	"names":              func() Pass { return Names{} },
	"unused":             func() Pass { return Unused{} },
	"constant-condition": func() Pass { return ConstantCondition{} },
	"literal-division":   func() Pass { return LiteralDivision{} },
}

// DefaultPasses returns the full analyzer set in its canonical order.
func DefaultPasses() []Pass {
	passes, err := Lookup(defaultOrder)
	if err != nil {
		panic(err)
	}
	return passes
}

// PassNames lists the registered passes in default order.
func PassNames() []string {
	return append([]string(nil), defaultOrder...)
}

// Lookup builds a pass list from names, keeping the given order.
func Lookup(names []string) ([]Pass, error) {
	passes := make([]Pass, 0, len(names))
	for _, name := range names {
		ctor, ok := registry[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownPass, name, strings.Join(defaultOrder, ", "))
		}
		passes = append(passes, ctor())
	}
	return passes, nil
}
