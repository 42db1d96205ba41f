package ifcfile_test

import (
	me "github.com/mandelsoft/ifcimport/pkg/ifcfile"
)

func text(v me.Value) string {
	s, _ := v.Text()
	return s
}

func enum(v me.Value) string {
	s, _ := v.Enum()
	return s
}

func number(v me.Value) float64 {
	f, _ := v.Real()
	return f
}

func boolean(v me.Value) bool {
	b, _ := v.Bool()
	return b
}
