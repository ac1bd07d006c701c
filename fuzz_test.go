//go:build go1.18
// +build go1.18

package calc_test

import (
	"reflect"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzTokenize(f *testing.F) {
	f.Add("x")
	f.Add("3(4 + 5)")
	f.Add("1×2")
	f.Add("2cos(0)")
	f.Add("1.2.3")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := calc.Tokenize(s)
		if err != nil {
			return
		}
		b, err := calc.Tokenize(s)
		if err != nil {
			t.Fatalf("second tokenization of %q failed: %v", s, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("tokenizing %q is not deterministic:\n%v\n%v", s, a, b)
		}
	})
}

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("y = x = 2")
	f.Add("1×2")
	f.Add("([{1}])")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := calc.ParseString(s)
		if err != nil {
			if _, ok := err.(calc.InputError); !ok {
				t.Errorf("parsing %q gave non-positional error %#v", s, err)
			}
			return
		}
		if a == nil {
			t.Errorf("parsing %q gave nil expression and no error", s)
		}
	})
}

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("tan(pi/2)")
	f.Fuzz(func(t *testing.T, s string) {
		env := calc.NewEnv()
		env.Set("x", 1)
		calc.EvalString(s, env)
	})
}
