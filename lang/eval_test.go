package lang

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/lambdex/log"
)

func TestEvaluate_Lambda(t *testing.T) {
	fn, _ := ashot()

	v, err := fn.Evaluate(nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	call, ok := v.(Func)
	if !ok {
		t.Fatalf("Evaluate() = %T, want Func", v)
	}

	tests := []struct {
		name string
		arg  any
		want bool
	}{
		{"match", user{Name: "Ashot"}, false},
		{"mismatch", user{Name: "X"}, true},
		{"pointer", &user{Name: "Ashot"}, false},
		{"map", map[string]any{"Name": "X"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(tt.arg)
			if err != nil {
				t.Fatalf("call error = %v", err)
			}

			if got != tt.want {
				t.Errorf("call(%v) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Bindings(t *testing.T) {
	u := MustParameter[user]("u")
	body := MustEqual[string](MustMember[string, user](u, "Name"), NewValue("Ashot"))
	fn := MustLambda[bool](body, u)

	tests := []struct {
		name     string
		bindings Bindings
		want     any
		wantErr  error
	}{
		{"true", Bindings{"u": user{Name: "Ashot"}}, true, nil},
		{"false", Bindings{"u": user{Name: "X"}}, false, nil},
		{"unbound", nil, nil, ErrUnboundParameter},
		{"other name bound", Bindings{"v": user{}}, nil, ErrUnboundParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := body.Evaluate(tt.bindings)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Evaluate() error = %v, want %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}

			if tt.wantErr != nil {
				return
			}

			// The callable binds its argument over the same bindings.
			res, err := fn.Func(nil)(tt.bindings["u"])
			if err != nil || res != tt.want {
				t.Errorf("Func()(u) = %v, %v; want %v", res, err, tt.want)
			}
		})
	}
}

func TestEvaluate_ArgumentsShadowBindings(t *testing.T) {
	fn, _ := ashot()

	got, err := fn.Func(Bindings{"u": user{Name: "X"}})(user{Name: "Ashot"})
	if err != nil {
		t.Fatal(err)
	}

	if got != false {
		t.Errorf("argument did not take precedence over binding: got %v", got)
	}
}

func TestEvaluate_Arity(t *testing.T) {
	fn, _ := ashot()
	call := fn.Func(nil)

	for _, args := range [][]any{nil, {user{}, user{}}} {
		_, err := call(args...)
		if !errors.Is(err, ErrArityMismatch) {
			t.Errorf("call(%d args) error = %v, want ErrArityMismatch", len(args), err)
		}
	}
}

func TestEvaluate_MultiParameter(t *testing.T) {
	u := MustParameter[user]("u")
	i := MustParameter[int]("i")

	fn := MustLambda[bool](MustAnd(
		MustMember[bool, user](u, "Active"),
		MustEqual[int](i, NewValue(2)),
	), u, i)

	tests := []struct {
		u    user
		i    int
		want bool
	}{
		{user{Active: true}, 2, true},
		{user{Active: true}, 3, false},
		{user{Active: false}, 2, false},
	}

	call := fn.Func(nil)

	for _, tt := range tests {
		got, err := call(tt.u, tt.i)
		if err != nil {
			t.Fatal(err)
		}

		if got != tt.want {
			t.Errorf("call(%v, %d) = %v, want %v", tt.u.Active, tt.i, got, tt.want)
		}
	}
}

func TestEvaluate_Closure(t *testing.T) {
	u := MustParameter[user]("u")
	v := MustParameter[user]("v")

	inner := MustLambda[bool](MustEqual[int](
		MustMember[int, user](u, "Age"),
		MustMember[int, user](v, "Age"),
	), v)

	outer := MustLambda[Func](inner, u)

	res, err := outer.Func(nil)(user{Age: 30})
	if err != nil {
		t.Fatal(err)
	}

	sameAge, ok := res.(Func)
	if !ok {
		t.Fatalf("outer returned %T, want Func", res)
	}

	for age, want := range map[int]bool{30: true, 31: false} {
		got, err := sameAge(user{Age: age})
		if err != nil {
			t.Fatal(err)
		}

		if got != want {
			t.Errorf("sameAge(%d) = %v, want %v", age, got, want)
		}
	}
}

func TestEvaluate_Index(t *testing.T) {
	p := MustParameter[map[string][]string]("p")
	third := MustArrayIndex[string](MustMember[[]string, map[string][]string](p, "items"), 2)

	tests := []struct {
		name    string
		items   []string
		want    any
		wantErr error
	}{
		{"in range", []string{"a", "b", "c"}, "c", nil},
		{"out of range", []string{"a"}, nil, ErrIndexOutOfRange},
		{"empty", nil, nil, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := third.Evaluate(Bindings{"p": map[string][]string{"items": tt.items}})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Evaluate() error = %v, want %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

type Role struct{ Title string }

type employee struct {
	*Role
	Name string
}

func TestEvaluate_StringIndex(t *testing.T) {
	s := MustCast[[]any](MustParameter[any]("s"))

	tests := []struct {
		name    string
		index   int
		want    any
		wantErr error
	}{
		{"multi-byte rune", 0, "é", nil},
		{"after multi-byte rune", 1, "a", nil},
		{"past last rune", 2, nil, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustArrayIndex[any](s, tt.index).Evaluate(Bindings{"s": "éa"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Evaluate() error = %v, want %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("Evaluate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluate_MemberErrors(t *testing.T) {
	boss := MustMember[string, *user](MustMember[*user, user](MustParameter[user]("u"), "Manager"), "Name")

	_, err := boss.Evaluate(Bindings{"u": user{}})
	if !errors.Is(err, ErrNilValue) {
		t.Errorf("nil manager: error = %v, want ErrNilValue", err)
	}

	got, err := boss.Evaluate(Bindings{"u": user{Manager: &user{Name: "Lena"}}})
	if err != nil || got != "Lena" {
		t.Errorf("Evaluate() = %v, %v; want Lena", got, err)
	}

	title := MustMember[string, employee](MustParameter[employee]("e"), "Title")

	_, err = title.Evaluate(Bindings{"e": employee{}})
	if !errors.Is(err, ErrNilValue) {
		t.Errorf("nil embedded Role: error = %v, want ErrNilValue", err)
	}

	got, err = title.Evaluate(Bindings{"e": employee{Role: &Role{Title: "lead"}}})
	if err != nil || got != "lead" {
		t.Errorf("Evaluate() = %v, %v; want lead", got, err)
	}

	dyn := MustMember[any, any](MustParameter[any]("x"), "Nme")

	_, err = dyn.Evaluate(Bindings{"x": user{}})
	if !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("error = %v, want ErrUnknownMember", err)
	}

	if !strings.Contains(attrString(err), "did_you_mean") {
		t.Errorf("error has no suggestions: %v", attrString(err))
	}
}

func TestEvaluate_ShortCircuit(t *testing.T) {
	b := MustParameter[bool]("b")
	missing := MustParameter[bool]("missing")

	tests := []struct {
		name    string
		node    Node
		b       bool
		want    any
		wantErr error
	}{
		{"and stops on false", MustAnd(b, missing), false, false, nil},
		{"and needs right", MustAnd(b, missing), true, nil, ErrUnboundParameter},
		{"or stops on true", MustOr(b, missing), true, true, nil},
		{"or needs right", MustOr(b, missing), false, nil, ErrUnboundParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.node.Evaluate(Bindings{"b": tt.b})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Evaluate() error = %v, want %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_StrictEqual(t *testing.T) {
	tests := []struct {
		name string
		l, r any
		want bool
	}{
		{"same string", "a", "a", true},
		{"different string", "a", "b", false},
		{"int and int64", 1, int64(1), false},
		{"int and string", 1, "1", false},
		{"nil and nil", nil, nil, true},
		{"nil and zero", nil, 0, false},
		{"slices", []string{"a"}, []string{"a"}, true},
		{"maps", map[string]int{"a": 1}, map[string]int{"a": 2}, false},
		{"struct holding slice", struct{ X any }{X: []int{1}}, struct{ X any }{X: []int{1}}, true},
		{"struct holding different slices", struct{ X any }{X: []int{1}}, struct{ X any }{X: []int{2}}, false},
		{"array holding map", [1]any{map[string]int{"a": 1}}, [1]any{map[string]int{"a": 1}}, true},
		{"struct holding mixed kinds", struct{ X any }{X: 1}, struct{ X any }{X: []int{1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq := MustEqual[any](MustParameter[any]("l"), MustParameter[any]("r"))

			got, err := eq.Evaluate(Bindings{"l": tt.l, "r": tt.r})
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("%v === %v = %v, want %v", tt.l, tt.r, got, tt.want)
			}
		})
	}
}

func TestEvaluate_NonBooleanOperand(t *testing.T) {
	x := MustCast[bool](MustParameter[any]("x"))

	_, err := MustNot(x).Evaluate(Bindings{"x": "yes"})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("error = %v, want ErrTypeMismatch", err)
	}
}

func TestEvaluate_BindingsCaptured(t *testing.T) {
	u := MustParameter[user]("u")
	n := MustParameter[string]("n")
	fn := MustLambda[bool](MustEqual[string](MustMember[string, user](u, "Name"), n), u)

	b := Bindings{"n": "Ashot"}
	call := fn.Func(b)
	b["n"] = "X"

	got, err := call(user{Name: "Ashot"})
	if err != nil {
		t.Fatal(err)
	}

	if got != true {
		t.Errorf("callable observed a later change to its bindings: got %v", got)
	}
}

func TestPredicate(t *testing.T) {
	fn, _ := ashot()

	notAshot, err := Predicate[user](fn, nil)
	if err != nil {
		t.Fatal(err)
	}

	for name, want := range map[string]bool{"Ashot": false, "Lena": true} {
		got, err := notAshot(user{Name: name})
		if err != nil {
			t.Fatal(err)
		}

		if got != want {
			t.Errorf("notAshot(%s) = %v, want %v", name, got, want)
		}
	}

	if _, err = Predicate[string](fn, nil); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Predicate[string] error = %v, want ErrTypeMismatch", err)
	}

	a, b := MustParameter[bool]("a"), MustParameter[bool]("b")
	two := MustLambda[bool](MustAnd(a, b), a, b)
	if _, err = Predicate[bool](two, nil); err == nil {
		t.Error("Predicate accepted a two-parameter lambda")
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	fn, _ := ashot()
	call := fn.Func(nil)

	var wg sync.WaitGroup

	errs := make(chan error, 64)

	for i := range 64 {
		wg.Go(func() {
			name := "Ashot"
			if i%2 == 1 {
				name = "X"
			}

			got, err := call(user{Name: name})
			if err != nil {
				errs <- err

				return
			}

			if got != (i%2 == 1) {
				errs <- errors.New("wrong result for " + name)
			}

			if fn.Compile() != "(u) => !(u.Name === 'Ashot')" {
				errs <- errors.New("compile changed under concurrency")
			}
		})
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestEvaluate_Trace(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatJSON))
	fn, _ := ashot()

	_, err := fn.Func(nil, WithLogger(logger), WithContext(t.Context()))(user{Name: "X"})
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, kind := range []string{"Not", "Equal", "Member", "Parameter", "Value"} {
		if !strings.Contains(out, `"kind":"`+kind+`"`) {
			t.Errorf("trace has no %s record:\n%s", kind, out)
		}
	}

	if !strings.Contains(out, `"level":"TRACE"`) {
		t.Errorf("trace records not at TRACE level:\n%s", out)
	}
}

// attrString renders the structured attributes of err.
func attrString(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}

	var sb strings.Builder
	for _, a := range e.Attrs() {
		sb.WriteString(a.String())
		sb.WriteByte(' ')
	}

	return sb.String()
}
