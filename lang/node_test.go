package lang

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestConstruct_Errors(t *testing.T) {
	u := MustParameter[user]("u")
	other := MustParameter[user]("u")
	b := MustParameter[bool]("b")

	tests := []struct {
		name    string
		build   func() error
		wantErr error
	}{
		{"empty parameter name", func() error {
			_, err := NewParameter[int]("")
			return err
		}, ErrInvalidIdentifier},
		{"parameter name with dot", func() error {
			_, err := NewParameter[int]("a.b")
			return err
		}, ErrInvalidIdentifier},
		{"member of nil", func() error {
			_, err := NewMember[string, user](nil, "Name")
			return err
		}, ErrNilOperand},
		{"member bad identifier", func() error {
			_, err := NewMember[string, user](u, "first name")
			return err
		}, ErrInvalidIdentifier},
		{"unknown member", func() error {
			_, err := NewMember[string, user](u, "Email")
			return err
		}, ErrUnknownMember},
		{"unexported member", func() error {
			_, err := NewMember[string, user](u, "secret")
			return err
		}, ErrUnknownMember},
		{"member type mismatch", func() error {
			_, err := NewMember[string, user](u, "Age")
			return err
		}, ErrTypeMismatch},
		{"member of scalar", func() error {
			_, err := NewMember[string, int](MustParameter[int]("i"), "Name")
			return err
		}, ErrUnknownMember},
		{"member of int-keyed map", func() error {
			_, err := NewMember[string, map[int]string](MustParameter[map[int]string]("m"), "x")
			return err
		}, ErrUnknownMember},
		{"index of nil", func() error {
			_, err := NewArrayIndex[string](nil, 0)
			return err
		}, ErrNilOperand},
		{"negative index", func() error {
			_, err := NewArrayIndex[string](MustMember[[]string, user](u, "Tags"), -1)
			return err
		}, ErrNegativeIndex},
		{"not of nil", func() error {
			_, err := NewNot(nil)
			return err
		}, ErrNilOperand},
		{"and of nil", func() error {
			_, err := NewAnd(b, nil)
			return err
		}, ErrNilOperand},
		{"or of nil", func() error {
			_, err := NewOr(nil, b)
			return err
		}, ErrNilOperand},
		{"equal of nil", func() error {
			_, err := NewEqual[string](nil, NewValue("x"))
			return err
		}, ErrNilOperand},
		{"equal of distinct types", func() error {
			_, err := NewEqual[any](MustCast[any](NewValue(1)), MustCast[any](NewValue("1")))
			return err
		}, ErrTypeMismatch},
		{"lambda without parameters", func() error {
			_, err := NewLambda[bool](b)
			return err
		}, ErrEmptyParameters},
		{"lambda nil body", func() error {
			_, err := NewLambda[bool](nil, b)
			return err
		}, ErrNilOperand},
		{"lambda nil parameter", func() error {
			_, err := NewLambda[bool](b, b, nil)
			return err
		}, ErrNilOperand},
		{"duplicate parameter", func() error {
			_, err := NewLambda[bool](b, b, MustParameter[int]("b"))
			return err
		}, ErrDuplicateParameter},
		{"shadowed parameter", func() error {
			name := MustMember[string, user](other, "Name")
			_, err := NewLambda[bool](MustEqual[string](name, NewValue("x")), u)
			return err
		}, ErrShadowedParameter},
		{"cast to unrelated type", func() error {
			_, err := Cast[int](NewValue("x"))
			return err
		}, ErrTypeMismatch},
		{"cast of nil", func() error {
			_, err := Cast[int](nil)
			return err
		}, ErrNilOperand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConstruct_UnknownMemberSuggestion(t *testing.T) {
	_, err := NewMember[string, user](MustParameter[user]("u"), "Nme")
	if !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("error = %v, want ErrUnknownMember", err)
	}

	if got := attrString(err); !strings.Contains(got, "did_you_mean=[Name") {
		t.Errorf("attributes %q do not suggest Name", got)
	}
}

func TestConstruct_Accepted(t *testing.T) {
	u := MustParameter[user]("u")

	tests := []struct {
		name  string
		build func() error
	}{
		{"member through pointer", func() error {
			_, err := NewMember[string, *user](MustParameter[*user]("p"), "Name")
			return err
		}},
		{"member into interface", func() error {
			_, err := NewMember[any, user](u, "Age")
			return err
		}},
		{"member of interface", func() error {
			_, err := NewMember[int, any](MustParameter[any]("x"), "Anything")
			return err
		}},
		{"member of string map", func() error {
			_, err := NewMember[int, map[string]int](MustParameter[map[string]int]("m"), "count")
			return err
		}},
		{"equal against interface", func() error {
			_, err := NewEqual[any](MustCast[any](u), NewValue[any](nil))
			return err
		}},
		{"free parameter", func() error {
			_, err := NewLambda[bool](MustParameter[bool]("flag"), u)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.build(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMust_Panics(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("recovered %v, want ErrInvalidIdentifier", err)
		}
	}()

	MustParameter[int]("1st")
}

func TestNode_Accessors(t *testing.T) {
	u := MustParameter[user]("u")
	tags := MustMember[[]string, user](u, "Tags")
	first := MustArrayIndex[string](tags, 0)
	v := NewValue("x")
	eq := MustEqual[string](first, v)
	fn := MustLambda[bool](eq, u)

	if tags.Source() != u || tags.Field() != "Tags" {
		t.Error("Member accessors")
	}

	if first.Source() != tags || first.Index() != 0 {
		t.Error("ArrayIndex accessors")
	}

	if eq.Left() != first || eq.Right() != v || v.Value() != "x" {
		t.Error("Equal accessors")
	}

	if params := fn.Params(); len(params) != 1 || params[0] != u || fn.Body() != eq {
		t.Error("Lambda accessors")
	}

	tests := []struct {
		node Node
		kind Kind
		typ  reflect.Type
	}{
		{u, KindParameter, reflect.TypeFor[user]()},
		{tags, KindMember, reflect.TypeFor[[]string]()},
		{first, KindArrayIndex, reflect.TypeFor[string]()},
		{v, KindValue, reflect.TypeFor[string]()},
		{eq, KindEqual, reflect.TypeFor[bool]()},
		{fn, KindLambda, reflect.TypeFor[Func]()},
	}

	for _, tt := range tests {
		if tt.node.Kind() != tt.kind || tt.node.Type() != tt.typ {
			t.Errorf("%s: Kind() = %v, Type() = %v", tt.kind, tt.node.Kind(), tt.node.Type())
		}
	}
}

func TestCast(t *testing.T) {
	p := MustParameter[any]("p")

	b, err := Cast[bool](p)
	if err != nil {
		t.Fatal(err)
	}

	if b.Compile() != "p" || b.Kind() != KindParameter {
		t.Errorf("cast changed the node: %q %v", b.Compile(), b.Kind())
	}

	if unwrap(b) != Node(p) {
		t.Error("unwrap did not return the original node")
	}

	n := MustNot(MustParameter[bool]("q"))

	same, err := Cast[bool](n)
	if err != nil || same != Expr[bool](n) {
		t.Errorf("Cast to the static type returned %v, %v", same, err)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, ok := ParseKind(strings.ToLower(k.String()))
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k, got, ok)
		}
	}

	if _, ok := ParseKind("Ternary"); ok {
		t.Error("ParseKind accepted an unknown kind")
	}

	if Kind(99).String() != "Unknown" {
		t.Errorf("Kind(99) = %q", Kind(99))
	}
}
