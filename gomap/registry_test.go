package gomap

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/signadot/typeconf/ir"
)

func TestImport(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewRegistry(WithLogger(zap.New(core)))
	require.NoError(t, r.Import(weightDeclarator()))
	assert.Equal(t, 1, logs.FilterMessage("imported constructors").Len())

	od, ok := r.GetIfPresent(reflect.TypeFor[weight]())
	require.True(t, ok)
	assert.Equal(t, "weights", od.Origin())
	assert.True(t, od.Inlineable())

	w, err := Decode[weight](r, mustParse("250"))
	require.NoError(t, err)
	assert.Equal(t, weight{Grams: 250}, w)
}

func TestImportConflicts(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Import(colorDeclarator("first")))

	err := r.Import(colorDeclarator("second"))
	require.ErrorIs(t, err, ErrRegistration)
	assert.Contains(t, err.Error(), "second")
	assert.Contains(t, err.Error(), "first")
	od, _ := r.GetIfPresent(reflect.TypeFor[hexColor]())
	assert.Equal(t, "first", od.Origin())

	twice := &testDeclarator{name: "twice", cs: []*Constructor{
		weightDeclarator().cs[0], weightDeclarator().cs[0],
	}}
	require.ErrorIs(t, r.Import(twice), ErrRegistration)
	_, ok := r.GetIfPresent(reflect.TypeFor[weight]())
	assert.False(t, ok, "failed import must leave the registry unchanged")

	native := &testDeclarator{name: "extra", cs: []*Constructor{pair{}.ConfigConstructor()}}
	err = r.Import(native)
	require.ErrorIs(t, err, ErrRegistration)
	assert.Contains(t, err.Error(), "already declared by native")

	require.ErrorIs(t, r.Import(&testDeclarator{name: "empty"}), ErrRegistration)
	require.ErrorIs(t, r.Import(&testDeclarator{name: "nil", cs: []*Constructor{nil}}), ErrRegistration)
}

func TestImportAfterSynthesis(t *testing.T) {
	r := NewRegistry()
	_, err := Parse(r, mustParse("[1, 2]"), ListOf(Int()))
	require.NoError(t, err)
	require.NoError(t, r.Register(Raw(func(n *ir.Node) (weight, error) {
		return weight{Grams: len(n.Value)}, nil
	})))
	w, err := Decode[weight](r, mustParse("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, w.Grams)
}

func TestImportMutualReferences(t *testing.T) {
	type leaf struct{ W weight }
	leafW := Required("w", Custom[weight]())
	d := &testDeclarator{name: "mutual", cs: []*Constructor{
		Object[leaf](leafW).Build(func(a *Args) (leaf, error) {
			return leaf{W: leafW.Get(a)}, nil
		}),
		weightDeclarator().cs[0],
	}}
	r := NewRegistry()
	require.NoError(t, r.Import(d))
	got, err := Decode[leaf](r, mustParse("w: 12"))
	require.NoError(t, err)
	assert.Equal(t, 12, got.W.Grams)
}

func TestBuilderValidation(t *testing.T) {
	a := Required("a", Int())
	tests := []*Constructor{
		Object[weight](a, a).Build(func(*Args) (weight, error) { return weight{}, nil }),
		Object[weight](Required("", Int())).Build(func(*Args) (weight, error) { return weight{}, nil }),
		Object[weight](Field[int]{}).Build(func(*Args) (weight, error) { return weight{}, nil }),
	}
	for i, c := range tests {
		err := NewRegistry().Register(c)
		require.ErrorIs(t, err, ErrRegistration, "case %d", i)
	}
}

func TestFieldFromOtherObject(t *testing.T) {
	r := NewRegistry()
	c := Object[weight](weightGrams).Named("scale").Build(func(a *Args) (weight, error) {
		return weight{Grams: pairA.Get(a)}, nil
	})
	require.NoError(t, r.Register(c))
	assert.Panics(t, func() { _, _ = Decode[weight](r, mustParse("grams: 1")) })
}

func TestArgsHas(t *testing.T) {
	type opt struct{ Set bool }
	v := Default("v", Int(), 0)
	r := NewRegistry()
	require.NoError(t, r.Register(Object[opt](v).Build(func(a *Args) (opt, error) {
		return opt{Set: a.Has("v") && a.Node().IsMapping()}, nil
	})))
	got, err := Decode[opt](r, mustParse("v: 0"))
	require.NoError(t, err)
	assert.True(t, got.Set)
	got, err = Decode[opt](r, mustParse("{}"))
	require.NoError(t, err)
	assert.False(t, got.Set)
}

func TestDescriptorsAndLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Import(weightDeclarator()))
	_, err := DescriptorFor[item](r)
	require.NoError(t, err)

	var names []string
	for _, od := range r.Descriptors() {
		names = append(names, od.Name())
	}
	assert.Equal(t, []string{"item", "point", "weight"}, names)

	od, ok := r.Lookup("point")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[point](), od.Type())
	_, ok = r.Lookup("nothing")
	assert.False(t, ok)

	got, err := r.SynthesizeOrGet(reflect.TypeFor[undeclared]())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConcurrentParse(t *testing.T) {
	r := NewRegistry(WithParserCacheSize(2))
	var g errgroup.Group
	for i := 0; i < 64; i++ {
		g.Go(func() error {
			doc := fmt.Sprintf("name: n%d\ncount: %d\ncenter: [%d, 1]\nflags: [hide enchants]", i, i, i)
			got, err := Decode[item](r, mustParse(doc))
			if err != nil {
				return err
			}
			if got.Name != fmt.Sprintf("n%d", i) || got.Count != i || got.Center.X != float64(i) {
				return fmt.Errorf("goroutine %d decoded %+v", i, got)
			}
			_, err = Decode[item](r, mustParse("name: x\nbogus: 1"))
			if err == nil {
				return fmt.Errorf("goroutine %d: unknown property accepted", i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestConcurrentSynthesis(t *testing.T) {
	r := NewRegistry()
	const n = 32
	ods := make([]*ObjectDescriptor, n)
	var wg sync.WaitGroup
	for i := range ods {
		wg.Add(1)
		go func() {
			defer wg.Done()
			od, err := r.SynthesizeOrGet(reflect.TypeFor[tree]())
			if err == nil {
				ods[i] = od
			}
		}()
	}
	wg.Wait()
	for _, od := range ods {
		require.NotNil(t, od)
		assert.Same(t, ods[0], od)
	}
}

func TestConcurrentSynthesisFailure(t *testing.T) {
	r := NewRegistry()
	const n = 32
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.SynthesizeOrGet(reflect.TypeFor[mismatched]())
			errs[i] = AddLocation(err, fmt.Sprintf("in caller %d", i))
		}()
	}
	wg.Wait()
	for i, err := range errs {
		require.ErrorIs(t, err, ErrRegistration)
		e, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, []string{fmt.Sprintf("in caller %d", i)}, e.Locations)
	}
}

func TestDetach(t *testing.T) {
	orig := &Error{Kind: ErrConversion, Message: "bad", Locations: []string{"in property \"a\""}}
	assert.Same(t, orig, detach(orig, false))

	got := detach(orig, true)
	e, ok := got.(*Error)
	require.True(t, ok)
	assert.NotSame(t, orig, e)
	assert.Equal(t, orig.Error(), e.Error())
	e.AddLocation("in file x.yml")
	assert.Equal(t, []string{"in property \"a\""}, orig.Locations)

	foreign := fmt.Errorf("plain")
	assert.Equal(t, foreign, detach(foreign, true))
}
