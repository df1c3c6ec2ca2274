package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/wirebox/ident"
)

func noopBuild(args []any) (any, error) { return struct{}{}, nil }

func noopMutate(product any, args []any) (any, error) { return product, nil }

func reqs(n int) []ident.ID {
	out := make([]ident.ID, n)
	for i := range out {
		out[i] = ident.Named(fmt.Sprintf("req-%d", i))
	}
	return out
}

func TestAddFactory(t *testing.T) {
	s := NewSet()
	id := ident.Named("db")

	require.NoError(t, s.AddFactory(&Factory{Product: id, Build: noopBuild}))

	f, ok := s.Factory(id)
	require.True(t, ok)
	assert.Equal(t, id, f.Product)
	assert.Equal(t, KindFactory, f.Kind)
	assert.Equal(t, 1, s.Len())
}

func TestAddFactoryRejectsDuplicate(t *testing.T) {
	s := NewSet()
	id := ident.Named("db")
	first := &Factory{Product: id, Build: noopBuild}
	require.NoError(t, s.AddFactory(first))

	err := s.AddFactory(&Factory{Product: id, Build: noopBuild})

	var dup *DuplicateFactoryError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, id, dup.Product)

	// The first registration survives untouched.
	f, ok := s.Factory(id)
	require.True(t, ok)
	assert.Same(t, first, f)
	assert.Equal(t, 1, s.Len())
}

func TestAddFactoryArgumentChecks(t *testing.T) {
	s := NewSet()

	assert.ErrorIs(t, s.AddFactory(nil), ErrZeroIdentity)
	assert.ErrorIs(t, s.AddFactory(&Factory{Build: noopBuild}), ErrZeroIdentity)
	assert.ErrorIs(t, s.AddFactory(&Factory{Product: ident.Named("x")}), ErrNilBuildFunc)
}

func TestRequirementCap(t *testing.T) {
	s := NewSet()

	// Six requirements is the supported boundary.
	require.NoError(t, s.AddFactory(&Factory{
		Product:  ident.Named("wide"),
		Requires: reqs(6),
		Build:    noopBuild,
	}))

	// Seven fails, naming the exact count.
	err := s.AddFactory(&Factory{
		Product:  ident.Named("wider"),
		Requires: reqs(7),
		Build:    noopBuild,
	})
	var tooMany *TooManyRequirementsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 7, tooMany.Count)
	assert.False(t, tooMany.LateInit)
	_, ok := s.Factory(ident.Named("wider"))
	assert.False(t, ok)
}

func TestLateInitRequirementCap(t *testing.T) {
	s := NewSet()
	id := ident.Named("svc")
	require.NoError(t, s.AddFactory(&Factory{Product: id, Build: noopBuild}))

	require.NoError(t, s.AddLateInit(&LateInit{Product: id, Requires: reqs(6), Mutate: noopMutate}))

	s2 := NewSet()
	require.NoError(t, s2.AddFactory(&Factory{Product: id, Build: noopBuild}))
	err := s2.AddLateInit(&LateInit{Product: id, Requires: reqs(7), Mutate: noopMutate})

	var tooMany *TooManyRequirementsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 7, tooMany.Count)
	assert.True(t, tooMany.LateInit)
}

func TestAddLateInitRequiresFactory(t *testing.T) {
	s := NewSet()

	err := s.AddLateInit(&LateInit{Product: ident.Named("orphan"), Mutate: noopMutate})

	var noFactory *NoFactoryError
	require.ErrorAs(t, err, &noFactory)
	assert.Equal(t, ident.Named("orphan"), noFactory.Product)
}

func TestAddLateInitRejectsDuplicate(t *testing.T) {
	s := NewSet()
	id := ident.Named("svc")
	require.NoError(t, s.AddFactory(&Factory{Product: id, Build: noopBuild}))
	require.NoError(t, s.AddLateInit(&LateInit{Product: id, Mutate: noopMutate}))

	err := s.AddLateInit(&LateInit{Product: id, Mutate: noopMutate})

	var dup *DuplicateLateInitError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, id, dup.Product)
}

func TestIterationFollowsRegistrationOrder(t *testing.T) {
	s := NewSet()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		require.NoError(t, s.AddFactory(&Factory{Product: ident.Named(n), Build: noopBuild}))
		require.NoError(t, s.AddLateInit(&LateInit{Product: ident.Named(n), Mutate: noopMutate}))
	}

	factories := s.Factories()
	lateInits := s.LateInits()
	require.Len(t, factories, 3)
	require.Len(t, lateInits, 3)
	for i, n := range names {
		assert.Equal(t, ident.Named(n), factories[i].Product)
		assert.Equal(t, ident.Named(n), lateInits[i].Product)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "factory", KindFactory.String())
	assert.Equal(t, "startup_task", KindStartupTask.String())
	assert.Equal(t, "adapter", KindProtocolAdapter.String())
}
