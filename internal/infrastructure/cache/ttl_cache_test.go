package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_Vencimiento(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache[string, int]()
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, 0)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "vencida")
	assert.Equal(t, 1, c.Len(), "la vencida se borra al leerla")

	v, ok = c.Get("b")
	assert.True(t, ok, "ttl 0 no vence")
	assert.Equal(t, 2, v)
}

func TestTTLCache_GetVencidoNoBorraEntradaRenovada(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache[string, int]()
	c.now = func() time.Time { return now }
	c.Set("a", 1, time.Minute)

	// Entre la lectura y el borrado otro escritor renueva la clave.
	now = now.Add(2 * time.Minute)
	renewed := false
	c.now = func() time.Time {
		if !renewed {
			renewed = true
			c.Set("a", 2, time.Minute)
		}
		return now
	}

	_, ok := c.Get("a")
	assert.False(t, ok)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestTTLCache_Concurrente(t *testing.T) {
	c := NewTTLCache[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(i, i*i, time.Minute)
			_, _ = c.Get(i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, c.Len())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(v))

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}
