// internal/cache/cache.go
package cache

import (
	"sync"
	"time"
)

// Cache guarda valores com expiração por tempo. Entradas vencidas são
// descartadas na leitura; não há varredura em segundo plano.
type Cache[T any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	itens map[string]entrada[T]
}

type entrada[T any] struct {
	valor  T
	expira time.Time
}

// New cria um cache com o TTL informado.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl, itens: make(map[string]entrada[T])}
}

// Get retorna o valor da chave, se presente e ainda válido.
func (c *Cache[T]) Get(chave string) (T, bool) {
	c.mu.RLock()
	e, ok := c.itens[chave]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expira) {
		var zero T
		return zero, false
	}
	return e.valor, true
}

// Set grava o valor na chave, renovando a expiração.
func (c *Cache[T]) Set(chave string, valor T) {
	c.mu.Lock()
	c.itens[chave] = entrada[T]{valor: valor, expira: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate remove a chave.
func (c *Cache[T]) Invalidate(chave string) {
	c.mu.Lock()
	delete(c.itens, chave)
	c.mu.Unlock()
}

// InvalidateAll descarta todas as entradas.
func (c *Cache[T]) InvalidateAll() {
	c.mu.Lock()
	c.itens = make(map[string]entrada[T])
	c.mu.Unlock()
}
