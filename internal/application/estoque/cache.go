package estoque

import (
	"sort"
	"sync"

	"github.com/jhoicas/Estoque-sync/internal/domain/entity"
	"github.com/jhoicas/Estoque-sync/internal/domain/stock"
)

// Outcome resultado de un ingest.
type Outcome int

const (
	Unchanged Outcome = iota
	Changed
)

func (o Outcome) String() string {
	if o == Changed {
		return "changed"
	}
	return "unchanged"
}

// Cache dueño exclusivo de la colección de produtos en memoria. Solo Ingest y
// Replace escriben; el resto del sistema lee copias.
type Cache struct {
	mu          sync.RWMutex
	products    []entity.Product
	byID        map[string]int
	brands      []string
	fingerprint string
}

// NewCache cache vacía con fingerprint centinela: el primer ingest siempre es Changed.
func NewCache() *Cache {
	return &Cache{fingerprint: stock.EmptyFingerprint, byID: map[string]int{}}
}

// Ingest compara el fingerprint de list (en el orden recibido) con el guardado y
// solo reemplaza el estado cuando difiere.
func (c *Cache) Ingest(list []entity.Product) Outcome {
	fp := stock.Fingerprint(list)

	c.mu.Lock()
	defer c.mu.Unlock()
	if fp == c.fingerprint {
		return Unchanged
	}
	c.install(list, fp)
	return Changed
}

// Replace instala list aunque el fingerprint coincida. Lo usan las escrituras
// propias, cuyo resultado puede cambiar campos que el fingerprint no cubre
// (marca, descricao). Unchanged solo si el contenido es idéntico.
func (c *Cache) Replace(list []entity.Product) Outcome {
	fp := stock.Fingerprint(list)

	c.mu.Lock()
	defer c.mu.Unlock()
	if fp == c.fingerprint && sameProducts(c.products, list) {
		return Unchanged
	}
	c.install(list, fp)
	return Changed
}

// install requiere mu.
func (c *Cache) install(list []entity.Product, fp string) {
	c.products = append([]entity.Product(nil), list...)
	c.byID = make(map[string]int, len(list))
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	c.brands = distinctBrands(c.products)
	c.fingerprint = fp
}

// Reconcile sustituye un produto por la versión confirmada por el servidor.
// Un produto desconocido se agrega al final.
func (c *Cache) Reconcile(p entity.Product) Outcome {
	c.mu.RLock()
	next := append([]entity.Product(nil), c.products...)
	i, ok := c.byID[p.ID]
	c.mu.RUnlock()

	if ok {
		next[i] = p
	} else {
		next = append(next, p)
	}
	return c.Replace(next)
}

// SetQuantidade aplica el saldo devuelto por un movimento sin tocar el resto
// del registro en cache.
func (c *Cache) SetQuantidade(id string, quantidade int) Outcome {
	c.mu.RLock()
	i, ok := c.byID[id]
	if !ok {
		c.mu.RUnlock()
		return Unchanged
	}
	next := append([]entity.Product(nil), c.products...)
	c.mu.RUnlock()

	next[i].Quantidade = quantidade
	return c.Replace(next)
}

// Remove quita un produto (tras un DELETE exitoso).
func (c *Cache) Remove(id string) Outcome {
	c.mu.RLock()
	i, ok := c.byID[id]
	if !ok {
		c.mu.RUnlock()
		return Unchanged
	}
	next := make([]entity.Product, 0, len(c.products)-1)
	next = append(next, c.products[:i]...)
	next = append(next, c.products[i+1:]...)
	c.mu.RUnlock()
	return c.Replace(next)
}

// Products copia de la colección actual.
func (c *Cache) Products() []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.Product(nil), c.products...)
}

// FindByID busca por id.
func (c *Cache) FindByID(id string) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return entity.Product{}, false
	}
	return c.products[i], true
}

// Brands marcas distintas ordenadas.
func (c *Cache) Brands() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.brands...)
}

// Fingerprint último fingerprint aplicado.
func (c *Cache) Fingerprint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fingerprint
}

func distinctBrands(products []entity.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Marca]; ok {
			continue
		}
		seen[p.Marca] = struct{}{}
		out = append(out, p.Marca)
	}
	sort.Strings(out)
	return out
}

func sameProducts(a, b []entity.Product) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameProduct(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameProduct(a, b entity.Product) bool {
	return a.ID == b.ID &&
		a.Codigo == b.Codigo &&
		a.CodigoFornecedor == b.CodigoFornecedor &&
		a.NCM == b.NCM &&
		a.Marca == b.Marca &&
		a.Descricao == b.Descricao &&
		a.Unidade == b.Unidade &&
		a.Quantidade == b.Quantidade &&
		a.ValorUnitario.Equal(b.ValorUnitario)
}
