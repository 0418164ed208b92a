package cart

import "primos.GO/core/kv"

// Service hands out carts bound to the shared kv store. Each storefront
// session gets its own storage key; the empty id maps to the legacy
// single-cart key.
type Service struct {
	store kv.Store
}

func NewService(store kv.Store) *Service {
	return &Service{store: store}
}

// Get loads the cart for a session id.
func (s *Service) Get(id string) *Cart {
	return Load(s.store, keyFor(id))
}

func keyFor(id string) string {
	if id == "" || id == "default" {
		return StorageKey
	}
	return StorageKey + ":" + id
}
