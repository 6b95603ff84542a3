package repository

// Factory exposes the repositories backed by one store.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Menus() MenuRepository
	Categories() CategoryRepository
}
