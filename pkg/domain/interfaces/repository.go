package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Risk() RiskRepository

	// RegisterObserver adds a mutation observer. Registration is explicit;
	// observers are invoked synchronously after every successful commit.
	RegisterObserver(observer MutationObserver)

	Close() error
}
