package firestore

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
)

// Firestore is the Firestore-backed repository. Single-document writes are
// atomic at the store layer, which is what the upsert contract relies on.
type Firestore struct {
	client *firestore.Client
	risk   *riskRepository

	mu        sync.RWMutex
	observers []interfaces.MutationObserver
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes collection names, used to isolate test runs
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.risk.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client: client,
	}
	f.risk = newRiskRepository(client, f.notify)

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) RegisterObserver(observer interfaces.MutationObserver) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, observer)
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) notify(ctx context.Context) {
	f.mu.RLock()
	observers := make([]interfaces.MutationObserver, len(f.observers))
	copy(observers, f.observers)
	f.mu.RUnlock()

	for _, observer := range observers {
		observer.OnMutation(ctx)
	}
}
