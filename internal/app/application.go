// Package app wires the chaingate services together.
package app

import (
	"errors"

	"github.com/chaingate-io/chaingate/internal/cache"
	cachemem "github.com/chaingate-io/chaingate/internal/cache/memory"
	"github.com/chaingate-io/chaingate/internal/chain"
	"github.com/chaingate-io/chaingate/internal/qos"
	"github.com/chaingate-io/chaingate/internal/services/data"
	"github.com/chaingate-io/chaingate/internal/services/transactions"
	"github.com/chaingate-io/chaingate/internal/storage"
	storagemem "github.com/chaingate-io/chaingate/internal/storage/memory"
	"github.com/chaingate-io/chaingate/pkg/logger"
)

// Deps encapsulates external collaborators. Nil Cache and Store default
// to the in-memory implementations; the Gateway has no safe default and
// is required.
type Deps struct {
	Cache   cache.Cache
	Store   storage.ObjectStore
	Gateway chain.Gateway
	Log     *logger.Logger
}

// Application ties the domain services together.
type Application struct {
	Data         *data.Service
	Transactions *transactions.Service
	QoS          *qos.Recorder
}

// New builds a fully initialised application with the provided
// dependencies.
func New(deps Deps) (*Application, error) {
	if deps.Gateway == nil {
		return nil, errors.New("ledger gateway is required")
	}
	if deps.Log == nil {
		deps.Log = logger.NewDefault("app")
	}
	if deps.Cache == nil {
		deps.Cache = cachemem.New()
	}
	if deps.Store == nil {
		deps.Store = storagemem.New()
	}

	return &Application{
		Data:         data.New(deps.Cache, deps.Store, deps.Log.WithField("service", "data")),
		Transactions: transactions.New(deps.Gateway, deps.Store, deps.Log.WithField("service", "transactions")),
		QoS:          qos.NewRecorder(),
	}, nil
}
