package kvstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/lumengive/stellar-sdk/types"
)

const (
	transactionStoreDir = "transactions"
	eventChannelSize    = 128
)

type txStore struct {
	db      *badgerhold.Store
	maxTxs  int
	lock    *sync.Mutex
	eventCh chan types.Event
}

func NewTransactionStore(
	dir string, logger badger.Logger, maxTxs int,
) (types.TransactionStore, error) {
	if len(dir) > 0 {
		dir = filepath.Join(dir, transactionStoreDir)
	}
	badgerDb, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction store: %s", err)
	}
	return &txStore{
		db:      badgerDb,
		maxTxs:  maxTxs,
		lock:    &sync.Mutex{},
		eventCh: make(chan types.Event, eventChannelSize),
	}, nil
}

func (s *txStore) AddTransaction(_ context.Context, tx types.Transaction) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.db.Insert(tx.ID, &tx); err != nil {
		return err
	}
	if err := s.evict(); err != nil {
		return err
	}
	s.sendEvent(types.Event{Type: types.EventTransactionUpdated, Tx: &tx})
	return nil
}

func (s *txStore) UpdateTransaction(_ context.Context, tx types.Transaction) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	// Unknown ids are ignored so an evicted record is not resurrected.
	if err := s.db.Update(tx.ID, &tx); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return err
	}
	s.sendEvent(types.Event{Type: types.EventTransactionUpdated, Tx: &tx})
	return nil
}

func (s *txStore) GetTransaction(
	_ context.Context, id string,
) (*types.Transaction, error) {
	var tx types.Transaction
	if err := s.db.Get(id, &tx); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

func (s *txStore) GetAllTransactions(
	_ context.Context,
) ([]types.Transaction, error) {
	var txs []types.Transaction
	err := s.db.Find(&txs, nil)

	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	return txs, err
}

func (s *txStore) GetEventChannel() chan types.Event {
	return s.eventCh
}

func (s *txStore) NotifyConnectionState(state types.ConnectionState) {
	s.lock.Lock()
	defer s.lock.Unlock()

	eventType := types.EventDisconnected
	if state == types.ConnectionConnected {
		eventType = types.EventConnected
	}
	s.sendEvent(types.Event{Type: eventType, State: state})
}

func (s *txStore) Close() {
	if err := s.db.Close(); err != nil {
		log.Debugf("error on closing transactions db: %s", err)
	}
	close(s.eventCh)
}

// sendEvent must be called with the lock held so events are delivered in
// the order the transitions happened.
func (s *txStore) sendEvent(event types.Event) {
	select {
	case s.eventCh <- event:
	default:
		log.Warnf("dropped %s event, channel is full", event.Type)
	}
}

func (s *txStore) evict() error {
	if s.maxTxs <= 0 {
		return nil
	}

	var txs []types.Transaction
	if err := s.db.Find(&txs, nil); err != nil {
		return err
	}
	if len(txs) <= s.maxTxs {
		return nil
	}

	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.Before(txs[j].CreatedAt)
	})
	for _, tx := range txs[:len(txs)-s.maxTxs] {
		if err := s.db.Delete(tx.ID, &types.Transaction{}); err != nil {
			return err
		}
	}
	return nil
}
