package inmemorystore

import (
	"context"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/lumengive/stellar-sdk/types"
)

const eventChannelSize = 128

type txStore struct {
	txs     map[string]types.Transaction
	maxTxs  int
	lock    *sync.Mutex
	eventCh chan types.Event
}

// NewTransactionStore keeps at most maxTxs records, evicting the oldest
// first. A non-positive maxTxs disables eviction.
func NewTransactionStore(maxTxs int) (types.TransactionStore, error) {
	return &txStore{
		txs:     make(map[string]types.Transaction),
		maxTxs:  maxTxs,
		lock:    &sync.Mutex{},
		eventCh: make(chan types.Event, eventChannelSize),
	}, nil
}

func (s *txStore) AddTransaction(_ context.Context, tx types.Transaction) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.txs[tx.ID] = tx
	s.evict()
	s.sendEvent(types.Event{Type: types.EventTransactionUpdated, Tx: &tx})
	return nil
}

func (s *txStore) UpdateTransaction(_ context.Context, tx types.Transaction) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	// Unknown ids are ignored so an evicted record is not resurrected.
	if _, ok := s.txs[tx.ID]; !ok {
		return nil
	}
	s.txs[tx.ID] = tx
	s.sendEvent(types.Event{Type: types.EventTransactionUpdated, Tx: &tx})
	return nil
}

func (s *txStore) GetTransaction(
	_ context.Context, id string,
) (*types.Transaction, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	tx, ok := s.txs[id]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

func (s *txStore) GetAllTransactions(
	_ context.Context,
) ([]types.Transaction, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	txs := make([]types.Transaction, 0, len(s.txs))
	for _, tx := range s.txs {
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	return txs, nil
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

func (s *txStore) evict() {
	if s.maxTxs <= 0 || len(s.txs) <= s.maxTxs {
		return
	}

	txs := make([]types.Transaction, 0, len(s.txs))
	for _, tx := range s.txs {
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.Before(txs[j].CreatedAt)
	})
	for _, tx := range txs[:len(txs)-s.maxTxs] {
		delete(s.txs, tx.ID)
	}
}
