// Package memstore keeps in-memory implementations of the core stores. They
// back the service tests and the throwaway local mode, where spinning up a
// mysql instance is not worth it. Every method copies records in and out so
// callers never alias store-owned state.
package memstore

import (
	"context"
	"sort"
	"sync"

	"fractional/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

// AssetStore in-memory core.IAssetStore
type AssetStore struct {
	mu     sync.Mutex
	nextID uint64
	assets map[string]*core.Asset
}

// NewAssetStore new in-memory asset store
func NewAssetStore() *AssetStore {
	return &AssetStore{assets: map[string]*core.Asset{}}
}

func (s *AssetStore) Create(ctx context.Context, tx *db.DB, asset *core.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	asset.ID = s.nextID
	dup := *asset
	s.assets[asset.TokenID] = &dup
	return nil
}

func (s *AssetStore) Find(ctx context.Context, tokenID string) (*core.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[tokenID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	dup := *asset
	return &dup, nil
}

func (s *AssetStore) All(ctx context.Context) ([]*core.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assets := make([]*core.Asset, 0, len(s.assets))
	for _, asset := range s.assets {
		dup := *asset
		assets = append(assets, &dup)
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

func (s *AssetStore) Update(ctx context.Context, tx *db.DB, asset *core.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset.Version++
	dup := *asset
	s.assets[asset.TokenID] = &dup
	return nil
}

// ProtocolStore in-memory core.IProtocolStore
type ProtocolStore struct {
	mu        sync.Mutex
	nextID    uint64
	protocols map[string]*core.Protocol
}

// NewProtocolStore new in-memory protocol store
func NewProtocolStore() *ProtocolStore {
	return &ProtocolStore{protocols: map[string]*core.Protocol{}}
}

func (s *ProtocolStore) Create(ctx context.Context, tx *db.DB, protocol *core.Protocol) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	protocol.ID = s.nextID
	dup := *protocol
	s.protocols[protocol.TokenID] = &dup
	return nil
}

func (s *ProtocolStore) Find(ctx context.Context, id uint64) (*core.Protocol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, protocol := range s.protocols {
		if protocol.ID == id {
			dup := *protocol
			return &dup, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func (s *ProtocolStore) FindByToken(ctx context.Context, tokenID string) (*core.Protocol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	protocol, ok := s.protocols[tokenID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	dup := *protocol
	return &dup, nil
}

func (s *ProtocolStore) All(ctx context.Context) ([]*core.Protocol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	protocols := make([]*core.Protocol, 0, len(s.protocols))
	for _, protocol := range s.protocols {
		dup := *protocol
		protocols = append(protocols, &dup)
	}

	sort.Slice(protocols, func(i, j int) bool { return protocols[i].ID < protocols[j].ID })
	return protocols, nil
}

type positionKey struct {
	protocolID uint64
	userID     string
}

// PositionStore in-memory core.IPositionStore
type PositionStore struct {
	mu        sync.Mutex
	nextID    uint64
	positions map[positionKey]*core.Position
}

// NewPositionStore new in-memory position store
func NewPositionStore() *PositionStore {
	return &PositionStore{positions: map[positionKey]*core.Position{}}
}

func (s *PositionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	position.ID = s.nextID
	dup := *position
	s.positions[positionKey{position.ProtocolID, position.UserID}] = &dup
	return nil
}

func (s *PositionStore) Find(ctx context.Context, protocolID uint64, userID string) (*core.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	position, ok := s.positions[positionKey{protocolID, userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	dup := *position
	return &dup, nil
}

func (s *PositionStore) FindByProtocol(ctx context.Context, protocolID uint64) ([]*core.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []*core.Position
	for key, position := range s.positions {
		if key.protocolID == protocolID {
			dup := *position
			positions = append(positions, &dup)
		}
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].ID < positions[j].ID })
	return positions, nil
}

func (s *PositionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []*core.Position
	for key, position := range s.positions {
		if key.userID == userID {
			dup := *position
			positions = append(positions, &dup)
		}
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].ID < positions[j].ID })
	return positions, nil
}

func (s *PositionStore) All(ctx context.Context) ([]*core.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []*core.Position
	for _, position := range s.positions {
		dup := *position
		positions = append(positions, &dup)
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].ID < positions[j].ID })
	return positions, nil
}

func (s *PositionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	position.Version++
	dup := *position
	s.positions[positionKey{position.ProtocolID, position.UserID}] = &dup
	return nil
}

// SaleStore in-memory core.ISaleStore
type SaleStore struct {
	mu     sync.Mutex
	nextID uint64
	sales  map[string]*core.Sale
}

// NewSaleStore new in-memory sale store
func NewSaleStore() *SaleStore {
	return &SaleStore{sales: map[string]*core.Sale{}}
}

func (s *SaleStore) Create(ctx context.Context, tx *db.DB, sale *core.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	sale.ID = s.nextID
	dup := *sale
	s.sales[sale.TokenID] = &dup
	return nil
}

func (s *SaleStore) Find(ctx context.Context, tokenID string) (*core.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.sales[tokenID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	dup := *sale
	return &dup, nil
}

func (s *SaleStore) FindByCreator(ctx context.Context, creator string) ([]*core.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sales []*core.Sale
	for _, sale := range s.sales {
		if sale.Creator == creator {
			dup := *sale
			sales = append(sales, &dup)
		}
	}

	sort.Slice(sales, func(i, j int) bool { return sales[i].ID < sales[j].ID })
	return sales, nil
}

func (s *SaleStore) Update(ctx context.Context, tx *db.DB, sale *core.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale.Version++
	dup := *sale
	s.sales[sale.TokenID] = &dup
	return nil
}

// AuditStore in-memory core.IAuditStore
type AuditStore struct {
	mu     sync.Mutex
	audits []*core.Audit
}

// NewAuditStore new in-memory audit store
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Append(ctx context.Context, tx *db.DB, audit *core.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	audit.ID = uint64(len(s.audits) + 1)
	dup := *audit
	s.audits = append(s.audits, &dup)
	return nil
}

func (s *AuditStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Audit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}

	var audits []*core.Audit
	for _, audit := range s.audits {
		if audit.ID > fromID {
			dup := *audit
			audits = append(audits, &dup)
		}
		if len(audits) >= limit {
			break
		}
	}
	return audits, nil
}

var _ core.IAssetStore = (*AssetStore)(nil)
var _ core.IProtocolStore = (*ProtocolStore)(nil)
var _ core.IPositionStore = (*PositionStore)(nil)
var _ core.ISaleStore = (*SaleStore)(nil)
var _ core.IAuditStore = (*AuditStore)(nil)
