package stock_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-core/internal/application/stock"
	"github.com/jhoicas/stock-core/internal/domain"
	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Base de datos en memoria para los tests de casos de uso.
//
// Reproduce el contrato de los repositorios Postgres: unicidad de nombres y
// del par (bodega, producto), filtrado por bodegas activas en las lecturas,
// denormalización de sku/tipo, y (nil, nil) para ausencias.
// ──────────────────────────────────────────────────────────────────────────────

type touchCall struct {
	ItemType string
	ItemID   int
}

type memDB struct {
	stocks        []*entity.Stock
	stockStores   map[int][]int // id bodega -> ids tienda
	stores        []*entity.Store
	products      []*entity.ProductConcrete
	abstracts     []*entity.ProductAbstract
	stockProducts []*entity.StockProduct
	touches       []touchCall
	nextID        int
}

func newMemDB() *memDB {
	return &memDB{stockStores: map[int][]int{}, nextID: 1}
}

func (db *memDB) id() int {
	id := db.nextID
	db.nextID++
	return id
}

// clone copia profunda del estado; la usa el TxRunner falso para simular
// rollback restaurando el snapshot.
func (db *memDB) clone() *memDB {
	c := &memDB{stockStores: map[int][]int{}, nextID: db.nextID}
	for _, s := range db.stocks {
		cp := *s
		cp.StoreNames = append([]string{}, s.StoreNames...)
		c.stocks = append(c.stocks, &cp)
	}
	for id, storeIDs := range db.stockStores {
		c.stockStores[id] = append([]int{}, storeIDs...)
	}
	for _, s := range db.stores {
		cp := *s
		c.stores = append(c.stores, &cp)
	}
	for _, p := range db.products {
		cp := *p
		c.products = append(c.products, &cp)
	}
	for _, a := range db.abstracts {
		cp := *a
		c.abstracts = append(c.abstracts, &cp)
	}
	for _, sp := range db.stockProducts {
		cp := *sp
		c.stockProducts = append(c.stockProducts, &cp)
	}
	c.touches = append([]touchCall{}, db.touches...)
	return c
}

func (db *memDB) restore(snap *memDB) {
	*db = *snap
}

// ── Seeds ────────────────────────────────────────────────────────────────────

func (db *memDB) seedStore(t *testing.T, name string) int {
	t.Helper()
	s := &entity.Store{ID: db.id(), Name: name}
	db.stores = append(db.stores, s)
	return s.ID
}

func (db *memDB) seedStock(t *testing.T, name string, active bool, storeNames ...string) int {
	t.Helper()
	s := &entity.Stock{ID: db.id(), UUID: fmt.Sprintf("uuid-%s", name), Name: name, IsActive: active}
	db.stocks = append(db.stocks, s)
	for _, storeName := range storeNames {
		store := db.storeByName(storeName)
		if store == nil {
			t.Fatalf("tienda %q no sembrada", storeName)
		}
		db.stockStores[s.ID] = append(db.stockStores[s.ID], store.ID)
	}
	return s.ID
}

func (db *memDB) seedProduct(t *testing.T, sku, abstractSku string) int {
	t.Helper()
	abstract := db.abstractBySku(abstractSku)
	if abstract == nil {
		abstract = &entity.ProductAbstract{ID: db.id(), SKU: abstractSku}
		db.abstracts = append(db.abstracts, abstract)
	}
	p := &entity.ProductConcrete{ID: db.id(), AbstractID: abstract.ID, SKU: sku}
	db.products = append(db.products, p)
	return p.ID
}

func (db *memDB) seedStockProduct(t *testing.T, stockName, sku string, quantity decimal.NullDecimal, neverOut bool) int {
	t.Helper()
	s := db.stockByName(stockName)
	if s == nil {
		t.Fatalf("bodega %q no sembrada", stockName)
	}
	p := db.productBySku(sku)
	if p == nil {
		t.Fatalf("producto %q no sembrado", sku)
	}
	sp := &entity.StockProduct{
		ID:                db.id(),
		StockID:           s.ID,
		ProductID:         p.ID,
		Quantity:          quantity,
		IsNeverOutOfStock: neverOut,
	}
	db.stockProducts = append(db.stockProducts, sp)
	return sp.ID
}

// ── Helpers de consulta internos ─────────────────────────────────────────────

func (db *memDB) stockByID(id int) *entity.Stock {
	for _, s := range db.stocks {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (db *memDB) stockByName(name string) *entity.Stock {
	for _, s := range db.stocks {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (db *memDB) storeByName(name string) *entity.Store {
	for _, s := range db.stores {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (db *memDB) storeByID(id int) *entity.Store {
	for _, s := range db.stores {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (db *memDB) productBySku(sku string) *entity.ProductConcrete {
	for _, p := range db.products {
		if p.SKU == sku {
			return p
		}
	}
	return nil
}

func (db *memDB) productByID(id int) *entity.ProductConcrete {
	for _, p := range db.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (db *memDB) abstractBySku(sku string) *entity.ProductAbstract {
	for _, a := range db.abstracts {
		if a.SKU == sku {
			return a
		}
	}
	return nil
}

func (db *memDB) storeNamesFor(stockID int) []string {
	names := []string{}
	for _, storeID := range db.stockStores[stockID] {
		if store := db.storeByID(storeID); store != nil {
			names = append(names, store.Name)
		}
	}
	return names
}

func (db *memDB) stockRelatedToStore(stockID int, storeName string) bool {
	for _, name := range db.storeNamesFor(stockID) {
		if name == storeName {
			return true
		}
	}
	return false
}

// denorm devuelve una copia de la fila con sku y tipo de bodega llenados,
// como hacen las consultas con join.
func (db *memDB) denorm(sp *entity.StockProduct) *entity.StockProduct {
	cp := *sp
	if p := db.productByID(sp.ProductID); p != nil {
		cp.SKU = p.SKU
	}
	if s := db.stockByID(sp.StockID); s != nil {
		cp.StockType = s.Name
	}
	return &cp
}

// ──────────────────────────────────────────────────────────────────────────────
// Implementaciones falsas de los puertos de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct{ db *memDB }

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Create(s *entity.Stock) error {
	if r.db.stockByName(s.Name) != nil {
		return domain.ErrDuplicate
	}
	cp := *s
	cp.ID = r.db.id()
	cp.StoreNames = nil
	r.db.stocks = append(r.db.stocks, &cp)
	s.ID = cp.ID
	return nil
}

func (r *fakeStockRepo) Update(s *entity.Stock) error {
	existing := r.db.stockByID(s.ID)
	if existing == nil {
		return domain.ErrStockTypeUnknown
	}
	existing.Name = s.Name
	existing.IsActive = s.IsActive
	return nil
}

func (r *fakeStockRepo) FindByID(id int) (*entity.Stock, error) {
	s := r.db.stockByID(id)
	if s == nil {
		return nil, nil
	}
	cp := *s
	cp.StoreNames = r.db.storeNamesFor(s.ID)
	return &cp, nil
}

func (r *fakeStockRepo) FindByName(name string) (*entity.Stock, error) {
	s := r.db.stockByName(name)
	if s == nil {
		return nil, nil
	}
	cp := *s
	cp.StoreNames = r.db.storeNamesFor(s.ID)
	return &cp, nil
}

func (r *fakeStockRepo) FindOrCreateByName(name string) (*entity.Stock, error) {
	if s, _ := r.FindByName(name); s != nil {
		return s, nil
	}
	s := &entity.Stock{Name: name, IsActive: true, UUID: fmt.Sprintf("uuid-%s", name)}
	if err := r.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *fakeStockRepo) GetActiveStockNames() ([]string, error) {
	var names []string
	for _, s := range r.db.stocks {
		if s.IsActive {
			names = append(names, s.Name)
		}
	}
	return names, nil
}

func (r *fakeStockRepo) GetActiveStockNamesForStore(storeName string) ([]string, error) {
	var names []string
	for _, s := range r.db.stocks {
		if s.IsActive && r.db.stockRelatedToStore(s.ID, storeName) {
			names = append(names, s.Name)
		}
	}
	return names, nil
}

func (r *fakeStockRepo) GetStocksWithStores(onlyActive bool) ([]*entity.Stock, error) {
	var result []*entity.Stock
	for _, s := range r.db.stocks {
		if onlyActive && !s.IsActive {
			continue
		}
		cp := *s
		cp.StoreNames = r.db.storeNamesFor(s.ID)
		result = append(result, &cp)
	}
	return result, nil
}

func (r *fakeStockRepo) StoreIDsForStock(stockID int) ([]int, error) {
	return append([]int{}, r.db.stockStores[stockID]...), nil
}

func (r *fakeStockRepo) AddStoreRelations(stockID int, storeIDs []int) error {
	for _, storeID := range storeIDs {
		already := false
		for _, existing := range r.db.stockStores[stockID] {
			if existing == storeID {
				already = true
				break
			}
		}
		if !already {
			r.db.stockStores[stockID] = append(r.db.stockStores[stockID], storeID)
		}
	}
	return nil
}

func (r *fakeStockRepo) RemoveStoreRelations(stockID int, storeIDs []int) error {
	remove := make(map[int]struct{}, len(storeIDs))
	for _, id := range storeIDs {
		remove[id] = struct{}{}
	}
	var kept []int
	for _, existing := range r.db.stockStores[stockID] {
		if _, ok := remove[existing]; !ok {
			kept = append(kept, existing)
		}
	}
	r.db.stockStores[stockID] = kept
	return nil
}

type fakeStockProductRepo struct{ db *memDB }

var _ repository.StockProductRepository = (*fakeStockProductRepo)(nil)

func (r *fakeStockProductRepo) Create(sp *entity.StockProduct) error {
	for _, existing := range r.db.stockProducts {
		if existing.StockID == sp.StockID && existing.ProductID == sp.ProductID {
			return domain.ErrDuplicate
		}
	}
	cp := *sp
	cp.ID = r.db.id()
	r.db.stockProducts = append(r.db.stockProducts, &cp)
	sp.ID = cp.ID
	return nil
}

func (r *fakeStockProductRepo) Update(sp *entity.StockProduct) error {
	for _, existing := range r.db.stockProducts {
		if existing.ID == sp.ID {
			existing.StockID = sp.StockID
			existing.ProductID = sp.ProductID
			existing.Quantity = sp.Quantity
			existing.IsNeverOutOfStock = sp.IsNeverOutOfStock
			return nil
		}
	}
	return domain.ErrStockProductNotFound
}

func (r *fakeStockProductRepo) FindByID(id int) (*entity.StockProduct, error) {
	for _, sp := range r.db.stockProducts {
		if sp.ID == id {
			return r.db.denorm(sp), nil
		}
	}
	return nil, nil
}

func (r *fakeStockProductRepo) FindByStockAndProduct(stockID, productID int) (*entity.StockProduct, error) {
	for _, sp := range r.db.stockProducts {
		if sp.StockID == stockID && sp.ProductID == productID {
			return r.db.denorm(sp), nil
		}
	}
	return nil, nil
}

func (r *fakeStockProductRepo) FindOrCreateByStockAndProduct(stockID, productID int) (*entity.StockProduct, error) {
	if sp, _ := r.FindByStockAndProduct(stockID, productID); sp != nil {
		return sp, nil
	}
	sp := &entity.StockProduct{
		StockID:   stockID,
		ProductID: productID,
		Quantity:  decimal.NewNullDecimal(decimal.Zero),
	}
	if err := r.Create(sp); err != nil {
		return nil, err
	}
	return r.db.denorm(sp), nil
}

func (r *fakeStockProductRepo) ExistsByStockAndProduct(stockID, productID int) (bool, error) {
	sp, _ := r.FindByStockAndProduct(stockID, productID)
	return sp != nil, nil
}

func (r *fakeStockProductRepo) GetByProductID(productID int) ([]*entity.StockProduct, error) {
	var rows []*entity.StockProduct
	for _, sp := range r.db.stockProducts {
		s := r.db.stockByID(sp.StockID)
		if sp.ProductID == productID && s != nil && s.IsActive {
			rows = append(rows, r.db.denorm(sp))
		}
	}
	return rows, nil
}

func (r *fakeStockProductRepo) GetByProductIDForStore(productID int, storeName string) ([]*entity.StockProduct, error) {
	var rows []*entity.StockProduct
	for _, sp := range r.db.stockProducts {
		s := r.db.stockByID(sp.StockID)
		if sp.ProductID == productID && s != nil && s.IsActive && r.db.stockRelatedToStore(s.ID, storeName) {
			rows = append(rows, r.db.denorm(sp))
		}
	}
	return rows, nil
}

func (r *fakeStockProductRepo) GetByConcreteSku(sku string) ([]*entity.StockProduct, error) {
	p := r.db.productBySku(sku)
	if p == nil {
		return nil, nil
	}
	return r.GetByProductID(p.ID)
}

func (r *fakeStockProductRepo) GetByConcreteSkuForStore(sku, storeName string) ([]*entity.StockProduct, error) {
	p := r.db.productBySku(sku)
	if p == nil {
		return nil, nil
	}
	return r.GetByProductIDForStore(p.ID, storeName)
}

func (r *fakeStockProductRepo) GetByAbstractSkuForStore(abstractSku, storeName string) ([]*entity.StockProduct, error) {
	abstract := r.db.abstractBySku(abstractSku)
	if abstract == nil {
		return nil, nil
	}
	var rows []*entity.StockProduct
	for _, p := range r.db.products {
		if p.AbstractID != abstract.ID {
			continue
		}
		forProduct, _ := r.GetByProductIDForStore(p.ID, storeName)
		rows = append(rows, forProduct...)
	}
	return rows, nil
}

func (r *fakeStockProductRepo) GetStoreNamesWhereProductStockIsDefined(sku string) ([]string, error) {
	p := r.db.productBySku(sku)
	if p == nil {
		return nil, nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, sp := range r.db.stockProducts {
		if sp.ProductID != p.ID {
			continue
		}
		s := r.db.stockByID(sp.StockID)
		if s == nil || !s.IsActive {
			continue
		}
		for _, storeName := range r.db.storeNamesFor(s.ID) {
			if _, ok := seen[storeName]; !ok {
				seen[storeName] = struct{}{}
				names = append(names, storeName)
			}
		}
	}
	return names, nil
}

type fakeProductRepo struct{ db *memDB }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) FindConcreteBySku(sku string) (*entity.ProductConcrete, error) {
	p := r.db.productBySku(sku)
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindAbstractBySku(sku string) (*entity.ProductAbstract, error) {
	a := r.db.abstractBySku(sku)
	if a == nil {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

type fakeStoreRepo struct{ db *memDB }

var _ repository.StoreRepository = (*fakeStoreRepo)(nil)

func (r *fakeStoreRepo) FindByName(name string) (*entity.Store, error) {
	s := r.db.storeByName(name)
	if s == nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoreRepo) GetIDsByNames(names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		s := r.db.storeByName(name)
		if s == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, name)
		}
		ids = append(ids, s.ID)
	}
	return ids, nil
}

type fakeTouchRepo struct{ db *memDB }

var _ repository.TouchRepository = (*fakeTouchRepo)(nil)

func (r *fakeTouchRepo) TouchActive(itemType string, itemID int) error {
	r.db.touches = append(r.db.touches, touchCall{ItemType: itemType, ItemID: itemID})
	return nil
}

// fakeTxRunner ejecuta fn sobre el estado en memoria; si fn falla restaura el
// snapshot previo, simulando el rollback (toques incluidos).
type fakeTxRunner struct{ db *memDB }

var _ stock.TxRunner = (*fakeTxRunner)(nil)

func (tr *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	stockProductRepo repository.StockProductRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	touchRepo repository.TouchRepository,
) error) error {
	snap := tr.db.clone()
	err := fn(
		&fakeStockRepo{db: tr.db},
		&fakeStockProductRepo{db: tr.db},
		&fakeProductRepo{db: tr.db},
		&fakeStoreRepo{db: tr.db},
		&fakeTouchRepo{db: tr.db},
	)
	if err != nil {
		tr.db.restore(snap)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Hooks de prueba
// ──────────────────────────────────────────────────────────────────────────────

type recordingUpdateHandler struct {
	name string
	log  *[]string
	err  error
}

func (h *recordingUpdateHandler) HandleStockUpdate(sku string) error {
	*h.log = append(*h.log, h.name+":"+sku)
	return h.err
}

type recordingCreateHook struct {
	log *[]string
	err error
}

func (h *recordingCreateHook) AfterStockCreate(s *entity.Stock) error {
	*h.log = append(*h.log, "create:"+s.Name)
	return h.err
}

type recordingUpdateHook struct {
	log *[]string
	err error
}

func (h *recordingUpdateHook) AfterStockUpdate(s *entity.Stock) error {
	*h.log = append(*h.log, "update:"+s.Name)
	return h.err
}

type suffixExpander struct{ suffix string }

func (e *suffixExpander) ExpandStockCollection(stocks []*entity.Stock) ([]*entity.Stock, error) {
	for _, s := range stocks {
		s.Name = s.Name + e.suffix
	}
	return stocks, nil
}

// ── Helpers varios ───────────────────────────────────────────────────────────

func qty(t *testing.T, s string) decimal.NullDecimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("cantidad inválida %q: %v", s, err)
	}
	return decimal.NewNullDecimal(d)
}

func nullQty() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

// newEnv arma los casos de uso sobre una memDB fresca.
type env struct {
	db            *memDB
	reader        *stock.Reader
	productReader *stock.ProductReader
	calculator    *stock.Calculator
	writer        *stock.Writer
	creator       *stock.Creator
	updater       *stock.Updater
}

func newEnv(db *memDB) *env {
	stockRepo := &fakeStockRepo{db: db}
	stockProductRepo := &fakeStockProductRepo{db: db}
	productRepo := &fakeProductRepo{db: db}
	tx := &fakeTxRunner{db: db}
	productReader := stock.NewProductReader(stockRepo, stockProductRepo, productRepo)
	return &env{
		db:            db,
		reader:        stock.NewReader(stockRepo, stockProductRepo, nil),
		productReader: productReader,
		calculator:    stock.NewCalculator(productReader),
		writer:        stock.NewWriter(tx, productReader, nil),
		creator:       stock.NewCreator(tx, nil),
		updater:       stock.NewUpdater(tx, nil),
	}
}
