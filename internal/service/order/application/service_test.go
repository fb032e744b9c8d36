package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"

	"tably/internal/service/order/domain"
	"tably/internal/service/order/domain/port"
)

// ---- 手写 fakes，只覆盖测试用到的行为 ----

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) Save(ctx context.Context, order *domain.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByItemID(ctx context.Context, itemID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if _, ok := o.ItemByID(itemID); ok {
			return o, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (r *fakeOrderRepo) FindOpenByTable(ctx context.Context, tableID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.TableID == tableID && o.IsOpen() {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, tableID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if tableID == "" || o.TableID == tableID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLocker struct {
	acquired int
	released int
}

func (l *fakeLocker) Acquire(ctx context.Context, tableID string) (func(), error) {
	l.acquired++
	return func() { l.released++ }, nil
}

type fakeCatalog struct {
	products  map[string]*domain.Product
	modifiers map[string][]domain.ModifierSelection
}

func (c *fakeCatalog) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := c.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (c *fakeCatalog) ResolveModifiers(ctx context.Context, productID string, optionIDs []string) ([]domain.ModifierSelection, error) {
	if m, ok := c.modifiers[productID]; ok {
		return m, nil
	}
	return nil, domain.ErrModifierNotFound
}

type fakeTables struct {
	status   map[string]domain.TableStatus
	setCalls []struct {
		TableID string
		Status  domain.TableStatus
	}
}

func (t *fakeTables) Status(ctx context.Context, tableID string) (domain.TableStatus, error) {
	if s, ok := t.status[tableID]; ok {
		return s, nil
	}
	return "", domain.ErrTableNotFound
}

func (t *fakeTables) SetStatus(ctx context.Context, tableID string, status domain.TableStatus) error {
	t.status[tableID] = status
	t.setCalls = append(t.setCalls, struct {
		TableID string
		Status  domain.TableStatus
	}{tableID, status})
	return nil
}

type fakeVouchers struct {
	voucher    *domain.Voucher
	usageCalls int
}

func (v *fakeVouchers) FindByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	if v.voucher != nil && v.voucher.Code == code {
		return v.voucher, nil
	}
	return nil, domain.ErrVoucherNotFound
}

func (v *fakeVouchers) IncrementUsage(ctx context.Context, voucherID string) error {
	v.usageCalls++
	return nil
}

type fakeRules struct {
	pass  bool
	facts []port.VoucherFact
}

func (r *fakeRules) Evaluate(rule string, fact port.VoucherFact) (bool, error) {
	r.facts = append(r.facts, fact)
	return r.pass, nil
}

type fakeLoyalty struct {
	account  *domain.LoyaltyAccount
	debits   []int64
	credits  []int64
	debitErr error
}

func (l *fakeLoyalty) Account(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error) {
	if l.account != nil && l.account.CustomerID == customerID {
		return l.account, nil
	}
	return nil, domain.ErrNoLoyaltyAccount
}

func (l *fakeLoyalty) Debit(ctx context.Context, customerID string, points int64, orderID string) error {
	if l.debitErr != nil {
		return l.debitErr
	}
	l.debits = append(l.debits, points)
	return nil
}

func (l *fakeLoyalty) Credit(ctx context.Context, customerID string, points int64, orderID string) error {
	l.credits = append(l.credits, points)
	return nil
}

type fakeStock struct {
	debits map[string]int
	err    error
}

func (s *fakeStock) Debit(ctx context.Context, productID string, quantity int, orderID string) error {
	if s.err != nil {
		return s.err
	}
	if s.debits == nil {
		s.debits = make(map[string]int)
	}
	s.debits[productID] += quantity
	return nil
}

type fakePopularity struct {
	counts map[string]int
}

func (p *fakePopularity) Increment(ctx context.Context, productID string, delta int) error {
	if p.counts == nil {
		p.counts = make(map[string]int)
	}
	p.counts[productID] += delta
	return nil
}

type publishedEvent struct {
	Room  string
	Event string
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(ctx context.Context, room, event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{Room: room, Event: event})
}

func (p *fakePublisher) has(room, event string) bool {
	for _, e := range p.events {
		if e.Room == room && e.Event == event {
			return true
		}
	}
	return false
}

// ---- 组装 ----

type fixture struct {
	repo       *fakeOrderRepo
	locker     *fakeLocker
	catalog    *fakeCatalog
	tables     *fakeTables
	vouchers   *fakeVouchers
	rules      *fakeRules
	loyalty    *fakeLoyalty
	stock      *fakeStock
	popularity *fakePopularity
	publisher  *fakePublisher
	service    *OrderService
}

func newFixture() *fixture {
	f := &fixture{
		repo:   newFakeOrderRepo(),
		locker: &fakeLocker{},
		catalog: &fakeCatalog{
			products: map[string]*domain.Product{
				"p1": {ID: "p1", Name: "pad thai", BasePrice: 50000, Available: true},
				"p2": {ID: "p2", Name: "green curry", BasePrice: 30000, Available: true},
				"p3": {ID: "p3", Name: "off menu", BasePrice: 10000, Available: false},
			},
			modifiers: map[string][]domain.ModifierSelection{
				"p1": {{OptionID: "m1", Name: "extra spicy", Adjustment: 2000}},
			},
		},
		tables: &fakeTables{status: map[string]domain.TableStatus{
			"t1": domain.TableAvailable,
			"t9": domain.TableInactive,
		}},
		vouchers: &fakeVouchers{voucher: &domain.Voucher{
			ID:     "v1",
			Code:   "WELCOME10",
			Kind:   domain.DiscountPercent,
			Value:  10,
			Active: true,
		}},
		rules:      &fakeRules{pass: true},
		loyalty:    &fakeLoyalty{account: &domain.LoyaltyAccount{CustomerID: "c1", Balance: 500}},
		stock:      &fakeStock{},
		popularity: &fakePopularity{},
		publisher:  &fakePublisher{},
	}
	f.service = NewOrderService(
		f.repo, fakeTx{}, f.locker, otel.Tracer("test"),
		f.catalog, f.tables, f.vouchers, f.rules,
		f.loyalty, f.stock, f.popularity, f.publisher,
	)
	return f
}

func submitReq(tableID string, items ...SubmitItemRequest) *SubmitOrderRequest {
	return &SubmitOrderRequest{TableID: tableID, Items: items}
}

// ---- 下单 ----

func TestSubmitOrderCreatesPendingOrder(t *testing.T) {
	f := newFixture()

	order, err := f.service.SubmitOrder(context.Background(), submitReq("t1",
		SubmitItemRequest{ProductID: "p1", Quantity: 1},
		SubmitItemRequest{ProductID: "p2", Quantity: 2},
	))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("status = %s, want PENDING", order.Status)
	}
	if order.Subtotal != 110000 {
		t.Fatalf("subtotal = %d, want 110000", order.Subtotal)
	}
	if f.tables.status["t1"] != domain.TableOccupied {
		t.Fatalf("table status = %s, want OCCUPIED", f.tables.status["t1"])
	}
	if _, err := f.repo.FindByID(context.Background(), order.ID); err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if !f.publisher.has(domain.RoomWaiters, domain.EventNewOrder) {
		t.Fatal("new_order not published to waiters")
	}
	if f.locker.acquired != 1 || f.locker.released != 1 {
		t.Fatalf("lock acquired=%d released=%d, want 1/1", f.locker.acquired, f.locker.released)
	}
}

func TestSubmitOrderResolvesModifierPricing(t *testing.T) {
	f := newFixture()

	order, err := f.service.SubmitOrder(context.Background(), submitReq("t1",
		SubmitItemRequest{ProductID: "p1", Quantity: 2, ModifierOptionIDs: []string{"m1"}},
	))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.Items[0].UnitPrice != 52000 {
		t.Fatalf("unit price = %d, want 52000", order.Items[0].UnitPrice)
	}
	if order.Subtotal != 104000 {
		t.Fatalf("subtotal = %d, want 104000", order.Subtotal)
	}
}

func TestSubmitOrderValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.SubmitOrder(ctx, submitReq("t1")); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Errorf("empty items: err = %v, want ErrEmptyOrder", err)
	}
	if _, err := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 0})); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("zero quantity: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := f.service.SubmitOrder(ctx, submitReq("t9", SubmitItemRequest{ProductID: "p1", Quantity: 1})); !errors.Is(err, domain.ErrTableInactive) {
		t.Errorf("inactive table: err = %v, want ErrTableInactive", err)
	}
	if _, err := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p3", Quantity: 1})); !errors.Is(err, domain.ErrProductUnavailable) {
		t.Errorf("unavailable product: err = %v, want ErrProductUnavailable", err)
	}
	if _, err := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "nope", Quantity: 1})); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("unknown product: err = %v, want ErrProductNotFound", err)
	}
}

func TestSubmitOrderReleasesLockOnFailure(t *testing.T) {
	f := newFixture()

	_, err := f.service.SubmitOrder(context.Background(), submitReq("t9",
		SubmitItemRequest{ProductID: "p1", Quantity: 1},
	))
	if err == nil {
		t.Fatal("expected error")
	}
	if f.locker.released != f.locker.acquired {
		t.Fatalf("lock leaked: acquired=%d released=%d", f.locker.acquired, f.locker.released)
	}
}

func TestSubmitOrderMergesIntoOpenOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1}))
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := f.service.UpdateOrderStatus(ctx, first.ID, domain.StatusAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	f.publisher.events = nil

	second, err := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p2", Quantity: 1}))
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected merge into order %s, got new order %s", first.ID, second.ID)
	}
	if len(second.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(second.Items))
	}
	if second.Subtotal != 80000 {
		t.Fatalf("subtotal = %d, want 80000", second.Subtotal)
	}
	// 订单已过 PENDING，厨房需要知道追加的菜品
	if !f.publisher.has(domain.RoomKitchen, domain.EventOrderUpdated) {
		t.Fatal("order_updated not published to kitchen on merge")
	}
}

func TestSubmitOrderSkipsPointsOnMerge(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1})); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	req := submitReq("t1", SubmitItemRequest{ProductID: "p2", Quantity: 1})
	req.CustomerID = "c1"
	req.PointsToRedeem = 100
	order, err := f.service.SubmitOrder(ctx, req)
	if err != nil {
		t.Fatalf("merge submit: %v", err)
	}
	if len(f.loyalty.debits) != 0 {
		t.Fatalf("points must not be debited on merge, got %v", f.loyalty.debits)
	}
	if order.Discount.Kind != domain.DiscountNone {
		t.Fatalf("discount = %+v, want untouched NONE", order.Discount)
	}
}

// ---- 券与积分 ----

func TestSubmitOrderWithVoucher(t *testing.T) {
	f := newFixture()
	f.vouchers.voucher.EligibilityRule = "subtotal >= 40000"

	req := submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1})
	req.VoucherCode = "WELCOME10"
	order, err := f.service.SubmitOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.Discount.Kind != domain.DiscountPercent || order.Discount.Value != 10 {
		t.Fatalf("discount = %+v, want PERCENT 10", order.Discount)
	}
	if order.Payable() != 45000 {
		t.Fatalf("payable = %d, want 45000", order.Payable())
	}
	if f.vouchers.usageCalls != 1 {
		t.Fatalf("usage calls = %d, want 1", f.vouchers.usageCalls)
	}
	if len(f.rules.facts) != 1 || f.rules.facts[0].Subtotal != 50000 {
		t.Fatalf("rule engine facts = %+v", f.rules.facts)
	}
}

func TestSubmitOrderVoucherNotEligible(t *testing.T) {
	f := newFixture()
	f.vouchers.voucher.EligibilityRule = "subtotal >= 999999"
	f.rules.pass = false

	req := submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1})
	req.VoucherCode = "WELCOME10"
	if _, err := f.service.SubmitOrder(context.Background(), req); !errors.Is(err, domain.ErrVoucherNotEligible) {
		t.Fatalf("err = %v, want ErrVoucherNotEligible", err)
	}
	if f.vouchers.usageCalls != 0 {
		t.Fatal("usage must not be counted for rejected voucher")
	}
}

func TestSubmitOrderWithPoints(t *testing.T) {
	f := newFixture()

	req := submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1})
	req.CustomerID = "c1"
	req.PointsToRedeem = 300
	order, err := f.service.SubmitOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.Discount.Kind != domain.DiscountFixed || order.Discount.Value != 30000 {
		t.Fatalf("discount = %+v, want FIXED 30000", order.Discount)
	}
	if order.Payable() != 20000 {
		t.Fatalf("payable = %d, want 20000", order.Payable())
	}
	if len(f.loyalty.debits) != 1 || f.loyalty.debits[0] != 300 {
		t.Fatalf("debits = %v, want [300]", f.loyalty.debits)
	}
}

func TestSubmitOrderWithVoucherAndPointsCollapses(t *testing.T) {
	f := newFixture()

	req := submitReq("t1",
		SubmitItemRequest{ProductID: "p1", Quantity: 1},
		SubmitItemRequest{ProductID: "p2", Quantity: 1},
	)
	req.CustomerID = "c1"
	req.VoucherCode = "WELCOME10"
	req.PointsToRedeem = 100
	order, err := f.service.SubmitOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// 10% of 80000 + 10000 的积分抵扣，折叠为单一 FIXED
	if order.Discount.Kind != domain.DiscountFixed || order.Discount.Value != 18000 {
		t.Fatalf("discount = %+v, want FIXED 18000", order.Discount)
	}
	if order.Payable() != 62000 {
		t.Fatalf("payable = %d, want 62000", order.Payable())
	}
}

func TestSubmitOrderPointsValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1})
	req.CustomerID = "c1"
	req.PointsToRedeem = 150
	if _, err := f.service.SubmitOrder(ctx, req); !errors.Is(err, domain.ErrPointsNotMultiple) {
		t.Errorf("err = %v, want ErrPointsNotMultiple", err)
	}

	req.PointsToRedeem = 600 // 余额只有 500
	if _, err := f.service.SubmitOrder(ctx, req); !errors.Is(err, domain.ErrInsufficientPoints) {
		t.Errorf("err = %v, want ErrInsufficientPoints", err)
	}

	req.CustomerID = ""
	req.PointsToRedeem = 100
	if _, err := f.service.SubmitOrder(ctx, req); !errors.Is(err, domain.ErrNoLoyaltyAccount) {
		t.Errorf("err = %v, want ErrNoLoyaltyAccount", err)
	}
}

func TestSubmitOrderSurvivesPointsDebitFailure(t *testing.T) {
	f := newFixture()
	f.loyalty.debitErr = errors.New("ledger down")

	req := submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1})
	req.CustomerID = "c1"
	req.PointsToRedeem = 100
	order, err := f.service.SubmitOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("submit should not fail on post-commit debit: %v", err)
	}
	// 折扣保留，订单照常创建
	if order.Discount.Value != 10000 {
		t.Fatalf("discount = %+v, want FIXED 10000", order.Discount)
	}
	if _, err := f.repo.FindByID(context.Background(), order.ID); err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
}

// ---- 状态流转与级联 ----

func TestUpdateOrderStatusPublishesKitchenCard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, _ := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1}))
	f.publisher.events = nil

	if _, err := f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !f.publisher.has(domain.RoomKitchen, domain.EventOrderToKitchen) {
		t.Fatal("order_to_kitchen not published on accept")
	}
	if !f.publisher.has(domain.RoomWaiters, domain.EventOrderUpdated) {
		t.Fatal("order_updated not published to waiters")
	}
}

func TestUpdateOrderStatusRejectsIllegalMove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, _ := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1}))
	if _, err := f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusRejected); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if _, err := f.service.UpdateOrderStatus(ctx, order.ID, "SHIPPED"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("unknown status: err = %v, want ErrInvalidTransition", err)
	}
}

func TestCompletionCascadeRunsAllSteps(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := submitReq("t1",
		SubmitItemRequest{ProductID: "p1", Quantity: 1},
		SubmitItemRequest{ProductID: "p2", Quantity: 2},
	)
	req.CustomerID = "c1"
	order, _ := f.service.SubmitOrder(ctx, req)

	if _, err := f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if f.tables.status["t1"] != domain.TableAvailable {
		t.Fatalf("table status = %s, want AVAILABLE after completion", f.tables.status["t1"])
	}
	if f.popularity.counts["p1"] != 1 || f.popularity.counts["p2"] != 2 {
		t.Fatalf("popularity = %v, want p1:1 p2:2", f.popularity.counts)
	}
	// 应付 110000 -> 返 11 分
	if len(f.loyalty.credits) != 1 || f.loyalty.credits[0] != 11 {
		t.Fatalf("credits = %v, want [11]", f.loyalty.credits)
	}
	if f.stock.debits["p1"] != 1 || f.stock.debits["p2"] != 2 {
		t.Fatalf("stock debits = %v", f.stock.debits)
	}
}

func TestCompletionCascadeIsolatesStepFailure(t *testing.T) {
	f := newFixture()
	f.stock.err = errors.New("inventory db down")
	ctx := context.Background()

	req := submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1})
	req.CustomerID = "c1"
	order, _ := f.service.SubmitOrder(ctx, req)

	completed, err := f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusCompleted)
	if err != nil {
		t.Fatalf("completion must not fail on side effects: %v", err)
	}
	if completed.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", completed.Status)
	}
	// 库存步骤失败，其余步骤照常执行
	if f.tables.status["t1"] != domain.TableAvailable {
		t.Fatal("table not released despite stock failure")
	}
	if len(f.loyalty.credits) != 1 {
		t.Fatal("points not credited despite stock failure")
	}
}

func TestCompletionCascadeSkipsAnonymousLoyalty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, _ := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1}))
	if _, err := f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(f.loyalty.credits) != 0 {
		t.Fatalf("credits = %v, want none for anonymous order", f.loyalty.credits)
	}
}

func TestUpdateItemStatusRollsUp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, _ := f.service.SubmitOrder(ctx, submitReq("t1",
		SubmitItemRequest{ProductID: "p1", Quantity: 1},
		SubmitItemRequest{ProductID: "p2", Quantity: 1},
	))
	if _, err := f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	f.publisher.events = nil

	updated, err := f.service.UpdateItemStatus(ctx, order.Items[0].ID, domain.ItemStatusPreparing)
	if err != nil {
		t.Fatalf("item status: %v", err)
	}
	if updated.Status != domain.StatusPreparing {
		t.Fatalf("order status = %s, want PREPARING after rollup", updated.Status)
	}
	if !f.publisher.has(domain.RoomWaiters, domain.EventOrderUpdated) || !f.publisher.has(domain.RoomKitchen, domain.EventOrderUpdated) {
		t.Fatal("order_updated must go to both rooms")
	}
}

func TestOverrideDiscount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, _ := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1}))

	updated, err := f.service.OverrideDiscount(ctx, order.ID, domain.DiscountPercent, 20)
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if updated.Payable() != 40000 {
		t.Fatalf("payable = %d, want 40000", updated.Payable())
	}

	if _, err := f.service.OverrideDiscount(ctx, order.ID, domain.DiscountFixed, 999999); !errors.Is(err, domain.ErrInvalidDiscount) {
		t.Fatalf("err = %v, want ErrInvalidDiscount", err)
	}
}

// ---- 桌台服务请求 ----

func TestRequestTableService(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.service.RequestTableService(ctx, "t1", domain.TableRequestPaymentCash, "no coins please"); err != nil {
		t.Fatalf("request: %v", err)
	}
	if !f.publisher.has(domain.TableRoom("t1"), domain.EventTableNotification) {
		t.Fatal("table_notification not published to table room")
	}

	if err := f.service.RequestTableService(ctx, "t1", "karaoke", ""); !errors.Is(err, domain.ErrUnknownRequestKind) {
		t.Fatalf("err = %v, want ErrUnknownRequestKind", err)
	}
	if err := f.service.RequestTableService(ctx, "ghost", domain.TableRequestAssistance, ""); !errors.Is(err, domain.ErrTableNotFound) {
		t.Fatalf("err = %v, want ErrTableNotFound", err)
	}
}

// sanity: 提交后 ListOrders 能看到订单
func TestListOrders(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.SubmitOrder(ctx, submitReq("t1", SubmitItemRequest{ProductID: "p1", Quantity: 1})); err != nil {
		t.Fatalf("submit: %v", err)
	}
	orders, err := f.service.ListOrders(ctx, "t1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	if orders[0].CreatedAt.After(time.Now()) {
		t.Fatal("created time in the future")
	}
}
