// internal/service/order/application/service.go
package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"tably/internal/pkg/logger"
	"tably/internal/pkg/metrics"
	"tably/internal/service/order/application/cascade"
	"tably/internal/service/order/domain"
	"tably/internal/service/order/domain/port"
)

// OrderService 编排订单生命周期的全部业务流程。
// 所有对外部资源的依赖都是出站端口，核心逻辑不感知具体实现。
type OrderService struct {
	orders domain.OrderRepository
	tx     port.TxManager
	locks  port.TableLocker
	tracer trace.Tracer

	catalog    port.Catalog
	tables     port.TableRegistry
	vouchers   port.VoucherStore
	rules      port.RuleEngine
	loyalty    port.PointsLedger
	stock      port.StockLedger
	popularity port.PopularityCounter
	publisher  port.EventPublisher
}

// NewOrderService 创建订单应用服务实例。
func NewOrderService(
	orders domain.OrderRepository,
	tx port.TxManager,
	locks port.TableLocker,
	tracer trace.Tracer,
	catalog port.Catalog,
	tables port.TableRegistry,
	vouchers port.VoucherStore,
	rules port.RuleEngine,
	loyalty port.PointsLedger,
	stock port.StockLedger,
	popularity port.PopularityCounter,
	publisher port.EventPublisher,
) *OrderService {
	return &OrderService{
		orders: orders, tx: tx, locks: locks, tracer: tracer,
		catalog: catalog, tables: tables, vouchers: vouchers, rules: rules,
		loyalty: loyalty, stock: stock, popularity: popularity, publisher: publisher,
	}
}

// SubmitOrder 处理一次下单: 解析菜品、计价、校验券和积分、
// 在同一事务里创建新订单或并入该桌已有的 open 订单。
// 积分的台账扣减延迟到事务提交之后单独执行，失败只记录不回滚（见设计文档）。
func (s *OrderService) SubmitOrder(ctx context.Context, req *SubmitOrderRequest) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "app.SubmitOrder")
	defer span.End()
	span.SetAttributes(
		attribute.String("table.id", req.TableID),
		attribute.Int("items.count", len(req.Items)),
	)

	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	// 同桌提交串行化，消除 "查 open 订单再创建" 的竞态窗口
	release, err := s.locks.Acquire(ctx, req.TableID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to acquire table lock")
		return nil, err
	}
	defer release()

	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var (
		order        *domain.Order
		merged       bool
		pendingDebit int64
	)
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		status, err := s.tables.Status(txCtx, req.TableID)
		if err != nil {
			return err
		}
		if status == domain.TableInactive {
			return domain.ErrTableInactive
		}

		open, err := s.orders.FindOpenByTable(txCtx, req.TableID)
		if err != nil {
			return err
		}

		if open != nil {
			order, err = s.mergeIntoOpenOrder(txCtx, open, items, req)
			merged = true
			return err
		}

		order, pendingDebit, err = s.createOrder(txCtx, items, req)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order submission failed")
		return nil, err
	}

	// 事务已提交。此处的积分扣减是非原子的后续动作:
	// 失败时订单和折扣保持原样，只留日志等待人工对账。
	if pendingDebit > 0 {
		if err := s.loyalty.Debit(ctx, req.CustomerID, pendingDebit, order.ID); err != nil {
			span.RecordError(err)
			metrics.SideEffectFailures.WithLabelValues("points_debit").Inc()
			logger.Ctx(ctx).Error().Err(err).
				Str("order", order.ID).Str("customer", req.CustomerID).
				Int64("points", pendingDebit).
				Msg("post-commit points debit failed; discount already applied")
		}
	}

	metrics.OrdersCreated.Inc()
	s.publisher.Publish(ctx, domain.RoomWaiters, domain.EventNewOrder, order)
	if merged && order.Status != domain.StatusPending {
		// 厨房已经有这张单的卡片，追加菜品对它来说是一次更新
		s.publisher.Publish(ctx, domain.RoomKitchen, domain.EventOrderUpdated, order)
	}

	logger.Ctx(ctx).Info().
		Str("order", order.ID).Str("table", req.TableID).Bool("merged", merged).
		Int64("subtotal", order.Subtotal).Int64("payable", order.Payable()).
		Msg("order submitted")
	return order, nil
}

// resolveItems 并发地解析每行菜品的商品与调味项，生成价格快照。
// 任何一行解析失败都会让整个提交失败。
func (s *OrderService) resolveItems(ctx context.Context, reqs []SubmitItemRequest) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ir := range reqs {
		g.Go(func() error {
			product, err := s.catalog.FindProduct(gctx, ir.ProductID)
			if err != nil {
				return err
			}
			if !product.Available {
				return domain.ErrProductUnavailable
			}
			var modifiers []domain.ModifierSelection
			if len(ir.ModifierOptionIDs) > 0 {
				modifiers, err = s.catalog.ResolveModifiers(gctx, ir.ProductID, ir.ModifierOptionIDs)
				if err != nil {
					return err
				}
			}
			item, err := domain.NewOrderItem(product, ir.Quantity, modifiers)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// createOrder 走新建路径: 组合券+积分折扣、占桌、落库。
// 返回的 pendingDebit 是提交后需要扣减的积分数。
func (s *OrderService) createOrder(ctx context.Context, items []domain.OrderItem, req *SubmitOrderRequest) (*domain.Order, int64, error) {
	subtotal := domain.SubtotalOf(items)

	var pointsAmount, pendingDebit int64
	if req.PointsToRedeem > 0 {
		if req.CustomerID == "" {
			return nil, 0, domain.ErrNoLoyaltyAccount
		}
		if err := domain.ValidateRedeemPoints(req.PointsToRedeem); err != nil {
			return nil, 0, err
		}
		// 只读校验余额，真正的扣减延迟到提交之后
		account, err := s.loyalty.Account(ctx, req.CustomerID)
		if err != nil {
			return nil, 0, err
		}
		if account.Balance < req.PointsToRedeem {
			return nil, 0, domain.ErrInsufficientPoints
		}
		pointsAmount = domain.PointsDiscountAmount(req.PointsToRedeem, subtotal)
		pendingDebit = req.PointsToRedeem
	}

	var voucherDiscount *domain.Discount
	if req.VoucherCode != "" {
		d, err := s.applyVoucher(ctx, req, subtotal, int64(len(items)))
		if err != nil {
			return nil, 0, err
		}
		voucherDiscount = d
	}

	discount := domain.CombineDiscounts(voucherDiscount, pointsAmount, subtotal)
	order, err := domain.NewOrder(req.TableID, req.CustomerID, req.Notes, items, discount)
	if err != nil {
		return nil, 0, err
	}

	if err := s.tables.SetStatus(ctx, req.TableID, domain.TableOccupied); err != nil {
		return nil, 0, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, 0, err
	}
	return order, pendingDebit, nil
}

// mergeIntoOpenOrder 走并单路径: 追加菜品、累加小计。
// 只有本次请求带了券码才覆盖已存折扣；本次带的积分核销被跳过不处理
// （沿用线上观察到的行为，是否应当补做由产品另行决定）。
func (s *OrderService) mergeIntoOpenOrder(ctx context.Context, open *domain.Order, items []domain.OrderItem, req *SubmitOrderRequest) (*domain.Order, error) {
	open.Append(items)

	if req.PointsToRedeem > 0 {
		logger.Ctx(ctx).Debug().
			Str("order", open.ID).Int64("points", req.PointsToRedeem).
			Msg("points redemption on append is skipped")
	}

	if req.VoucherCode != "" {
		d, err := s.applyVoucher(ctx, req, open.Subtotal, int64(len(open.Items)))
		if err != nil {
			return nil, err
		}
		if err := open.SetDiscount(*d); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, open); err != nil {
		return nil, err
	}
	return open, nil
}

// applyVoucher 校验券并在同一事务内累加其使用计数，返回券自身的折扣描述符。
func (s *OrderService) applyVoucher(ctx context.Context, req *SubmitOrderRequest, subtotal, itemCount int64) (*domain.Discount, error) {
	voucher, err := s.vouchers.FindByCode(ctx, req.VoucherCode)
	if err != nil {
		return nil, err
	}
	if err := voucher.Validate(subtotal, time.Now()); err != nil {
		return nil, err
	}
	if voucher.EligibilityRule != "" {
		ok, err := s.rules.Evaluate(voucher.EligibilityRule, port.VoucherFact{
			Subtotal:   subtotal,
			ItemCount:  itemCount,
			TableID:    req.TableID,
			CustomerID: req.CustomerID,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrVoucherNotEligible
		}
	}
	if err := s.vouchers.IncrementUsage(ctx, voucher.ID); err != nil {
		return nil, err
	}
	d := voucher.DiscountOn()
	return &d, nil
}

// GetOrder 按 ID 查询订单。
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "app.GetOrder")
	defer span.End()
	return s.orders.FindByID(ctx, id)
}

// ListOrders 列出订单，tableID 为空时列出全部。
func (s *OrderService) ListOrders(ctx context.Context, tableID string) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "app.ListOrders")
	defer span.End()
	return s.orders.List(ctx, tableID)
}

// UpdateOrderStatus 执行员工驱动的订单状态流转。
// 进入 COMPLETED 时在事务提交后触发完成级联。
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, to domain.Status) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "app.UpdateOrderStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.String("status.to", string(to)),
	)

	if !to.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	var (
		order *domain.Order
		from  domain.Status
	)
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		from = order.Status
		if err := order.TransitionTo(to); err != nil {
			return err
		}
		return s.orders.Save(txCtx, order)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if to == domain.StatusCompleted {
		metrics.OrdersCompleted.Inc()
		s.runCompletionCascade(ctx, order)
	}

	s.publisher.Publish(ctx, domain.RoomWaiters, domain.EventOrderUpdated, order)
	if from == domain.StatusPending && to == domain.StatusAccepted {
		// 接单对厨房来说是一张新卡片，而不是已有卡片的更新
		s.publisher.Publish(ctx, domain.RoomKitchen, domain.EventOrderToKitchen, order)
	} else {
		s.publisher.Publish(ctx, domain.RoomKitchen, domain.EventOrderUpdated, order)
	}

	logger.Ctx(ctx).Info().
		Str("order", order.ID).Str("from", string(from)).Str("to", string(to)).
		Msg("order status updated")
	return order, nil
}

// UpdateItemStatus 更新单行菜品的状态并触发 rollup。
func (s *OrderService) UpdateItemStatus(ctx context.Context, itemID string, to domain.ItemStatus) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "app.UpdateItemStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("item.id", itemID),
		attribute.String("status.to", string(to)),
	)

	if !to.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	var order *domain.Order
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orders.FindByItemID(txCtx, itemID)
		if err != nil {
			return err
		}
		if err := order.ApplyItemStatus(itemID, to); err != nil {
			return err
		}
		return s.orders.Save(txCtx, order)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.publisher.Publish(ctx, domain.RoomWaiters, domain.EventOrderUpdated, order)
	s.publisher.Publish(ctx, domain.RoomKitchen, domain.EventOrderUpdated, order)
	return order, nil
}

// OverrideDiscount 是员工折扣覆盖路径，独立于券/积分流程。
func (s *OrderService) OverrideDiscount(ctx context.Context, orderID string, kind domain.DiscountKind, value int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "app.OverrideDiscount")
	defer span.End()

	var order *domain.Order
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := order.SetDiscount(domain.Discount{Kind: kind, Value: value}); err != nil {
			return err
		}
		return s.orders.Save(txCtx, order)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.publisher.Publish(ctx, domain.RoomWaiters, domain.EventOrderUpdated, order)
	return order, nil
}

// RequestTableService 发布桌台级服务请求（呼叫服务员、现金/扫码买单），
// 与订单状态无关，直接走该桌的专属房间。
func (s *OrderService) RequestTableService(ctx context.Context, tableID, kind, note string) error {
	ctx, span := s.tracer.Start(ctx, "app.RequestTableService")
	defer span.End()

	switch kind {
	case domain.TableRequestPaymentCash, domain.TableRequestPaymentQR, domain.TableRequestAssistance:
	default:
		return domain.ErrUnknownRequestKind
	}
	if _, err := s.tables.Status(ctx, tableID); err != nil {
		return err
	}

	s.publisher.Publish(ctx, domain.TableRoom(tableID), domain.EventTableNotification, domain.TableNotification{
		TableID: tableID,
		Kind:    kind,
		Note:    note,
	})
	return nil
}

// runCompletionCascade 执行完成级联。整条链都是尽力而为，
// 任何一步失败都不会影响订单已经是 COMPLETED 的事实。
func (s *OrderService) runCompletionCascade(ctx context.Context, order *domain.Order) {
	ctx, span := s.tracer.Start(ctx, "app.CompletionCascade")
	defer span.End()

	chain := cascade.Build()
	chain.Handle(&cascade.Context{
		Ctx:        ctx,
		Order:      order,
		Tracer:     s.tracer,
		Tables:     s.tables,
		Popularity: s.popularity,
		Loyalty:    s.loyalty,
		Stock:      s.stock,
	})
}
