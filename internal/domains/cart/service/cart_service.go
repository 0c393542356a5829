package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/cart/model"
	"jewelstore-backend/internal/domains/cart/repository"
	couponModel "jewelstore-backend/internal/domains/coupon/model"
	couponService "jewelstore-backend/internal/domains/coupon/service"
	"jewelstore-backend/pkg/cache"
	"jewelstore-backend/pkg/logger"
)

const cartCacheTTL = 5 * time.Minute

type cartService struct {
	repo     repository.CartRepository
	products ProductReader
	coupons  couponService.ServiceInterface
	cache    cache.Cache
}

// NewCartService creates the cart service.
func NewCartService(
	repo repository.CartRepository,
	products ProductReader,
	coupons couponService.ServiceInterface,
	c cache.Cache,
) ServiceInterface {
	return &cartService{
		repo:     repo,
		products: products,
		coupons:  coupons,
		cache:    c,
	}
}

// -------------------------------------------------------------------
// READ
// -------------------------------------------------------------------

func (s *cartService) GetCart(ctx context.Context, owner Owner) (*model.CartResponse, error) {
	if s.cache != nil {
		var cached model.CartResponse
		found, err := s.cache.Get(ctx, cartCacheKey(owner), &cached)
		if err == nil && found {
			return &cached, nil
		}
	}

	cart, err := s.findOrCreateCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	resp, err := s.buildResponse(ctx, cart)
	if err != nil {
		return nil, err
	}

	s.cacheResponse(ctx, owner, resp)
	return resp, nil
}

// -------------------------------------------------------------------
// MUTATIONS
// -------------------------------------------------------------------

func (s *cartService) AddItem(ctx context.Context, owner Owner, req *model.AddItemRequest) (*model.CartResponse, error) {
	cart, err := s.findOrCreateCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	price, stock, active, err := s.products.GetPurchaseInfo(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, model.ErrProductNotActive
	}
	if stock < req.Quantity {
		return nil, model.ErrInsufficientStock
	}

	item := &model.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: price,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, err
	}

	return s.recompute(ctx, owner, cart)
}

func (s *cartService) UpdateItem(ctx context.Context, owner Owner, itemID uuid.UUID, req *model.UpdateItemRequest) (*model.CartResponse, error) {
	cart, err := s.findCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	if err := s.ensureItemInCart(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItemQuantity(ctx, itemID, req.Quantity); err != nil {
		return nil, err
	}

	return s.recompute(ctx, owner, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, owner Owner, itemID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.findCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	if err := s.ensureItemInCart(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}

	return s.recompute(ctx, owner, cart)
}

// ApplyCoupon validates the code against the current cart and stores
// it. The discount recorded here is advisory; checkout re-validates
// and redeems atomically.
func (s *cartService) ApplyCoupon(ctx context.Context, owner Owner, req *model.ApplyCouponRequest) (*model.CartResponse, error) {
	cart, err := s.findCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrCartEmpty
	}

	subtotal := decimal.Zero
	productIDs := make([]uuid.UUID, 0, len(items))
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
		productIDs = append(productIDs, items[i].ProductID)
	}

	validateReq := &couponModel.ValidateCouponRequest{
		Code:           req.Code,
		Subtotal:       subtotal.Round(2),
		CartProductIDs: productIDs,
		UserID:         owner.UserID,
	}
	result, err := s.coupons.ValidateCoupon(ctx, validateReq)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, couponModel.NewCouponError(couponModel.ErrCodeCouponIneligible, result.Message, nil)
	}

	cart.CouponCode = &result.Code
	cart.DiscountAmount = result.DiscountAmount

	return s.recompute(ctx, owner, cart)
}

func (s *cartService) RemoveCoupon(ctx context.Context, owner Owner) (*model.CartResponse, error) {
	cart, err := s.findCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	cart.CouponCode = nil
	cart.DiscountAmount = decimal.Zero

	return s.recompute(ctx, owner, cart)
}

func (s *cartService) ClearCart(ctx context.Context, owner Owner) error {
	cart, err := s.findCart(ctx, owner)
	if err != nil {
		if errors.Is(err, model.ErrCartNotFound) {
			return nil
		}
		return err
	}

	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return err
	}
	cart.CouponCode = nil
	cart.DiscountAmount = decimal.Zero
	if _, err := s.recompute(ctx, owner, cart); err != nil {
		return err
	}
	return nil
}

func (s *cartService) MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) error {
	if err := s.repo.MergeGuestCart(ctx, sessionID, userID); err != nil {
		return err
	}

	// Both owner views changed.
	s.invalidate(ctx, Owner{SessionID: &sessionID})
	s.invalidate(ctx, Owner{UserID: &userID})

	// Recompute the merged cart's totals.
	cart, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrCartNotFound) {
			return nil
		}
		return err
	}
	_, err = s.recompute(ctx, Owner{UserID: &userID}, cart)
	return err
}

// -------------------------------------------------------------------
// CHECKOUT INTEGRATION
// -------------------------------------------------------------------

func (s *cartService) GetCartForCheckout(ctx context.Context, owner Owner) (*model.Cart, []model.CartItemDetail, error) {
	cart, err := s.findCart(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	if cart.IsExpired() {
		return nil, nil, model.ErrCartExpired
	}

	details, err := s.repo.ListItemDetails(ctx, cart.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(details) == 0 {
		return nil, nil, model.ErrCartEmpty
	}

	for i := range details {
		if !details[i].IsPurchasable() {
			return nil, nil, fmt.Errorf("%w: %s", model.ErrInsufficientStock, details[i].ProductName)
		}
	}

	return cart, details, nil
}

func (s *cartService) ClearAfterCheckout(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	if err := s.repo.ClearWithTx(ctx, tx, cartID); err != nil {
		return err
	}

	cart, err := s.repo.FindByID(ctx, cartID)
	if err == nil {
		s.invalidate(ctx, Owner{UserID: cart.UserID, SessionID: cart.SessionID})
	}
	return nil
}

// -------------------------------------------------------------------
// MAINTENANCE
// -------------------------------------------------------------------

func (s *cartService) CleanupExpired(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Info("expired carts removed", map[string]interface{}{"count": removed})
	}
	return removed, nil
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

func (s *cartService) findCart(ctx context.Context, owner Owner) (*model.Cart, error) {
	switch {
	case owner.UserID != nil:
		return s.repo.FindByUserID(ctx, *owner.UserID)
	case owner.SessionID != nil:
		return s.repo.FindBySessionID(ctx, *owner.SessionID)
	default:
		return nil, model.ErrCartNotFound
	}
}

func (s *cartService) findOrCreateCart(ctx context.Context, owner Owner) (*model.Cart, error) {
	cart, err := s.findCart(ctx, owner)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, model.ErrCartNotFound) {
		return nil, err
	}

	expiration := model.GuestCartExpirationDays
	if owner.UserID != nil {
		expiration = model.UserCartExpirationDays
	}

	cart = &model.Cart{
		ID:        uuid.New(),
		UserID:    owner.UserID,
		SessionID: owner.SessionID,
		ExpiresAt: time.Now().Add(time.Duration(expiration) * 24 * time.Hour),
	}
	if err := cart.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// recompute rebuilds every derived amount from the current line items
// and persists the result. All mutations funnel through here so the
// stored totals can never drift from the items.
func (s *cartService) recompute(ctx context.Context, owner Owner, cart *model.Cart) (*model.CartResponse, error) {
	items, err := s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	lines := make([]model.TotalsLine, 0, len(items))
	for i := range items {
		lines = append(lines, model.TotalsLine{Quantity: items[i].Quantity, UnitPrice: items[i].UnitPrice})
	}

	// A coupon cannot outlive the cart contents it was validated for,
	// and a percentage discount must track the current subtotal.
	if cart.CouponCode != nil {
		if len(items) == 0 {
			cart.CouponCode = nil
			cart.DiscountAmount = decimal.Zero
		} else {
			s.refreshCoupon(ctx, owner, cart, items)
		}
	}

	totals := model.ComputeTotals(lines, cart.DiscountAmount)
	cart.Subtotal = totals.Subtotal
	cart.EstimatedTax = totals.EstimatedTax
	cart.EstimatedShipping = totals.EstimatedShipping
	cart.EstimatedTotal = totals.EstimatedTotal

	expiration := model.GuestCartExpirationDays
	if cart.UserID != nil {
		expiration = model.UserCartExpirationDays
	}
	cart.ExpiresAt = time.Now().Add(time.Duration(expiration) * 24 * time.Hour)

	if err := s.repo.UpdateTotals(ctx, cart); err != nil {
		return nil, err
	}

	resp, err := s.buildResponse(ctx, cart)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, owner)
	s.cacheResponse(ctx, owner, resp)
	return resp, nil
}

// refreshCoupon re-validates the applied coupon against the current
// line items. A coupon that no longer qualifies is dropped; when a
// validation call itself fails, the stored discount is kept as-is and
// checkout settles it.
func (s *cartService) refreshCoupon(ctx context.Context, owner Owner, cart *model.Cart, items []model.CartItem) {
	subtotal := decimal.Zero
	productIDs := make([]uuid.UUID, 0, len(items))
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
		productIDs = append(productIDs, items[i].ProductID)
	}

	result, err := s.coupons.ValidateCoupon(ctx, &couponModel.ValidateCouponRequest{
		Code:           *cart.CouponCode,
		Subtotal:       subtotal.Round(2),
		CartProductIDs: productIDs,
		UserID:         owner.UserID,
	})
	if err != nil {
		logger.Warn("coupon re-validation failed, keeping stored discount", map[string]interface{}{
			"cart_id": cart.ID,
			"error":   err.Error(),
		})
		return
	}
	if !result.Valid {
		cart.CouponCode = nil
		cart.DiscountAmount = decimal.Zero
		return
	}
	cart.DiscountAmount = result.DiscountAmount
}

func (s *cartService) buildResponse(ctx context.Context, cart *model.Cart) (*model.CartResponse, error) {
	details, err := s.repo.ListItemDetails(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return cart.ToResponse(details), nil
}

func (s *cartService) ensureItemInCart(ctx context.Context, cartID, itemID uuid.UUID) error {
	items, err := s.repo.ListItems(ctx, cartID)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == itemID {
			return nil
		}
	}
	return model.ErrCartItemNotFound
}

func cartCacheKey(owner Owner) string {
	if owner.UserID != nil {
		return fmt.Sprintf(model.CacheKeyCartByUser, owner.UserID)
	}
	if owner.SessionID != nil {
		return fmt.Sprintf(model.CacheKeyCartBySession, *owner.SessionID)
	}
	return ""
}

func (s *cartService) cacheResponse(ctx context.Context, owner Owner, resp *model.CartResponse) {
	if s.cache == nil {
		return
	}
	key := cartCacheKey(owner)
	if key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, resp, cartCacheTTL); err != nil {
		logger.Warn("cart cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *cartService) invalidate(ctx context.Context, owner Owner) {
	if s.cache == nil {
		return
	}
	if owner.UserID != nil {
		_ = s.cache.Delete(ctx, fmt.Sprintf(model.CacheKeyCartByUser, owner.UserID))
	}
	if owner.SessionID != nil {
		_ = s.cache.Delete(ctx, fmt.Sprintf(model.CacheKeyCartBySession, *owner.SessionID))
	}
}
