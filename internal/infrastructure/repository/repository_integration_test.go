package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"quokkalist/internal/domain/billing"
	bvo "quokkalist/internal/domain/billing/valueobjects"
	"quokkalist/internal/domain/promo"
	promovo "quokkalist/internal/domain/promo/valueobjects"
	"quokkalist/internal/domain/promotion"
	pvo "quokkalist/internal/domain/promotion/valueobjects"
	"quokkalist/internal/infrastructure/persistence/migrations"
	"quokkalist/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.Migrate(db))
	return db
}

func seedServer(t *testing.T, db *gorm.DB, id, ownerID string) {
	t.Helper()
	require.NoError(t, db.Create(&models.ServerModel{
		ID:        id,
		Name:      "test server " + id,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}).Error)
}

func newPendingOrder(t *testing.T, sessionID string) *billing.Order {
	t.Helper()
	order, err := billing.NewPendingOrder(sessionID, "user-1", "srv-1", pvo.PlanBasic, 3, nil, bvo.NewMoney(1500, "EUR"))
	require.NoError(t, err)
	return order
}

func TestOrderRepository_CreatePending_DuplicateSessionIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	first := newPendingOrder(t, "cs_dup")
	require.NoError(t, repo.CreatePending(ctx, first))

	second := newPendingOrder(t, "cs_dup")
	require.NoError(t, repo.CreatePending(ctx, second))

	var count int64
	require.NoError(t, db.Model(&models.OrderModel{}).Where("checkout_session_id = ?", "cs_dup").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The surviving row is the first insert.
	got, err := repo.GetByCheckoutSession(ctx, "cs_dup", "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID(), got.ID())
}

func TestOrderRepository_ClaimCompleted_ExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreatePending(ctx, newPendingOrder(t, "cs_claim")))

	order, claimed, err := repo.ClaimCompleted(ctx, "cs_claim", "pi_1")
	require.NoError(t, err)
	require.True(t, claimed)
	require.NotNil(t, order)
	assert.True(t, order.Status().IsCompleted())
	require.NotNil(t, order.GatewayIntentID())
	assert.Equal(t, "pi_1", *order.GatewayIntentID())

	// Second delivery of the same event claims nothing.
	order2, claimed2, err := repo.ClaimCompleted(ctx, "cs_claim", "pi_1")
	require.NoError(t, err)
	assert.False(t, claimed2)
	assert.Nil(t, order2)
}

func TestOrderRepository_ClaimCompleted_UnknownSession(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)

	order, claimed, err := repo.ClaimCompleted(context.Background(), "cs_never_opened", "pi_x")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Nil(t, order)
}

func TestOrderRepository_GiftedOrderCannotBeReclaimed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	start := time.Now().UTC()
	gifted, err := billing.NewGiftedOrder("user-1", "srv-1", pvo.PlanBasic, 2, start, start.Add(48*time.Hour), "EUR")
	require.NoError(t, err)
	require.NoError(t, repo.CreateGifted(ctx, gifted))

	// Born completed, so the guarded update never matches it.
	order, claimed, err := repo.ClaimCompleted(ctx, gifted.CheckoutSessionID(), "pi_fake")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Nil(t, order)
}

func TestOrderRepository_MarkFailed_OnlyPending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreatePending(ctx, newPendingOrder(t, "cs_fail")))
	require.NoError(t, repo.MarkFailed(ctx, "cs_fail"))

	got, err := repo.GetByCheckoutSession(ctx, "cs_fail", "user-1")
	require.NoError(t, err)
	assert.Equal(t, bvo.OrderStatusFailed, got.Status())

	// A completed order stays completed.
	require.NoError(t, repo.CreatePending(ctx, newPendingOrder(t, "cs_done")))
	_, claimed, err := repo.ClaimCompleted(ctx, "cs_done", "pi_2")
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, repo.MarkFailed(ctx, "cs_done"))
	got, err = repo.GetByCheckoutSession(ctx, "cs_done", "user-1")
	require.NoError(t, err)
	assert.True(t, got.Status().IsCompleted())
}

func TestOrderRepository_PromoMetaRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := newPendingOrder(t, "cs_meta")
	codeID := "pc-1"
	codeStr := "HALF"
	discountType := "percent"
	discountValue := int64(50)
	order.SetPromoMeta(billing.PromoMeta{
		BaseAmountCents: 3000,
		PromoCodeID:     &codeID,
		PromoCode:       &codeStr,
		DiscountType:    &discountType,
		DiscountValue:   &discountValue,
	})
	require.NoError(t, repo.CreatePending(ctx, order))

	got, err := repo.GetByCheckoutSession(ctx, "cs_meta", "user-1")
	require.NoError(t, err)
	require.NotNil(t, got.PromoMeta())
	assert.Equal(t, int64(3000), got.PromoMeta().BaseAmountCents)
	assert.Equal(t, "HALF", *got.PromoMeta().PromoCode)
	assert.Equal(t, int64(50), *got.PromoMeta().DiscountValue)
}

func TestPromoCodeRepository_IncrementUses(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromoCodeRepository(db)
	ctx := context.Background()

	maxUses := 3
	code, err := promo.NewPromoCode("SUMMER", promovo.Discount{Type: promovo.DiscountPercent, Value: 20}, nil, nil, &maxUses, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, code))
	require.NotEmpty(t, code.ID())

	require.NoError(t, repo.IncrementUses(ctx, code.ID()))
	require.NoError(t, repo.IncrementUses(ctx, code.ID()))

	got, err := repo.GetByCode(ctx, "SUMMER")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.UsesCount())
}

// Two checkouts can validate a max_uses=1 code before either settles.
// Both settlements then try to consume a use; the counter must stop at
// the cap instead of recording two.
func TestPromoCodeRepository_IncrementUsesStopsAtCap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromoCodeRepository(db)
	ctx := context.Background()

	maxUses := 1
	code, err := promo.NewPromoCode("ONESHOT", promovo.Discount{Type: promovo.DiscountPercent, Value: 50}, nil, nil, &maxUses, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, code))

	require.NoError(t, repo.IncrementUses(ctx, code.ID()))
	require.NoError(t, repo.IncrementUses(ctx, code.ID()))

	got, err := repo.GetByCode(ctx, "ONESHOT")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.UsesCount())

	unlimited, err := promo.NewPromoCode("EVERGREEN", promovo.Discount{Type: promovo.DiscountPercent, Value: 10}, nil, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, unlimited))

	require.NoError(t, repo.IncrementUses(ctx, unlimited.ID()))
	require.NoError(t, repo.IncrementUses(ctx, unlimited.ID()))

	got, err = repo.GetByCode(ctx, "EVERGREEN")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.UsesCount())
}

func TestPromoCodeRepository_GetByCode_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromoCodeRepository(db)

	got, err := repo.GetByCode(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWindowRepository_ActiveForServer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWindowRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	expired, err := promotion.NewWindow("srv-1", pvo.PlanBasic, now.Add(-72*time.Hour), now.Add(-48*time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, expired))

	active, err := promotion.NewWindow("srv-1", pvo.PlanPremium, now.Add(-time.Hour), now.Add(5*time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, active))
	assert.NotZero(t, active.ID())

	got, err := repo.ActiveForServer(ctx, "srv-1", now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pvo.PlanPremium, got.Plan())

	// Another server has no active window.
	got, err = repo.ActiveForServer(ctx, "srv-other", now)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWindowRepository_ListForOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWindowRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seedServer(t, db, "srv-1", "owner-1")
	seedServer(t, db, "srv-2", "owner-2")

	w1, err := promotion.NewWindow("srv-1", pvo.PlanBasic, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, w1))

	w2, err := promotion.NewWindow("srv-2", pvo.PlanBasic, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, w2))

	windows, err := repo.ListForOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "srv-1", windows[0].ServerID())
}

func TestStatsRepository_IncrementLikesUpserts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	likes, err := repo.IncrementLikes(ctx, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	likes, err = repo.IncrementLikes(ctx, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)

	require.NoError(t, repo.IncrementViews(ctx, "srv-1"))
	require.NoError(t, repo.IncrementVisits(ctx, "srv-1"))
	require.NoError(t, repo.IncrementClicks(ctx, "srv-1"))

	stats, err := repo.GetForServer(ctx, "srv-1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(2), stats.Likes)
	assert.Equal(t, int64(1), stats.Views)
	assert.Equal(t, int64(1), stats.Visits)
	assert.Equal(t, int64(1), stats.Clicks)
}

func TestStatsRepository_ZeroAllLikesKeepsOtherCounters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	_, err := repo.IncrementLikes(ctx, "srv-1")
	require.NoError(t, err)
	_, err = repo.IncrementLikes(ctx, "srv-2")
	require.NoError(t, err)
	require.NoError(t, repo.IncrementViews(ctx, "srv-1"))

	require.NoError(t, repo.ZeroAllLikes(ctx))

	stats, err := repo.GetForServer(ctx, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Likes)
	assert.Equal(t, int64(1), stats.Views)

	stats, err = repo.GetForServer(ctx, "srv-2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Likes)
}

func TestVoteRepository_UsageCounting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, "srv-1", "user-1", now.Add(-3*time.Hour)))
	require.NoError(t, repo.Insert(ctx, "srv-1", "user-1", now.Add(-90*time.Minute)))
	// Other pairs never count against this one.
	require.NoError(t, repo.Insert(ctx, "srv-2", "user-1", now.Add(-time.Minute)))
	require.NoError(t, repo.Insert(ctx, "srv-1", "user-2", now.Add(-time.Minute)))

	usage, err := repo.UsageFor(ctx, "srv-1", "user-1", dayStart)
	require.NoError(t, err)
	assert.Equal(t, 2, usage.VotesToday)
	require.NotNil(t, usage.LastVoteAt)
	assert.WithinDuration(t, now.Add(-90*time.Minute), *usage.LastVoteAt, time.Second)
}

func TestVoteRepository_DeleteAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Insert(ctx, "srv-1", "user-1", now))
	require.NoError(t, repo.Insert(ctx, "srv-2", "user-2", now))
	require.NoError(t, repo.DeleteAll(ctx))

	var count int64
	require.NoError(t, db.Model(&models.VoteModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestVoteSystemStateRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteSystemStateRepository(db)
	ctx := context.Background()

	month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.EnsureExists(ctx, month))
	// Re-running never overwrites the recorded month.
	require.NoError(t, repo.EnsureExists(ctx, month.AddDate(0, 1, 0)))

	state, err := repo.LockCurrent(ctx)
	require.NoError(t, err)
	assert.True(t, state.LastResetMonth.Equal(month))

	next := month.AddDate(0, 1, 0)
	require.NoError(t, repo.AdvanceMonth(ctx, next))

	state, err = repo.LockCurrent(ctx)
	require.NoError(t, err)
	assert.True(t, state.LastResetMonth.Equal(next))
}

func TestServerRepository_OwnershipLookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewServerRepository(db)
	ctx := context.Background()

	seedServer(t, db, "srv-1", "owner-1")

	ownerID, err := repo.GetOwnerID(ctx, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", ownerID)

	ownerID, err = repo.GetOwnerID(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, ownerID)

	exists, err := repo.Exists(ctx, "srv-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	server, err := repo.GetByID(ctx, "srv-1")
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.Equal(t, "owner-1", server.OwnerID())

	server, err = repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, server)
}
