package game

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCanAfford(t *testing.T) {
	rec := Record{HCCoins: 500, Rubles: 1000}
	tests := []struct {
		cost int
		cur  Currency
		want bool
	}{
		{500, CurrencyHC, true},
		{501, CurrencyHC, false},
		{1000, CurrencyRubles, true},
		{1001, CurrencyRubles, false},
		{1, Currency("gems"), false},
	}
	for _, tc := range tests {
		if got := CanAfford(rec, tc.cost, tc.cur); got != tc.want {
			t.Fatalf("CanAfford(%d, %s)=%v want %v", tc.cost, tc.cur, got, tc.want)
		}
	}
}

func TestBuyPremium(t *testing.T) {
	rec := Record{HCCoins: 499}
	if _, err := BuyPremium(rec, testNow); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	rec.HCCoins = 620
	got, err := BuyPremium(rec, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HCCoins != 120 {
		t.Fatalf("hc=%d want 120", got.HCCoins)
	}
	if !got.HasPremium {
		t.Fatal("premium flag not set")
	}
	wantExpiry := testNow.UnixMilli() + 604_800_000
	if got.PremiumExpiry != wantExpiry {
		t.Fatalf("expiry=%d want %d", got.PremiumExpiry, wantExpiry)
	}
	if days := DaysRemaining(got, testNow); days != 7 {
		t.Fatalf("days remaining at purchase=%d want 7", days)
	}
}

func TestDaysRemaining(t *testing.T) {
	rec := Record{PremiumExpiry: testNow.UnixMilli() + 604_800_000}
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 7},
		{time.Hour, 7},
		{6*24*time.Hour + 23*time.Hour, 1},
		{7 * 24 * time.Hour, 0},
		{8 * 24 * time.Hour, 0},
	}
	for _, tc := range tests {
		if got := DaysRemaining(rec, testNow.Add(tc.elapsed)); got != tc.want {
			t.Fatalf("elapsed %v: days=%d want %d", tc.elapsed, got, tc.want)
		}
	}

	if got := DaysRemaining(Record{}, testNow); got != 0 {
		t.Fatalf("no premium: days=%d want 0", got)
	}
}

func TestPremiumActive(t *testing.T) {
	rec := Record{PremiumExpiry: testNow.UnixMilli() + 1}
	if !PremiumActive(rec, testNow) {
		t.Fatal("premium should be active before expiry")
	}
	if PremiumActive(rec, testNow.Add(time.Second)) {
		t.Fatal("premium should lapse after expiry")
	}
}

func TestBuyUpgrade(t *testing.T) {
	rec := Record{HCCoins: 250, Rubles: 6000}

	got, err := BuyUpgrade(rec, UpgradeEducationBoost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HCCoins != 50 || !got.Upgrades.EducationBoost {
		t.Fatalf("education boost purchase: hc=%d owned=%v", got.HCCoins, got.Upgrades.EducationBoost)
	}

	if _, err := BuyUpgrade(got, UpgradeEducationBoost); !errors.Is(err, ErrUpgradeOwned) {
		t.Fatalf("expected already-owned rejection, got %v", err)
	}
	if _, err := BuyUpgrade(got, UpgradeHCBonus); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	got, err = BuyUpgrade(got, UpgradeAIHelper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Rubles != 1000 || !got.Upgrades.AIHelper {
		t.Fatalf("ai helper purchase: rubles=%d owned=%v", got.Rubles, got.Upgrades.AIHelper)
	}

	if _, err := BuyUpgrade(rec, UpgradeID("jetpack")); !errors.Is(err, ErrUnknownUpgrade) {
		t.Fatalf("expected unknown upgrade, got %v", err)
	}
}

func TestShopCatalog(t *testing.T) {
	tests := []struct {
		id   UpgradeID
		cost int
		cur  Currency
	}{
		{UpgradeEducationBoost, 200, CurrencyHC},
		{UpgradeHCBonus, 300, CurrencyHC},
		{UpgradeAIHelper, 5000, CurrencyRubles},
	}
	for _, tc := range tests {
		item, ok := ShopItemByID(tc.id)
		if !ok {
			t.Fatalf("missing catalog entry %q", tc.id)
		}
		if item.Cost != tc.cost || item.Currency != tc.cur {
			t.Fatalf("%q: got %d %s want %d %s", tc.id, item.Cost, item.Currency, tc.cost, tc.cur)
		}
	}
}
