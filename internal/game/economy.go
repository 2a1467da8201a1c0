package game

import (
	"errors"
	"time"
)

// Currency names a spendable balance on the record.
type Currency string

const (
	CurrencyHC     Currency = "hc"
	CurrencyRubles Currency = "rubles"
)

const (
	PremiumPriceHC  = 500
	PremiumDuration = 7 * 24 * time.Hour

	millisPerDay = int64(24 * time.Hour / time.Millisecond)
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUpgradeOwned      = errors.New("upgrade already owned")
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
)

// ShopItem is one purchasable upgrade.
type ShopItem struct {
	ID       UpgradeID
	Title    string
	Effect   string
	Cost     int
	Currency Currency
}

// Shop is the permanent upgrade catalog. Prices are fixed; every item is a
// one-time purchase that survives life resets.
var Shop = []ShopItem{
	{ID: UpgradeEducationBoost, Title: "Education boost", Effect: "+15 education per correct answer instead of +10", Cost: 200, Currency: CurrencyHC},
	{ID: UpgradeHCBonus, Title: "HC bonus", Effect: "110 HC per finished grade instead of 100", Cost: 300, Currency: CurrencyHC},
	{ID: UpgradeAIHelper, Title: "AI helper", Effect: "reveal an answer for 20 education", Cost: 5_000, Currency: CurrencyRubles},
}

// ShopItemByID returns the catalog entry for an upgrade.
func ShopItemByID(id UpgradeID) (ShopItem, bool) {
	for _, item := range Shop {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}

// CanAfford reports whether the record covers a cost in the named currency.
func CanAfford(r Record, cost int, cur Currency) bool {
	switch cur {
	case CurrencyHC:
		return r.HCCoins >= cost
	case CurrencyRubles:
		return r.Rubles >= cost
	default:
		return false
	}
}

// BuyPremium spends HC on a week of premium. Buying while already active
// restarts the week from now rather than stacking.
func BuyPremium(r Record, now time.Time) (Record, error) {
	if r.HCCoins < PremiumPriceHC {
		return r, ErrInsufficientFunds
	}
	r.HCCoins -= PremiumPriceHC
	r.HasPremium = true
	r.PremiumExpiry = now.UnixMilli() + int64(PremiumDuration/time.Millisecond)
	return r, nil
}

// BuyUpgrade purchases a catalog upgrade with the named currency.
func BuyUpgrade(r Record, id UpgradeID) (Record, error) {
	item, ok := ShopItemByID(id)
	if !ok {
		return r, ErrUnknownUpgrade
	}
	if r.Upgrades.Has(id) {
		return r, ErrUpgradeOwned
	}
	if !CanAfford(r, item.Cost, item.Currency) {
		return r, ErrInsufficientFunds
	}
	switch item.Currency {
	case CurrencyHC:
		r.HCCoins -= item.Cost
	case CurrencyRubles:
		r.Rubles -= item.Cost
	}
	r.Upgrades = r.Upgrades.with(id)
	return r, nil
}

// PremiumActive checks the expiry against the clock. The persisted flag is
// only a cache of this predicate.
func PremiumActive(r Record, now time.Time) bool {
	return r.PremiumExpiry > now.UnixMilli()
}

// DaysRemaining counts whole days of premium left, rounding up; 0 once
// expired or never bought.
func DaysRemaining(r Record, now time.Time) int {
	left := r.PremiumExpiry - now.UnixMilli()
	if left <= 0 {
		return 0
	}
	return int((left + millisPerDay - 1) / millisPerDay)
}
