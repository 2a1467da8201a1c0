package game

import (
	"github.com/google/uuid"
)

const (
	StartAge       = 7
	StartGrade     = 1
	StartHealth    = 100
	StartHappiness = 80
	StartRubles    = 1000

	FinalGrade        = 11
	CareerChoiceGrade = 10
)

// Career is the post-school job a player picked, if any.
type Career string

const (
	CareerNone      Career = ""
	CareerCourier   Career = "courier"
	CareerWarehouse Career = "warehouse"
	CareerManager   Career = "manager"
)

// CareerInfo describes one selectable career.
type CareerInfo struct {
	Career      Career
	Title       string
	Description string
	BaseSalary  int
}

// Careers lists the selectable careers in presentation order.
var Careers = []CareerInfo{
	{Career: CareerCourier, Title: "Courier", Description: "Honest work, keeps you fit", BaseSalary: 25_000},
	{Career: CareerWarehouse, Title: "Warehouse worker", Description: "Steady and predictable", BaseSalary: 30_000},
	{Career: CareerManager, Title: "Factory manager", Description: "High salary, high prestige", BaseSalary: 80_000},
}

// CareerByID returns the catalog entry for a career.
func CareerByID(c Career) (CareerInfo, bool) {
	for _, info := range Careers {
		if info.Career == c {
			return info, true
		}
	}
	return CareerInfo{}, false
}

// UpgradeID names a permanent upgrade.
type UpgradeID string

const (
	UpgradeEducationBoost UpgradeID = "educationBoost"
	UpgradeHCBonus        UpgradeID = "hcBonus"
	UpgradeAIHelper       UpgradeID = "aiHelper"
)

// Upgrades tracks permanent, cross-life upgrade ownership.
type Upgrades struct {
	EducationBoost bool `json:"education_boost"`
	HCBonus        bool `json:"hc_bonus"`
	AIHelper       bool `json:"ai_helper"`
}

// Has reports whether the upgrade is owned.
func (u Upgrades) Has(id UpgradeID) bool {
	switch id {
	case UpgradeEducationBoost:
		return u.EducationBoost
	case UpgradeHCBonus:
		return u.HCBonus
	case UpgradeAIHelper:
		return u.AIHelper
	default:
		return false
	}
}

func (u Upgrades) with(id UpgradeID) Upgrades {
	switch id {
	case UpgradeEducationBoost:
		u.EducationBoost = true
	case UpgradeHCBonus:
		u.HCBonus = true
	case UpgradeAIHelper:
		u.AIHelper = true
	}
	return u
}

// Record is the full player aggregate. It is a value type: every mutation
// returns a fresh copy, and the controller owns the single current value.
type Record struct {
	ID            string   `json:"id"`
	Age           int      `json:"age"`
	Grade         int      `json:"grade"`
	Health        int      `json:"health"`
	Happiness     int      `json:"happiness"`
	Education     int      `json:"education"`
	Money         int      `json:"money"`
	HCCoins       int      `json:"hc_coins"`
	Rubles        int      `json:"rubles"`
	Career        Career   `json:"career"`
	HasHouse      bool     `json:"has_house"`
	HasPartner    bool     `json:"has_partner"`
	HasPremium    bool     `json:"has_premium"`
	PremiumExpiry int64    `json:"premium_expiry"` // unix ms, 0 when never bought
	Upgrades      Upgrades `json:"upgrades"`
	CurrentTask   string   `json:"current_task"`
}

// NewRecord returns a fresh first-run record.
func NewRecord() Record {
	return Record{
		ID:          uuid.NewString(),
		Age:         StartAge,
		Grade:       StartGrade,
		Health:      StartHealth,
		Happiness:   StartHappiness,
		Education:   0,
		Rubles:      StartRubles,
		Career:      CareerNone,
		CurrentTask: gradeTask(StartGrade),
	}
}

// ResetLife starts a new life: currencies earned across lives, the premium
// subscription and permanent upgrades survive, everything else goes back to
// first-run defaults.
func (r Record) ResetLife() Record {
	return Record{
		ID:            r.ID,
		Age:           StartAge,
		Grade:         StartGrade,
		Health:        StartHealth,
		Happiness:     StartHappiness,
		Money:         0,
		HCCoins:       r.HCCoins,
		Rubles:        r.Rubles,
		Career:        CareerNone,
		HasPremium:    r.HasPremium,
		PremiumExpiry: r.PremiumExpiry,
		Upgrades:      r.Upgrades,
		CurrentTask:   gradeTask(StartGrade),
	}
}

// HasProgress reports whether the record is worth persisting. A pristine
// first-run record is not written so a peeked-at game leaves no file behind.
func (r Record) HasProgress() bool {
	return r.Grade > StartGrade || r.HCCoins > 0
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
