package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"lifesim/internal/game"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		warn.Println("Invalid option. Please pick one of the listed values.")
	}
}

func renderStats(rec game.Record, now time.Time) {
	accent.Println("\n== YOUR LIFE ==")
	fmt.Printf("Age:        %d\n", rec.Age)
	fmt.Printf("Grade:      %d\n", rec.Grade)
	fmt.Printf("Task:       %s\n", rec.CurrentTask)
	fmt.Printf("Health:     %s\n", statBar(rec.Health))
	fmt.Printf("Happiness:  %s\n", statBar(rec.Happiness))
	fmt.Printf("Education:  %s\n", comma(rec.Education))

	fmt.Println()
	accent.Println("Wallet")
	fmt.Printf("Money:      %s ₽\n", comma(rec.Money))
	fmt.Printf("Rubles:     %s ₽\n", comma(rec.Rubles))
	fmt.Printf("HC coins:   %s\n", comma(rec.HCCoins))
	if days := game.DaysRemaining(rec, now); days > 0 {
		fmt.Printf("Premium:    %d day(s) left\n", days)
	} else {
		fmt.Printf("Premium:    none\n")
	}

	fmt.Println()
	accent.Println("Milestones")
	if info, ok := game.CareerByID(rec.Career); ok {
		fmt.Printf("Career:     %s (%s ₽/month)\n", info.Title, comma(info.BaseSalary))
	} else {
		fmt.Printf("Career:     still in school\n")
	}
	fmt.Printf("House:      %s\n", yesNo(rec.HasHouse))
	fmt.Printf("Partner:    %s\n", yesNo(rec.HasPartner))

	fmt.Println()
	accent.Println("Upgrades")
	for _, item := range game.Shop {
		fmt.Printf("%-16s %s\n", item.Title+":", yesNo(rec.Upgrades.Has(item.ID)))
	}
	fmt.Println()
}

func renderShop(rec game.Record, now time.Time) {
	accent.Println("\n== SHOP ==")
	fmt.Printf("Balance: %s HC, %s ₽\n\n", comma(rec.HCCoins), comma(rec.Rubles))

	premiumStatus := "available"
	if days := game.DaysRemaining(rec, now); days > 0 {
		premiumStatus = fmt.Sprintf("active, %d day(s) left", days)
	} else if !game.CanAfford(rec, game.PremiumPriceHC, game.CurrencyHC) {
		premiumStatus = "can't afford"
	}
	fmt.Printf("%-18s %6d HC  %-44s %s\n", "Premium (7 days)", game.PremiumPriceHC,
		"easier questions, 5 per grade instead of 10", premiumStatus)

	for _, item := range game.Shop {
		status := "available"
		switch {
		case rec.Upgrades.Has(item.ID):
			status = "owned"
		case !game.CanAfford(rec, item.Cost, item.Currency):
			status = "can't afford"
		}
		fmt.Printf("%-18s %6d %-2s  %-44s %s\n",
			item.Title, item.Cost, currencyLabel(item.Currency), item.Effect, status)
	}
	fmt.Println()
}

func currencyLabel(cur game.Currency) string {
	if cur == game.CurrencyRubles {
		return "₽"
	}
	return "HC"
}

func yesNo(v bool) string {
	if v {
		return success.Sprint("yes")
	}
	return neutral.Sprint("no")
}

func statBar(v int) string {
	filled := v / 10
	return fmt.Sprintf("%-10s %d/100", strings.Repeat("#", filled), v)
}

// comma groups digits in threes from the right: 604800000 -> "604,800,000".
func comma(v int) string {
	s := strconv.Itoa(v)
	start := 0
	if v < 0 {
		start = 1
	}
	for i := len(s) - 3; i > start; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
