package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifesim/internal/game"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	taskStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle   = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	correctStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	wrongStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	headlineStyle = lipgloss.NewStyle().Bold(true)
)

// advanceMsg fires after the feedback delay. It carries the round generation
// token so a tick from an abandoned round is ignored by the controller.
type advanceMsg struct {
	token int
}

type playModel struct {
	ctrl  *game.Controller
	delay time.Duration
	bar   progress.Model

	feedback *game.Feedback
	hint     int
	hasHint  bool
}

func runPlay(ctrl *game.Controller, delay time.Duration) error {
	m := playModel{
		ctrl:  ctrl,
		delay: delay,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		if w > 40 {
			w = 40
		}
		if w > 0 {
			m.bar.Width = w
		}
		return m, nil

	case advanceMsg:
		m.ctrl.AdvanceRound(msg.token)
		m.feedback = nil
		m.hasHint = false
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		_, phase := m.ctrl.Snapshot()
		switch phase {
		case game.PhaseMenu:
			return m.updateMenu(msg)
		case game.PhasePlaying:
			return m.updatePlaying(msg)
		case game.PhaseCareer:
			return m.updateCareer(msg)
		case game.PhaseLife:
			return m.updateLife(msg)
		case game.PhaseShop:
			return m.updateShop(msg)
		}
	}
	return m, nil
}

func (m playModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "enter":
		m.ctrl.StartGame()
	case "2":
		m.ctrl.OpenShop()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m playModel) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.feedback != nil {
		// Feedback stays on screen until the delayed advance fires.
		if s := msg.String(); s == "q" || s == "esc" {
			m.ctrl.ExitGame()
			m.feedback = nil
			m.hasHint = false
		}
		return m, nil
	}
	switch s := msg.String(); s {
	case "1", "2", "3", "4":
		q, ok := m.ctrl.Question()
		if !ok {
			return m, nil
		}
		idx := int(s[0] - '1')
		fb, ok := m.ctrl.SubmitAnswer(q.Options[idx])
		if !ok {
			return m, nil
		}
		m.feedback = &fb
		m.hasHint = false
		return m, tea.Tick(m.delay, func(time.Time) tea.Msg {
			return advanceMsg{token: fb.Token}
		})
	case "h":
		if answer, ok := m.ctrl.UseAIHelper(); ok {
			m.hint = answer
			m.hasHint = true
		}
	case "q", "esc":
		m.ctrl.ExitGame()
		m.hasHint = false
	}
	return m, nil
}

func (m playModel) updateCareer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		m.ctrl.ChooseCareer(game.Careers[idx].Career)
	case "4":
		m.ctrl.ContinueStudies()
	}
	return m, nil
}

func (m playModel) updateLife(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h":
		m.ctrl.BuyHouse()
	case "p":
		m.ctrl.FindPartner()
	case "s":
		m.ctrl.OpenShop()
	case "r":
		m.ctrl.ResetLife()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m playModel) updateShop(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "p":
		m.ctrl.BuyPremium()
	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		m.ctrl.BuyUpgrade(game.Shop[idx].ID)
	case "q", "esc":
		m.ctrl.CloseShop()
	}
	return m, nil
}

func (m playModel) View() string {
	rec, phase := m.ctrl.Snapshot()
	switch phase {
	case game.PhaseMenu:
		return m.viewMenu(rec)
	case game.PhasePlaying:
		return m.viewPlaying(rec)
	case game.PhaseCareer:
		return m.viewCareer()
	case game.PhaseLife:
		return m.viewLife(rec)
	case game.PhaseShop:
		return m.viewShop(rec)
	}
	return ""
}

func (m playModel) viewMenu(rec game.Record) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("LIFE SIMULATOR") + "\n\n")
	b.WriteString("Live a life from the first school bell:\n")
	b.WriteString("  · pass grades by solving arithmetic\n")
	b.WriteString("  · pick a path after grade 9\n")
	b.WriteString("  · build a home and a family\n\n")
	if rec.HasProgress() {
		fmt.Fprintf(&b, "Saved life: grade %d, age %d, %s HC\n\n", rec.Grade, rec.Age, comma(rec.HCCoins))
	}
	b.WriteString(helpStyle.Render("[1] play  [2] shop  [q] quit"))
	return pad(b.String())
}

func (m playModel) viewPlaying(rec game.Record) string {
	done, total := m.ctrl.RoundProgress()
	qNum := done + 1
	if m.feedback != nil {
		qNum = done
	}
	if qNum > total {
		qNum = total
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n",
		titleStyle.Render(fmt.Sprintf("Grade %d", rec.Grade)),
		taskStyle.Render(fmt.Sprintf("age %d · question %d/%d", rec.Age, qNum, total)))
	fmt.Fprintf(&b, "health %d · happiness %d · education %d\n", rec.Health, rec.Happiness, rec.Education)
	b.WriteString(m.bar.ViewAs(float64(done)/float64(total)) + "\n")

	if m.feedback != nil {
		if m.feedback.Correct {
			b.WriteString(promptStyle.Render(correctStyle.Render("Correct!")))
		} else {
			b.WriteString(promptStyle.Render(wrongStyle.Render("Wrong!")))
		}
		fmt.Fprintf(&b, "\nThe right answer: %d\n", m.feedback.Answer)
		return pad(b.String())
	}

	q, ok := m.ctrl.Question()
	if !ok {
		return pad(b.String())
	}
	b.WriteString(promptStyle.Render(q.Prompt) + "\n")
	for i, opt := range q.Options {
		b.WriteString(optionStyle.Render(fmt.Sprintf("  [%d] %d", i+1, opt)) + "\n")
	}
	if m.hasHint {
		b.WriteString(hintStyle.Render(fmt.Sprintf("AI helper: the answer is %d", m.hint)) + "\n")
	}
	help := "[1-4] answer  [q] menu"
	if rec.Upgrades.AIHelper {
		help = "[1-4] answer  [h] hint  [q] menu"
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return pad(b.String())
}

func (m playModel) viewCareer() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CAREER CHOICE") + "\n")
	b.WriteString("Grade 9 is behind you. What now?\n\n")
	for i, info := range game.Careers {
		fmt.Fprintf(&b, "  [%d] %s - %s ₽/month\n      %s\n", i+1, headlineStyle.Render(info.Title), comma(info.BaseSalary), taskStyle.Render(info.Description))
	}
	b.WriteString(fmt.Sprintf("  [4] %s\n      %s\n", headlineStyle.Render("Continue studies"), taskStyle.Render("A shot at a better job")))
	return pad(b.String())
}

func (m playModel) viewLife(rec game.Record) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("YOUR LIFE") + "\n")
	if info, ok := game.CareerByID(rec.Career); ok {
		fmt.Fprintf(&b, "%s · %s ₽/month\n", info.Title, comma(info.BaseSalary))
	} else {
		b.WriteString("School finished\n")
	}
	fmt.Fprintf(&b, "money %s ₽ · age %d · happiness %d\n\n", comma(rec.Money), rec.Age, rec.Happiness)

	if rec.HasHouse {
		b.WriteString(correctStyle.Render("You own a house!") + "\n")
	} else {
		line := fmt.Sprintf("  [h] buy a house - %s ₽", comma(game.HousePrice))
		if rec.Money < game.HousePrice {
			line = lockedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if rec.HasPartner {
		b.WriteString(correctStyle.Render("You found a partner!") + "\n")
	} else {
		line := "  [p] find a partner"
		if rec.Age < game.PartnerMinAge {
			line = lockedStyle.Render(line + " (18+)")
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("[s] shop  [r] new life  [q] quit"))
	return pad(b.String())
}

func (m playModel) viewShop(rec game.Record) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SHOP") + "\n")
	fmt.Fprintf(&b, "%s HC · %s ₽\n\n", comma(rec.HCCoins), comma(rec.Rubles))

	premiumLine := fmt.Sprintf("  [p] premium, 7 days - %d HC", game.PremiumPriceHC)
	if days := m.ctrl.PremiumDaysLeft(); days > 0 {
		premiumLine = correctStyle.Render(fmt.Sprintf("  premium active: %d day(s) left", days))
	} else if rec.HCCoins < game.PremiumPriceHC {
		premiumLine = lockedStyle.Render(premiumLine)
	}
	b.WriteString(premiumLine + "\n")

	for i, item := range game.Shop {
		line := fmt.Sprintf("  [%d] %s - %d %s", i+1, item.Title, item.Cost, currencyLabel(item.Currency))
		switch {
		case rec.Upgrades.Has(item.ID):
			line = correctStyle.Render(fmt.Sprintf("  %s - owned", item.Title))
		case !game.CanAfford(rec, item.Cost, item.Currency):
			line = lockedStyle.Render(line)
		}
		b.WriteString(line + "\n")
		b.WriteString(taskStyle.Render("      "+item.Effect) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("[q] back"))
	return pad(b.String())
}

func pad(s string) string {
	return "\n" + s + "\n"
}
