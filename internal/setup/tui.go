// Package setup renders the interactive terminal surface of the calculator:
// the daily price gate followed by the Calculator / Wages / Prices / History
// tabs. All state lives in the session controller; this package only draws
// snapshots and forwards commands.
package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/LegitNotT/SSS/internal/domain"
	"github.com/LegitNotT/SSS/internal/services/wages"
	"github.com/LegitNotT/SSS/internal/session"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#1e3a8a"}
	special   = lipgloss.AdaptiveColor{Light: "#006a50", Dark: "#73F59F"}
	warn      = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(subtle).
			Padding(1, 2).
			MarginBottom(1)

	resultStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(warn).
			Bold(true)
)

// UI drives the terminal loop over a session controller.
type UI struct {
	ctrl     *session.Controller
	currency string
}

// NewUI creates the terminal surface.
func NewUI(ctrl *session.Controller, currency string) *UI {
	if currency == "" {
		currency = "₹"
	}
	return &UI{ctrl: ctrl, currency: currency}
}

// Run blocks until the user quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if u.ctrl.IsDailyGateActive(time.Now()) {
			if err := u.dailyGate(); err != nil {
				return err
			}
			continue
		}

		done, err := u.mainMenu()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// dailyGate forces entry of all four prices before the tabs open.
func (u *UI) dailyGate() error {
	clearScreen()
	fmt.Println(headerStyle.Render("GOOD MORNING!"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Please enter today's prices.\n"))

	ps := u.ctrl.ActivePrices()
	goldNoGST := zeroToEmpty(ps.GoldWithoutGST)
	goldGST := zeroToEmpty(ps.GoldWithGST)
	silverNoGST := zeroToEmpty(ps.SilverWithoutGST)
	silverGST := zeroToEmpty(ps.SilverWithGST)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Gold price without GST (%s/gram)", u.currency)).
				Value(&goldNoGST).
				Validate(validatePositivePrice),
			huh.NewInput().
				Title(fmt.Sprintf("Gold price with GST (%s/gram)", u.currency)).
				Value(&goldGST).
				Validate(validatePositivePrice),
			huh.NewInput().
				Title(fmt.Sprintf("Silver price without GST (%s/gram)", u.currency)).
				Value(&silverNoGST).
				Validate(validatePositivePrice),
			huh.NewInput().
				Title(fmt.Sprintf("Silver price with GST (%s/gram)", u.currency)).
				Value(&silverGST).
				Validate(validatePositivePrice),
		),
	).Run()
	if err != nil {
		return err
	}

	newPrices, err := pricesFromText(goldNoGST, goldGST, silverNoGST, silverGST)
	if err == nil {
		_, err = u.ctrl.CommitPrices(newPrices)
	}
	if err != nil {
		fmt.Println(errStyle.Render(err.Error()))
	}
	return nil
}

// mainMenu shows the tab selector. Returns true when the user quits.
func (u *UI) mainMenu() (bool, error) {
	clearScreen()
	fmt.Println(headerStyle.Render("SSS JEWELRY CALCULATOR"))

	var tab string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Navigation").
				Options(
					huh.NewOption("Calculator", "calculator"),
					huh.NewOption("Wages", "wages"),
					huh.NewOption("Prices", "prices"),
					huh.NewOption("History", "history"),
					huh.NewOption("Quit", "quit"),
				).
				Value(&tab),
		),
	).Run()
	if err != nil {
		return false, err
	}

	switch tab {
	case "calculator":
		return false, u.calculatorTab()
	case "wages":
		return false, u.wagesTab()
	case "prices":
		return false, u.pricesTab()
	case "history":
		return false, u.historyTab()
	case "quit":
		return true, nil
	}
	return false, nil
}

func (u *UI) calculatorTab() error {
	snap := u.ctrl.Snapshot()

	weight := snap.WeightText
	material := string(snap.Material)
	includeGST := snap.IncludeGST
	wageID := snap.SelectedWage.ID

	wageOpts := make([]huh.Option[int64], 0, len(snap.Wages))
	for _, w := range snap.Wages {
		wageOpts = append(wageOpts, huh.NewOption(fmt.Sprintf("%s (%s%s)", w.Label, u.currency, w.Rate.String()), w.ID))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Material").
				Options(
					huh.NewOption("Gold", "gold"),
					huh.NewOption("Silver", "silver"),
				).
				Value(&material),
			huh.NewConfirm().
				Title("Include GST?").
				Value(&includeGST),
			huh.NewSelect[int64]().
				Title("Making charge").
				Options(wageOpts...).
				Value(&wageID),
			huh.NewInput().
				Title("Weight (grams)").
				Placeholder("0").
				Value(&weight).
				Validate(validateWeight),
		),
	).Run()
	if err != nil {
		return err
	}

	if _, err := u.ctrl.SelectWage(wageID); err != nil {
		fmt.Println(errStyle.Render(err.Error()))
		return nil
	}

	mat, err := domain.ParseMaterial(material)
	if err != nil {
		fmt.Println(errStyle.Render(err.Error()))
		return nil
	}

	snap, err = u.ctrl.Compute(weight, mat, includeGST)
	if err != nil {
		fmt.Println(errStyle.Render(err.Error()))
		return pause()
	}

	result := *snap.Result
	fmt.Println(cardStyle.Render(
		"Calculated Price\n" +
			resultStyle.Render(fmt.Sprintf("%s%s", u.currency, result.Total.StringFixed(0))) + "\n\n" +
			result.Preview(u.currency)))

	var action string
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Actions").
				Options(
					huh.NewOption("Save to history", "save"),
					huh.NewOption("Clear", "clear"),
					huh.NewOption("Back", "back"),
				).
				Value(&action),
		),
	).Run()
	if err != nil {
		return err
	}

	switch action {
	case "save":
		if _, err := u.ctrl.CommitToHistory(); err != nil {
			fmt.Println(errStyle.Render(err.Error()))
			return pause()
		}
		fmt.Println(resultStyle.Render("Calculation saved to history!"))
		return pause()
	case "clear":
		u.ctrl.ClearEntry()
	}
	return nil
}

func (u *UI) wagesTab() error {
	for {
		clearScreen()
		fmt.Println(headerStyle.Render("MAKING CHARGES"))

		snap := u.ctrl.Snapshot()
		var list strings.Builder
		for _, w := range snap.Wages {
			marker := "  "
			if w.ID == snap.SelectedWage.ID {
				marker = "▸ "
			}
			list.WriteString(fmt.Sprintf("%s%d. %s — %s%s\n", marker, w.SrNo, w.Label, u.currency, w.Rate.String()))
		}
		fmt.Println(cardStyle.Render(strings.TrimRight(list.String(), "\n")))

		var action string
		var targetID int64
		entryOpts := make([]huh.Option[int64], 0, len(snap.Wages))
		for _, w := range snap.Wages {
			entryOpts = append(entryOpts, huh.NewOption(fmt.Sprintf("%d. %s", w.SrNo, w.Label), w.ID))
		}

		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Action").
					Options(
						huh.NewOption("Add new entry", "add"),
						huh.NewOption("Edit entry", "edit"),
						huh.NewOption("Select entry", "select"),
						huh.NewOption("Delete entry", "delete"),
						huh.NewOption("Back", "back"),
					).
					Value(&action),
			),
		).Run()
		if err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "add":
			entry, _ := u.ctrl.AddWage()
			fmt.Println(resultStyle.Render(fmt.Sprintf("Added %s", entry.Label)))
			continue
		}

		// remaining actions need a target entry
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int64]().
					Title("Entry").
					Options(entryOpts...).
					Value(&targetID),
			),
		).Run()
		if err != nil {
			return err
		}

		switch action {
		case "edit":
			if err := u.editWage(targetID); err != nil {
				return err
			}
		case "select":
			if _, err := u.ctrl.SelectWage(targetID); err != nil {
				fmt.Println(errStyle.Render(err.Error()))
				if err := pause(); err != nil {
					return err
				}
			}
		case "delete":
			if _, err := u.ctrl.RemoveWage(targetID); err != nil {
				fmt.Println(errStyle.Render(err.Error()))
				if err := pause(); err != nil {
					return err
				}
			}
		}
	}
}

func (u *UI) editWage(id int64) error {
	var current domain.WageEntry
	for _, w := range u.ctrl.ListWages() {
		if w.ID == id {
			current = w
			break
		}
	}

	label := current.Label
	rate := current.Rate.String()

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				Value(&label).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("label cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Rate").
				Value(&rate).
				Validate(validateRate),
		),
	).Run()
	if err != nil {
		return err
	}

	parsed, err := decimal.NewFromString(strings.TrimSpace(rate))
	if err != nil {
		fmt.Println(errStyle.Render("rate must be a number"))
		return pause()
	}

	if _, err := u.ctrl.UpdateWage(id, wages.Patch{Label: &label, Rate: &parsed}); err != nil {
		fmt.Println(errStyle.Render(err.Error()))
		return pause()
	}
	return nil
}

func (u *UI) pricesTab() error {
	clearScreen()
	fmt.Println(headerStyle.Render("DAILY PRICES"))

	ps := u.ctrl.ActivePrices()
	fmt.Println(cardStyle.Render(fmt.Sprintf(
		"Gold without GST:   %s%s/gram\nGold with GST:      %s%s/gram\nSilver without GST: %s%s/gram\nSilver with GST:    %s%s/gram",
		u.currency, ps.GoldWithoutGST.String(),
		u.currency, ps.GoldWithGST.String(),
		u.currency, ps.SilverWithoutGST.String(),
		u.currency, ps.SilverWithGST.String())))

	var action string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Action").
				Options(
					huh.NewOption("Re-enter prices now", "reenter"),
					huh.NewOption("Reset daily prices", "reset"),
					huh.NewOption("Back", "back"),
				).
				Value(&action),
		),
	).Run()
	if err != nil {
		return err
	}

	switch action {
	case "reenter":
		return u.dailyGate()
	case "reset":
		u.ctrl.ResetDailyGate()
	}
	return nil
}

func (u *UI) historyTab() error {
	clearScreen()
	fmt.Println(headerStyle.Render("HISTORY"))

	records := u.ctrl.ListHistory()
	if len(records) == 0 {
		fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("No calculations saved."))
	} else {
		var list strings.Builder
		for _, r := range records {
			gst := "without GST"
			if r.IncludeGST {
				gst = "with GST"
			}
			list.WriteString(fmt.Sprintf("%s  %s %sg → %s%s (%s, making %s%s)\n",
				r.Timestamp, strings.ToUpper(r.Material.String()), r.Weight.String(),
				u.currency, r.Total.StringFixed(0), gst, u.currency, r.WageAmount.String()))
		}
		fmt.Println(cardStyle.Render(strings.TrimRight(list.String(), "\n")))
	}

	var action string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Action").
				Options(
					huh.NewOption("Clear all history", "clear"),
					huh.NewOption("Back", "back"),
				).
				Value(&action),
		),
	).Run()
	if err != nil {
		return err
	}

	if action == "clear" {
		u.ctrl.ClearHistory()
		fmt.Println(resultStyle.Render("History cleared!"))
	}
	return nil
}

func pricesFromText(goldNoGST, goldGST, silverNoGST, silverGST string) (domain.PriceSet, error) {
	parse := func(s string) (decimal.Decimal, error) {
		return decimal.NewFromString(strings.TrimSpace(s))
	}

	var ps domain.PriceSet
	var err error
	if ps.GoldWithoutGST, err = parse(goldNoGST); err != nil {
		return domain.PriceSet{}, fmt.Errorf("gold price without GST: %w", err)
	}
	if ps.GoldWithGST, err = parse(goldGST); err != nil {
		return domain.PriceSet{}, fmt.Errorf("gold price with GST: %w", err)
	}
	if ps.SilverWithoutGST, err = parse(silverNoGST); err != nil {
		return domain.PriceSet{}, fmt.Errorf("silver price without GST: %w", err)
	}
	if ps.SilverWithGST, err = parse(silverGST); err != nil {
		return domain.PriceSet{}, fmt.Errorf("silver price with GST: %w", err)
	}
	return ps, nil
}

func validatePositivePrice(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func validateWeight(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateRate(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.LessThan(domain.MinWageRate) {
		return fmt.Errorf("must be at least %s", domain.MinWageRate.String())
	}
	return nil
}

// zeroToEmpty keeps unset prices from pre-filling inputs with "0".
func zeroToEmpty(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}

// pause waits for confirmation so messages stay readable before the next
// screen clears them.
func pause() error {
	var ok bool
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Continue?").
				Affirmative("OK").
				Negative("Dismiss").
				Value(&ok),
		),
	).Run()
}
