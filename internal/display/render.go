// Package display renders distribution results for terminal output.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/chipflow/internal/chips"
)

// Result renders one distribution result as a bordered panel.
func Result(r *chips.Result, title string) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(row("Multiplier", fmt.Sprintf("%g", r.Multiplier)))
	b.WriteString(row("Players", fmt.Sprintf("%d", r.Info.NumPlayers)))
	b.WriteString(row("Total buy-in", fmt.Sprintf("%.2f", r.Info.TotalBuyIn)))
	b.WriteString(row("Chips per player", fmt.Sprintf("%.1f", r.Info.ChipsPerPlayer)))

	if r.Info.BBInChips != nil {
		b.WriteString(row("Big blind in chips", fmt.Sprintf("%.1f", *r.Info.BBInChips)))
	}
	if r.Info.SBInChips != nil {
		b.WriteString(row("Small blind in chips", fmt.Sprintf("%.1f", *r.Info.SBInChips)))
	}
	if r.Info.BBPerPlayer != nil {
		b.WriteString(row("Stack depth", fmt.Sprintf("%.1f BB", *r.Info.BBPerPlayer)))
	}
	if r.Info.ActualValuePerPlayer != nil {
		b.WriteString(row("Actual value per player", fmt.Sprintf("%.2f", *r.Info.ActualValuePerPlayer)))
	}
	if r.Info.ExpectedValuePerPlayer != nil {
		b.WriteString(row("Expected value per player", fmt.Sprintf("%.2f", *r.Info.ExpectedValuePerPlayer)))
	}
	if r.Info.ValueDifference != nil && *r.Info.ValueDifference != 0 {
		b.WriteString(row("Value difference", warningStyle.Render(fmt.Sprintf("%.2f", *r.Info.ValueDifference))))
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Per-player stack"))
	b.WriteString("\n")
	if len(r.PerPlayer) > 0 {
		b.WriteString(chipStyle.Render(ChipSet(r.PerPlayer[0])))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Total chips used"))
	b.WriteString("\n")
	b.WriteString(chipStyle.Render(ChipSet(r.TotalChips)))
	b.WriteString("\n\n")

	if r.Feasible {
		b.WriteString(successStyle.Render("✓ Feasible with current inventory"))
	} else {
		b.WriteString(errorStyle.Render("✗ Inventory shortage"))
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("  missing: " + ChipSet(r.Shortage)))
	}

	return boxStyle.Render(b.String())
}

// Alternatives renders ranked alternatives below an optimal result.
func Alternatives(alternatives []*chips.Result) string {
	if len(alternatives) == 0 {
		return labelStyle.Render("No alternatives available.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Alternatives"))
	b.WriteString("\n")

	for i, alt := range alternatives {
		status := successStyle.Render("feasible")
		if !alt.Feasible {
			status = errorStyle.Render("shortage")
		}
		depth := "N/A"
		if alt.Info.BBPerPlayer != nil {
			depth = fmt.Sprintf("%.1f BB", *alt.Info.BBPerPlayer)
		}
		b.WriteString(fmt.Sprintf("%s multiplier %s  stacks %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%d.", i+1)),
			valueStyle.Render(fmt.Sprintf("%g", alt.Multiplier)),
			valueStyle.Render(depth),
			status))
	}
	return b.String()
}

// Inventory renders the chip inventory as an aligned table.
func Inventory(inv chips.Inventory) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Chip Inventory"))
	b.WriteString("\n\n")

	for _, d := range inv.Denominations() {
		b.WriteString(fmt.Sprintf("%s %s\n",
			chipStyle.Render(fmt.Sprintf("%5d", d)),
			valueStyle.Render(fmt.Sprintf("x %d", inv[d]))))
	}

	b.WriteString("\n")
	b.WriteString(row("Total value", fmt.Sprintf("%d", inv.TotalValue())))
	return boxStyle.Render(b.String())
}

// ChipSet formats a chip set as "150x1 + 100x5 + ..." in ascending
// denomination order.
func ChipSet(set chips.ChipSet) string {
	if len(set) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(set))
	for _, d := range chips.Inventory(set).Denominations() {
		parts = append(parts, fmt.Sprintf("%dx%d", set[d], d))
	}
	return strings.Join(parts, " + ")
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Width(28).Render(label),
		valueStyle.Render(value)) + "\n"
}
