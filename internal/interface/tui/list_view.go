package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"

	"github.com/danweiss/femstage/internal/core/ledger"
)

type runItem struct {
	run ledger.Run
}

func (i runItem) FilterValue() string {
	return i.run.Document + " " + i.run.Label + " " + i.run.Path
}

func (i runItem) Title() string {
	return fmt.Sprintf("%s / %s", i.run.Document, i.run.Label)
}

func (i runItem) Description() string {
	desc := fmt.Sprintf("%s | %s | %s", i.run.Path, i.run.Mode, humanize.Time(i.run.ResolvedAt))
	if !i.run.Exists {
		desc += " | missing"
	}
	return desc
}

// Custom delegate so runs whose directory vanished render dimmed
type runDelegate struct {
	list.DefaultDelegate
}

func (d runDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(runItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	title := r.Title()
	desc := r.Description()

	switch {
	case index == m.Index():
		title = selectedItemStyle.Render(title)
		desc = selectedItemStyle.Faint(true).Render(desc)
	case !r.run.Exists:
		title = missingItemStyle.Render(title)
		desc = missingItemStyle.Render(desc)
	default:
		title = itemStyle.Render(title)
		desc = itemStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

func createRunList(runs []ledger.Run, width, height int) list.Model {
	items := make([]list.Item, len(runs))
	for i, r := range runs {
		items[i] = runItem{run: r}
	}

	delegate := runDelegate{DefaultDelegate: list.NewDefaultDelegate()}

	l := list.New(items, delegate, width, height-1)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(true)

	return l
}
