package twinpane

import (
	"strings"

	"github.com/filetug/twinpane/pkg/files"
	"github.com/filetug/twinpane/pkg/transfer"
	"github.com/rivo/tview"
)

const (
	buttonYes       = "Yes"
	buttonNo        = "No"
	buttonOverwrite = "Overwrite"
	buttonRename    = "Rename"
	buttonSkip      = "Skip"
	labelName       = "Name"
)

func (m *Manager) showPrompt(p tview.Primitive) {
	m.pages.RemovePage(pagePrompt)
	m.pages.AddPage(pagePrompt, p, true, true)
	m.app.SetFocus(p)
}

func (m *Manager) closePrompt() {
	if m.pages.HasPage(pagePrompt) {
		m.pages.RemovePage(pagePrompt)
	}
}

func (m *Manager) confirmDrop(d transfer.Drop) {
	m.showPrompt(tview.NewModal().
		SetText(m.confirmDropText(d)).
		AddButtons([]string{buttonYes, buttonNo}).
		SetDoneFunc(func(_ int, label string) {
			if label == buttonYes {
				m.AcceptDrop()
			} else {
				m.CancelDrop()
			}
		}))
}

func (m *Manager) confirmDropText(d transfer.Drop) string {
	names := d.ItemNames()
	const shown = 5
	listed := names
	if len(listed) > shown {
		listed = listed[:shown]
	}
	text := strings.Join(listed, ", ")
	if len(names) > shown {
		text += m.printer.Sprintf(" and %d more", len(names)-shown)
	}
	verb := "Copy"
	if _, trash := d.(*transfer.TrashDrop); trash {
		verb = "Delete"
	}
	if copyDrop, ok := d.(*transfer.CopyDrop); ok {
		return m.printer.Sprintf("%s %d item(s) to %s?\n%s", verb, d.NumberOfItems(), copyDrop.Destination(), text)
	}
	return m.printer.Sprintf("%s %d item(s)?\n%s", verb, d.NumberOfItems(), text)
}

func (m *Manager) confirmItem(_ transfer.Drop, item files.Entry, name string) {
	form := tview.NewForm()
	form.AddInputField(labelName, name, 40, nil, nil)
	form.AddButton(buttonOverwrite, func() { m.AcceptItem() })
	form.AddButton(buttonRename, func() {
		field, _ := form.GetFormItemByLabel(labelName).(*tview.InputField)
		if field != nil {
			m.RenameItem(field.GetText())
		}
	})
	form.AddButton(buttonSkip, func() { m.RejectItem() })
	form.SetBorder(true)
	form.SetTitle(m.printer.Sprintf(" %s already exists (%s) ", name, item.DisplayName()))
	m.showPrompt(form)
}

// AcceptDrop answers the pending "go ahead?" prompt with yes.
func (m *Manager) AcceptDrop() {
	m.answer(func(d transfer.Drop) error { return d.AcceptDrop(m.ctx) })
}

// CancelDrop answers the pending "go ahead?" prompt with no.
func (m *Manager) CancelDrop() {
	m.answer(func(d transfer.Drop) error { return d.CancelDrop() })
}

// AcceptItem overwrites the conflicting destination.
func (m *Manager) AcceptItem() {
	m.answer(func(d transfer.Drop) error { return d.AcceptItem(m.ctx) })
}

// RejectItem skips the conflicting item.
func (m *Manager) RejectItem() {
	m.answer(func(d transfer.Drop) error { return d.RejectItem(m.ctx) })
}

// RenameItem retries the conflicting item under name.
func (m *Manager) RenameItem(name string) {
	m.answer(func(d transfer.Drop) error { return d.RenameItem(m.ctx, name) })
}

func (m *Manager) answer(f func(d transfer.Drop) error) {
	d := m.drop
	if d == nil {
		return
	}
	if err := f(d); err != nil {
		m.setStatus(m.printer.Sprintf("[red]%v[-]", err))
	}
}
