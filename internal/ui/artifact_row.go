package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/espdfu/espdfu/internal/model"
)

// ArtifactRow shows one flashable image: include checkbox, flash offset,
// chosen file and a browse button
type ArtifactRow struct {
	kind         model.ArtifactKind
	localization *Localization

	check     *widget.Check
	offset    *widget.Entry
	path      *widget.Label
	browseBtn *widget.Button
	container *fyne.Container

	updating bool

	onInclude func(model.ArtifactKind, bool)
	onOffset  func(model.ArtifactKind, string)
	onBrowse  func(model.ArtifactKind)
}

// NewArtifactRow creates the row for kind
func NewArtifactRow(kind model.ArtifactKind, localization *Localization) *ArtifactRow {
	r := &ArtifactRow{kind: kind, localization: localization}

	r.check = widget.NewCheck(kind.String(), func(on bool) {
		if r.updating || r.onInclude == nil {
			return
		}
		r.onInclude(r.kind, on)
	})

	r.offset = widget.NewEntry()
	r.offset.SetPlaceHolder(kind.DefaultOffset())
	r.offset.OnChanged = func(text string) {
		if r.updating || r.onOffset == nil {
			return
		}
		r.onOffset(r.kind, text)
	}

	r.path = widget.NewLabel(localization.GetText(KeyNoFileSelected))
	r.path.Truncation = fyne.TextTruncateEllipsis

	r.browseBtn = widget.NewButton(IconFolder+" "+localization.GetText(KeyBrowse), func() {
		if r.onBrowse != nil {
			r.onBrowse(r.kind)
		}
	})

	left := container.NewHBox(
		container.NewGridWrap(fyne.NewSize(CheckLabelWidth, r.check.MinSize().Height), r.check),
		container.NewGridWrap(fyne.NewSize(OffsetEntryWidth, r.offset.MinSize().Height), r.offset),
	)
	r.container = container.NewBorder(nil, nil, left, r.browseBtn, r.path)
	return r
}

// SetCallbacks wires the row to its handlers
func (r *ArtifactRow) SetCallbacks(
	onInclude func(model.ArtifactKind, bool),
	onOffset func(model.ArtifactKind, string),
	onBrowse func(model.ArtifactKind),
) {
	r.onInclude = onInclude
	r.onOffset = onOffset
	r.onBrowse = onBrowse
}

// Container returns the row's canvas object
func (r *ArtifactRow) Container() fyne.CanvasObject {
	return r.container
}

// Update shows slot. Widgets are disabled while an operation runs; the
// application checkbox is never editable.
func (r *ArtifactRow) Update(slot model.Slot, busy bool) {
	r.updating = true
	defer func() { r.updating = false }()

	r.check.SetChecked(slot.Include)
	if r.offset.Text != slot.Offset {
		r.offset.SetText(slot.Offset)
	}
	if slot.PathSet {
		r.path.SetText(slot.Path)
	} else {
		r.path.SetText(r.localization.GetText(KeyNoFileSelected))
	}

	if busy || r.kind == model.ArtifactApplication {
		r.check.Disable()
	} else {
		r.check.Enable()
	}
	if busy {
		r.offset.Disable()
		r.browseBtn.Disable()
	} else {
		r.offset.Enable()
		r.browseBtn.Enable()
	}
}

// RefreshTexts re-reads localized labels
func (r *ArtifactRow) RefreshTexts() {
	r.browseBtn.SetText(IconFolder + " " + r.localization.GetText(KeyBrowse))
}
