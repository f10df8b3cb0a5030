// Package main provides the pedump GUI application.
package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/hashicorp/go-hclog"

	"github.com/ZacharyZcR/pedump/internal/hexdump"
	"github.com/ZacharyZcR/pedump/internal/logging"
	"github.com/ZacharyZcR/pedump/internal/pe"
	"github.com/ZacharyZcR/pedump/internal/view"
)

var desktopShortcutOpen = desktop.CustomShortcut{
	KeyName:  fyne.KeyO,
	Modifier: fyne.KeyModifierShortcutDefault,
}

type viewer struct {
	window fyne.Window
	logger hclog.Logger
	status *widget.Label

	info *pe.Info
	dump hexdump.Dump
	page view.InfoPage

	infoContent *fyne.Container
	hexContent  *fyne.Container
}

func main() {
	myApp := app.New()
	myWindow := myApp.NewWindow("PEDump - PE文件查看器")
	myWindow.Resize(fyne.NewSize(1280, 800))

	v := &viewer{
		window:      myWindow,
		logger:      logging.NewLogger("pedump-gui", logging.LogLevel(""), nil),
		status:      widget.NewLabel("就绪"),
		infoContent: container.NewStack(widget.NewLabel("请先打开PE文件 (Ctrl+O)")),
		hexContent:  container.NewStack(widget.NewLabel("请先打开PE文件 (Ctrl+O)")),
	}

	openButton := widget.NewButton("打开文件", v.chooseFile)
	myWindow.Canvas().AddShortcut(&desktopShortcutOpen, func(fyne.Shortcut) { v.chooseFile() })

	sidebar := widget.NewList(
		func() int { return len(view.InfoPages) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(view.InfoPages[i].Title())
		},
	)
	sidebar.OnSelected = func(i widget.ListItemID) {
		v.page = view.InfoPages[i]
		v.showInfoPage()
	}

	tabs := container.NewAppTabs(
		container.NewTabItem(view.RouteInfo.Title(), container.NewBorder(nil, nil, sidebar, nil, v.infoContent)),
		container.NewTabItem(view.RouteHexdump.Title(), v.hexContent),
	)

	myWindow.SetContent(container.NewBorder(
		container.NewHBox(openButton),
		container.NewVBox(widget.NewSeparator(), v.status),
		nil,
		nil,
		tabs,
	))

	if len(os.Args) > 1 {
		v.load(os.Args[1])
	}
	myWindow.ShowAndRun()
}

func (v *viewer) chooseFile() {
	dialog.ShowFileOpen(func(file fyne.URIReadCloser, err error) {
		if err != nil || file == nil {
			return
		}
		defer func() { _ = file.Close() }()
		v.load(file.URI().Path())
	}, v.window)
}

// load replaces every view with the content of path.
func (v *viewer) load(path string) {
	reader, err := pe.Load(path)
	if err != nil {
		v.logger.Error("open failed", "path", path, "error", err)
		dialog.ShowError(err, v.window)
		v.status.SetText("打开失败")
		return
	}

	v.info = pe.NewAnalyzer(reader, v.logger).Analyze()
	v.dump = hexdump.Chunk(reader.Bytes(), hexdump.RowWidth, 0)
	v.logger.Debug("loaded file", "path", path, "rows", len(v.dump))

	v.showInfoPage()
	v.setContent(v.hexContent, newHexTable(v.dump))

	if v.info.DecodeErr != nil {
		v.status.SetText(fmt.Sprintf("%s: %v", path, v.info.DecodeErr))
		return
	}
	v.status.SetText(fmt.Sprintf("%s (%s, %d 字节)", path, v.info.Variant, v.info.FileSize))
}

func (v *viewer) showInfoPage() {
	if v.info == nil {
		return
	}

	h := v.info.Headers
	var content fyne.CanvasObject
	switch v.page {
	case view.PageDOSHeader:
		content = v.tableOrError(view.HeaderColumns, view.HeaderRows(h.DOS))
	case view.PageDOSStub:
		stub := hexdump.Chunk(v.info.DOSStub, hexdump.RowWidth, pe.DOSHeaderSize)
		content = newHexTable(stub)
	case view.PageNTHeaders:
		content = v.tableOrError(view.HeaderColumns, view.NTHeaderRows(h))
	case view.PageDirectories:
		content = v.tableOrError(view.DirectoryColumns, view.DirectoryRows(h.Directories))
	case view.PageSections:
		content = v.tableOrError(view.SectionColumns, view.SectionRows(v.info.Sections))
	}
	v.setContent(v.infoContent, content)
}

// tableOrError shows a decode failure instead of an empty table.
func (v *viewer) tableOrError(columns []string, rows [][]string) fyne.CanvasObject {
	if len(rows) == 0 && v.info.DecodeErr != nil {
		return widget.NewLabel(fmt.Sprintf("无法解析: %v", v.info.DecodeErr))
	}
	return newStringTable(columns, rows)
}

func (v *viewer) setContent(c *fyne.Container, obj fyne.CanvasObject) {
	c.Objects = []fyne.CanvasObject{obj}
	c.Refresh()
}

func newStringTable(columns []string, rows [][]string) *widget.Table {
	t := widget.NewTable(
		func() (int, int) { return len(rows) + 1, len(columns) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(columns[id.Col])
				return
			}
			label.TextStyle = fyne.TextStyle{Monospace: true}
			label.SetText(rows[id.Row-1][id.Col])
		},
	)
	for i := range columns {
		t.SetColumnWidth(i, 180)
	}
	return t
}

// newHexTable renders rows on demand so large files stay cheap to display.
func newHexTable(dump hexdump.Dump) *widget.Table {
	t := widget.NewTable(
		func() (int, int) { return len(dump) + 1, len(view.HexColumns) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(view.HexColumns[id.Col])
				return
			}
			label.TextStyle = fyne.TextStyle{Monospace: true}
			label.SetText(view.HexCell(dump[id.Row-1], id.Col))
		},
	)
	t.SetColumnWidth(0, 110)
	t.SetColumnWidth(1, 520)
	t.SetColumnWidth(2, 200)
	return t
}
