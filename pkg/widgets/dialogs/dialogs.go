// Package dialogs wraps the native file dialogs. It needs cgo and GTK on Linux.
// Headless binaries must not import it.
package dialogs

import (
	"errors"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	sdialog "github.com/sqweek/dialog"
)

// SaveFile asks for a file name with the native dialog and calls cb on the
// main thread. ext is appended when the name lacks it.
func SaveFile(cb func(filename string), desc, ext string) {
	go func() {
		filename, err := sdialog.File().Filter(desc, ext).Title("Save " + desc).Save()
		if err != nil {
			if errors.Is(err, sdialog.ErrCancelled) {
				return
			}
			log.Println("Error selecting file:", err)
			return
		}
		if !strings.HasSuffix(strings.ToLower(filename), "."+ext) {
			filename += "." + ext
		}
		fyne.Do(func() {
			cb(filename)
		})
	}()
}

// SelectFile asks for a file to open with the native dialog.
func SelectFile(cb func(filename string), desc string, exts ...string) {
	go func() {
		filename, err := sdialog.File().Filter(desc, exts...).Load()
		if err != nil {
			if errors.Is(err, sdialog.ErrCancelled) {
				return
			}
			log.Println("Error selecting file:", err)
			return
		}
		fyne.Do(func() {
			cb(filename)
		})
	}()
}
