// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package export renders order, stock and picking-list data sets to
// downloadable CSV, Excel and PDF files.
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Format names a supported export file format.
type Format string

// Supported export formats.
const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// ValidFormats lists every accepted export format.
var ValidFormats = []Format{FormatCSV, FormatExcel, FormatPDF}

// IsValidFormat reports whether f is a supported format.
func IsValidFormat(f Format) bool {
	for _, v := range ValidFormats {
		if v == f {
			return true
		}
	}
	return false
}

// File is a rendered export ready to be served as an attachment.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// ContentDisposition returns the attachment header value for the file.
func (f *File) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%s", f.Name)
}

func contentType(format Format) string {
	switch format {
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

func extension(format Format) string {
	if format == FormatExcel {
		return "xlsx"
	}
	return string(format)
}

func fileName(prefix string, format Format) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("2006-01-02"), extension(format))
}

// money renders a float amount with exactly two decimals.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
