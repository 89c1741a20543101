package infra

// pdf.go — kwitansi (payment receipt) generation using go-pdf/fpdf.
// Renders an A7-size receipt with the pondok header, the transaksi kode and
// date, the santri identity, the payment line, and the amount in rupiah.
// The output file is saved to storagePath/kwitansi_{kode}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"santripay/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateKwitansiPDF writes the receipt for a paid Transaksi and returns the
// absolute path of the generated file. storagePath is created if needed.
func GenerateKwitansiPDF(t *model.Transaksi, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("kwitansi_%s.pdf", t.Kode)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — receipt-sized paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "SantriPay", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Kwitansi Pembayaran", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, t.Kode, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	tanggal := t.CreatedAt
	if t.TanggalBayar != nil {
		tanggal = *t.TanggalBayar
	}
	pdf.CellFormat(contentW, 4, tanggal.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.38
	col2 := contentW * 0.62

	writeRow := func(label, value string) {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(col1, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, value, "", 1, "L", false, 0, "")
	}

	if t.Santri != nil {
		writeRow("Nama", t.Santri.Nama)
		writeRow("NIS", t.Santri.NIS)
		writeRow("Kelas", t.Santri.Kelas)
	}
	writeRow("Jenis", t.Jenis)
	if t.Bulan != nil && *t.Bulan != "" {
		writeRow("Bulan", *t.Bulan)
	}
	if t.JenisLaundry != nil && *t.JenisLaundry != "" {
		writeRow("Laundry", *t.JenisLaundry)
	}
	writeRow("Status", t.Status)

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, FormatRupiah(t.Jumlah), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Terima kasih", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// FormatRupiah renders an integer rupiah amount as "Rp 1.500.000".
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	if neg {
		return "Rp -" + string(out)
	}
	return "Rp " + string(out)
}
