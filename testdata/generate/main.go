// Command generate produces sample bulk-order upload files for manual
// testing: a clean CSV, a messy CSV exercising the normalizer, and an xlsx
// workbook. Run from the repository root:
//
//	go run ./testdata/generate
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var capacities = []string{"1", "2", "3", "5", "10", "20", "500MB", "1GB", "2 gig"}

var prefixes = []string{"024", "054", "055", "059", "020", "050", "026", "027"}

func main() {
	outDir := "testdata"
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	rng := rand.New(rand.NewSource(42))

	if err := writeCleanCSV(filepath.Join(outDir, "sample_orders.csv"), rng, 40); err != nil {
		log.Fatalf("clean csv: %v", err)
	}
	if err := writeMessyCSV(filepath.Join(outDir, "sample_orders_messy.csv"), rng, 25); err != nil {
		log.Fatalf("messy csv: %v", err)
	}
	if err := writeXLSX(filepath.Join(outDir, "sample_orders.xlsx"), rng, 40); err != nil {
		log.Fatalf("xlsx: %v", err)
	}

	log.Println("Wrote sample_orders.csv, sample_orders_messy.csv, sample_orders.xlsx")
}

func randomPhone(rng *rand.Rand) string {
	p := prefixes[rng.Intn(len(prefixes))]
	var b strings.Builder
	b.WriteString(p)
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&b, "%d", rng.Intn(10))
	}
	return b.String()
}

func writeCleanCSV(path string, rng *rand.Rand, rows int) error {
	var b strings.Builder
	b.WriteString("Beneficiary Number,Data Bundle (GB)\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%s,%s\n", randomPhone(rng), capacities[rng.Intn(len(capacities))])
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// writeMessyCSV has no header, mixed country-code formats and a few rows that
// should come out invalid.
func writeMessyCSV(path string, rng *rand.Rand, rows int) error {
	var b strings.Builder
	for i := 0; i < rows; i++ {
		phone := randomPhone(rng)
		switch i % 5 {
		case 1:
			phone = "233" + phone[1:]
		case 2:
			phone = "+233 " + phone[1:4] + " " + phone[4:]
		case 3:
			phone = phone[:3] + "-" + phone[3:6] + "-" + phone[6:]
		case 4:
			if i%10 == 4 {
				phone = "12345" // invalid on purpose
			}
		}
		fmt.Fprintf(&b, "%s,%s\n", phone, capacities[rng.Intn(len(capacities))])
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeXLSX(path string, rng *rand.Rand, rows int) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"number", "capacity"}
	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i := 0; i < rows; i++ {
		values := []string{randomPhone(rng), capacities[rng.Intn(len(capacities))]}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
