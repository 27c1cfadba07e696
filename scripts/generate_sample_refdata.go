package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Generates the gzipped CSV reference data files consumed by the
// dataset provider (REFDATA_SOURCE=dataset).
// countries.csv.gz rows: code,name
// states.csv.gz rows: country_code,name
func main() {
	dataDir := "data/refdata"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	countries := [][]string{
		{"BR", "Brazil"},
		{"CA", "Canada"},
		{"DE", "Germany"},
		{"IN", "India"},
		{"TR", "Turkey"},
		{"US", "United States"},
	}

	states := [][]string{
		{"BR", "Minas Gerais"},
		{"BR", "Rio de Janeiro"},
		{"BR", "Sao Paulo"},
		{"CA", "Alberta"},
		{"CA", "British Columbia"},
		{"CA", "Ontario"},
		{"CA", "Quebec"},
		{"DE", "Bavaria"},
		{"DE", "Berlin"},
		{"DE", "Hesse"},
		{"IN", "Goa"},
		{"IN", "Karnataka"},
		{"IN", "Maharashtra"},
		{"IN", "Tamil Nadu"},
		{"TR", "Ankara"},
		{"TR", "Istanbul"},
		{"TR", "Izmir"},
		{"US", "California"},
		{"US", "Florida"},
		{"US", "New York"},
		{"US", "Texas"},
		{"US", "Washington"},
	}

	files := map[string][][]string{
		"countries.csv.gz": countries,
		"states.csv.gz":    states,
	}

	for filename, records := range files {
		filePath := filepath.Join(dataDir, filename)

		if err := createRefDataFile(filePath, records); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d records\n", filePath, len(records))
	}

	fmt.Println("\nSample reference data files created successfully!")
}

func createRefDataFile(filePath string, records [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	writer := csv.NewWriter(gzipWriter)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return nil
}
