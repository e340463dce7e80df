package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

type Product struct {
	Name   string  `parquet:"name"`
	Brand  string  `parquet:"brand"`
	Price  float64 `parquet:"price"`
	Rating float64 `parquet:"rating"`
}

func main() {
	products := []Product{
		{Name: "iphone 15 pro", Brand: "apple", Price: 999, Rating: 4.9},
		{Name: "galaxy s24 ultra", Brand: "samsung", Price: 1199, Rating: 4.8},
		{Name: "redmi note 13", Brand: "xiaomi", Price: 299, Rating: 4.6},
		{Name: "iphone 14", Brand: "apple", Price: 799, Rating: 4.7},
		{Name: "galaxy a54", Brand: "samsung", Price: 349, Rating: 4.2},
		{Name: "poco x6 pro", Brand: "xiaomi", Price: 379, Rating: 4.4},
	}

	if err := writeParquet("products.parquet", products); err != nil {
		log.Fatal(err)
	}
	if err := writeCSV("products.csv", products); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated products.parquet and products.csv with %d products", len(products))
}

func writeParquet(path string, products []Product) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Product](file)
	if _, err := writer.Write(products); err != nil {
		return err
	}
	return writer.Close()
}

func writeCSV(path string, products []Product) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"name", "brand", "price", "rating"}); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			p.Name,
			p.Brand,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.FormatFloat(p.Rating, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
