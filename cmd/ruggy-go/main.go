package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/ruggydb/ruggy-go/pkg/ruggy"
	"github.com/ruggydb/ruggy-go/pkg/ruggy/boltengine"
)

func main() {
	log.Printf("ruggy-go version: %s", ruggy.WrapperVersion())
	log.Printf("native engine available: %v", ruggy.NativeAvailable())

	cfg, err := ruggy.LoadConfig(ruggy.ConfigOptions{})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("data path: %s", cfg.DataPath)

	db, err := ruggy.Open(cfg.DataPath)
	if errors.Is(err, ruggy.ErrNotBuilt) {
		fmt.Println("native engine not linked in, falling back to bbolt")
		db, err = ruggy.OpenWithOptions(cfg.DataPath, ruggy.Options{Engine: boltengine.New()})
	}
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Printf("close error: %v", cerr)
		}
	}()

	err = db.WithCollection("smoke", func(c *ruggy.Collection) error {
		id, err := c.Insert(ruggy.Document{"name": "John Doe", "age": 30})
		if err != nil {
			return err
		}
		docs, err := c.Find("name", "John Doe")
		if err != nil {
			return err
		}
		fmt.Printf("inserted %s, found %d matching document(s)\n", id, len(docs))
		_, err = c.Delete(id)
		return err
	})
	if err != nil {
		log.Fatalf("round trip: %v", err)
	}
	fmt.Println("database round trip OK")
}
