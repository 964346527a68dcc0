package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/antonskv/shop_backend/internal/models"
)

// productDoc is what the search index stores: text fields only, no blobs.
type productDoc struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	FirmName    string  `json:"firm_name"`
	Price       float64 `json:"price"`
}

func docFromProduct(p *models.Product) productDoc {
	doc := productDoc{ID: p.ID, Name: p.Name, Price: p.Price}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.FirmName != nil {
		doc.FirmName = *p.FirmName
	}
	return doc
}

func IndexProduct(ctx context.Context, client *elasticsearch.Client, index string, p *models.Product) error {
	body, err := json.Marshal(docFromProduct(p))
	if err != nil {
		return err
	}

	res, err := client.Index(
		index,
		bytes.NewReader(body),
		client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product: %s", res.Status())
	}
	return nil
}

func DeleteProduct(ctx context.Context, client *elasticsearch.Client, index string, id uint) error {
	res, err := client.Delete(
		index,
		strconv.FormatUint(uint64(id), 10),
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product: %s", res.Status())
	}
	return nil
}

// SearchProducts runs a fuzzy multi_match over the product index and
// returns the total hit count plus the page of matching documents.
func SearchProducts(ctx context.Context, client *elasticsearch.Client, index, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description", "firm_name"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(index),
		client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source productDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		src := hit.Source
		prods[i] = models.Product{ID: src.ID, Name: src.Name, Price: src.Price}
		if src.Description != "" {
			d := src.Description
			prods[i].Description = &d
		}
		if src.FirmName != "" {
			f := src.FirmName
			prods[i].FirmName = &f
		}
	}
	return r.Hits.Total.Value, prods, nil
}
